// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package config

import "errors"

var (
	// ErrInvalidLogLevel indicates that the provided log level is not valid.
	ErrInvalidLogLevel = errors.New("invalid log level provided")
	// ErrInvalidNodeBindAddress indicates that the provided node bind address is not valid.
	ErrInvalidNodeBindAddress = errors.New("invalid node bind address provided")
	// ErrInvalidNodePort indicates that the provided node UDP port is not valid.
	ErrInvalidNodePort = errors.New("invalid node UDP port provided")
	// ErrInvalidMulticastTTL indicates that the provided multicast TTL is out of range.
	ErrInvalidMulticastTTL = errors.New("invalid multicast TTL provided, must be between 1 and 255")
	// ErrSourceNameRequired indicates that the default source name is empty.
	ErrSourceNameRequired = errors.New("default source name is required")
	// ErrSourceNameTooLong indicates that the default source name exceeds 64 bytes.
	ErrSourceNameTooLong = errors.New("default source name exceeds 64 bytes")
	// ErrInvalidSweepInterval indicates that the SLP sweep interval is not positive.
	ErrInvalidSweepInterval = errors.New("slp sweep interval must be positive")
	// ErrInvalidMetricsBindAddress indicates that the provided metrics server bind address is not valid.
	ErrInvalidMetricsBindAddress = errors.New("invalid metrics server bind address provided")
	// ErrInvalidMetricsPort indicates that the provided metrics server port is not valid.
	ErrInvalidMetricsPort = errors.New("invalid metrics server port provided")
)

const maxSourceNameLen = 64

// Validate validates the Node configuration.
func (n Node) Validate() error {
	if n.Bind == "" {
		return ErrInvalidNodeBindAddress
	}
	if n.Port <= 0 || n.Port > 65535 {
		return ErrInvalidNodePort
	}
	if n.MulticastTTL <= 0 || n.MulticastTTL > 255 {
		return ErrInvalidMulticastTTL
	}
	if n.SourceName == "" {
		return ErrSourceNameRequired
	}
	if len(n.SourceName) > maxSourceNameLen {
		return ErrSourceNameTooLong
	}
	return nil
}

// Validate validates the SLP configuration.
func (s SLP) Validate() error {
	if s.SweepInterval <= 0 {
		return ErrInvalidSweepInterval
	}
	return nil
}

// Validate validates the Metrics configuration.
func (m Metrics) Validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Bind == "" {
		return ErrInvalidMetricsBindAddress
	}
	if m.Port <= 0 || m.Port > 65535 {
		return ErrInvalidMetricsPort
	}
	return nil
}

// Validate validates the top-level configuration.
func (c Config) Validate() error {
	if c.LogLevel != LogLevelDebug &&
		c.LogLevel != LogLevelInfo &&
		c.LogLevel != LogLevelWarn &&
		c.LogLevel != LogLevelError {
		return ErrInvalidLogLevel
	}

	if err := c.Node.Validate(); err != nil {
		return err
	}

	if err := c.SLP.Validate(); err != nil {
		return err
	}

	if err := c.Metrics.Validate(); err != nil {
		return err
	}

	return nil
}
