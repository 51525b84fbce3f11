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

// Package config declares lumenhub's configuration, loaded by
// github.com/USA-RedDragon/configulator from the environment and an
// optional config file.
package config

import "time"

// Config stores the application configuration.
type Config struct {
	LogLevel LogLevel `name:"log_level" description:"Minimum log level to emit" default:"info"`
	Node     Node     `name:"node" description:"E1.31 node settings"`
	SLP      SLP      `name:"slp" description:"SLP service directory settings"`
	Metrics  Metrics  `name:"metrics" description:"Prometheus metrics server settings"`
	Tracing  Tracing  `name:"tracing" description:"OpenTelemetry tracing settings"`
}

// Node configures the E1.31 node: the UDP socket it binds, which
// interface it joins multicast groups on, and the identity it advertises.
type Node struct {
	Bind         string `name:"bind" description:"UDP bind address" default:"0.0.0.0"`
	Port         int    `name:"port" description:"UDP port" default:"5568"`
	Interface    string `name:"interface" description:"Network interface for multicast joins; empty lets the kernel choose"`
	MulticastTTL int    `name:"multicast_ttl" description:"IPv4 multicast TTL for transmitted frames" default:"1"`
	SourceName   string `name:"source_name" description:"Default source name advertised on transmitted universes" default:"lumenhub"`
}

// SLP configures the service directory's periodic aging sweep.
type SLP struct {
	SweepInterval time.Duration `name:"sweep_interval" description:"How often expired registrations are swept from the store" default:"30s"`
}

// Metrics configures the Prometheus metrics HTTP server.
type Metrics struct {
	Enabled bool   `name:"enabled" description:"Whether to serve Prometheus metrics" default:"true"`
	Bind    string `name:"bind" description:"Metrics server bind address" default:"0.0.0.0"`
	Port    int    `name:"port" description:"Metrics server port" default:"9090"`
}

// Tracing configures optional OpenTelemetry OTLP export. An empty
// Endpoint disables tracing entirely.
type Tracing struct {
	OTLPEndpoint string `name:"otlp_endpoint" description:"OTLP gRPC collector endpoint; empty disables tracing"`
}
