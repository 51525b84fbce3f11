// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/openlumen/lumenhub/internal/config"
)

func makeValidConfig() config.Config {
	return config.Config{
		LogLevel: config.LogLevelInfo,
		Node: config.Node{
			Bind:         "0.0.0.0",
			Port:         5568,
			MulticastTTL: 1,
			SourceName:   "lumenhub",
		},
		SLP: config.SLP{
			SweepInterval: 30 * time.Second,
		},
		Metrics: config.Metrics{
			Enabled: true,
			Bind:    "0.0.0.0",
			Port:    9090,
		},
	}
}

func TestValidConfigPasses(t *testing.T) {
	t.Parallel()
	if err := makeValidConfig().Validate(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	c.LogLevel = "verbose"
	if !errors.Is(c.Validate(), config.ErrInvalidLogLevel) {
		t.Errorf("expected ErrInvalidLogLevel, got %v", c.Validate())
	}
}

func TestNodeValidateEmptyBind(t *testing.T) {
	t.Parallel()
	n := config.Node{Bind: "", Port: 5568, MulticastTTL: 1, SourceName: "x"}
	if !errors.Is(n.Validate(), config.ErrInvalidNodeBindAddress) {
		t.Errorf("expected ErrInvalidNodeBindAddress, got %v", n.Validate())
	}
}

func TestNodeValidateInvalidPort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := config.Node{Bind: "0.0.0.0", Port: tt.port, MulticastTTL: 1, SourceName: "x"}
			if !errors.Is(n.Validate(), config.ErrInvalidNodePort) {
				t.Errorf("expected ErrInvalidNodePort for port %d, got %v", tt.port, n.Validate())
			}
		})
	}
}

func TestNodeValidateMulticastTTL(t *testing.T) {
	t.Parallel()
	n := config.Node{Bind: "0.0.0.0", Port: 5568, MulticastTTL: 0, SourceName: "x"}
	if !errors.Is(n.Validate(), config.ErrInvalidMulticastTTL) {
		t.Errorf("expected ErrInvalidMulticastTTL, got %v", n.Validate())
	}
}

func TestNodeValidateSourceName(t *testing.T) {
	t.Parallel()
	n := config.Node{Bind: "0.0.0.0", Port: 5568, MulticastTTL: 1, SourceName: ""}
	if !errors.Is(n.Validate(), config.ErrSourceNameRequired) {
		t.Errorf("expected ErrSourceNameRequired, got %v", n.Validate())
	}

	n.SourceName = string(make([]byte, 65))
	if !errors.Is(n.Validate(), config.ErrSourceNameTooLong) {
		t.Errorf("expected ErrSourceNameTooLong, got %v", n.Validate())
	}
}

func TestSLPValidateSweepInterval(t *testing.T) {
	t.Parallel()
	s := config.SLP{SweepInterval: 0}
	if !errors.Is(s.Validate(), config.ErrInvalidSweepInterval) {
		t.Errorf("expected ErrInvalidSweepInterval, got %v", s.Validate())
	}
}

func TestMetricsValidateDisabled(t *testing.T) {
	t.Parallel()
	m := config.Metrics{Enabled: false}
	if err := m.Validate(); err != nil {
		t.Errorf("expected nil error for disabled metrics, got %v", err)
	}
}

func TestMetricsValidateEnabledRequiresBindAndPort(t *testing.T) {
	t.Parallel()
	m := config.Metrics{Enabled: true, Bind: "", Port: 9090}
	if !errors.Is(m.Validate(), config.ErrInvalidMetricsBindAddress) {
		t.Errorf("expected ErrInvalidMetricsBindAddress, got %v", m.Validate())
	}

	m = config.Metrics{Enabled: true, Bind: "0.0.0.0", Port: 0}
	if !errors.Is(m.Validate(), config.ErrInvalidMetricsPort) {
		t.Errorf("expected ErrInvalidMetricsPort, got %v", m.Validate())
	}
}
