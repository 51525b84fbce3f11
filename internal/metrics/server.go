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

package metrics

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/openlumen/lumenhub/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readHeaderTimeout = 3 * time.Second

// CreateMetricsServer binds the metrics listener and, if binding
// succeeds, serves /metrics on it in the background. It returns nil
// immediately if metrics are disabled, and an error synchronously if the
// listener can't be bound - it never panics on a bind failure.
func CreateMetricsServer(cfg *config.Config) error {
	if !cfg.Metrics.Enabled {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Metrics.Bind, cfg.Metrics.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind metrics server on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", slog.Any("error", err))
		}
	}()

	return nil
}
