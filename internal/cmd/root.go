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

// Package cmd wires lumenhub's command-line entrypoint: config loading,
// logging, metrics, optional tracing, and the E1.31 node and SLP store
// lifecycle.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openlumen/lumenhub/internal/clock"
	"github.com/openlumen/lumenhub/internal/config"
	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/node"
	"github.com/openlumen/lumenhub/internal/e131/transport"
	"github.com/openlumen/lumenhub/internal/metrics"
	"github.com/openlumen/lumenhub/internal/slp/store"

	"github.com/USA-RedDragon/configulator"
	"github.com/go-co-op/gocron/v2"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewCommand builds lumenhub's root cobra command.
func NewCommand(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lumenhubd",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c := configulator.New[config.Config]()
			cmd.SetContext(configulator.NewContext(cmd.Context(), c))
			return nil
		},
		RunE:              runRoot,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("lumenhub - %s (%s)\n", cmd.Annotations["version"], cmd.Annotations["commit"])

	c, err := configulator.FromContext[config.Config](ctx)
	if err != nil {
		return fmt.Errorf("failed to get config from context: %w", err)
	}

	cfg, err := c.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	var cleanup func(context.Context) error
	if cfg.Tracing.OTLPEndpoint != "" {
		cleanup = initTracer(cfg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cleanup(shutdownCtx); err != nil {
				logger.Error("failed to shut down tracer", "error", err)
			}
		}()
	}

	if err := metrics.CreateMetricsServer(cfg); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	m := metrics.NewMetrics()

	ourCID := cid.Generate()
	logger.Info("node identity", "cid", ourCID.String())

	tr := transport.New(
		fmt.Sprintf("%s:%d", cfg.Node.Bind, cfg.Node.Port),
		cfg.Node.MulticastTTL,
		cfg.Node.Interface,
		logger,
	)
	n := node.New(ourCID, cfg.Node.SourceName, tr, clock.System{}, logger, m)
	if err := n.Start(ctx); err != nil {
		return fmt.Errorf("failed to start node: %w", err)
	}
	defer n.Stop()

	slpStore := store.New()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.SLP.SweepInterval),
		gocron.NewTask(func() {
			now := time.Now()
			removed := slpStore.Sweep(now)
			if removed > 0 {
				m.IncrementSLPURLsExpired(float64(removed))
				logger.Debug("slp sweep reclaimed registrations", "count", removed)
			}
			m.SetSLPServicesTotal(float64(slpStore.ServiceCount(now)))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule slp sweep: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	logger.Info("lumenhub started",
		"bind", fmt.Sprintf("%s:%d", cfg.Node.Bind, cfg.Node.Port),
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func newLogger(level config.LogLevel) *slog.Logger {
	switch level {
	case config.LogLevelDebug:
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	case config.LogLevelWarn:
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))
	case config.LogLevelError:
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelError}))
	default:
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelInfo}))
	}
}

func initTracer(cfg *config.Config) func(context.Context) error {
	exporter, err := otlptrace.New(
		context.Background(),
		otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.Tracing.OTLPEndpoint),
		),
	)
	if err != nil {
		slog.Error("failed to build otlp exporter", "error", err)
		return func(context.Context) error { return nil }
	}

	resources, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", "lumenhub"),
			attribute.String("library.language", "go"),
		),
	)
	if err != nil {
		slog.Error("failed to build tracing resource", "error", err)
	}

	otel.SetTracerProvider(
		sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resources),
		),
	)
	return exporter.Shutdown
}
