/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// The sendmoney command runs a terminal chat with the money transfer
// assistant and serves Prometheus metrics for its operations.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chainguard.dev/remitaf/agents/metrics"
	"chainguard.dev/remitaf/agents/optrace"
	"chainguard.dev/remitaf/sendmoney"
	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"golang.org/x/sync/errgroup"
)

type envConfig struct {
	ProjectID      string `env:"PROJECT_ID, required"`
	Region         string `env:"REGION, default=us-central1"`
	Model          string `env:"MODEL, default=gemini-2.0-flash"`
	MetricsEnabled bool   `env:"METRICS_ENABLED, default=true"`
	MetricsPort    int    `env:"METRICS_PORT, default=9090"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var env envConfig
	if err := envconfig.Process(ctx, &env); err != nil {
		clog.FatalContextf(ctx, "failed to process env var: %v", err)
	}

	// Export OpenTelemetry metrics through the Prometheus registry so
	// one scrape endpoint serves both instrument families.
	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("sendmoney"),
		))
	if err != nil {
		clog.FatalContextf(ctx, "failed to build resource: %v", err)
	}
	exporter, err := otelprom.New()
	if err != nil {
		clog.FatalContextf(ctx, "failed to create prometheus exporter: %v", err)
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			clog.ErrorContextf(ctx, "failed to shut down meter provider: %v", err)
		}
	}()

	ops := metrics.NewOperations("chainguard.dev/remitaf")
	tracing := optrace.NewFactory(env.MetricsEnabled, func() optrace.Tracer {
		return metrics.Multi(
			ops.Tracer("agent_turn"),
			metrics.NewPromTracer("agent_turn"),
			optrace.NewLogTracer("agent_turn"),
		)
	})

	session, err := sendmoney.NewSession(ctx, sendmoney.Config{
		ProjectID: env.ProjectID,
		Region:    env.Region,
		Model:     env.Model,
		Tracing:   tracing,
	})
	if err != nil {
		clog.FatalContextf(ctx, "failed to create session: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", env.MetricsPort),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}
	eg.Go(func() error {
		clog.InfoContextf(ctx, "serving metrics on :%d", env.MetricsPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		defer cancel()
		return chat(ctx, session)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		clog.FatalContextf(ctx, "exiting: %v", err)
	}
}

// chat reads user messages from stdin until EOF or cancellation.
func chat(ctx context.Context, session *sendmoney.Session) error {
	fmt.Println("Money transfer assistant ready. Press Ctrl-D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		message := scanner.Text()
		if message == "" {
			continue
		}

		reply, err := session.Turn(ctx, message)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			clog.ErrorContextf(ctx, "turn failed: %v", err)
			continue
		}

		fmt.Println(reply.Text)
		if reply.Complete {
			summary, err := reply.Details.Summary()
			if err != nil {
				return fmt.Errorf("rendering summary: %w", err)
			}
			clog.InfoContextf(ctx, "transfer complete:\n%s", summary)
			return nil
		}
	}
}
