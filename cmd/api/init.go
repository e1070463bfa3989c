package main

import (
	"context"
	"errors"

	"go-chi-baseconv/internal/calculator"
	"go-chi-baseconv/internal/config"
	"go-chi-baseconv/internal/observability"
)

// initTelemetry installs the OTLP trace, metric and log pipelines and the
// calculator's metric instruments. The returned func shuts all of them down.
// With export disabled only the instruments are created, against the no-op
// global providers.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.ExportOTLP {
		for _, start := range []func(context.Context, string) (func(context.Context) error, error){
			observability.InitTracing,
			observability.InitMetrics,
			observability.InitLogging,
		} {
			stop, err := start(ctx, cfg.ServiceName)
			if err != nil {
				_ = shutdown(ctx)
				return nil, err
			}
			shutdowns = append(shutdowns, stop)
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
