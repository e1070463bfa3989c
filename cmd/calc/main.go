package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go-chi-baseconv/internal/config"
	"go-chi-baseconv/internal/console"
	"go-chi-baseconv/internal/observability"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

// run executes one calculator session and returns the process exit code.
func run(ctx context.Context, in io.Reader, out io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	// Prompts own stdout; only warnings reach stderr unless LOG_LEVEL asks for more.
	level := cfg.LogLevel
	if level < zapcore.WarnLevel && os.Getenv("LOG_LEVEL") == "" {
		level = zapcore.WarnLevel
	}
	if err := observability.InitConsoleLogger(level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	defer observability.SyncLogger()

	shell := console.New(in, out,
		console.WithClearScreen(cfg.ClearScreen),
		console.WithColor(cfg.ColorOutput),
		console.WithLogger(observability.Logger),
	)

	if _, err := shell.Run(ctx); err != nil {
		if ctx.Err() != nil {
			observability.Logger.Warn("calculator session interrupted")
			return exitInterrupted
		}
		observability.Logger.Error("calculator session ended", zap.Error(err))
		return exitFailure
	}
	return exitOK
}
