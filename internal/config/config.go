package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by the api and calc binaries.
type Config struct {
	HTTPAddr    string
	LogLevel    zapcore.Level
	ServiceName string
	ExportOTLP  bool
	ClearScreen bool
	ColorOutput bool
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// FromEnv reads Config from the process environment.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		ServiceName: getenv("OTEL_SERVICE_NAME", "baseconv-api"),
	}

	level, err := zapcore.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.ExportOTLP, err = getbool("OTEL_EXPORT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.ClearScreen, err = getbool("CALC_CLEAR_SCREEN", true); err != nil {
		return Config{}, err
	}
	if cfg.ColorOutput, err = getbool("CALC_COLOR", true); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getbool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
