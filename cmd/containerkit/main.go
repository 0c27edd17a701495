package main

import (
	"context"
	"os"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/containerkit/pkg/dynarray"
)

const ErrInvalidLogLevel errorkit.Error = "ErrInvalidLogLevel"

func main() {
	ctx := context.Background()
	logger := &logging.Logger{Out: os.Stderr}

	conf, err := LoadConfig()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", logging.ErrField(err))
		os.Exit(cli.ExitCodeError)
	}
	logger.Level = conf.LogLevel

	cli.Main(ctx, NewMux(conf, logger))
}

type Config struct {
	LogLevel logging.Level
	Array    dynarray.Config
}

type envConfig struct {
	LogLevel string `env:"CONTAINERKIT_LOG_LEVEL" default:"info"`
}

// LoadConfig reads the command configuration from the environment.
func LoadConfig() (Config, error) {
	var ec envConfig
	if err := env.Load(&ec); err != nil {
		return Config{}, err
	}
	level, err := parseLevel(ec.LogLevel)
	if err != nil {
		return Config{}, err
	}
	array, err := dynarray.LoadConfig()
	if err != nil {
		return Config{}, err
	}
	return Config{LogLevel: level, Array: array}, nil
}

func parseLevel(raw string) (logging.Level, error) {
	switch lvl := logging.Level(raw); lvl {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError, logging.LevelFatal:
		return lvl, nil
	default:
		return "", ErrInvalidLogLevel.F("%q", raw)
	}
}

func NewMux(conf Config, logger *logging.Logger) *cli.Mux {
	var (
		mux  cli.Mux
		opts = []dynarray.Option{conf.Array}
	)
	mux.Handle("replay", ReplayCommand{Logger: logger, ArrayOptions: opts})
	mux.Handle("scenario", ScenarioCommand{Logger: logger, ArrayOptions: opts})
	return &mux
}
