package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/union"
	"github.com/wippyai/union/errors"
	"github.com/wippyai/union/payload"
)

// Config is the inspector configuration file.
type Config struct {
	Diagnostics *bool     `yaml:"diagnostics"`
	Log         LogConfig `yaml:"log"`
	Capacity    int       `yaml:"capacity"`
}

// LogConfig selects the zap logger built by the inspector.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

func defaultConfig() Config {
	return Config{
		Capacity: payload.DefaultCapacity,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "yaml unmarshal "+path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the capacity and logging settings.
func (c Config) Validate() error {
	if err := payload.ValidateCapacity(c.Capacity); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.InvalidInput(errors.PhaseConfig, "log.level: "+err.Error())
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("log.format %q: want console or json", c.Log.Format))
	}
	return nil
}

// Logger builds the zap logger described by the config.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if c.Log.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// Registry builds a registry with the configured capacity and diagnostics.
func (c Config) Registry(log *zap.Logger) (*union.Registry, error) {
	opts := []union.Option{
		union.WithCapacity(c.Capacity),
		union.WithLogger(log),
	}
	if c.Diagnostics != nil {
		opts = append(opts, union.WithDiagnostics(*c.Diagnostics))
	}
	return union.NewRegistry(opts...)
}
