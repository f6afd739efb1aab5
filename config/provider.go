package config

import (
	"github.com/google/wire"

	dc "github.com/ncobase/geocontent/data/config"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/logging/observes"
	"github.com/ncobase/geocontent/query"
)

// ProviderSet is the wire provider set for the config package.
// It provides the sub-configurations other packages consume from a
// loaded *Config.
var ProviderSet = wire.NewSet(
	ProvideLoggerConfig,
	ProvideTracerConfig,
	ProvideQueryConfig,
	ProvideDataConfig,
)

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *logger.Config {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideTracerConfig provides the tracing configuration.
func ProvideTracerConfig(cfg *Config) *observes.Config {
	if cfg == nil {
		return nil
	}
	return cfg.Tracer
}

// ProvideQueryConfig provides the query compiler configuration.
func ProvideQueryConfig(cfg *Config) *query.Config {
	if cfg == nil {
		return nil
	}
	return cfg.Query
}

// ProvideDataConfig provides the data layer configuration.
func ProvideDataConfig(cfg *Config) *dc.Config {
	if cfg == nil {
		return nil
	}
	return cfg.Data
}
