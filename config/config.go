package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	dc "github.com/ncobase/geocontent/data/config"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/logging/observes"
	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/validator"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GEOCONTENT"

// Config represents the configuration implementation.
type Config struct {
	AppName string           `json:"app_name" validate:"required"`
	RunMode string           `json:"run_mode" validate:"oneof=debug release test"`
	Server  *Server          `json:"server" validate:"required"`
	Logger  *logger.Config   `json:"logger" validate:"required"`
	Tracer  *observes.Config `json:"tracer" validate:"required"`
	Query   *query.Config    `json:"query" validate:"required"`
	Data    *dc.Config       `json:"data" validate:"required"`
	Viper   *viper.Viper     `json:"-" validate:"-"`
}

var mu sync.Mutex

// LoadConfig loads the configuration from configPath. An empty path
// searches config.{yaml,json,toml} in /etc/geocontent, $HOME/.geocontent,
// the working directory and the executable's directory; finding none
// leaves defaults and environment values in place.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/geocontent")
		v.AddConfigPath("$HOME/.geocontent")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Server:  getServerConfig(v),
		Logger:  logger.GetConfig(v),
		Tracer:  observes.GetConfig(v),
		Query:   query.GetConfig(v),
		Data:    dc.GetConfig(v),
		Viper:   v,
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Watch watches the file cfg was read from and passes every valid reload
// to callback. Invalid reloads are logged and dropped.
func Watch(cfg *Config, callback func(*Config)) {
	if cfg == nil || cfg.Viper == nil || cfg.Viper.ConfigFileUsed() == "" {
		return
	}
	v := cfg.Viper
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		next, err := build(v)
		if err != nil {
			logger.Errorf(context.Background(), "error reloading config %s: %v", e.Name, err)
			return
		}
		callback(next)
	})
	v.WatchConfig()
}
