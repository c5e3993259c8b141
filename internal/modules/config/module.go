package config

import (
	"binary_bot/pkg/logger"
	"binary_bot/pkg/tracing"

	"go.uber.org/fx"
)

// Module регистрирует *Config и секции для pkg-модулей.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			func(c *Config) logger.Config {
				return logger.Config{
					Level:      c.Log.Level,
					File:       c.Log.File,
					MaxSizeMB:  c.Log.MaxSizeMB,
					MaxBackups: c.Log.MaxBackups,
				}
			},
			func(c *Config) tracing.Config {
				return tracing.Config{
					Enabled: c.Tracing.Enabled,
					Host:    c.Tracing.Host,
					Port:    c.Tracing.Port,
				}
			},
		),
	)
}
