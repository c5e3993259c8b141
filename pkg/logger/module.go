package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module отдаёт *zap.Logger, собранный из Config, и сбрасывает буфер на остановке.
func Module() fx.Option {
	return fx.Module("logger",
		fx.Provide(Init),
		fx.Invoke(func(lc fx.Lifecycle, l *zap.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					_ = l.Sync()
					return nil
				},
			})
		}),
	)
}
