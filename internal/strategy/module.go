package strategy

import (
	"binary_bot/internal/modules/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) (Engine, error) {
				return NewEngine(cfg.Trading.TrendEngine)
			},
		),
	)
}
