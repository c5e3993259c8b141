package deriv_ws

import (
	"binary_bot/internal/modules/config"
	"binary_bot/internal/modules/deriv_ws/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dialerParams struct {
	fx.In

	Cfg      *config.Config
	Log      *zap.Logger
	Observer service.Observer `optional:"true"`
}

// Module отдаёт *service.Dialer: каждый запуск открывает через него свой сокет.
func Module() fx.Option {
	return fx.Module("deriv_ws",
		fx.Provide(
			func(p dialerParams) *service.Dialer {
				return service.NewDialer(p.Cfg, p.Log, p.Observer)
			},
		),
	)
}
