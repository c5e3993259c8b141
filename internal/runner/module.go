package runner

import (
	"context"

	"binary_bot/internal/modules/config"
	"binary_bot/internal/modules/deriv_client/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewConnector: адаптер фабрики клиентов к Connector.
func NewConnector(f *service.Factory) Connector {
	return func(ctx context.Context) (Venue, error) {
		c, err := f.Open(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

type runnerParams struct {
	fx.In

	Connect  Connector
	Cfg      *config.Config
	Reporter Reporter
	Activity Activity `optional:"true"`
	Log      *zap.Logger
}

func newRunner(p runnerParams) *Runner {
	return New(p.Connect, p.Cfg.Trading, p.Reporter, p.Activity, p.Log)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewConnector,
			newRunner,
			NewManager,
		),
		fx.Invoke(func(lc fx.Lifecycle, m *Manager) {
			lc.Append(fx.Hook{
				OnStop: m.Shutdown,
			})
		}),
	)
}
