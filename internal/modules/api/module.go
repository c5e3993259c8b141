package api

import (
	"context"

	"binary_bot/internal/modules/api/service"
	"binary_bot/internal/modules/health"
	healthsvc "binary_bot/internal/modules/health/service"
	"binary_bot/internal/runner"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(
			service.NewRouter,
			service.NewServer,
			func(m *runner.Manager, log *zap.Logger) *service.Handler {
				return service.NewHandler(m, log)
			},
		),
		fx.Invoke(
			func(lc fx.Lifecycle, r *gin.Engine, h *service.Handler, s *service.Server, state *healthsvc.State) {
				h.Register(r)
				health.Register(r, state)

				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if err := s.Start(ctx); err != nil {
							return err
						}
						state.SetReady(true)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						state.SetReady(false)
						return s.Stop(ctx)
					},
				})
			},
		),
	)
}
