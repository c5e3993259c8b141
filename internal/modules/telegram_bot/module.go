package telegram

import (
	"context"

	"binary_bot/internal/modules/telegram_bot/service"
	"binary_bot/internal/notify"
	"binary_bot/internal/runner"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram,
		),

		// Telegram: ещё один получатель отчётов
		fx.Provide(
			fx.Annotate(
				func(t *service.Telegram) notify.Reporter { return t },
				fx.ResultTags(`group:"reporters"`),
			),
		),

		// Менеджер подключается после сборки графа: он сам зависит от отчётов
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, m *runner.Manager) {
				t.SetControl(m)
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						t.Start(ctx)
						return nil
					},
					OnStop: func(_ context.Context) error {
						cancel()
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
