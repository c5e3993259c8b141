package notify

import (
	"binary_bot/internal/runner"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type reportersParams struct {
	fx.In

	Log       *zap.Logger
	Reporters []Reporter `group:"reporters"`
}

// Module собирает всех получателей из группы "reporters" в один runner.Reporter.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(p reportersParams) runner.Reporter {
				return append(Multi{NewLog(p.Log)}, p.Reporters...)
			},
		),
	)
}
