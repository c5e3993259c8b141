package deriv_client

import (
	"binary_bot/internal/modules/deriv_client/service"

	"go.uber.org/fx"
)

// Module отдаёт *service.Factory: клиент открывается на каждый запуск.
func Module() fx.Option {
	return fx.Module("deriv_client",
		fx.Provide(service.NewFactory),
	)
}
