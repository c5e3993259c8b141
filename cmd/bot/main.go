package main

import (
	"log"

	"binary_bot/internal/modules/api"
	"binary_bot/internal/modules/config"
	"binary_bot/internal/modules/deriv_client"
	"binary_bot/internal/modules/deriv_ws"
	"binary_bot/internal/modules/health"
	telegram "binary_bot/internal/modules/telegram_bot"
	"binary_bot/internal/notify"
	"binary_bot/internal/runner"
	"binary_bot/internal/strategy"
	"binary_bot/pkg/logger"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const serviceName = "binary_bot"

func main() {
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		config.Module(),
		logger.Module(),
		tracing.Module(),
		strategy.Module(),
		deriv_ws.Module(),
		deriv_client.Module(),
		health.Module(),
		// api раньше runner: на остановке сначала гасятся запуски, потом HTTP
		api.Module(),
		notify.Module(),
		telegram.Module(),
		runner.Module(),
		// трейсер глобальный, поднимаем явно
		fx.Invoke(func(opentracing.Tracer) {}),
	)
	if err := app.Err(); err != nil {
		log.Fatal(err)
	}
	app.Run()
}
