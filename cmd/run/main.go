package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"
	"binary_bot/internal/modules/deriv_client"
	"binary_bot/internal/modules/deriv_ws"
	"binary_bot/internal/notify"
	"binary_bot/internal/runner"
	"binary_bot/internal/strategy"
	"binary_bot/pkg/logger"
	"binary_bot/pkg/tracing"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Одиночный запуск из конфига: run.api_token, run.initial_stake, run.profit_target
// (или BOT_RUN_*). Код выхода 0 только при достижении цели.
func main() {
	os.Exit(run())
}

func run() int {
	logger.SetServiceName("binary_bot_run")
	tracing.SetServiceName("binary_bot_run")

	var (
		cfg     *config.Config
		manager *runner.Manager
	)
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		config.Module(),
		logger.Module(),
		tracing.Module(),
		strategy.Module(),
		deriv_ws.Module(),
		deriv_client.Module(),
		notify.Module(),
		runner.Module(),
		fx.Invoke(func(opentracing.Tracer) {}),
		fx.Populate(&cfg, &manager),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		return 2
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Error("stop: %v", err)
		}
	}()

	req, err := runRequest(cfg.Run)
	if err != nil {
		logger.Error("%v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := manager.Run(ctx, req)

	out, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result: %v", err)
		return 1
	}
	fmt.Println(string(out))

	if res.Reason != models.ReasonTargetReached {
		logger.InfoLogger.Warn("run not completed", zap.String("reason", string(res.Reason)))
		return 1
	}
	return 0
}

func runRequest(rc config.RunConfig) (models.RunRequest, error) {
	switch {
	case rc.APIToken == "":
		return models.RunRequest{}, errors.New("run.api_token is empty")
	case rc.InitialStake <= 0:
		return models.RunRequest{}, errors.Errorf("run.initial_stake must be > 0, got %v", rc.InitialStake)
	case rc.ProfitTarget <= 0:
		return models.RunRequest{}, errors.Errorf("run.profit_target must be > 0, got %v", rc.ProfitTarget)
	}
	return models.RunRequest{
		APIToken:     rc.APIToken,
		InitialStake: decimal.NewFromFloat(rc.InitialStake),
		ProfitTarget: decimal.NewFromFloat(rc.ProfitTarget),
	}, nil
}
