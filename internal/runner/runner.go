package runner

import (
	"context"
	"time"

	"binary_bot/internal/helper"
	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Venue: всё, что нужно запуску от биржи. Одно соединение на запуск.
type Venue interface {
	Authenticate(ctx context.Context, token string) (decimal.Decimal, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	SampleTrend(ctx context.Context, symbol string, window time.Duration) (models.Trend, models.PriceSample, error)
	Execute(ctx context.Context, req models.TradeRequest) (models.TradeResult, error)
	Close() error
}

// Connector открывает новое соединение с биржей.
type Connector func(ctx context.Context) (Venue, error)

// Reporter получает данные итераций и итог. Форматирование: на его стороне.
type Reporter interface {
	Iteration(ctx context.Context, rep models.IterationReport)
	Finished(ctx context.Context, res models.RunResult)
}

// Activity: счётчики для health.
type Activity interface {
	RunStarted()
	RunFinished()
	Sampled(at time.Time)
}

type nopActivity struct{}

func (nopActivity) RunStarted()       {}
func (nopActivity) RunFinished()      {}
func (nopActivity) Sampled(time.Time) {}

// Runner ведёт один запуск от авторизации до терминального состояния.
// Сам по себе состояния не хранит: всё живёт в RunState внутри Run.
type Runner struct {
	connect  Connector
	cfg      config.TradingConfig
	stakes   StakePolicy
	reporter Reporter
	activity Activity
	log      *zap.Logger

	sleep helper.Sleeper
	now   func() time.Time
}

func New(connect Connector, cfg config.TradingConfig, reporter Reporter, activity Activity, log *zap.Logger) *Runner {
	if activity == nil {
		activity = nopActivity{}
	}
	return &Runner{
		connect:  connect,
		cfg:      cfg,
		stakes:   NewStakePolicy(cfg.StakeMultiplier, cfg.MaxStake),
		reporter: reporter,
		activity: activity,
		log:      log,
		sleep:    helper.SleepCtx,
		now:      time.Now,
	}
}

// WithClock подменяет часы и ожидание (тесты).
func (r *Runner) WithClock(now func() time.Time, sleep helper.Sleeper) *Runner {
	r.now = now
	r.sleep = sleep
	return r
}

// Run блокирует до терминального состояния и всегда возвращает итог.
func (r *Runner) Run(ctx context.Context, runID string, req models.RunRequest) models.RunResult {
	r.activity.RunStarted()
	defer r.activity.RunFinished()

	if r.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.RunTimeout)
		defer cancel()
	}

	span, ctx := tracing.StartSpan(ctx, "run", opentracing.Tags{
		"run_id": runID,
		"symbol": r.cfg.Symbol,
	})

	state := models.NewRunState(runID, r.cfg.Symbol, req)
	log := r.log.With(zap.String("run_id", runID), zap.String("symbol", r.cfg.Symbol))
	log.Info("[RUN] start",
		zap.String("initial_stake", req.InitialStake.String()),
		zap.String("profit_target", req.ProfitTarget.String()),
	)

	res := models.RunResult{RunID: runID, StartedAt: r.now()}
	err := r.loop(ctx, state, req.APIToken, log)
	switch {
	case err == nil:
		res.Reason = models.ReasonTargetReached
	case cancelled(ctx, err):
		res.Reason = models.ReasonCancelled
		res.Message = err.Error()
	default:
		res.Reason = models.ReasonFatalError
		res.ErrorKind = models.KindOf(err)
		res.Message = err.Error()
	}
	if res.Reason != models.ReasonFatalError {
		err = nil
	}
	tracing.Finish(span, err)

	res.CumulativeProfit = state.CumulativeProfit
	res.FinalStake = state.CurrentStake
	res.Balance = state.Balance
	res.Trades = state.Trades
	res.Wins = state.Wins
	res.Losses = state.Losses
	res.FinishedAt = r.now()

	log.Info("[RUN] finished",
		zap.String("reason", string(res.Reason)),
		zap.String("error_kind", string(res.ErrorKind)),
		zap.String("cumulative_profit", res.CumulativeProfit.String()),
		zap.Int("trades", res.Trades),
	)
	r.reporter.Finished(context.WithoutCancel(ctx), res)
	return res
}

// cancelled: отмена извне или run_timeout. Ошибка биржи из конверта остаётся фатальной.
func cancelled(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if ctx.Err() == nil {
		return false
	}
	switch models.KindOf(err) {
	case "", models.ErrKindTransport, models.ErrKindConnection:
		return true
	}
	return false
}

func (r *Runner) loop(ctx context.Context, state *models.RunState, token string, log *zap.Logger) error {
	if err := r.stakes.Check(state.InitialStake); err != nil {
		return err
	}

	venue, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := venue.Close(); err != nil {
			log.Debug("[RUN] close session", zap.Error(err))
		}
	}()

	balance, err := venue.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	state.Balance = balance
	log.Info("[RUN] authorized", zap.String("balance", balance.String()))

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "iteration")
		}
		if state.TargetReached() {
			return nil
		}
		state.Iteration++

		trend, sample, err := venue.SampleTrend(ctx, state.Symbol, r.cfg.TrendWindow)
		if err != nil {
			return err
		}
		r.activity.Sampled(r.now())

		rep := models.IterationReport{
			RunID:            state.RunID,
			Iteration:        state.Iteration,
			Symbol:           state.Symbol,
			Trend:            trend,
			Stake:            state.CurrentStake,
			NextStake:        state.CurrentStake,
			CumulativeProfit: state.CumulativeProfit,
			ProfitTarget:     state.ProfitTarget,
			Balance:          state.Balance,
		}
		rep.LastPrice, _ = sample.Last()

		if trend != models.TrendUp {
			r.reporter.Iteration(ctx, rep)
			if err := r.sleep(ctx, r.cfg.IterationInterval); err != nil {
				return errors.Wrap(err, "wait next iteration")
			}
			continue
		}

		res, err := venue.Execute(ctx, r.tradeRequest(state.CurrentStake))
		if err != nil {
			return err
		}
		state.Record(res)

		if bal, err := venue.Balance(ctx); err != nil {
			rep.BalanceErr = err
			log.Warn("[RUN] balance refresh failed", zap.Error(err))
		} else {
			state.Balance = bal
		}

		next, stakeErr := r.stakes.Next(state.InitialStake, state.CurrentStake, res.Won)

		rep.Traded = true
		rep.Result = res
		rep.NextStake = next
		rep.CumulativeProfit = state.CumulativeProfit
		rep.Balance = state.Balance
		r.reporter.Iteration(ctx, rep)

		if stakeErr != nil {
			return stakeErr
		}
		state.CurrentStake = next

		if state.TargetReached() {
			return nil
		}
		if err := r.sleep(ctx, r.cfg.IterationInterval); err != nil {
			return errors.Wrap(err, "wait next iteration")
		}
	}
}

func (r *Runner) tradeRequest(stake decimal.Decimal) models.TradeRequest {
	return models.TradeRequest{
		Symbol:       r.cfg.Symbol,
		Stake:        stake,
		ContractType: r.cfg.ContractType,
		Barrier:      r.cfg.Barrier,
		Duration:     r.cfg.Duration,
		DurationUnit: r.cfg.DurationUnit,
		Currency:     r.cfg.Currency,
		Basis:        r.cfg.Basis,
	}
}
