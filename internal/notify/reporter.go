package notify

import (
	"context"

	"binary_bot/internal/models"

	"go.uber.org/zap"
)

// Reporter совпадает с runner.Reporter; объявлен здесь, чтобы не тянуть runner.
type Reporter interface {
	Iteration(ctx context.Context, rep models.IterationReport)
	Finished(ctx context.Context, res models.RunResult)
}

// Multi раздаёт отчёты всем получателям по очереди.
type Multi []Reporter

func (m Multi) Iteration(ctx context.Context, rep models.IterationReport) {
	for _, r := range m {
		r.Iteration(ctx, rep)
	}
}

func (m Multi) Finished(ctx context.Context, res models.RunResult) {
	for _, r := range m {
		r.Finished(ctx, res)
	}
}

// Log пишет отчёты в zap.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log { return &Log{log: log} }

func (l *Log) Iteration(_ context.Context, rep models.IterationReport) {
	fields := []zap.Field{
		zap.String("run_id", rep.RunID),
		zap.Int("iteration", rep.Iteration),
		zap.String("trend", rep.Trend.String()),
		zap.Float64("last_price", rep.LastPrice),
	}
	if !rep.Traded {
		l.log.Debug("[ITER] "+FormatIteration(rep), fields...)
		return
	}

	fields = append(fields,
		zap.Int64("contract_id", rep.Result.ContractID),
		zap.Bool("won", rep.Result.Won),
		zap.String("profit", rep.Result.Profit.String()),
		zap.String("cumulative_profit", rep.CumulativeProfit.String()),
		zap.String("stake", rep.Stake.String()),
		zap.String("next_stake", rep.NextStake.String()),
		zap.String("balance", rep.Balance.String()),
	)
	if rep.BalanceErr != nil {
		fields = append(fields, zap.NamedError("balance_error", rep.BalanceErr))
	}
	l.log.Info("[ITER] "+FormatIteration(rep), fields...)
}

func (l *Log) Finished(_ context.Context, res models.RunResult) {
	fields := []zap.Field{
		zap.String("run_id", res.RunID),
		zap.String("reason", string(res.Reason)),
		zap.String("cumulative_profit", res.CumulativeProfit.String()),
		zap.Int("trades", res.Trades),
		zap.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)),
	}
	if res.Reason == models.ReasonFatalError {
		fields = append(fields, zap.String("error_kind", string(res.ErrorKind)), zap.String("message", res.Message))
		l.log.Error("[DONE] "+FormatFinished(res), fields...)
		return
	}
	l.log.Info("[DONE] "+FormatFinished(res), fields...)
}
