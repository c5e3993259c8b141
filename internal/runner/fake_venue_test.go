package runner

import (
	"context"
	"sync"
	"time"

	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type sampleStep struct {
	trend models.Trend
	err   error
}

type tradeStep struct {
	profit string
	err    error
}

// fakeVenue проигрывает заранее заданные тренды и исходы сделок.
type fakeVenue struct {
	mu sync.Mutex

	authErr    error
	balanceErr error
	samples    []sampleStep
	trades     []tradeStep

	// вызывается перед каждой сделкой
	onExecute func(n int)

	executed []models.TradeRequest
	balances int
	closed   bool
}

func (v *fakeVenue) Authenticate(_ context.Context, _ string) (decimal.Decimal, error) {
	if v.authErr != nil {
		return decimal.Zero, v.authErr
	}
	return decimal.NewFromInt(1000), nil
}

func (v *fakeVenue) Balance(_ context.Context) (decimal.Decimal, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances++
	if v.balanceErr != nil {
		return decimal.Zero, v.balanceErr
	}
	return decimal.NewFromInt(1000 + int64(v.balances)), nil
}

func (v *fakeVenue) SampleTrend(ctx context.Context, symbol string, _ time.Duration) (models.Trend, models.PriceSample, error) {
	if err := ctx.Err(); err != nil {
		return models.TrendUnknown, models.PriceSample{}, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	step := sampleStep{trend: models.TrendUp}
	if len(v.samples) > 0 {
		step = v.samples[0]
		v.samples = v.samples[1:]
	}
	return step.trend, models.PriceSample{Symbol: symbol, Prices: []float64{10, 10.5}}, step.err
}

func (v *fakeVenue) Execute(ctx context.Context, req models.TradeRequest) (models.TradeResult, error) {
	v.mu.Lock()
	v.executed = append(v.executed, req)
	n := len(v.executed)
	hook := v.onExecute
	var step tradeStep
	if len(v.trades) > 0 {
		step = v.trades[0]
		v.trades = v.trades[1:]
	}
	v.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if err := ctx.Err(); err != nil {
		return models.TradeResult{}, err
	}
	if step.err != nil {
		return models.TradeResult{}, step.err
	}
	profit := decimal.RequireFromString(step.profit)
	return models.TradeResult{ContractID: int64(n), Won: profit.IsPositive(), Profit: profit}, nil
}

func (v *fakeVenue) Close() error {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	return nil
}

func (v *fakeVenue) stakes() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.executed))
	for _, r := range v.executed {
		out = append(out, r.Stake.String())
	}
	return out
}

type recordingReporter struct {
	mu         sync.Mutex
	iterations []models.IterationReport
	finished   []models.RunResult
}

func (r *recordingReporter) Iteration(_ context.Context, rep models.IterationReport) {
	r.mu.Lock()
	r.iterations = append(r.iterations, rep)
	r.mu.Unlock()
}

func (r *recordingReporter) Finished(_ context.Context, res models.RunResult) {
	r.mu.Lock()
	r.finished = append(r.finished, res)
	r.mu.Unlock()
}

func testTrading() config.TradingConfig {
	return config.TradingConfig{
		Symbol:          "R_10",
		ContractType:    "CALL",
		Barrier:         "-0.21",
		Duration:        5,
		DurationUnit:    "t",
		Currency:        "USD",
		Basis:           "stake",
		TrendWindow:     time.Minute,
		StakeMultiplier: 3,
	}
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newTestRunner(v *fakeVenue, cfg config.TradingConfig) (*Runner, *recordingReporter) {
	rep := &recordingReporter{}
	connect := func(context.Context) (Venue, error) { return v, nil }
	r := New(connect, cfg, rep, nil, zap.NewNop()).WithClock(time.Now, noSleep)
	return r, rep
}

func runReq(stake, target string) models.RunRequest {
	return models.RunRequest{
		APIToken:     "tok",
		InitialStake: decimal.RequireFromString(stake),
		ProfitTarget: decimal.RequireFromString(target),
	}
}
