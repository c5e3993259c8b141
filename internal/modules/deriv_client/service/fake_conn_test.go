package service

import (
	"context"
	"sync"
	"time"

	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"
	"binary_bot/internal/strategy"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// scriptedConn отдаёт заранее записанные кадры и запоминает отправленные запросы.
type scriptedConn struct {
	mu     sync.Mutex
	frames []string
	sent   []map[string]any
	closed bool

	// onSend вызывается после записи запроса (например, чтобы отменить ctx)
	onSend func(n int)
}

func newScriptedConn(frames ...string) *scriptedConn {
	return &scriptedConn{frames: frames}
}

func (c *scriptedConn) Send(_ context.Context, msg any) error {
	b, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := sonic.Unmarshal(b, &m); err != nil {
		return err
	}
	c.mu.Lock()
	c.sent = append(c.sent, m)
	n := len(c.sent)
	hook := c.onSend
	c.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return nil
}

func (c *scriptedConn) Receive(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil, models.WrapKind(models.ErrKindTransport, errors.New("script exhausted"), "receive")
	}
	f := c.frames[0]
	c.frames = c.frames[1:]
	return []byte(f), nil
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *scriptedConn) sentTypes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, m := range c.sent {
		for _, k := range []string{"authorize", "balance", "ticks_history", "proposal", "buy", "proposal_open_contract", "ping"} {
			if _, ok := m[k]; ok {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

// fakeClock: sleep сдвигает время вместо ожидания.
type fakeClock struct {
	mu    sync.Mutex
	t     time.Time
	slept []time.Duration
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.slept = append(f.slept, d)
	f.mu.Unlock()
	return nil
}

func testTrading() config.TradingConfig {
	return config.TradingConfig{
		Symbol:            "R_100",
		ContractType:      "CALL",
		Duration:          5,
		DurationUnit:      "t",
		Currency:          "USD",
		Basis:             "stake",
		TrendWindow:       2 * time.Second,
		PollInterval:      time.Second,
		SettlementTimeout: 10 * time.Second,
	}
}

func newTestClient(conn *scriptedConn, cfg config.TradingConfig) (*Client, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	c := NewClient(conn, strategy.LastTwo{}, cfg, zap.NewNop()).WithClock(clock.Now, clock.Sleep)
	return c, clock
}
