package service

import (
	"context"
	"time"

	"binary_bot/internal/helper"
	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"
	derivws "binary_bot/internal/modules/deriv_ws/service"
	"binary_bot/internal/strategy"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Conn: сессия транспорта, которой владеет клиент.
type Conn interface {
	derivws.FrameConn
	Close() error
}

// Client: операции одного запуска поверх его собственного соединения.
// Не потокобезопасен: запрос/ответ идут строго по очереди.
type Client struct {
	conn   Conn
	engine strategy.Engine
	cfg    config.TradingConfig
	log    *zap.Logger

	sleep helper.Sleeper
	now   func() time.Time
}

func NewClient(conn Conn, engine strategy.Engine, cfg config.TradingConfig, log *zap.Logger) *Client {
	return &Client{
		conn:   conn,
		engine: engine,
		cfg:    cfg,
		log:    log,
		sleep:  helper.SleepCtx,
		now:    time.Now,
	}
}

// WithClock подменяет часы и ожидание (тесты).
func (c *Client) WithClock(now func() time.Time, sleep helper.Sleeper) *Client {
	c.now = now
	c.sleep = sleep
	return c
}

func (c *Client) Close() error { return c.conn.Close() }

// call: запрос/ответ; error-конверт биржи превращается в ошибку вида kind.
func (c *Client) call(ctx context.Context, req any, msgType string, out any, kind models.ErrorKind) error {
	err := derivws.Call(ctx, c.conn, req, msgType, out)
	if err == nil {
		return nil
	}
	var apiErr *derivws.APIError
	if errors.As(err, &apiErr) {
		return models.NewVenueError(kind, apiErr.Code, apiErr.Message)
	}
	return err
}

// Factory открывает клиента на новом соединении для каждого запуска.
type Factory struct {
	dialer *derivws.Dialer
	engine strategy.Engine
	cfg    config.TradingConfig
	log    *zap.Logger
}

func NewFactory(dialer *derivws.Dialer, engine strategy.Engine, cfg *config.Config, log *zap.Logger) *Factory {
	return &Factory{dialer: dialer, engine: engine, cfg: cfg.Trading, log: log}
}

func (f *Factory) Open(ctx context.Context) (*Client, error) {
	sess, err := f.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(sess, f.engine, f.cfg, f.log), nil
}
