package service

import (
	"context"

	"binary_bot/internal/models"
	"binary_bot/internal/modules/config"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Observer: кому интересно, сколько сокетов открыто (health).
type Observer interface {
	SessionOpened()
	SessionClosed()
}

type Dialer struct {
	cfg      config.DerivConfig
	wsDialer *websocket.Dialer
	log      *zap.Logger
	obs      Observer
}

func NewDialer(cfg *config.Config, log *zap.Logger, obs Observer) *Dialer {
	return &Dialer{
		cfg:      cfg.Deriv,
		wsDialer: &websocket.Dialer{HandshakeTimeout: cfg.Deriv.ReadTimeout},
		log:      log,
		obs:      obs,
	}
}

// Dial открывает новое соединение. Каждый запуск вызывает его сам.
func (d *Dialer) Dial(ctx context.Context) (*Session, error) {
	url := d.cfg.Endpoint()
	conn, _, err := d.wsDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, models.WrapKind(models.ErrKindConnection, err, "dial "+d.cfg.URL)
	}
	d.log.Debug("[WS] connected", zap.String("url", d.cfg.URL))

	var onClose func()
	if d.obs != nil {
		d.obs.SessionOpened()
		onClose = d.obs.SessionClosed
	}
	return newSession(conn, d.cfg.ReadTimeout, d.cfg.PingInterval, d.log, onClose), nil
}
