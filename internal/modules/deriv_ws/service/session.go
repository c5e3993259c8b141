package service

import (
	"context"
	"sync"
	"time"

	"binary_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// FrameConn: отправить запрос и прочитать следующий кадр. Этого хватает Call.
type FrameConn interface {
	Send(ctx context.Context, msg any) error
	Receive(ctx context.Context) ([]byte, error)
}

// Session: одно websocket-соединение одного запуска. Не шарится между запусками,
// переподключения нет: любая ошибка транспорта фатальна для запуска.
type Session struct {
	conn        *websocket.Conn
	readTimeout time.Duration
	log         *zap.Logger
	onClose     func()

	writeMu   sync.Mutex // keepalive пишет параллельно с запросами
	stopPing  chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, readTimeout, pingInterval time.Duration, log *zap.Logger, onClose func()) *Session {
	s := &Session{
		conn:        conn,
		readTimeout: readTimeout,
		log:         log,
		onClose:     onClose,
		stopPing:    make(chan struct{}),
	}
	if pingInterval > 0 {
		go s.keepalive(pingInterval)
	}
	return s
}

// Send пишет один json-кадр.
func (s *Session) Send(ctx context.Context, msg any) error {
	if err := ctx.Err(); err != nil {
		return models.WrapKind(models.ErrKindTransport, err, "send")
	}
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return models.WrapKind(models.ErrKindTransport, err, "encode request")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = s.conn.SetWriteDeadline(deadline)
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return models.WrapKind(models.ErrKindTransport, err, "write frame")
	}
	return nil
}

// Receive блокируется до следующего кадра, таймаута чтения или отмены ctx.
func (s *Session) Receive(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.WrapKind(models.ErrKindTransport, err, "receive")
	}

	var deadline time.Time
	if s.readTimeout > 0 {
		deadline = time.Now().Add(s.readTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	_ = s.conn.SetReadDeadline(deadline)

	// отмена ctx будит заблокированное чтение
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, models.WrapKind(models.ErrKindTransport, ctxErr, "receive")
		}
		return nil, models.WrapKind(models.ErrKindTransport, err, "read frame")
	}
	return msg, nil
}

// Close идемпотентен.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopPing)

		s.writeMu.Lock()
		_ = s.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()

		if cerr := s.conn.Close(); cerr != nil {
			err = errors.Wrap(cerr, "close websocket")
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
	return err
}

// keepalive шлёт ping раз в every, пока сессия открыта.
func (s *Session) keepalive(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stopPing:
			return
		case <-t.C:
			if err := s.Send(context.Background(), PingRequest{Ping: 1}); err != nil {
				s.log.Warn("[WS] ping failed", zap.Error(err))
				return
			}
		}
	}
}
