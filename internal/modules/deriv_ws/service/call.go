package service

import (
	"context"
	"fmt"

	"binary_bot/internal/models"

	"github.com/bytedance/sonic"
)

// сколько кадров читаем в ожидании нужного ответа (pong и т.п. пропускаются)
const maxSkippedFrames = 16

// Envelope: общие поля любого ответа.
type Envelope struct {
	MsgType string    `json:"msg_type"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError: error-конверт биржи.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

type PingRequest struct {
	Ping int `json:"ping"`
}

// Call отправляет req и читает кадры, пока не придёт ответ с нужным msg_type.
// Корреляции по id нет: пара запрос/ответ держится на последовательности вызовов.
// Ошибка из конверта возвращается как *APIError, тело ответа декодируется в out.
func Call(ctx context.Context, c FrameConn, req any, msgType string, out any) error {
	if err := c.Send(ctx, req); err != nil {
		return err
	}

	for skipped := 0; ; skipped++ {
		if skipped >= maxSkippedFrames {
			return models.WrapKind(models.ErrKindTransport,
				fmt.Errorf("no %q response after %d frames", msgType, maxSkippedFrames), "receive")
		}

		frame, err := c.Receive(ctx)
		if err != nil {
			return err
		}

		var env Envelope
		if err := sonic.Unmarshal(frame, &env); err != nil {
			return models.WrapKind(models.ErrKindTransport, err, "decode envelope")
		}
		if env.MsgType != msgType {
			continue
		}
		if env.Error != nil {
			return env.Error
		}
		if out == nil {
			return nil
		}
		if err := sonic.Unmarshal(frame, out); err != nil {
			return models.WrapKind(models.ErrKindTransport, err, "decode "+msgType)
		}
		return nil
	}
}
