package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ErrKindConnection        ErrorKind = "connection"
	ErrKindTransport         ErrorKind = "transport"
	ErrKindAuth              ErrorKind = "auth"
	ErrKindBalance           ErrorKind = "balance"
	ErrKindHistory           ErrorKind = "history"
	ErrKindQuote             ErrorKind = "quote"
	ErrKindBuy               ErrorKind = "buy"
	ErrKindSettlement        ErrorKind = "settlement"
	ErrKindSettlementTimeout ErrorKind = "settlement_timeout"
	ErrKindStakeLimit        ErrorKind = "stake_limit"
)

// TradeError: ошибка с видом по таксономии. Code/Message берутся из error-конверта биржи.
type TradeError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *TradeError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Code)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *TradeError) Unwrap() error { return e.Err }

// NewVenueError: ошибка из error-конверта ответа.
func NewVenueError(kind ErrorKind, code, message string) *TradeError {
	return &TradeError{Kind: kind, Code: code, Message: message}
}

// WrapKind помечает err видом. nil остаётся nil.
func WrapKind(kind ErrorKind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &TradeError{Kind: kind, Message: message, Err: err}
}

// KindOf достаёт вид ошибки из цепочки; "" если ошибка не из таксономии.
func KindOf(err error) ErrorKind {
	var te *TradeError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool { return err != nil && KindOf(err) == kind }
