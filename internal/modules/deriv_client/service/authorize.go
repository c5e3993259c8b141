package service

import (
	"context"

	"binary_bot/internal/models"
	"binary_bot/pkg/tracing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Authenticate: проверка токена, один раз на запуск. Возвращает баланс счёта.
func (c *Client) Authenticate(ctx context.Context, token string) (decimal.Decimal, error) {
	if token == "" {
		return decimal.Zero, models.NewVenueError(models.ErrKindAuth, "", "empty api token")
	}

	span, ctx := tracing.StartSpan(ctx, "deriv.authorize", nil)
	var resp AuthorizeResponse
	err := c.call(ctx, AuthorizeRequest{Authorize: token}, "authorize", &resp, models.ErrKindAuth)
	tracing.Finish(span, err)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "Authenticate")
	}
	return resp.Authorize.Balance, nil
}

// Balance: только чтение баланса, без повторной авторизации. Можно звать сколько угодно.
func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.balance", nil)
	var resp BalanceResponse
	err := c.call(ctx, BalanceRequest{Balance: 1}, "balance", &resp, models.ErrKindBalance)
	tracing.Finish(span, err)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "Balance")
	}
	return resp.Balance.Balance, nil
}
