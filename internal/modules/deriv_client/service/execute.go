package service

import (
	"context"

	"binary_bot/internal/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Execute: котировка -> покупка -> ожидание расчёта. Шаги строго по очереди,
// между шагами проверяется отмена.
func (c *Client) Execute(ctx context.Context, tr models.TradeRequest) (models.TradeResult, error) {
	// 1. Котировка
	if err := ctx.Err(); err != nil {
		return models.TradeResult{}, errors.Wrap(err, "Execute: before quote")
	}
	q, err := c.Quote(ctx, tr)
	if err != nil {
		return models.TradeResult{}, err
	}

	// 2. Покупка
	if err := ctx.Err(); err != nil {
		return models.TradeResult{}, errors.Wrap(err, "Execute: before buy")
	}
	p, err := c.Buy(ctx, q)
	if err != nil {
		return models.TradeResult{}, err
	}
	c.log.Info("[TRADE] bought",
		zap.String("symbol", tr.Symbol),
		zap.Int64("contract_id", p.ContractID),
		zap.String("stake", tr.Stake.String()),
		zap.String("buy_price", p.BuyPrice.String()),
	)

	// 3. Ждём закрытия
	st, err := c.WaitSettlement(ctx, p.ContractID)
	if err != nil {
		if ctx.Err() != nil {
			c.log.Warn("[TRADE] stopped while contract open", zap.Int64("contract_id", p.ContractID))
		}
		return models.TradeResult{}, err
	}

	return models.TradeResult{
		ContractID: p.ContractID,
		Won:        st.Profit.IsPositive(),
		Profit:     st.Profit,
		BuyPrice:   p.BuyPrice,
		Payout:     p.Payout,
	}, nil
}
