package service

import (
	"context"

	"binary_bot/internal/models"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// Buy покупает контракт по id котировки и её цене.
func (c *Client) Buy(ctx context.Context, q Quote) (Purchase, error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.buy", opentracing.Tags{"proposal_id": q.ID})
	var resp BuyResponse
	err := c.call(ctx, BuyRequest{Buy: q.ID, Price: q.AskPrice.InexactFloat64()}, "buy", &resp, models.ErrKindBuy)
	tracing.Finish(span, err)
	if err != nil {
		return Purchase{}, errors.Wrap(err, "Buy")
	}
	if resp.Buy.ContractID == 0 {
		return Purchase{}, models.NewVenueError(models.ErrKindBuy, "", "empty contract id")
	}

	return Purchase{
		ContractID: resp.Buy.ContractID,
		BuyPrice:   resp.Buy.BuyPrice,
		Payout:     resp.Buy.Payout,
	}, nil
}
