package service

import (
	"context"

	"binary_bot/internal/models"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// Quote запрашивает котировку на контракт. Без повторов: ошибка биржи уходит наверх сразу.
func (c *Client) Quote(ctx context.Context, tr models.TradeRequest) (Quote, error) {
	if !tr.Stake.IsPositive() {
		return Quote{}, models.NewVenueError(models.ErrKindQuote, "", "stake must be > 0")
	}

	req := ProposalRequest{
		Proposal:     1,
		Amount:       tr.Stake.InexactFloat64(),
		Basis:        tr.Basis,
		ContractType: tr.ContractType,
		Currency:     tr.Currency,
		Duration:     tr.Duration,
		DurationUnit: tr.DurationUnit,
		Symbol:       tr.Symbol,
		Barrier:      tr.Barrier,
	}

	span, ctx := tracing.StartSpan(ctx, "deriv.proposal", opentracing.Tags{
		"symbol": tr.Symbol,
		"stake":  tr.Stake.String(),
	})
	var resp ProposalResponse
	err := c.call(ctx, req, "proposal", &resp, models.ErrKindQuote)
	tracing.Finish(span, err)
	if err != nil {
		return Quote{}, errors.Wrap(err, "Quote")
	}
	if resp.Proposal.ID == "" {
		return Quote{}, models.NewVenueError(models.ErrKindQuote, "", "empty proposal id")
	}

	return Quote{
		ID:       resp.Proposal.ID,
		AskPrice: resp.Proposal.AskPrice,
		Payout:   resp.Proposal.Payout,
	}, nil
}
