package service

import (
	"context"
	"fmt"

	"binary_bot/internal/models"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ContractStatus: один опрос открытого контракта.
func (c *Client) ContractStatus(ctx context.Context, contractID int64) (ContractStatus, error) {
	req := OpenContractRequest{ProposalOpenContract: 1, ContractID: contractID}

	var resp OpenContractResponse
	if err := c.call(ctx, req, "proposal_open_contract", &resp, models.ErrKindSettlement); err != nil {
		return ContractStatus{}, errors.Wrap(err, "ContractStatus")
	}

	poc := resp.ProposalOpenContract
	return ContractStatus{
		ContractID: contractID,
		IsSold:     bool(poc.IsSold),
		Profit:     poc.Profit,
		Status:     poc.Status,
	}, nil
}

// WaitSettlement опрашивает контракт раз в poll_interval, пока он не закрыт.
// При settlement_timeout > 0 и его истечении: SettlementTimeout, это не проигрыш.
func (c *Client) WaitSettlement(ctx context.Context, contractID int64) (ContractStatus, error) {
	span, ctx := tracing.StartSpan(ctx, "deriv.settlement", opentracing.Tags{"contract_id": contractID})

	st, err := c.pollSettlement(ctx, contractID)
	tracing.Finish(span, err)
	return st, err
}

func (c *Client) pollSettlement(ctx context.Context, contractID int64) (ContractStatus, error) {
	timeout := c.cfg.SettlementTimeout
	deadline := c.now().Add(timeout)

	for polls := 1; ; polls++ {
		st, err := c.ContractStatus(ctx, contractID)
		if err != nil {
			return ContractStatus{}, err
		}
		if st.IsSold {
			c.log.Debug("[SETTLE] contract closed",
				zap.Int64("contract_id", contractID),
				zap.Int("polls", polls),
				zap.String("profit", st.Profit.String()),
			)
			return st, nil
		}

		if timeout > 0 && !c.now().Before(deadline) {
			return ContractStatus{}, &models.TradeError{
				Kind:    models.ErrKindSettlementTimeout,
				Message: fmt.Sprintf("contract %d still open after %s (%d polls)", contractID, timeout, polls),
			}
		}

		if err := c.sleep(ctx, c.cfg.PollInterval); err != nil {
			return ContractStatus{}, errors.Wrapf(err, "WaitSettlement: contract %d", contractID)
		}
	}
}
