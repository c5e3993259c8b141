package service

import (
	"context"
	"testing"

	"binary_bot/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	proposalOK = `{"msg_type":"proposal","proposal":{"id":"p-1","ask_price":1,"payout":1.95}}`
	buyOK      = `{"msg_type":"buy","buy":{"contract_id":42,"buy_price":1,"payout":1.95,"balance_after":999}}`
	openFrame  = `{"msg_type":"proposal_open_contract","proposal_open_contract":{"contract_id":42,"is_sold":0,"profit":0.1,"status":"open"}}`
	wonFrame   = `{"msg_type":"proposal_open_contract","proposal_open_contract":{"contract_id":42,"is_sold":1,"profit":0.95,"status":"won"}}`
	lostFrame  = `{"msg_type":"proposal_open_contract","proposal_open_contract":{"contract_id":42,"is_sold":1,"profit":-1,"status":"lost"}}`
)

func tradeReq(stake string) models.TradeRequest {
	return models.TradeRequest{
		Symbol:       "R_100",
		Stake:        decimal.RequireFromString(stake),
		ContractType: "CALL",
		Duration:     5,
		DurationUnit: "t",
		Currency:     "USD",
		Basis:        "stake",
	}
}

func TestExecute_Won(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, openFrame, openFrame, wonFrame)
	c, clock := newTestClient(conn, testTrading())

	res, err := c.Execute(context.Background(), tradeReq("1"))
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.EqualValues(t, 42, res.ContractID)
	assert.Equal(t, "0.95", res.Profit.String())
	assert.Equal(t, []string{"proposal", "buy", "proposal_open_contract", "proposal_open_contract", "proposal_open_contract"}, conn.sentTypes())
	assert.Len(t, clock.slept, 2)
}

func TestExecute_Lost(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, lostFrame)
	c, _ := newTestClient(conn, testTrading())

	res, err := c.Execute(context.Background(), tradeReq("1"))
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Equal(t, "-1", res.Profit.String())
}

func TestExecute_ZeroProfitIsLoss(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK,
		`{"msg_type":"proposal_open_contract","proposal_open_contract":{"contract_id":42,"is_sold":1,"profit":0}}`)
	c, _ := newTestClient(conn, testTrading())

	res, err := c.Execute(context.Background(), tradeReq("1"))
	require.NoError(t, err)
	assert.False(t, res.Won)
}

func TestExecute_ProposalFields(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, wonFrame)
	c, _ := newTestClient(conn, testTrading())

	req := tradeReq("3")
	req.Barrier = "+0.1"
	_, err := c.Execute(context.Background(), req)
	require.NoError(t, err)

	p := conn.sent[0]
	assert.EqualValues(t, 1, p["proposal"])
	assert.EqualValues(t, 3, p["amount"])
	assert.Equal(t, "stake", p["basis"])
	assert.Equal(t, "CALL", p["contract_type"])
	assert.Equal(t, "USD", p["currency"])
	assert.EqualValues(t, 5, p["duration"])
	assert.Equal(t, "t", p["duration_unit"])
	assert.Equal(t, "R_100", p["symbol"])
	assert.Equal(t, "+0.1", p["barrier"])

	b := conn.sent[1]
	assert.Equal(t, "p-1", b["buy"])
	assert.EqualValues(t, 1, b["price"])

	assert.EqualValues(t, 42, conn.sent[2]["contract_id"])
}

func TestExecute_NoBarrierOmitted(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, wonFrame)
	c, _ := newTestClient(conn, testTrading())

	_, err := c.Execute(context.Background(), tradeReq("1"))
	require.NoError(t, err)
	_, has := conn.sent[0]["barrier"]
	assert.False(t, has)
}

func TestExecute_QuoteErrorStopsBeforeBuy(t *testing.T) {
	conn := newScriptedConn(`{"msg_type":"proposal","error":{"code":"ContractBuyValidationError","message":"Stake too low"}}`)
	c, _ := newTestClient(conn, testTrading())

	_, err := c.Execute(context.Background(), tradeReq("0.1"))
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindQuote))
	assert.Equal(t, []string{"proposal"}, conn.sentTypes())
}

func TestExecute_BuyError(t *testing.T) {
	conn := newScriptedConn(proposalOK, `{"msg_type":"buy","error":{"code":"InsufficientBalance","message":"Your account balance is insufficient"}}`)
	c, _ := newTestClient(conn, testTrading())

	_, err := c.Execute(context.Background(), tradeReq("1"))
	assert.True(t, models.IsKind(err, models.ErrKindBuy))
	assert.Equal(t, []string{"proposal", "buy"}, conn.sentTypes())
}

func TestExecute_SettlementError(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, `{"msg_type":"proposal_open_contract","error":{"code":"InvalidContract","message":"not found"}}`)
	c, _ := newTestClient(conn, testTrading())

	_, err := c.Execute(context.Background(), tradeReq("1"))
	assert.True(t, models.IsKind(err, models.ErrKindSettlement))
}

func TestExecute_SettlementTimeout(t *testing.T) {
	frames := []string{proposalOK, buyOK}
	for i := 0; i < 20; i++ {
		frames = append(frames, openFrame)
	}
	conn := newScriptedConn(frames...)
	cfg := testTrading()
	cfg.SettlementTimeout = 3 * cfg.PollInterval
	c, _ := newTestClient(conn, cfg)

	_, err := c.Execute(context.Background(), tradeReq("1"))
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindSettlementTimeout))
	// опросы в 0s, 1s, 2s, 3s
	assert.Len(t, conn.sentTypes(), 2+4)
}

func TestExecute_UnboundedSettlementKeepsPolling(t *testing.T) {
	frames := []string{proposalOK, buyOK}
	for i := 0; i < 12; i++ {
		frames = append(frames, openFrame)
	}
	frames = append(frames, wonFrame)
	conn := newScriptedConn(frames...)
	cfg := testTrading()
	cfg.SettlementTimeout = 0
	c, _ := newTestClient(conn, cfg)

	res, err := c.Execute(context.Background(), tradeReq("1"))
	require.NoError(t, err)
	assert.True(t, res.Won)
}

func TestExecute_CancelledBeforeStart(t *testing.T) {
	conn := newScriptedConn(proposalOK)
	c, _ := newTestClient(conn, testTrading())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Execute(ctx, tradeReq("1"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.sent)
	assert.Empty(t, models.KindOf(err))
}

func TestExecute_CancelledAfterQuote(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK)
	c, _ := newTestClient(conn, testTrading())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn.onSend = func(n int) {
		if n == 1 {
			cancel()
		}
	}

	_, err := c.Execute(ctx, tradeReq("1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"proposal"}, conn.sentTypes())
}

func TestExecute_CancelledDuringSettlement(t *testing.T) {
	conn := newScriptedConn(proposalOK, buyOK, openFrame, openFrame)
	c, _ := newTestClient(conn, testTrading())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn.onSend = func(n int) {
		if n == 3 {
			cancel()
		}
	}

	_, err := c.Execute(ctx, tradeReq("1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuote_NonPositiveStake(t *testing.T) {
	conn := newScriptedConn()
	c, _ := newTestClient(conn, testTrading())

	_, err := c.Quote(context.Background(), tradeReq("0"))
	assert.True(t, models.IsKind(err, models.ErrKindQuote))
	assert.Empty(t, conn.sent)
}
