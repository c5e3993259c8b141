package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AuthorizeRequest struct {
	Authorize string `json:"authorize"`
}

type AuthorizeResponse struct {
	Authorize struct {
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency"`
		LoginID  string          `json:"loginid"`
	} `json:"authorize"`
}

type BalanceRequest struct {
	Balance int `json:"balance"`
}

type BalanceResponse struct {
	Balance struct {
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency"`
	} `json:"balance"`
}

type TicksHistoryRequest struct {
	TicksHistory string `json:"ticks_history"`
	Start        int64  `json:"start"`
	End          int64  `json:"end"`
	Style        string `json:"style"`
}

type TicksHistoryResponse struct {
	History struct {
		Prices []float64 `json:"prices"`
		Times  []int64   `json:"times"`
	} `json:"history"`
}

type ProposalRequest struct {
	Proposal     int     `json:"proposal"`
	Amount       float64 `json:"amount"`
	Basis        string  `json:"basis"`
	ContractType string  `json:"contract_type"`
	Currency     string  `json:"currency"`
	Duration     int     `json:"duration"`
	DurationUnit string  `json:"duration_unit"`
	Symbol       string  `json:"symbol"`
	Barrier      string  `json:"barrier,omitempty"`
}

type ProposalResponse struct {
	Proposal struct {
		ID       string          `json:"id"`
		AskPrice decimal.Decimal `json:"ask_price"`
		Payout   decimal.Decimal `json:"payout"`
	} `json:"proposal"`
}

type BuyRequest struct {
	Buy   string  `json:"buy"`
	Price float64 `json:"price"`
}

type BuyResponse struct {
	Buy struct {
		ContractID   int64           `json:"contract_id"`
		BuyPrice     decimal.Decimal `json:"buy_price"`
		Payout       decimal.Decimal `json:"payout"`
		BalanceAfter decimal.Decimal `json:"balance_after"`
	} `json:"buy"`
}

type OpenContractRequest struct {
	ProposalOpenContract int   `json:"proposal_open_contract"`
	ContractID           int64 `json:"contract_id"`
}

type OpenContractResponse struct {
	ProposalOpenContract struct {
		ContractID int64           `json:"contract_id"`
		IsSold     Flag            `json:"is_sold"`
		Profit     decimal.Decimal `json:"profit"`
		Status     string          `json:"status"`
		BuyPrice   decimal.Decimal `json:"buy_price"`
		Payout     decimal.Decimal `json:"payout"`
	} `json:"proposal_open_contract"`
}

// Flag: биржа отдаёт 0/1, иногда true/false.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(b), `"`) {
	case "1", "true":
		*f = true
	case "0", "false", "null", "":
		*f = false
	default:
		return fmt.Errorf("unexpected flag value %s", b)
	}
	return nil
}

// Quote: котировка контракта, действует ограниченное время.
type Quote struct {
	ID       string
	AskPrice decimal.Decimal
	Payout   decimal.Decimal
}

type Purchase struct {
	ContractID int64
	BuyPrice   decimal.Decimal
	Payout     decimal.Decimal
}

type ContractStatus struct {
	ContractID int64
	IsSold     bool
	Profit     decimal.Decimal
	Status     string
}
