package models

import "github.com/shopspring/decimal"

// TradeRequest: параметры одного контракта. Собирается заново на каждую сделку.
type TradeRequest struct {
	Symbol       string
	Stake        decimal.Decimal
	ContractType string // CALL
	Barrier      string // "-0.21"
	Duration     int
	DurationUnit string // t = тики
	Currency     string
	Basis        string // stake
}

// TradeResult: итог закрытого контракта.
type TradeResult struct {
	ContractID int64
	Won        bool
	Profit     decimal.Decimal // со знаком: убыток отрицательный
	BuyPrice   decimal.Decimal
	Payout     decimal.Decimal
}
