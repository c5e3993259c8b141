package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunRequest: то, что приходит от триггера (форма / CLI).
type RunRequest struct {
	APIToken     string
	InitialStake decimal.Decimal
	ProfitTarget decimal.Decimal
}

// RunState принадлежит только контроллеру одного запуска.
type RunState struct {
	RunID  string
	Symbol string

	InitialStake     decimal.Decimal
	CurrentStake     decimal.Decimal
	ProfitTarget     decimal.Decimal
	CumulativeProfit decimal.Decimal
	Balance          decimal.Decimal

	Iteration int
	Trades    int
	Wins      int
	Losses    int
}

func NewRunState(runID, symbol string, req RunRequest) *RunState {
	return &RunState{
		RunID:            runID,
		Symbol:           symbol,
		InitialStake:     req.InitialStake,
		CurrentStake:     req.InitialStake,
		ProfitTarget:     req.ProfitTarget,
		CumulativeProfit: decimal.Zero,
	}
}

// TargetReached: cumulative_profit >= profit_target.
func (s *RunState) TargetReached() bool {
	return s.CumulativeProfit.GreaterThanOrEqual(s.ProfitTarget)
}

// Record учитывает закрытую сделку (без изменения ставки).
func (s *RunState) Record(res TradeResult) {
	s.Trades++
	if res.Won {
		s.Wins++
	} else {
		s.Losses++
	}
	s.CumulativeProfit = s.CumulativeProfit.Add(res.Profit)
}

type TerminalReason string

const (
	ReasonTargetReached TerminalReason = "profit_target_reached"
	ReasonFatalError    TerminalReason = "fatal_error"
	ReasonCancelled     TerminalReason = "cancelled"
)

// RunResult: структурированный итог запуска для вызывающей стороны.
type RunResult struct {
	RunID            string          `json:"run_id"`
	Reason           TerminalReason  `json:"reason"`
	ErrorKind        ErrorKind       `json:"error_kind,omitempty"`
	Message          string          `json:"message,omitempty"`
	CumulativeProfit decimal.Decimal `json:"cumulative_profit"`
	FinalStake       decimal.Decimal `json:"final_stake"`
	Balance          decimal.Decimal `json:"balance"`
	Trades           int             `json:"trades"`
	Wins             int             `json:"wins"`
	Losses           int             `json:"losses"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       time.Time       `json:"finished_at"`
}

// IterationReport: данные одной итерации для вывода (лог, телеграм).
// Форматирование не здесь.
type IterationReport struct {
	RunID     string
	Iteration int
	Symbol    string
	Trend     Trend
	LastPrice float64

	Traded    bool
	Result    TradeResult
	Stake     decimal.Decimal // ставка этой сделки
	NextStake decimal.Decimal

	CumulativeProfit decimal.Decimal
	ProfitTarget     decimal.Decimal
	Balance          decimal.Decimal
	BalanceErr       error
}

// RunSnapshot: что видно снаружи про активный запуск.
type RunSnapshot struct {
	RunID     string    `json:"run_id"`
	Symbol    string    `json:"symbol"`
	StartedAt time.Time `json:"started_at"`
}
