package notify

import (
	"fmt"
	"strings"

	"binary_bot/internal/models"
)

// FormatIteration: строка итерации для человека.
func FormatIteration(rep models.IterationReport) string {
	if !rep.Traded {
		return fmt.Sprintf("#%d %s %s: no trade", rep.Iteration, rep.Symbol, rep.Trend)
	}

	var b strings.Builder
	outcome := "❌ lost"
	if rep.Result.Won {
		outcome = "✅ won"
	}
	fmt.Fprintf(&b, "#%d %s %s stake=%s profit=%s total=%s/%s",
		rep.Iteration, rep.Symbol, outcome,
		rep.Stake, rep.Result.Profit, rep.CumulativeProfit, rep.ProfitTarget,
	)
	if rep.BalanceErr != nil {
		b.WriteString(" balance=n/a")
	} else {
		fmt.Fprintf(&b, " balance=%s", rep.Balance)
	}
	if !rep.NextStake.Equal(rep.Stake) {
		fmt.Fprintf(&b, " next=%s", rep.NextStake)
	}
	return b.String()
}

// FormatFinished: итог запуска.
func FormatFinished(res models.RunResult) string {
	switch res.Reason {
	case models.ReasonTargetReached:
		return fmt.Sprintf("🎯 Target reached: profit=%s trades=%d (won %d, lost %d) balance=%s",
			res.CumulativeProfit, res.Trades, res.Wins, res.Losses, res.Balance)
	case models.ReasonCancelled:
		return fmt.Sprintf("⛔️ Stopped: profit=%s trades=%d balance=%s",
			res.CumulativeProfit, res.Trades, res.Balance)
	default:
		return fmt.Sprintf("❗️ Failed (%s): %s; profit=%s trades=%d",
			res.ErrorKind, res.Message, res.CumulativeProfit, res.Trades)
	}
}

// FormatRuns: список активных запусков для /runs.
func FormatRuns(runs []models.RunSnapshot) string {
	if len(runs) == 0 {
		return "📭 Нет активных запусков"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Активные запуски: %d\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(&b, "- %s %s since %s\n", r.RunID, r.Symbol, r.StartedAt.UTC().Format("15:04:05"))
	}
	return b.String()
}
