package strategy

import "binary_bot/internal/models"

const NameLastTwo = "last_two"

// LastTwo сравнивает два последних тика в порядке прихода. Без сглаживания.
type LastTwo struct{}

func NewLastTwo() LastTwo { return LastTwo{} }

func (LastTwo) Name() string { return NameLastTwo }

func (LastTwo) Trend(prices []float64) models.Trend {
	if len(prices) < 2 {
		return models.TrendUnknown
	}
	last, prev := prices[len(prices)-1], prices[len(prices)-2]
	switch {
	case last > prev:
		return models.TrendUp
	case last < prev:
		return models.TrendDown
	default:
		return models.TrendFlat
	}
}
