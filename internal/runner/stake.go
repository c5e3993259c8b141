package runner

import (
	"fmt"

	"binary_bot/internal/models"

	"github.com/shopspring/decimal"
)

// StakePolicy (мартингейл): выигрыш сбрасывает ставку, проигрыш умножает.
type StakePolicy struct {
	Multiplier decimal.Decimal
	MaxStake   decimal.Decimal // 0: без потолка
}

func NewStakePolicy(multiplier, maxStake float64) StakePolicy {
	return StakePolicy{
		Multiplier: decimal.NewFromFloat(multiplier),
		MaxStake:   decimal.NewFromFloat(maxStake),
	}
}

// Next: ставка для следующей сделки, ровно current × multiplier после проигрыша.
// Ошибка stake_limit, если ставка не положительна или потолок задан и превышен.
func (p StakePolicy) Next(initial, current decimal.Decimal, won bool) (decimal.Decimal, error) {
	next := initial
	if !won {
		next = current.Mul(p.Multiplier)
	}
	if err := p.Check(next); err != nil {
		return current, err
	}
	return next, nil
}

func (p StakePolicy) Check(stake decimal.Decimal) error {
	if !stake.IsPositive() {
		return &models.TradeError{
			Kind:    models.ErrKindStakeLimit,
			Message: fmt.Sprintf("stake %s must be > 0", stake),
		}
	}
	if p.MaxStake.IsPositive() && stake.GreaterThan(p.MaxStake) {
		return &models.TradeError{
			Kind:    models.ErrKindStakeLimit,
			Message: fmt.Sprintf("next stake %s exceeds max_stake %s", stake, p.MaxStake),
		}
	}
	return nil
}
