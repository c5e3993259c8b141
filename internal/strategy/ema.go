package strategy

import "binary_bot/internal/models"

const NameEMACross = "ema_cross"

// EMACross: быстрая EMA выше медленной = рост. Пока в окне меньше Slow тиков, Unknown.
// Состояния между выборками нет: обе EMA считаются заново по каждому окну.
type EMACross struct {
	Fast, Slow int
}

func NewEMACross(fast, slow int) EMACross {
	if fast < 1 {
		fast = 1
	}
	if slow < 1 {
		slow = 1
	}
	if fast >= slow {
		fast, slow = slow, fast
	}
	return EMACross{Fast: fast, Slow: slow}
}

func (EMACross) Name() string { return NameEMACross }

func (s EMACross) Trend(prices []float64) models.Trend {
	if len(prices) < 2 || len(prices) < s.Slow {
		return models.TrendUnknown
	}

	kFast := 2.0 / (float64(s.Fast) + 1)
	kSlow := 2.0 / (float64(s.Slow) + 1)
	fast, slow := prices[0], prices[0]
	for _, p := range prices[1:] {
		fast += kFast * (p - fast)
		slow += kSlow * (p - slow)
	}

	switch {
	case fast > slow:
		return models.TrendUp
	case fast < slow:
		return models.TrendDown
	default:
		return models.TrendFlat
	}
}
