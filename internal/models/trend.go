package models

// Trend: направление рынка по двум последним тикам.
type Trend string

const (
	TrendUnknown Trend = "unknown" // меньше двух тиков
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendFlat    Trend = "flat"
)

func (t Trend) String() string { return string(t) }

// PriceSample: тики символа за окно, в порядке прихода.
type PriceSample struct {
	Symbol string
	Prices []float64
}

// Last возвращает последний тик (0, false если выборка пустая).
func (p PriceSample) Last() (float64, bool) {
	if len(p.Prices) == 0 {
		return 0, false
	}
	return p.Prices[len(p.Prices)-1], true
}
