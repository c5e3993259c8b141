package strategy

import "binary_bot/internal/models"

// Engine дергает сэмплер рынка: сводит выборку тиков к направлению.
type Engine interface {
	Trend(prices []float64) models.Trend
	Name() string
}
