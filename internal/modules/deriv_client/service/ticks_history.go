package service

import (
	"context"
	"time"

	"binary_bot/internal/models"
	"binary_bot/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// TickHistory: тики symbol за последние window, заканчивая сейчас.
func (c *Client) TickHistory(ctx context.Context, symbol string, window time.Duration) (models.PriceSample, error) {
	if window <= 0 {
		return models.PriceSample{}, errors.New("TickHistory: window <= 0")
	}

	end := c.now().UTC()
	req := TicksHistoryRequest{
		TicksHistory: symbol,
		Start:        end.Add(-window).Unix(),
		End:          end.Unix(),
		Style:        "ticks",
	}

	span, ctx := tracing.StartSpan(ctx, "deriv.ticks_history", opentracing.Tags{"symbol": symbol})
	var resp TicksHistoryResponse
	err := c.call(ctx, req, "history", &resp, models.ErrKindHistory)
	tracing.Finish(span, err)
	if err != nil {
		return models.PriceSample{}, errors.Wrap(err, "TickHistory")
	}
	return models.PriceSample{Symbol: symbol, Prices: resp.History.Prices}, nil
}

// SampleTrend: история тиков, сведённая движком к направлению.
func (c *Client) SampleTrend(ctx context.Context, symbol string, window time.Duration) (models.Trend, models.PriceSample, error) {
	sample, err := c.TickHistory(ctx, symbol, window)
	if err != nil {
		return models.TrendUnknown, sample, err
	}
	return c.engine.Trend(sample.Prices), sample, nil
}
