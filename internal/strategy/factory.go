package strategy

import "fmt"

// периоды ema_cross по умолчанию, в тиках
const (
	defaultFastEMA = 5
	defaultSlowEMA = 20
)

func NewEngine(name string) (Engine, error) {
	switch name {
	case NameLastTwo, "":
		return NewLastTwo(), nil
	case NameEMACross:
		return NewEMACross(defaultFastEMA, defaultSlowEMA), nil
	default:
		return nil, fmt.Errorf("unknown trend engine %q", name)
	}
}
