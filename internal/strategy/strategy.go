package strategy

import (
	"fmt"
	"strings"

	"cane-forecast/internal/model"
)

// Names of the built-in strategies.
const (
	NameFixedMultiplier = "fixed-multiplier"
	NameTrendAverage    = "trend-average"
)

// Input is everything a strategy may look at for one order. Contract and
// Actual are index-aligned historical sequences; ContractAmount is the
// caller-entered target for the next period.
type Input struct {
	Contract       []float64
	Actual         []float64
	ContractAmount float64
}

type Strategy interface {
	Name() string
	Forecast(in Input) (model.Forecast, error)
}

// Params carries the tunables of the built-in strategies.
type Params struct {
	Multiplier float64
}

func DefaultParams() Params {
	return Params{Multiplier: DefaultMultiplier}
}

// ByName returns the strategy registered under name.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameTrendAverage:
		return TrendAverage{}, nil
	case NameFixedMultiplier:
		if p.Multiplier <= 0 {
			p.Multiplier = DefaultMultiplier
		}
		return FixedMultiplier{Multiplier: p.Multiplier}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Names lists the built-in strategies, default first.
func Names() []string {
	return []string{NameTrendAverage, NameFixedMultiplier}
}
