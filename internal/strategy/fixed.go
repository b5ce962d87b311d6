package strategy

import (
	"math"

	"cane-forecast/internal/model"
)

const DefaultMultiplier = 1.05

// FixedMultiplier predicts the caller-entered contract amount scaled by a
// constant. History is ignored.
type FixedMultiplier struct {
	Multiplier float64
}

func (s FixedMultiplier) Name() string { return NameFixedMultiplier }

func (s FixedMultiplier) Forecast(in Input) (model.Forecast, error) {
	if math.IsNaN(in.ContractAmount) || in.ContractAmount <= 0 {
		return model.Forecast{}, model.ErrInvalidContractAmount
	}
	m := s.Multiplier
	if m == 0 {
		m = DefaultMultiplier
	}
	predicted := in.ContractAmount * m
	if !finite(predicted) {
		return model.Forecast{}, model.ErrNonFinite
	}
	return model.Forecast{
		Strategy:  s.Name(),
		Predicted: predicted,
	}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
