package strategy

import (
	"fmt"

	"cane-forecast/internal/model"
)

// TrendAverage extends the last actual delivery by the mean period-over-period
// percentage change of the actual history:
//
//	change[i]  = (actual[i+1] - actual[i]) / actual[i] * 100
//	predicted  = actual[n-1] * (1 + mean(change)/100)
type TrendAverage struct{}

func (TrendAverage) Name() string { return NameTrendAverage }

func (s TrendAverage) Forecast(in Input) (model.Forecast, error) {
	actual := in.Actual
	n := len(actual)
	if n < 2 {
		return model.Forecast{}, fmt.Errorf("%w (got %d)", model.ErrInsufficientHistory, n)
	}
	for i, v := range actual {
		if model.IsMissing(v) {
			return model.Forecast{}, fmt.Errorf("%w: actual period %d", model.ErrMissingValue, i+1)
		}
	}

	changes := make([]float64, n-1)
	sum := 0.0
	for i := 0; i < n-1; i++ {
		if actual[i] == 0 {
			return model.Forecast{}, fmt.Errorf("%w: period %d", model.ErrDivideByZero, i+1)
		}
		changes[i] = (actual[i+1] - actual[i]) / actual[i] * 100
		sum += changes[i]
	}
	avg := sum / float64(len(changes))
	predicted := actual[n-1] * (1 + avg/100)
	if !finite(avg) || !finite(predicted) {
		return model.Forecast{}, fmt.Errorf("%w: trend over %d periods overflows", model.ErrNonFinite, n)
	}

	return model.Forecast{
		Strategy:      s.Name(),
		Predicted:     predicted,
		Changes:       changes,
		AverageChange: avg,
	}, nil
}
