package strategy

import (
	"math"
	"testing"

	"cane-forecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedMultiplier(t *testing.T) {
	s := FixedMultiplier{Multiplier: 1.05}
	f, err := s.Forecast(Input{ContractAmount: 200})
	require.NoError(t, err)
	assert.InDelta(t, 210.0, f.Predicted, 1e-9)
	assert.Equal(t, NameFixedMultiplier, f.Strategy)
	assert.Empty(t, f.Changes)

	for _, amount := range []float64{0, -5, math.NaN()} {
		_, err := s.Forecast(Input{ContractAmount: amount})
		assert.ErrorIs(t, err, model.ErrInvalidContractAmount)
	}
}

func TestTrendAverage(t *testing.T) {
	tests := []struct {
		name        string
		actual      []float64
		wantPred    float64
		wantChanges []float64
		wantAvg     float64
	}{
		{
			name:        "two periods",
			actual:      []float64{90, 99},
			wantPred:    108.9,
			wantChanges: []float64{10},
			wantAvg:     10,
		},
		{
			name:        "three periods",
			actual:      []float64{100, 120, 90},
			wantPred:    90 * (1 + ((20.0 + -25.0) / 2 / 100)),
			wantChanges: []float64{20, -25},
			wantAvg:     -2.5,
		},
		{
			name:        "drop to zero in last period",
			actual:      []float64{80, 0},
			wantPred:    0,
			wantChanges: []float64{-100},
			wantAvg:     -100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := TrendAverage{}.Forecast(Input{Actual: tt.actual})
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPred, f.Predicted, 1e-9)
			assert.InDeltaSlice(t, tt.wantChanges, f.Changes, 1e-9)
			assert.InDelta(t, tt.wantAvg, f.AverageChange, 1e-9)
			assert.Len(t, f.Changes, len(tt.actual)-1)
			assert.False(t, math.IsInf(f.Predicted, 0))
		})
	}
}

func TestTrendAverage_Deterministic(t *testing.T) {
	in := Input{Actual: []float64{12.5, 13.1, 11.9, 14.2}}
	a, err := TrendAverage{}.Forecast(in)
	require.NoError(t, err)
	b, err := TrendAverage{}.Forecast(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrendAverage_Errors(t *testing.T) {
	_, err := TrendAverage{}.Forecast(Input{Actual: []float64{90}})
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)

	_, err = TrendAverage{}.Forecast(Input{})
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)

	_, err = TrendAverage{}.Forecast(Input{Actual: []float64{90, 0, 10}})
	assert.ErrorIs(t, err, model.ErrDivideByZero)

	_, err = TrendAverage{}.Forecast(Input{Actual: []float64{80, math.NaN()}})
	assert.ErrorIs(t, err, model.ErrMissingValue)
}

func TestForecast_Overflow(t *testing.T) {
	_, err := TrendAverage{}.Forecast(Input{Actual: []float64{1e-300, 1e10}})
	assert.ErrorIs(t, err, model.ErrNonFinite)

	_, err = TrendAverage{}.Forecast(Input{Actual: []float64{1e-300, 1e10, -1e10}})
	assert.ErrorIs(t, err, model.ErrNonFinite)

	_, err = FixedMultiplier{Multiplier: 2}.Forecast(Input{ContractAmount: math.MaxFloat64})
	assert.ErrorIs(t, err, model.ErrNonFinite)

	_, err = FixedMultiplier{Multiplier: 2}.Forecast(Input{ContractAmount: math.Inf(1)})
	assert.ErrorIs(t, err, model.ErrNonFinite)
}

func TestByName(t *testing.T) {
	s, err := ByName("", DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, NameTrendAverage, s.Name())

	s, err = ByName(" Fixed-Multiplier ", Params{Multiplier: 2})
	require.NoError(t, err)
	f, err := s.Forecast(Input{ContractAmount: 10})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, f.Predicted, 1e-9)

	s, err = ByName(NameFixedMultiplier, Params{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMultiplier, s.(FixedMultiplier).Multiplier)

	_, err = ByName("oracle", DefaultParams())
	assert.Error(t, err)

	assert.Equal(t, []string{NameTrendAverage, NameFixedMultiplier}, Names())
}
