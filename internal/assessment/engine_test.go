package assessment

import (
	"bytes"
	"encoding/csv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"cane-forecast/internal/data"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/model"
	"cane-forecast/internal/sanitize"
	"cane-forecast/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `orderID,gender,contract,actual
g000001,1,100,90
g000001,1,100,99
G000005 ,0,100,80
g000005,0,,
g000009,1,100,50
g000010,0,100,0
g000010,0,100,10
g000010,0,100,20
g000011,1,100,
g000011,1,100,70
`

func loadScenario(t *testing.T) *data.Dataset {
	t.Helper()
	opts := data.DefaultLoadOptions()
	opts.Rand = rand.New(rand.NewPCG(7, 7))
	ds, err := data.LoadDataset("scenario.csv", []byte(scenarioCSV), opts)
	require.NoError(t, err)
	return ds
}

func newEngine() *Engine {
	return New(strategy.TrendAverage{}, grading.TableV2, sanitize.Default())
}

func TestPredict_TrendAverage(t *testing.T) {
	ds := loadScenario(t)
	p, err := newEngine().Predict(ds, PredictRequest{OrderID: " G000001 ", ContractAmount: 100, Explain: true})
	require.NoError(t, err)

	assert.Equal(t, "g000001", p.OrderID)
	assert.Equal(t, model.SexMale, p.Sex)
	assert.False(t, p.Sanitized)
	assert.InDelta(t, 108.9, p.Forecast.Predicted, 1e-9)
	assert.InDeltaSlice(t, []float64{10}, p.Forecast.Changes, 1e-9)
	assert.Equal(t, model.GradeAMinus, p.Assessment.Grade)
	assert.Contains(t, p.Assessment.Reason, "108.90%")

	require.Len(t, p.Periods, 2)
	assert.Equal(t, "Year 1", p.Periods[0].Label)
	assert.Equal(t, model.GradeAMinus, p.Periods[0].Grade)
	assert.Equal(t, model.GradeAMinus, p.Periods[1].Grade)
	assert.NotEmpty(t, p.Periods[1].Reason)

	assert.Equal(t, []ChartPoint{{1, 100, 90}, {2, 100, 99}}, p.Chart)
}

func TestPredict_FixedMultiplier(t *testing.T) {
	ds := loadScenario(t)
	e := newEngine().WithStrategy(strategy.FixedMultiplier{Multiplier: 1.05})
	p, err := e.Predict(ds, PredictRequest{OrderID: "g000009", ContractAmount: 100})
	require.NoError(t, err)
	assert.InDelta(t, 105.0, p.Forecast.Predicted, 1e-9)
	assert.Equal(t, model.GradeAMinus, p.Assessment.Grade)
	assert.Empty(t, p.Assessment.Reason)
}

func TestPredict_SanitizesLegacyOrder(t *testing.T) {
	ds := loadScenario(t)
	p, err := newEngine().Predict(ds, PredictRequest{OrderID: "g000005", ContractAmount: 100})
	require.NoError(t, err)

	assert.True(t, p.Sanitized)
	assert.Equal(t, []ChartPoint{{1, 100, 80}, {2, 0, 0}}, p.Chart)
	assert.InDelta(t, 0.0, p.Forecast.Predicted, 1e-9)
	assert.Equal(t, model.GradeD, p.Assessment.Grade)

	require.Len(t, p.Periods, 2)
	assert.Empty(t, p.Periods[0].Error)
	assert.NotEmpty(t, p.Periods[1].Error, "a zero contract period cannot be graded")

	// the cached aggregate still holds the raw missing values
	agg, err := ds.Lookup("g000005")
	require.NoError(t, err)
	assert.True(t, model.IsMissing(agg.Actual[1]))
}

func TestPredict_Errors(t *testing.T) {
	ds := loadScenario(t)
	e := newEngine()

	_, err := e.Predict(ds, PredictRequest{OrderID: "nope", ContractAmount: 100})
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	_, err = e.Predict(ds, PredictRequest{OrderID: "g000001", ContractAmount: 0})
	assert.ErrorIs(t, err, model.ErrInvalidContractAmount)

	_, err = e.Predict(ds, PredictRequest{OrderID: "g000009", ContractAmount: 100})
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)

	_, err = e.Predict(ds, PredictRequest{OrderID: "g000010", ContractAmount: 100})
	assert.ErrorIs(t, err, model.ErrDivideByZero)

	_, err = e.Predict(ds, PredictRequest{OrderID: "g000011", ContractAmount: 100})
	assert.ErrorIs(t, err, model.ErrMissingValue)

	_, err = e.Predict(nil, PredictRequest{OrderID: "g000001", ContractAmount: 100})
	assert.ErrorIs(t, err, model.ErrNoDataset)

	_, err = (&Engine{}).Predict(ds, PredictRequest{OrderID: "g000001", ContractAmount: 100})
	assert.Error(t, err)

	// failures leave the dataset usable
	_, err = e.Predict(ds, PredictRequest{OrderID: "g000001", ContractAmount: 100})
	assert.NoError(t, err)
}

func TestOverview(t *testing.T) {
	ds := loadScenario(t)
	ov, err := newEngine().Overview(ds, "g000010", true)
	require.NoError(t, err)
	assert.Equal(t, "g000010", ov.OrderID)
	require.Len(t, ov.Periods, 3)
	assert.Equal(t, model.GradeD, ov.Periods[0].Grade)
	assert.Equal(t, 3, ov.Periods[2].Index)

	_, err = newEngine().Overview(ds, "missing", false)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestWritePeriods(t *testing.T) {
	rows := []PeriodRow{
		{Index: 1, Label: "Year 1", Contract: 100, Actual: 95, Grade: model.GradeAMinus, Percentage: 95},
		{Index: 2, Label: "Year 2", Contract: 0, Actual: 0, Error: "contract amount must be greater than zero"},
	}
	var buf bytes.Buffer
	require.NoError(t, WritePeriods(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "year", records[0][0])
	assert.Equal(t, []string{"1", "Year 1", "100.00", "95.00", "A-", "95.00", "", ""}, records[1])
	assert.Equal(t, "", records[2][5])
	assert.NotEmpty(t, records[2][7])
}

func TestWritePeriodsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.csv")
	require.NoError(t, WritePeriodsCSV(path, []PeriodRow{{Index: 1, Label: "Year 1"}}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Year 1")

	err = WritePeriodsCSV(filepath.Join(t.TempDir(), "missing", "periods.csv"), nil)
	assert.Error(t, err)
}

func TestWritePeriodsCSV_DiskFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	err := WritePeriodsCSV("/dev/full", []PeriodRow{{Index: 1, Label: "Year 1"}})
	assert.Error(t, err)
}
