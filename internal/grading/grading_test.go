package grading

import (
	"math"
	"testing"

	"cane-forecast/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableV2_Grade(t *testing.T) {
	tests := []struct {
		predicted float64
		want      model.Grade
		band      string
	}{
		{110, model.GradeA, "excellent"},
		{150, model.GradeA, "excellent"},
		{109.99, model.GradeAMinus, "good"},
		{95, model.GradeAMinus, "good"},
		{90, model.GradeAMinus, "good"},
		{75, model.GradeB, "average"},
		{70, model.GradeB, "average"},
		{55, model.GradeC, "below-average"},
		{50, model.GradeC, "below-average"},
		{49.99, model.GradeD, "poor"},
		{30, model.GradeD, "poor"},
		{0, model.GradeD, "poor"},
	}
	for _, tt := range tests {
		a, err := TableV2.Grade(tt.predicted, 100)
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.Grade, "predicted=%v", tt.predicted)
		assert.Equal(t, tt.band, a.Band, "predicted=%v", tt.predicted)
		assert.InDelta(t, tt.predicted, a.Percentage, 1e-9)
	}
}

func TestTableV1_Grade(t *testing.T) {
	tests := []struct {
		predicted float64
		want      model.Grade
	}{
		{100, model.GradeA},
		{95, model.GradeAMinus},
		{80, model.GradeAMinus},
		{60, model.GradeB},
		{45, model.GradeC},
		{39, model.GradeD},
	}
	for _, tt := range tests {
		a, err := TableV1.Grade(tt.predicted, 100)
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.Grade, "predicted=%v", tt.predicted)
	}
}

func TestGrade_InvalidContract(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN()} {
		_, err := TableV2.Grade(100, c)
		assert.ErrorIs(t, err, model.ErrInvalidContractAmount)
	}
	_, err := TableV2.Grade(math.NaN(), 100)
	assert.ErrorIs(t, err, model.ErrMissingValue)
}

func TestGrade_Overflow(t *testing.T) {
	_, err := TableV2.Grade(1e300, 1e-300)
	assert.ErrorIs(t, err, model.ErrNonFinite)

	_, err = TableV2.Grade(math.Inf(1), 100)
	assert.ErrorIs(t, err, model.ErrNonFinite)
}

func TestExplain(t *testing.T) {
	a, err := TableV2.GradeExplained(95.456, 100)
	require.NoError(t, err)
	assert.Contains(t, a.Reason, "95.46%")
	assert.Contains(t, a.Reason, "good")
	assert.Contains(t, a.Reason, ContextNote)
}

func TestRoundAndFormatPercent(t *testing.T) {
	assert.Equal(t, 12.35, RoundPercent(12.345))
	assert.Equal(t, "110.00", FormatPercent(110))
	assert.Equal(t, "33.33", FormatPercent(100.0/3))
}

func TestTableByName(t *testing.T) {
	tbl, err := TableByName("")
	require.NoError(t, err)
	assert.Equal(t, "v2", tbl.Name)

	tbl, err = TableByName("V1")
	require.NoError(t, err)
	assert.Equal(t, "v1", tbl.Name)

	_, err = TableByName("v3")
	assert.Error(t, err)

	assert.Equal(t, TableV2, DefaultTable())
}

func TestTableValidate(t *testing.T) {
	require.NoError(t, TableV1.Validate())
	require.NoError(t, TableV2.Validate())

	assert.Error(t, Table{}.Validate())
	assert.Error(t, Table{Bands: []Band{
		{Grade: model.GradeA, Min: 50, Label: "excellent"},
		{Grade: model.GradeB, Min: 60, Label: "average"},
		{Grade: model.GradeD, Label: "poor"},
	}}.Validate())
	assert.Error(t, Table{Bands: []Band{{Grade: model.GradeA}}}.Validate())

	err := Table{Bands: []Band{
		{Grade: model.GradeA, Min: 100, Label: "excellent"},
		{Grade: "Z", Label: "poor"},
	}}.Validate()
	assert.ErrorContains(t, err, `unknown grade "Z"`)
}

func TestOverview(t *testing.T) {
	rows := TableV2.Overview([]float64{100, 100, 0}, []float64{90, 120, 0}, true)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].Period)
	assert.Equal(t, model.GradeAMinus, rows[0].Assessment.Grade)
	assert.NotEmpty(t, rows[0].Assessment.Reason)
	assert.NoError(t, rows[0].Err)

	assert.Equal(t, model.GradeA, rows[1].Assessment.Grade)

	assert.ErrorIs(t, rows[2].Err, model.ErrInvalidContractAmount)
	assert.Equal(t, model.Grade(""), rows[2].Assessment.Grade)

	plain := TableV2.Overview([]float64{100}, []float64{55}, false)
	require.Len(t, plain, 1)
	assert.Equal(t, model.GradeC, plain[0].Assessment.Grade)
	assert.Empty(t, plain[0].Assessment.Reason)
}

func TestCatalog(t *testing.T) {
	custom := Table{Name: "Regional", Bands: TableV1.Bands}
	c := NewCatalog(TableV2, TableV1, custom)

	assert.False(t, c.Add(Table{Name: "v2"}), "first table under a name wins")
	require.Len(t, c.Tables(), 3)
	assert.Equal(t, "v2", c.Tables()[0].Name)

	got, ok := c.Lookup(" regional ")
	require.True(t, ok)
	assert.Equal(t, "Regional", got.Name)

	_, ok = c.Lookup("v9")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Lookup("v2")
	assert.False(t, ok)
	assert.Nil(t, nilCatalog.Tables())
}
