package grading

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cane-forecast/internal/model"
)

// Band is one row of a threshold table. A percentage falls in the first band
// whose Min it reaches; the last band catches everything below.
type Band struct {
	Grade model.Grade `yaml:"grade" json:"grade"`
	Min   float64     `yaml:"min" json:"min"`
	Label string      `yaml:"label" json:"label"`
}

// Table maps predicted/contract percentages to grades.
type Table struct {
	Name  string `yaml:"name" json:"name"`
	Bands []Band `yaml:"bands" json:"bands"`
}

// TableV1 is the original, more lenient threshold table.
var TableV1 = Table{
	Name: "v1",
	Bands: []Band{
		{Grade: model.GradeA, Min: 100, Label: "excellent"},
		{Grade: model.GradeAMinus, Min: 80, Label: "good"},
		{Grade: model.GradeB, Min: 60, Label: "average"},
		{Grade: model.GradeC, Min: 40, Label: "below-average"},
		{Grade: model.GradeD, Label: "poor"},
	},
}

// TableV2 is the stricter table and the default.
var TableV2 = Table{
	Name: "v2",
	Bands: []Band{
		{Grade: model.GradeA, Min: 110, Label: "excellent"},
		{Grade: model.GradeAMinus, Min: 90, Label: "good"},
		{Grade: model.GradeB, Min: 70, Label: "average"},
		{Grade: model.GradeC, Min: 50, Label: "below-average"},
		{Grade: model.GradeD, Label: "poor"},
	},
}

// DefaultTable returns the canonical table.
func DefaultTable() Table { return TableV2 }

// TableByName returns a built-in table.
func TableByName(name string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "v2":
		return TableV2, nil
	case "v1":
		return TableV1, nil
	default:
		return Table{}, fmt.Errorf("unknown grading table %q", name)
	}
}

func (t Table) Validate() error {
	if len(t.Bands) == 0 {
		return errors.New("grading table has no bands")
	}
	for i, b := range t.Bands {
		if b.Grade == "" {
			return fmt.Errorf("band %d: grade is required", i)
		}
		if !b.Grade.Valid() {
			return fmt.Errorf("band %d: unknown grade %q", i, b.Grade)
		}
		if strings.TrimSpace(b.Label) == "" {
			return fmt.Errorf("band %d: label is required", i)
		}
		if i > 0 && i < len(t.Bands)-1 && b.Min >= t.Bands[i-1].Min {
			return fmt.Errorf("band %d: min %.2f must be below the previous band's %.2f", i, b.Min, t.Bands[i-1].Min)
		}
	}
	return nil
}

// Grade buckets predicted against contract. contract must be positive.
func (t Table) Grade(predicted, contract float64) (model.Assessment, error) {
	if math.IsNaN(contract) || contract <= 0 {
		return model.Assessment{}, model.ErrInvalidContractAmount
	}
	if math.IsNaN(predicted) {
		return model.Assessment{}, model.ErrMissingValue
	}
	if len(t.Bands) == 0 {
		return model.Assessment{}, errors.New("grading table has no bands")
	}

	// Multiply first so round figures such as 70/100 land exactly on the band edge.
	pct := predicted * 100 / contract
	if math.IsInf(pct, 0) {
		return model.Assessment{}, model.ErrNonFinite
	}

	band := t.Bands[len(t.Bands)-1]
	for _, b := range t.Bands[:len(t.Bands)-1] {
		if pct >= b.Min {
			band = b
			break
		}
	}
	return model.Assessment{
		Grade:      band.Grade,
		Percentage: pct,
		Band:       band.Label,
	}, nil
}
