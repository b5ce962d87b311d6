package grading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cane-forecast/internal/model"
)

// ContextNote is appended to every explanation.
const ContextNote = "Grades compare expected sugar-cane delivery with the tonnage contracted under the agricultural loan; lower grades signal a higher risk that the loan will not be covered by the harvest."

// RoundPercent rounds a percentage to 2 decimal places, half away from zero.
func RoundPercent(p float64) float64 {
	return decimal.NewFromFloat(p).Round(2).InexactFloat64()
}

// FormatPercent renders a percentage with exactly 2 decimal places.
func FormatPercent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2)
}

// Explain describes an assessment: its percentage, band and the context note.
func Explain(a model.Assessment) string {
	return fmt.Sprintf("Delivery reaches %s%% of the contracted amount, which is %s performance (grade %s). %s",
		FormatPercent(a.Percentage), a.Band, a.Grade, ContextNote)
}

// GradeExplained grades and fills in Reason.
func (t Table) GradeExplained(predicted, contract float64) (model.Assessment, error) {
	a, err := t.Grade(predicted, contract)
	if err != nil {
		return a, err
	}
	a.Reason = Explain(a)
	return a, nil
}
