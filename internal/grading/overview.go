package grading

import "cane-forecast/internal/model"

// PeriodGrade is the grade of one historical period, where the period's
// actual delivery stands in for the prediction.
type PeriodGrade struct {
	Period     int // 1-based
	Contract   float64
	Actual     float64
	Assessment model.Assessment
	Err        error
}

// Overview grades every historical period independently. Periods that cannot
// be graded carry Err; the rest of the table is still produced.
func (t Table) Overview(contract, actual []float64, explain bool) []PeriodGrade {
	n := min(len(contract), len(actual))
	out := make([]PeriodGrade, 0, n)
	for i := 0; i < n; i++ {
		pg := PeriodGrade{Period: i + 1, Contract: contract[i], Actual: actual[i]}
		var err error
		if explain {
			pg.Assessment, err = t.GradeExplained(actual[i], contract[i])
		} else {
			pg.Assessment, err = t.Grade(actual[i], contract[i])
		}
		pg.Err = err
		out = append(out, pg)
	}
	return out
}
