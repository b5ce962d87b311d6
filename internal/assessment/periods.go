package assessment

import (
	"fmt"

	"cane-forecast/internal/grading"
	"cane-forecast/internal/model"
)

// PeriodRow is one row of the year-indexed history table.
// This is what a dashboard renders under the prediction.
type PeriodRow struct {
	Index int
	Label string

	Contract float64
	Actual   float64

	Grade      model.Grade
	Percentage float64
	Reason     string

	// Error is set when the period could not be graded, e.g. a zero contract.
	Error string
}

// ChartPoint is one (period, contract, actual) triple for plotting.
type ChartPoint struct {
	Period   int
	Contract float64
	Actual   float64
}

func periodLabel(i int) string {
	return fmt.Sprintf("Year %d", i)
}

func periodRows(grades []grading.PeriodGrade) []PeriodRow {
	rows := make([]PeriodRow, 0, len(grades))
	for _, g := range grades {
		row := PeriodRow{
			Index:    g.Period,
			Label:    periodLabel(g.Period),
			Contract: g.Contract,
			Actual:   g.Actual,
		}
		if g.Err != nil {
			row.Error = g.Err.Error()
		} else {
			row.Grade = g.Assessment.Grade
			row.Percentage = g.Assessment.Percentage
			row.Reason = g.Assessment.Reason
		}
		rows = append(rows, row)
	}
	return rows
}

func chartSeries(contract, actual []float64) []ChartPoint {
	n := min(len(contract), len(actual))
	out := make([]ChartPoint, n)
	for i := 0; i < n; i++ {
		out[i] = ChartPoint{Period: i + 1, Contract: contract[i], Actual: actual[i]}
	}
	return out
}
