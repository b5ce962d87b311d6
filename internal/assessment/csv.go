package assessment

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
)

// WritePeriodsCSV writes the period table to path.
func WritePeriodsCSV(path string, rows []PeriodRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WritePeriods(f, rows)
}

// WritePeriods writes the period table as CSV.
func WritePeriods(out io.Writer, rows []PeriodRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"year",
		"label",
		"contract",
		"actual",
		"grade",
		"percentage",
		"reason",
		"error",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		pct := ""
		if r.Error == "" {
			pct = fmtFloat(r.Percentage)
		}
		row := []string{
			strconv.Itoa(r.Index),
			r.Label,
			fmtFloat(r.Contract),
			fmtFloat(r.Actual),
			string(r.Grade),
			pct,
			r.Reason,
			r.Error,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}
