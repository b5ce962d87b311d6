package analysis

import (
	"math"
	"sort"

	"cane-forecast/internal/model"
)

// Summary describes a ranking report as a whole.
type Summary struct {
	Orders   int
	Assessed int
	Failed   int

	// Fulfilment statistics over assessed orders, in percent of target.
	MinPct  float64
	MaxPct  float64
	MeanPct float64
	P05Pct  float64
	P95Pct  float64

	GradeCounts map[model.Grade]int
}

func Summarize(ranked []RankedOrder) Summary {
	s := Summary{
		Orders:      len(ranked),
		GradeCounts: map[model.Grade]int{},
	}
	vals := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Assessed++
		s.GradeCounts[r.Assessment.Grade]++
		vals = append(vals, r.Assessment.Percentage)
	}
	if len(vals) == 0 {
		return s
	}

	sort.Float64s(vals)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	s.MinPct = vals[0]
	s.MaxPct = vals[len(vals)-1]
	s.MeanPct = sum / float64(len(vals))
	s.P05Pct = quantile(vals, 0.05)
	s.P95Pct = quantile(vals, 0.95)
	return s
}

// quantile interpolates linearly between the two ranks around q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	whole, frac := math.Modf(q * float64(n-1))
	i := int(whole)
	if frac == 0 {
		return sorted[i]
	}
	return sorted[i] + (sorted[i+1]-sorted[i])*frac
}
