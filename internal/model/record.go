package model

import "math"

// Sex labels produced by the normalizer.
const (
	SexMale   = "Male"
	SexFemale = "Female"
)

// Record is one normalized CSV row: a single historical period of one order.
// Missing numeric cells are carried as NaN.
type Record struct {
	OrderID  string
	Sex      string
	Contract float64
	Actual   float64
	Asset    float64
}

// IsMissing reports whether x represents a missing numeric cell.
func IsMissing(x float64) bool {
	return math.IsNaN(x)
}
