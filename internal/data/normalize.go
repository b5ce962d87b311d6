package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cane-forecast/internal/model"
)

// NormalizeOrderID trims surrounding whitespace and lowercases an identifier.
// Applying it twice yields the same result.
func NormalizeOrderID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SexLabel maps a raw sex code to its label: 1 is Male, anything else Female.
// In strict mode only 0 and 1 are accepted.
func SexLabel(raw string, strict bool) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && v == 1 {
		return model.SexMale, nil
	}
	if strict && (err != nil || v != 0) {
		return "", fmt.Errorf("invalid gender code %q (expected 0 or 1)", raw)
	}
	return model.SexFemale, nil
}

var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
}

// parseQuantity parses a numeric cell. Missing cells become NaN.
func parseQuantity(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if missingTokens[strings.ToLower(s)] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
