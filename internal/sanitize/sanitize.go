// Package sanitize applies a missing-value policy to an order's history
// before it is forecast.
package sanitize

import (
	"fmt"
	"strings"

	"cane-forecast/internal/model"
)

// Policy decides what happens to periods with missing values.
type Policy string

const (
	// PolicyNone leaves sequences untouched.
	PolicyNone Policy = "none"
	// PolicyZeroFill replaces missing values with 0.
	PolicyZeroFill Policy = "zero-fill"
	// PolicyDropPeriod removes every period where either value is missing.
	PolicyDropPeriod Policy = "drop-period"
	// PolicyReject fails on any missing value.
	PolicyReject Policy = "reject"
)

// AllOrders scopes a sanitizer to every order.
const AllOrders = "*"

// LegacyOrderID is the single order the original data patch applied to.
const LegacyOrderID = "g000005"

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyNone, PolicyZeroFill, PolicyDropPeriod, PolicyReject:
		return p, nil
	case "":
		return PolicyNone, nil
	default:
		return "", fmt.Errorf("unknown missing-value policy %q", s)
	}
}

// Sanitizer applies Policy to the orders in its scope.
type Sanitizer struct {
	Policy Policy
	scope  map[string]bool
	all    bool
}

// New builds a sanitizer for orderIDs, normalized like upload identifiers.
// "*" in orderIDs selects every order; an empty list selects none.
func New(policy Policy, orderIDs []string) *Sanitizer {
	s := &Sanitizer{Policy: policy, scope: map[string]bool{}}
	for _, id := range orderIDs {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == AllOrders {
			s.all = true
			continue
		}
		if id != "" {
			s.scope[id] = true
		}
	}
	return s
}

// Default zero-fills the legacy order only.
func Default() *Sanitizer {
	return New(PolicyZeroFill, []string{LegacyOrderID})
}

// Applies reports whether orderID is in scope.
func (s *Sanitizer) Applies(orderID string) bool {
	if s == nil || s.Policy == PolicyNone {
		return false
	}
	return s.all || s.scope[orderID]
}

// Result is the sanitized history. Applied is true whenever the policy ran
// for the order, whether or not anything was missing.
type Result struct {
	Contract []float64
	Actual   []float64
	Applied  bool
	Changed  int
}

// Apply returns sanitized copies of contract and actual.
func (s *Sanitizer) Apply(orderID string, contract, actual []float64) (Result, error) {
	if len(contract) != len(actual) {
		return Result{}, fmt.Errorf("sequence lengths differ: contract=%d actual=%d", len(contract), len(actual))
	}
	res := Result{
		Contract: append([]float64(nil), contract...),
		Actual:   append([]float64(nil), actual...),
	}
	if !s.Applies(orderID) {
		return res, nil
	}
	res.Applied = true

	switch s.Policy {
	case PolicyZeroFill:
		for i := range res.Contract {
			if model.IsMissing(res.Contract[i]) {
				res.Contract[i] = 0
				res.Changed++
			}
			if model.IsMissing(res.Actual[i]) {
				res.Actual[i] = 0
				res.Changed++
			}
		}
	case PolicyDropPeriod:
		c := res.Contract[:0]
		a := res.Actual[:0]
		for i := range contract {
			if model.IsMissing(contract[i]) || model.IsMissing(actual[i]) {
				res.Changed++
				continue
			}
			c = append(c, contract[i])
			a = append(a, actual[i])
		}
		res.Contract, res.Actual = c, a
	case PolicyReject:
		for i := range contract {
			if model.IsMissing(contract[i]) || model.IsMissing(actual[i]) {
				return Result{}, fmt.Errorf("%w: order %s period %d", model.ErrMissingValue, orderID, i+1)
			}
		}
	}
	return res, nil
}
