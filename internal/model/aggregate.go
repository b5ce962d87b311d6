package model

import "errors"

// OrderAggregate collects every period observed for one order identifier.
// Contract and Actual are index-aligned: position i in both refers to the
// same historical period, in the row order of the source file.
type OrderAggregate struct {
	OrderID  string
	Sex      string
	Contract []float64
	Actual   []float64
	Asset    float64
}

// Sequences returns copies of the contract and actual sequences so callers
// can transform them without touching the cached aggregate.
func (a *OrderAggregate) Sequences() (contract, actual []float64) {
	contract = append([]float64(nil), a.Contract...)
	actual = append([]float64(nil), a.Actual...)
	return contract, actual
}

func (a *OrderAggregate) Validate() error {
	if a.OrderID == "" {
		return errors.New("order id is empty")
	}
	if len(a.Contract) != len(a.Actual) {
		return errors.New("contract and actual sequences differ in length")
	}
	return nil
}

// Forecast is a predicted next-period quantity. Changes and AverageChange are
// only populated by the trend-average strategy.
type Forecast struct {
	Strategy      string
	Predicted     float64
	Changes       []float64
	AverageChange float64
}
