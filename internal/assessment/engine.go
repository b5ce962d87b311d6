package assessment

import (
	"errors"
	"fmt"
	"math"

	"cane-forecast/internal/data"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/model"
	"cane-forecast/internal/sanitize"
	"cane-forecast/internal/strategy"
)

// Engine runs the per-order pipeline: lookup, sanitize, forecast, grade.
type Engine struct {
	Strategy  strategy.Strategy
	Table     grading.Table
	Sanitizer *sanitize.Sanitizer
}

func New(strat strategy.Strategy, table grading.Table, san *sanitize.Sanitizer) *Engine {
	return &Engine{Strategy: strat, Table: table, Sanitizer: san}
}

// WithStrategy returns a copy of e that forecasts with strat.
func (e *Engine) WithStrategy(strat strategy.Strategy) *Engine {
	cp := *e
	cp.Strategy = strat
	return &cp
}

// WithTable returns a copy of e that grades with t.
func (e *Engine) WithTable(t grading.Table) *Engine {
	cp := *e
	cp.Table = t
	return &cp
}

type PredictRequest struct {
	OrderID        string
	ContractAmount float64
	Explain        bool
}

// Prediction is the full answer to one predict request.
type Prediction struct {
	OrderID    string
	Sex        string
	Asset      float64
	Sanitized  bool
	Forecast   model.Forecast
	Assessment model.Assessment
	Periods    []PeriodRow
	Chart      []ChartPoint
}

// Predict forecasts next-period delivery for one order and grades it against
// the caller-entered contract amount.
func (e *Engine) Predict(ds *data.Dataset, req PredictRequest) (*Prediction, error) {
	if e.Strategy == nil {
		return nil, errors.New("strategy is nil")
	}
	if math.IsNaN(req.ContractAmount) || req.ContractAmount <= 0 {
		return nil, model.ErrInvalidContractAmount
	}

	h, err := e.history(ds, req.OrderID)
	if err != nil {
		return nil, err
	}

	fc, err := e.Strategy.Forecast(strategy.Input{
		Contract:       h.contract,
		Actual:         h.actual,
		ContractAmount: req.ContractAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", h.agg.OrderID, err)
	}

	var a model.Assessment
	if req.Explain {
		a, err = e.Table.GradeExplained(fc.Predicted, req.ContractAmount)
	} else {
		a, err = e.Table.Grade(fc.Predicted, req.ContractAmount)
	}
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", h.agg.OrderID, err)
	}

	return &Prediction{
		OrderID:    h.agg.OrderID,
		Sex:        h.agg.Sex,
		Asset:      h.agg.Asset,
		Sanitized:  h.sanitized,
		Forecast:   fc,
		Assessment: a,
		Periods:    periodRows(e.Table.Overview(h.contract, h.actual, req.Explain)),
		Chart:      chartSeries(h.contract, h.actual),
	}, nil
}

// Overview is the per-period grading table of one order.
type Overview struct {
	OrderID   string
	Sex       string
	Sanitized bool
	Periods   []PeriodRow
}

// Overview grades every historical period of one order.
func (e *Engine) Overview(ds *data.Dataset, orderID string, explain bool) (*Overview, error) {
	h, err := e.history(ds, orderID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		OrderID:   h.agg.OrderID,
		Sex:       h.agg.Sex,
		Sanitized: h.sanitized,
		Periods:   periodRows(e.Table.Overview(h.contract, h.actual, explain)),
	}, nil
}

type history struct {
	agg       *model.OrderAggregate
	contract  []float64
	actual    []float64
	sanitized bool
}

func (e *Engine) history(ds *data.Dataset, orderID string) (*history, error) {
	if ds == nil {
		return nil, model.ErrNoDataset
	}
	agg, err := ds.Lookup(orderID)
	if err != nil {
		return nil, err
	}
	contract, actual := agg.Sequences()
	res, err := e.Sanitizer.Apply(agg.OrderID, contract, actual)
	if err != nil {
		return nil, err
	}
	return &history{
		agg:       agg,
		contract:  res.Contract,
		actual:    res.Actual,
		sanitized: res.Applied,
	}, nil
}
