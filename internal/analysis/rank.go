package analysis

import (
	"sort"

	"cane-forecast/internal/assessment"
	"cane-forecast/internal/data"
	"cane-forecast/internal/model"
	"cane-forecast/internal/strategy"
)

// RankedOrder is one row of the ranking report.
type RankedOrder struct {
	OrderID    string
	Periods    int
	Target     float64 // last historical contract amount
	Forecast   model.Forecast
	Assessment model.Assessment
	Err        error
}

// RankOrders forecasts every order in ds and grades it against the order's
// last historical contract amount. Rows are sorted by percentage, highest
// first; orders that could not be assessed follow, by identifier.
func RankOrders(ds *data.Dataset, engine *assessment.Engine) []RankedOrder {
	if ds == nil {
		return nil
	}
	out := make([]RankedOrder, 0, ds.Len())
	for _, id := range ds.Orders() {
		out = append(out, rankOne(ds, engine, id))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Err != nil {
			return a.OrderID < b.OrderID
		}
		if a.Assessment.Percentage != b.Assessment.Percentage {
			return a.Assessment.Percentage > b.Assessment.Percentage
		}
		return a.OrderID < b.OrderID
	})
	return out
}

func rankOne(ds *data.Dataset, engine *assessment.Engine, id string) RankedOrder {
	row := RankedOrder{OrderID: id}

	// The target comes from the sanitized history so the legacy order ranks
	// on the same numbers a prediction request would see.
	ov, err := engine.Overview(ds, id, false)
	if err != nil {
		row.Err = err
		return row
	}
	row.Periods = len(ov.Periods)
	if row.Periods > 0 {
		row.Target = ov.Periods[row.Periods-1].Contract
	}

	p, err := engine.Predict(ds, assessment.PredictRequest{OrderID: id, ContractAmount: row.Target})
	if err != nil {
		row.Err = err
		return row
	}
	row.Forecast = p.Forecast
	row.Assessment = p.Assessment
	return row
}

// RankWithStrategy is RankOrders using strat instead of the engine's strategy.
func RankWithStrategy(ds *data.Dataset, engine *assessment.Engine, strat strategy.Strategy) []RankedOrder {
	return RankOrders(ds, engine.WithStrategy(strat))
}
