package data

import (
	"cane-forecast/internal/model"
)

// GroupByOrder builds one aggregate per order identifier. Sequences keep the
// row order of the input, which is taken to be chronological. Sex and asset
// come from the first row of each group.
func GroupByOrder(records []model.Record) map[string]*model.OrderAggregate {
	out := map[string]*model.OrderAggregate{}
	for _, r := range records {
		agg, ok := out[r.OrderID]
		if !ok {
			agg = &model.OrderAggregate{
				OrderID: r.OrderID,
				Sex:     r.Sex,
				Asset:   r.Asset,
			}
			out[r.OrderID] = agg
		}
		agg.Contract = append(agg.Contract, r.Contract)
		agg.Actual = append(agg.Actual, r.Actual)
	}
	return out
}
