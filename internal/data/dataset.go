package data

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"cane-forecast/internal/model"
)

// Dataset is the parsed and aggregated content of one upload. It is
// read-only after construction.
type Dataset struct {
	ID               string // content hash of the raw upload
	Name             string
	Rows             int
	Skipped          int
	AssetSynthesized bool
	LoadedAt         time.Time

	orders map[string]*model.OrderAggregate
	ids    []string
}

// NewDataset aggregates normalized records into a dataset.
func NewDataset(id, name string, res *ReadResult) *Dataset {
	orders := GroupByOrder(res.Records)
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Dataset{
		ID:               id,
		Name:             name,
		Rows:             len(res.Records),
		Skipped:          res.Skipped,
		AssetSynthesized: res.AssetSynthesized,
		LoadedAt:         time.Now(),
		orders:           orders,
		ids:              ids,
	}
}

// LoadDataset hashes, parses and aggregates raw CSV bytes.
func LoadDataset(name string, raw []byte, opts LoadOptions) (*Dataset, error) {
	res, err := ReadRecords(bytes.NewReader(raw), opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	ds := NewDataset(ContentKey(raw), name, res)
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return ds, nil
}

func (d *Dataset) validate() error {
	for _, id := range d.ids {
		if err := d.orders[id].Validate(); err != nil {
			return fmt.Errorf("order %q: %w", id, err)
		}
	}
	return nil
}

// Orders returns the known order identifiers in sorted order.
func (d *Dataset) Orders() []string {
	return append([]string(nil), d.ids...)
}

// Len returns the number of distinct orders.
func (d *Dataset) Len() int {
	return len(d.ids)
}

// Lookup resolves a caller-supplied identifier, normalized the same way as
// upload-time identifiers.
func (d *Dataset) Lookup(orderID string) (*model.OrderAggregate, error) {
	agg, ok := d.orders[NormalizeOrderID(orderID)]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return agg, nil
}
