package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"cane-forecast/internal/model"
)

// Column names of the uploaded contracts table.
const (
	ColOrderID  = "orderID"
	ColGender   = "gender"
	ColContract = "contract"
	ColActual   = "actual"
	ColAsset    = "asset"
)

var requiredColumns = []string{ColOrderID, ColGender, ColContract, ColActual}

// LoadOptions controls normalization of an uploaded table.
type LoadOptions struct {
	// StrictSexCodes rejects gender codes other than 0 and 1 instead of
	// mapping them to Female.
	StrictSexCodes bool

	// AssetMin/AssetMax bound the synthesized asset values, [min, max).
	AssetMin int
	AssetMax int

	// Rand drives asset synthesis. Nil uses the global source.
	Rand *rand.Rand
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		AssetMin: 5000,
		AssetMax: 100000,
	}
}

func (o LoadOptions) Validate() error {
	if o.AssetMin < 0 || o.AssetMax <= o.AssetMin {
		return errors.New("asset bounds must satisfy 0 <= min < max")
	}
	return nil
}

// ReadResult is the normalized content of one uploaded table.
type ReadResult struct {
	Records          []model.Record
	AssetSynthesized bool
	// Skipped counts rows whose order identifier was blank.
	Skipped int
}

// ReadRecords parses and normalizes a contracts CSV.
func ReadRecords(r io.Reader, opts LoadOptions) (*ReadResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &model.SchemaError{Missing: append([]string(nil), requiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := indexHeader(header)
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaError{Missing: missing}
	}
	assetCol, hasAsset := idx[ColAsset]

	out := &ReadResult{AssetSynthesized: !hasAsset}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		orderID := NormalizeOrderID(row[idx[ColOrderID]])
		if orderID == "" {
			out.Skipped++
			continue
		}

		sex, err := SexLabel(row[idx[ColGender]], opts.StrictSexCodes)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		contract, err := parseQuantity(row[idx[ColContract]])
		if err != nil {
			return nil, fmt.Errorf("row %d: contract: %w", line, err)
		}
		actual, err := parseQuantity(row[idx[ColActual]])
		if err != nil {
			return nil, fmt.Errorf("row %d: actual: %w", line, err)
		}

		var asset float64
		if hasAsset {
			asset, err = parseQuantity(row[assetCol])
			if err != nil {
				return nil, fmt.Errorf("row %d: asset: %w", line, err)
			}
		} else {
			asset = float64(synthesizeAsset(opts))
		}

		out.Records = append(out.Records, model.Record{
			OrderID:  orderID,
			Sex:      sex,
			Contract: contract,
			Actual:   actual,
			Asset:    asset,
		})
	}

	return out, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func synthesizeAsset(opts LoadOptions) int {
	span := opts.AssetMax - opts.AssetMin
	if opts.Rand != nil {
		return opts.AssetMin + opts.Rand.IntN(span)
	}
	return opts.AssetMin + rand.IntN(span)
}
