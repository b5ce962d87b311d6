package model

import (
	"errors"
	"strings"
)

var (
	ErrSchema                = errors.New("schema error")
	ErrOrderNotFound         = errors.New("Order ID not found in the dataset")
	ErrInsufficientHistory   = errors.New("at least 2 historical periods are required")
	ErrDivideByZero          = errors.New("actual amount is zero in a period used as a base for percentage change")
	ErrInvalidContractAmount = errors.New("contract amount must be greater than zero")
	ErrMissingValue          = errors.New("missing value in historical sequence")
	ErrNonFinite             = errors.New("result is not a finite number")
	ErrNoDataset             = errors.New("Please upload a CSV file to proceed with the analysis.")
)

// SchemaError reports required columns absent from an uploaded table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// Is lets errors.Is(err, ErrSchema) match any *SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
