package models

import (
	"math"
	"time"
)

// SessionResponse is returned when a session is created
type SessionResponse struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Dataset   *DatasetInfo `json:"dataset,omitempty"`
}

// DatasetInfo describes the dataset loaded into a session
type DatasetInfo struct {
	ID               string    `json:"id"` // content hash
	Name             string    `json:"name"`
	Rows             int       `json:"rows"`
	Orders           int       `json:"orders"`
	SkippedRows      int       `json:"skipped_rows"`
	AssetSynthesized bool      `json:"asset_synthesized"`
	LoadedAt         time.Time `json:"loaded_at"`
	Cached           bool      `json:"cached"` // true when identical content was already loaded
}

// OrderListResponse lists the order identifiers of the loaded dataset
type OrderListResponse struct {
	DatasetID string   `json:"dataset_id"`
	Orders    []string `json:"orders"`
}

// PredictionResponse is the answer to one prediction request
type PredictionResponse struct {
	OrderID        string       `json:"order_id"`
	Sex            string       `json:"sex"`
	Asset          *float64     `json:"asset"`
	Sanitized      bool         `json:"sanitized"`
	ContractAmount float64      `json:"contract_amount"`
	Forecast       ForecastInfo `json:"forecast"`
	Grade          GradeInfo    `json:"grade"`
	Periods        []PeriodRow  `json:"periods"`
	Chart          []ChartPoint `json:"chart"`
}

// ForecastInfo describes the predicted next-period delivery
type ForecastInfo struct {
	Strategy      string     `json:"strategy"`
	Predicted     *float64   `json:"predicted"`
	Changes       []*float64 `json:"changes,omitempty"` // percent change per consecutive pair
	AverageChange *float64   `json:"average_change,omitempty"`
}

// GradeInfo is one grading outcome
type GradeInfo struct {
	Grade      string   `json:"grade"`
	Percentage *float64 `json:"percentage"` // predicted / contract * 100, 2 dp
	Band       string   `json:"band"`
	Reason     string   `json:"reason,omitempty"`
}

// PeriodRow is one historical period of an order.
// Missing quantities are null.
type PeriodRow struct {
	Index      int      `json:"index"`
	Label      string   `json:"label"` // "Year 1", "Year 2", ...
	Contract   *float64 `json:"contract"`
	Actual     *float64 `json:"actual"`
	Grade      string   `json:"grade,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ChartPoint is one point of the contract-vs-actual chart
type ChartPoint struct {
	Period   int      `json:"period"`
	Contract *float64 `json:"contract"`
	Actual   *float64 `json:"actual"`
}

// GradesResponse is the per-period grade table of one order
type GradesResponse struct {
	OrderID   string      `json:"order_id"`
	Sex       string      `json:"sex"`
	Sanitized bool        `json:"sanitized"`
	Table     string      `json:"table"`
	Periods   []PeriodRow `json:"periods"`
}

// RankResponse represents the response from ranking orders
type RankResponse struct {
	Strategy string      `json:"strategy"`
	Table    string      `json:"table"`
	Rankings []Ranking   `json:"rankings"`
	Summary  RankSummary `json:"summary"`
}

// Ranking represents one ranked order
type Ranking struct {
	Rank       int      `json:"rank,omitempty"` // 0 when the order could not be assessed
	OrderID    string   `json:"order_id"`
	Periods    int      `json:"periods"`
	Target     *float64 `json:"target"` // last historical contract amount
	Predicted  *float64 `json:"predicted,omitempty"`
	Grade      string   `json:"grade,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// RankSummary aggregates a ranking report
type RankSummary struct {
	Orders      int            `json:"orders"`
	Assessed    int            `json:"assessed"`
	Failed      int            `json:"failed"`
	MinPct      *float64       `json:"min_pct"`
	MaxPct      *float64       `json:"max_pct"`
	MeanPct     *float64       `json:"mean_pct"`
	P05Pct      *float64       `json:"p05_pct"`
	P95Pct      *float64       `json:"p95_pct"`
	GradeCounts map[string]int `json:"grade_counts"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Default     bool            `json:"default"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// GradingTableResponse describes the active threshold table
type GradingTableResponse struct {
	Name    string     `json:"name"`
	Active  bool       `json:"active"`
	Bands   []BandInfo `json:"bands"`
	Context string     `json:"context"`
}

// BandInfo is one row of the threshold table
type BandInfo struct {
	Grade string  `json:"grade"`
	Min   float64 `json:"min"` // lower bound in percent, inclusive
	Label string  `json:"label"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Float returns nil for NaN and infinities, which JSON cannot carry.
func Float(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
