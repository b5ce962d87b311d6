package models

// PredictRequest represents the request body for a prediction
type PredictRequest struct {
	OrderID        string  `json:"order_id" binding:"required"`
	ContractAmount float64 `json:"contract_amount"`
	Strategy       string  `json:"strategy,omitempty"` // default: configured strategy
	Multiplier     float64 `json:"multiplier,omitempty"`
	Table          string  `json:"table,omitempty"` // default: active grading table
	Explain        bool    `json:"explain,omitempty"`
}

// GradesQuery represents query parameters for the per-period grade table
type GradesQuery struct {
	Explain bool   `form:"explain"`
	Table   string `form:"table,omitempty"`
}

// RankQuery represents query parameters for ranking orders
type RankQuery struct {
	Strategy string `form:"strategy,omitempty"`
	Table    string `form:"table,omitempty"`
	Limit    int    `form:"limit,omitempty"` // 0 = all
}
