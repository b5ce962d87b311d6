package handlers

import (
	"net/http"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct {
	defaultStrategy string
	params          strategy.Params
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(defaultStrategy string, params strategy.Params) *StrategyHandler {
	return &StrategyHandler{defaultStrategy: defaultStrategy, params: params}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        strategy.NameTrendAverage,
			Description: "Extends the last actual delivery by the average period-over-period percentage change of the actual history. Needs at least two periods.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name:        strategy.NameFixedMultiplier,
			Description: "Predicts the entered contract amount scaled by a fixed multiplier. Ignores history.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "multiplier",
					Type:        "float",
					Description: "Factor applied to the contract amount",
					Default:     h.params.Multiplier,
				},
			},
		},
	}
	def := h.defaultStrategy
	if def == "" {
		def = strategy.NameTrendAverage
	}
	for i := range strategies {
		strategies[i].Default = strategies[i].Name == def
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
