package handlers

import (
	"net/http"

	"cane-forecast/internal/analysis"
	"cane-forecast/internal/api/models"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/session"
	"cane-forecast/internal/strategy"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	store   *session.Store
	engine  *assessment.Engine
	catalog *grading.Catalog
	params  strategy.Params
}

// NewRankHandler creates a new rank handler
func NewRankHandler(store *session.Store, engine *assessment.Engine, catalog *grading.Catalog, params strategy.Params) *RankHandler {
	return &RankHandler{store: store, engine: engine, catalog: catalog, params: params}
}

// RankOrders handles GET /api/v1/sessions/:id/rank
func (h *RankHandler) RankOrders(c *gin.Context) {
	ds, ok := lookupDataset(c, h.store)
	if !ok {
		return
	}

	var req models.RankQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	engine, ok := withTable(c, h.catalog, h.engine, req.Table)
	if !ok {
		return
	}
	strat := engine.Strategy
	if req.Strategy != "" {
		var err error
		if strat, err = strategy.ByName(req.Strategy, h.params); err != nil {
			badRequest(c, "UNKNOWN_STRATEGY", err.Error())
			return
		}
	}

	ranked := analysis.RankWithStrategy(ds, engine, strat)
	summary := analysis.Summarize(ranked)

	if req.Limit > 0 && len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.Ranking, 0, len(ranked))
	for i, r := range ranked {
		row := models.Ranking{
			OrderID: r.OrderID,
			Periods: r.Periods,
			Target:  models.Float(r.Target),
		}
		if r.Err != nil {
			_, _, row.Error, _ = classify(r.Err)
		} else {
			row.Rank = i + 1
			row.Predicted = models.Float(r.Forecast.Predicted)
			row.Grade = string(r.Assessment.Grade)
			row.Percentage = percent(r.Assessment.Percentage)
		}
		rankings = append(rankings, row)
	}

	counts := make(map[string]int, len(summary.GradeCounts))
	for g, n := range summary.GradeCounts {
		counts[string(g)] = n
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Strategy: strat.Name(),
		Table:    engine.Table.Name,
		Rankings: rankings,
		Summary: models.RankSummary{
			Orders:      summary.Orders,
			Assessed:    summary.Assessed,
			Failed:      summary.Failed,
			MinPct:      percent(summary.MinPct),
			MaxPct:      percent(summary.MaxPct),
			MeanPct:     percent(summary.MeanPct),
			P05Pct:      percent(summary.P05Pct),
			P95Pct:      percent(summary.P95Pct),
			GradeCounts: counts,
		},
	})
}
