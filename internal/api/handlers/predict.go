package handlers

import (
	"net/http"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/model"
	"cane-forecast/internal/session"
	"cane-forecast/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictHandler handles prediction and grade-table requests
type PredictHandler struct {
	store   *session.Store
	engine  *assessment.Engine
	catalog *grading.Catalog
	params  strategy.Params
	logger  *zap.Logger
}

// NewPredictHandler creates a new predict handler. params supplies defaults
// for per-request strategy overrides.
func NewPredictHandler(store *session.Store, engine *assessment.Engine, catalog *grading.Catalog, params strategy.Params, logger *zap.Logger) *PredictHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictHandler{store: store, engine: engine, catalog: catalog, params: params, logger: logger}
}

// Predict handles POST /api/v1/sessions/:id/predict
func (h *PredictHandler) Predict(c *gin.Context) {
	ds, ok := lookupDataset(c, h.store)
	if !ok {
		return
	}

	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	engine, ok := h.engineFor(c, req.Strategy, req.Multiplier)
	if !ok {
		return
	}
	if engine, ok = withTable(c, h.catalog, engine, req.Table); !ok {
		return
	}

	p, err := engine.Predict(ds, assessment.PredictRequest{
		OrderID:        req.OrderID,
		ContractAmount: req.ContractAmount,
		Explain:        req.Explain,
	})
	if err != nil {
		h.logger.Debug("prediction failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		writeError(c, err)
		return
	}

	h.logger.Info("prediction",
		zap.String("dataset_id", ds.ID),
		zap.String("order_id", p.OrderID),
		zap.String("strategy", p.Forecast.Strategy),
		zap.Float64("predicted", p.Forecast.Predicted),
		zap.String("grade", string(p.Assessment.Grade)))
	c.JSON(http.StatusOK, predictionResponse(p, req.ContractAmount))
}

// Grades handles GET /api/v1/sessions/:id/orders/:order_id/grades
func (h *PredictHandler) Grades(c *gin.Context) {
	ds, ok := lookupDataset(c, h.store)
	if !ok {
		return
	}
	var q models.GradesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	engine, ok := withTable(c, h.catalog, h.engine, q.Table)
	if !ok {
		return
	}

	ov, err := engine.Overview(ds, c.Param("order_id"), q.Explain)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GradesResponse{
		OrderID:   ov.OrderID,
		Sex:       ov.Sex,
		Sanitized: ov.Sanitized,
		Table:     engine.Table.Name,
		Periods:   periodRows(ov.Periods),
	})
}

// engineFor returns the engine for a per-request strategy override, or the
// configured engine when name is empty.
func (h *PredictHandler) engineFor(c *gin.Context, name string, multiplier float64) (*assessment.Engine, bool) {
	if name == "" {
		return h.engine, true
	}
	p := h.params
	if multiplier > 0 {
		p.Multiplier = multiplier
	}
	strat, err := strategy.ByName(name, p)
	if err != nil {
		badRequest(c, "UNKNOWN_STRATEGY", err.Error())
		return nil, false
	}
	return h.engine.WithStrategy(strat), true
}

func predictionResponse(p *assessment.Prediction, contractAmount float64) models.PredictionResponse {
	fc := models.ForecastInfo{
		Strategy:  p.Forecast.Strategy,
		Predicted: models.Float(p.Forecast.Predicted),
	}
	if p.Forecast.Changes != nil {
		fc.Changes = make([]*float64, len(p.Forecast.Changes))
		for i, v := range p.Forecast.Changes {
			fc.Changes[i] = models.Float(v)
		}
		fc.AverageChange = models.Float(p.Forecast.AverageChange)
	}

	chart := make([]models.ChartPoint, len(p.Chart))
	for i, pt := range p.Chart {
		chart[i] = models.ChartPoint{
			Period:   pt.Period,
			Contract: models.Float(pt.Contract),
			Actual:   models.Float(pt.Actual),
		}
	}

	return models.PredictionResponse{
		OrderID:        p.OrderID,
		Sex:            p.Sex,
		Asset:          models.Float(p.Asset),
		Sanitized:      p.Sanitized,
		ContractAmount: contractAmount,
		Forecast:       fc,
		Grade:          gradeInfo(p.Assessment),
		Periods:        periodRows(p.Periods),
		Chart:          chart,
	}
}

func gradeInfo(a model.Assessment) models.GradeInfo {
	return models.GradeInfo{
		Grade:      string(a.Grade),
		Percentage: percent(a.Percentage),
		Band:       a.Band,
		Reason:     a.Reason,
	}
}

func periodRows(rows []assessment.PeriodRow) []models.PeriodRow {
	out := make([]models.PeriodRow, len(rows))
	for i, r := range rows {
		out[i] = models.PeriodRow{
			Index:    r.Index,
			Label:    r.Label,
			Contract: models.Float(r.Contract),
			Actual:   models.Float(r.Actual),
			Reason:   r.Reason,
			Error:    r.Error,
		}
		if r.Error == "" {
			out[i].Grade = string(r.Grade)
			out[i].Percentage = percent(r.Percentage)
		}
	}
	return out
}

// percent rounds a percentage to 2 dp; non-finite values become null.
func percent(x float64) *float64 {
	if models.Float(x) == nil {
		return nil
	}
	return models.Float(grading.RoundPercent(x))
}
