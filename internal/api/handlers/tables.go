package handlers

import (
	"fmt"
	"net/http"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/grading"

	"github.com/gin-gonic/gin"
)

// TableHandler handles grading-table requests
type TableHandler struct {
	catalog *grading.Catalog
	active  string
}

// NewTableHandler creates a new table handler. active names the table used
// when a request does not pick one.
func NewTableHandler(catalog *grading.Catalog, active string) *TableHandler {
	return &TableHandler{catalog: catalog, active: active}
}

// ListTables handles GET /api/v1/grading/tables
func (h *TableHandler) ListTables(c *gin.Context) {
	tables := h.catalog.Tables()
	out := make([]models.GradingTableResponse, len(tables))
	for i, t := range tables {
		out[i] = tableResponse(t, t.Name == h.active)
	}
	c.JSON(http.StatusOK, gin.H{"tables": out})
}

// GetTable handles GET /api/v1/grading/table and
// GET /api/v1/grading/tables/:name
func (h *TableHandler) GetTable(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		name = h.active
	}
	t, ok := h.catalog.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "TABLE_NOT_FOUND",
				Message: fmt.Sprintf("unknown grading table %q", name),
			},
		})
		return
	}
	c.JSON(http.StatusOK, tableResponse(t, t.Name == h.active))
}

// withTable returns engine grading with the named table, or engine itself
// when name is empty.
func withTable(c *gin.Context, catalog *grading.Catalog, engine *assessment.Engine, name string) (*assessment.Engine, bool) {
	if name == "" {
		return engine, true
	}
	t, ok := catalog.Lookup(name)
	if !ok {
		badRequest(c, "UNKNOWN_TABLE", fmt.Sprintf("unknown grading table %q", name))
		return nil, false
	}
	return engine.WithTable(t), true
}

func tableResponse(t grading.Table, active bool) models.GradingTableResponse {
	bands := make([]models.BandInfo, len(t.Bands))
	for i, b := range t.Bands {
		bands[i] = models.BandInfo{Grade: string(b.Grade), Min: b.Min, Label: b.Label}
	}
	return models.GradingTableResponse{
		Name:    t.Name,
		Active:  active,
		Bands:   bands,
		Context: grading.ContextNote,
	}
}
