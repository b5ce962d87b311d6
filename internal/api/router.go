// Package api wires the HTTP handlers into a gin router.
package api

import (
	"net/http"
	"strings"

	"cane-forecast/internal/api/handlers"
	"cane-forecast/internal/api/middleware"
	"cane-forecast/internal/api/models"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/data"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/session"
	"cane-forecast/internal/strategy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the long-lived services the router serves from.
type Deps struct {
	Store          *session.Store
	Engine         *assessment.Engine
	Catalog        *grading.Catalog
	Params         strategy.Params
	LoadOptions    data.LoadOptions
	MaxUploadBytes int64
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := d.Catalog
	if catalog == nil {
		catalog = grading.NewCatalog(d.Engine.Table, grading.TableV2, grading.TableV1)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger(logger))

	sessionHandler := handlers.NewSessionHandler(d.Store, logger)
	datasetHandler := handlers.NewDatasetHandler(d.Store, d.LoadOptions, d.MaxUploadBytes, logger)
	predictHandler := handlers.NewPredictHandler(d.Store, d.Engine, catalog, d.Params, logger)
	rankHandler := handlers.NewRankHandler(d.Store, d.Engine, catalog, d.Params)
	strategyHandler := handlers.NewStrategyHandler(d.Engine.Strategy.Name(), d.Params)
	tableHandler := handlers.NewTableHandler(catalog, d.Engine.Table.Name)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": d.Store.Len()})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.DELETE("/sessions/:id", sessionHandler.DeleteSession)

		api.PUT("/sessions/:id/dataset", datasetHandler.UploadDataset)
		api.GET("/sessions/:id/dataset", datasetHandler.GetDataset)
		api.GET("/sessions/:id/orders", datasetHandler.ListOrders)

		api.POST("/sessions/:id/predict", predictHandler.Predict)
		api.GET("/sessions/:id/orders/:order_id/grades", predictHandler.Grades)
		api.GET("/sessions/:id/rank", rankHandler.RankOrders)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/grading/table", tableHandler.GetTable)
		api.GET("/grading/tables", tableHandler.ListTables)
		api.GET("/grading/tables/:name", tableHandler.GetTable)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "NOT_FOUND",
					Message: "Not found",
				},
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
