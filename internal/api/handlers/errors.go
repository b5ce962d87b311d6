package handlers

import (
	"errors"
	"net/http"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/model"
	"cane-forecast/internal/session"

	"github.com/gin-gonic/gin"
)

// apiError maps a domain error onto an HTTP status and error code.
type apiError struct {
	target error
	status int
	code   string
	// fixed replaces the wrapped error text when set.
	fixed bool
}

var apiErrors = []apiError{
	{session.ErrNotFound, http.StatusNotFound, "SESSION_NOT_FOUND", true},
	{model.ErrNoDataset, http.StatusConflict, "NO_DATASET", true},
	{model.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND", true},
	{model.ErrSchema, http.StatusUnprocessableEntity, "SCHEMA_ERROR", false},
	{model.ErrInvalidContractAmount, http.StatusBadRequest, "INVALID_CONTRACT_AMOUNT", false},
	{model.ErrInsufficientHistory, http.StatusUnprocessableEntity, "INSUFFICIENT_HISTORY", false},
	{model.ErrDivideByZero, http.StatusUnprocessableEntity, "DIVIDE_BY_ZERO", false},
	{model.ErrMissingValue, http.StatusUnprocessableEntity, "MISSING_VALUE", false},
	{model.ErrNonFinite, http.StatusUnprocessableEntity, "NON_FINITE_RESULT", false},
}

// classify returns the status and code for err; ok is false for errors
// outside the domain taxonomy.
func classify(err error) (status int, code, message string, ok bool) {
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			message = err.Error()
			if e.fixed {
				message = e.target.Error()
			}
			return e.status, e.code, message, true
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), false
}

// writeError renders err as an ErrorResponse.
func writeError(c *gin.Context, err error) {
	status, code, message, _ := classify(err)
	resp := models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	var se *model.SchemaError
	if errors.As(err, &se) {
		resp.Error.Details = map[string]interface{}{"missing_columns": se.Missing}
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
