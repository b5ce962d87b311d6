package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/data"
	"cane-forecast/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const uploadField = "file"

// DatasetHandler handles dataset upload and listing requests
type DatasetHandler struct {
	store    *session.Store
	opts     data.LoadOptions
	maxBytes int64
	logger   *zap.Logger
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(store *session.Store, opts data.LoadOptions, maxBytes int64, logger *zap.Logger) *DatasetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetHandler{store: store, opts: opts, maxBytes: maxBytes, logger: logger}
}

// UploadDataset handles PUT /api/v1/sessions/:id/dataset
//
// The CSV is read from the multipart field "file", or from the raw body for
// any other content type (with ?name= naming it).
func (h *DatasetHandler) UploadDataset(c *gin.Context) {
	sess, ok := lookupSession(c, h.store)
	if !ok {
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}
	name, raw, err := readUpload(c)
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "UPLOAD_TOO_LARGE",
					Message: fmt.Sprintf("upload exceeds %d bytes", h.maxBytes),
				},
			})
			return
		}
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	ds, hit, err := sess.Cache.Load(name, raw, h.opts)
	if err != nil {
		h.logger.Warn("dataset rejected",
			zap.String("session_id", sess.ID),
			zap.String("name", name),
			zap.Error(err))
		if _, _, _, known := classify(err); known {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_DATASET",
				Message: err.Error(),
			},
		})
		return
	}

	h.logger.Info("dataset loaded",
		zap.String("session_id", sess.ID),
		zap.String("dataset_id", ds.ID),
		zap.Int("orders", ds.Len()),
		zap.Int("skipped_rows", ds.Skipped),
		zap.Bool("cached", hit))
	c.JSON(http.StatusOK, datasetInfo(ds, hit))
}

// GetDataset handles GET /api/v1/sessions/:id/dataset
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	ds, ok := lookupDataset(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, datasetInfo(ds, false))
}

// ListOrders handles GET /api/v1/sessions/:id/orders
func (h *DatasetHandler) ListOrders(c *gin.Context) {
	ds, ok := lookupDataset(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.OrderListResponse{
		DatasetID: ds.ID,
		Orders:    ds.Orders(),
	})
}

func readUpload(c *gin.Context) (string, []byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(uploadField)
		if err != nil {
			return "", nil, fmt.Errorf("multipart field %q: %w", uploadField, err)
		}
		f, err := fh.Open()
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		return fh.Filename, raw, err
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, errors.New("request body is empty")
	}
	return c.DefaultQuery("name", "upload.csv"), raw, nil
}

// isTooLarge reports whether err came from the upload size limit. The
// multipart reader does not always wrap it.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
