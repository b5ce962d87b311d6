package handlers

import (
	"net/http"

	"cane-forecast/internal/api/models"
	"cane-forecast/internal/data"
	"cane-forecast/internal/model"
	"cane-forecast/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler handles session lifecycle requests
type SessionHandler struct {
	store  *session.Store
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *session.Store, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{store: store, logger: logger}
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.store.Create()
	h.logger.Info("session started", zap.String("session_id", sess.ID))
	c.JSON(http.StatusCreated, models.SessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := lookupSession(c, h.store)
	if !ok {
		return
	}
	resp := models.SessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt}
	if ds, ok := sess.Cache.Current(); ok {
		info := datasetInfo(ds, false)
		resp.Dataset = &info
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if !h.store.Delete(id) {
		writeError(c, session.ErrNotFound)
		return
	}
	h.logger.Info("session ended", zap.String("session_id", id))
	c.Status(http.StatusNoContent)
}

func lookupSession(c *gin.Context, store *session.Store) (*session.Session, bool) {
	sess, err := store.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return sess, true
}

// lookupDataset resolves the session's current dataset. Without one every
// analysis request is refused.
func lookupDataset(c *gin.Context, store *session.Store) (*data.Dataset, bool) {
	sess, ok := lookupSession(c, store)
	if !ok {
		return nil, false
	}
	ds, ok := sess.Cache.Current()
	if !ok {
		writeError(c, model.ErrNoDataset)
		return nil, false
	}
	return ds, true
}

func datasetInfo(ds *data.Dataset, cached bool) models.DatasetInfo {
	return models.DatasetInfo{
		ID:               ds.ID,
		Name:             ds.Name,
		Rows:             ds.Rows,
		Orders:           ds.Len(),
		SkippedRows:      ds.Skipped,
		AssetSynthesized: ds.AssetSynthesized,
		LoadedAt:         ds.LoadedAt,
		Cached:           cached,
	}
}
