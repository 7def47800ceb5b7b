package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/entities"
)

type HistoryController struct {
	history *collections.History
}

func NewHistoryController(history *collections.History) *HistoryController {
	return &HistoryController{history: history}
}

// List handles GET /api/history. An optional q parameter filters by
// original or translated text.
func (h *HistoryController) List(c *gin.Context) {
	var (
		items []entities.HistoryItem
		err   error
	)
	if query := c.Query("q"); query != "" {
		items, err = h.history.Search(query)
	} else {
		items, err = h.history.Items()
	}
	if err != nil {
		respondInternalError(c, err, "list history")
		return
	}
	if items == nil {
		items = []entities.HistoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// Remove handles DELETE /api/history/:id. Removing an unknown id is a
// no-op, matching the collection semantics.
func (h *HistoryController) Remove(c *gin.Context) {
	if err := h.history.Remove(c.Param("id")); err != nil {
		respondInternalError(c, err, "remove history item")
		return
	}
	respondSuccess(c, "removed")
}

// Clear handles DELETE /api/history.
func (h *HistoryController) Clear(c *gin.Context) {
	if err := h.history.Clear(); err != nil {
		respondInternalError(c, err, "clear history")
		return
	}
	respondSuccess(c, "history cleared")
}

// Stats handles GET /api/history/stats.
func (h *HistoryController) Stats(c *gin.Context) {
	stats, err := h.history.Stats()
	if err != nil {
		respondInternalError(c, err, "history stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetConfig handles GET /api/history/config.
func (h *HistoryController) GetConfig(c *gin.Context) {
	cfg, err := h.history.Config()
	if err != nil {
		respondInternalError(c, err, "get history config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig handles PUT /api/history/config.
func (h *HistoryController) UpdateConfig(c *gin.Context) {
	var cfg entities.HistoryConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if cfg.MaxHistoryItems <= 0 {
		respondBadRequest(c, "maxHistoryItems must be positive")
		return
	}
	if err := h.history.SetConfig(cfg); err != nil {
		respondInternalError(c, err, "update history config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}
