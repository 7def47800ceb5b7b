package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/exporters"
)

// TaskEnqueuer queues background phonetic enrichment. nil disables the
// enrichment endpoints.
type TaskEnqueuer interface {
	EnqueuePhoneticEnrichment(itemID string) error
	EnqueueAllMissingPhonetics() error
}

type VocabularyController struct {
	vocabulary *collections.Vocabulary
	tasks      TaskEnqueuer
}

func NewVocabularyController(vocabulary *collections.Vocabulary, tasks TaskEnqueuer) *VocabularyController {
	return &VocabularyController{
		vocabulary: vocabulary,
		tasks:      tasks,
	}
}

// List handles GET /api/vocabulary. Optional filters: q (text search),
// tag, favorite=true.
func (v *VocabularyController) List(c *gin.Context) {
	var (
		items []entities.VocabularyItem
		err   error
	)
	switch {
	case c.Query("q") != "":
		items, err = v.vocabulary.Search(c.Query("q"))
	case c.Query("tag") != "":
		items, err = v.vocabulary.FilterByTag(c.Query("tag"))
	case c.Query("favorite") == "true":
		items, err = v.vocabulary.Favorites()
	default:
		items, err = v.vocabulary.Items()
	}
	if err != nil {
		respondInternalError(c, err, "list vocabulary")
		return
	}
	if items == nil {
		items = []entities.VocabularyItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type addVocabularyRequest struct {
	OriginalText   string   `json:"originalText"`
	TranslatedText string   `json:"translatedText"`
	SourceLanguage string   `json:"sourceLanguage"`
	TargetLanguage string   `json:"targetLanguage"`
	Platform       string   `json:"platform"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
}

// Add handles POST /api/vocabulary.
func (v *VocabularyController) Add(c *gin.Context) {
	var req addVocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := v.vocabulary.Add(collections.AddRequest{
		OriginalText:   req.OriginalText,
		TranslatedText: req.TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Platform:       req.Platform,
		Tags:           req.Tags,
		Notes:          req.Notes,
	})
	if err != nil {
		respondDomainError(c, err, "add vocabulary item")
		return
	}

	if item.Phonetic == nil && v.tasks != nil {
		if err := v.tasks.EnqueuePhoneticEnrichment(item.ID); err != nil {
			respondInternalError(c, err, "enqueue phonetic enrichment")
			return
		}
	}

	c.JSON(http.StatusCreated, item)
}

// Get handles GET /api/vocabulary/:id.
func (v *VocabularyController) Get(c *gin.Context) {
	item, err := v.vocabulary.Get(c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get vocabulary item")
		return
	}
	if item == nil {
		respondNotFound(c, "vocabulary item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update handles PATCH /api/vocabulary/:id with a partial update.
func (v *VocabularyController) Update(c *gin.Context) {
	var update entities.VocabularyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid update: "+err.Error())
		return
	}

	item, err := v.vocabulary.Update(c.Param("id"), update)
	if err != nil {
		respondInternalError(c, err, "update vocabulary item")
		return
	}
	if item == nil {
		respondNotFound(c, "vocabulary item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /api/vocabulary/:id.
func (v *VocabularyController) Remove(c *gin.Context) {
	if err := v.vocabulary.Remove(c.Param("id")); err != nil {
		respondInternalError(c, err, "remove vocabulary item")
		return
	}
	respondSuccess(c, "removed")
}

// Clear handles DELETE /api/vocabulary.
func (v *VocabularyController) Clear(c *gin.Context) {
	if err := v.vocabulary.Clear(); err != nil {
		respondInternalError(c, err, "clear vocabulary")
		return
	}
	respondSuccess(c, "vocabulary cleared")
}

// ToggleFavorite handles POST /api/vocabulary/:id/favorite.
func (v *VocabularyController) ToggleFavorite(c *gin.Context) {
	item, err := v.vocabulary.ToggleFavorite(c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "toggle favorite")
		return
	}
	if item == nil {
		respondNotFound(c, "vocabulary item")
		return
	}
	c.JSON(http.StatusOK, item)
}

type reviewRequest struct {
	Difficulty entities.Difficulty `json:"difficulty"`
}

// MarkReviewed handles POST /api/vocabulary/:id/review.
func (v *VocabularyController) MarkReviewed(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	item, err := v.vocabulary.MarkAsReviewed(c.Param("id"), req.Difficulty)
	if err != nil {
		respondInternalError(c, err, "mark reviewed")
		return
	}
	if item == nil {
		respondNotFound(c, "vocabulary item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Stats handles GET /api/vocabulary/stats.
func (v *VocabularyController) Stats(c *gin.Context) {
	stats, err := v.vocabulary.Stats()
	if err != nil {
		respondInternalError(c, err, "vocabulary stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export handles GET /api/vocabulary/export?format=csv|json|txt. The
// format defaults to the collection's configured export format.
func (v *VocabularyController) Export(c *gin.Context) {
	formatName := c.Query("format")
	if formatName == "" {
		cfg, err := v.vocabulary.Config()
		if err != nil {
			respondInternalError(c, err, "get vocabulary config")
			return
		}
		formatName = cfg.ExportFormat
	}

	format, err := exporters.ParseFormat(formatName)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	items, err := v.vocabulary.Items()
	if err != nil {
		respondInternalError(c, err, "list vocabulary")
		return
	}

	out, err := exporters.ExportVocabulary(items, format)
	if err != nil {
		respondInternalError(c, err, "export vocabulary")
		return
	}

	filename := fmt.Sprintf("vocabulary-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exportContentType(format), []byte(out))
}

func exportContentType(format exporters.Format) string {
	switch format {
	case exporters.FormatJSON:
		return "application/json; charset=utf-8"
	case exporters.FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// EnrichAll handles POST /api/vocabulary/enrich-all.
func (v *VocabularyController) EnrichAll(c *gin.Context) {
	if v.tasks == nil {
		respondBadRequest(c, "task queue not configured")
		return
	}
	if err := v.tasks.EnqueueAllMissingPhonetics(); err != nil {
		respondInternalError(c, err, "enqueue enrichment sweep")
		return
	}
	respondAccepted(c, "phonetic enrichment queued", nil)
}

// GetConfig handles GET /api/vocabulary/config.
func (v *VocabularyController) GetConfig(c *gin.Context) {
	cfg, err := v.vocabulary.Config()
	if err != nil {
		respondInternalError(c, err, "get vocabulary config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig handles PUT /api/vocabulary/config.
func (v *VocabularyController) UpdateConfig(c *gin.Context) {
	var cfg entities.VocabularyConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if cfg.MaxVocabularyItems <= 0 {
		respondBadRequest(c, "maxVocabularyItems must be positive")
		return
	}
	if err := v.vocabulary.SetConfig(cfg); err != nil {
		respondInternalError(c, err, "update vocabulary config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}
