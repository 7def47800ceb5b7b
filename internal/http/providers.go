package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/storage"
)

// HealthSweeper triggers an immediate platform health sweep. nil
// disables the refresh parameter.
type HealthSweeper interface {
	RunNow()
}

type ProvidersController struct {
	registry *providers.Registry
	store    *storage.Store
	sweeper  HealthSweeper
}

func NewProvidersController(registry *providers.Registry, store *storage.Store, sweeper HealthSweeper) *ProvidersController {
	return &ProvidersController{
		registry: registry,
		store:    store,
		sweeper:  sweeper,
	}
}

type platformInfo struct {
	Code         string                  `json:"code"`
	Name         string                  `json:"name"`
	Languages    []providers.Language    `json:"languages"`
	ConfigSchema []providers.ConfigField `json:"configSchema,omitempty"`
}

// List handles GET /api/providers.
func (p *ProvidersController) List(c *gin.Context) {
	platforms := p.registry.Platforms()
	out := make([]platformInfo, 0, len(platforms))
	for _, platform := range platforms {
		out = append(out, platformInfo{
			Code:         platform.Code(),
			Name:         platform.Name(),
			Languages:    platform.Languages(),
			ConfigSchema: platform.ConfigSchema(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"platforms": out})
}

// Health handles GET /api/providers/health, serving the last persisted
// sweep snapshot. refresh=true queues a new sweep first-come.
func (p *ProvidersController) Health(c *gin.Context) {
	if c.Query("refresh") == "true" && p.sweeper != nil {
		p.sweeper.RunNow()
		respondAccepted(c, "health sweep queued", nil)
		return
	}

	var snapshot providers.HealthSnapshot
	found, err := p.store.Get(entities.KeyPlatformHealth, &snapshot)
	if err != nil {
		respondInternalError(c, err, "get health snapshot")
		return
	}
	if !found {
		respondNotFound(c, "health snapshot")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// UpdateConfig handles PUT /api/providers/:code/config with the
// platform's config fields, e.g. an API key.
func (p *ProvidersController) UpdateConfig(c *gin.Context) {
	code := c.Param("code")
	if _, err := p.registry.Get(code); err != nil {
		respondDomainError(c, err, "get platform")
		return
	}

	var cfg map[string]string
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if err := p.store.Put(entities.KeyPlatformConfig(code), cfg); err != nil {
		respondInternalError(c, err, "store platform config")
		return
	}
	respondSuccess(c, "config updated")
}

type translateRequest struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Platform string `json:"platform"`
}

// Translate handles POST /api/translate, a direct translation for the
// side panel outside any hover session. Omitted fields fall back to the
// stored translate config.
func (p *ProvidersController) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Text == "" {
		respondBadRequest(c, "text is required")
		return
	}

	cfg, err := p.registry.TranslateConfig()
	if err != nil {
		respondInternalError(c, err, "get translate config")
		return
	}
	if req.Platform == "" {
		req.Platform = cfg.Platform
	}
	if req.Source == "" {
		req.Source = cfg.SourceLanguage
	}
	if req.Target == "" {
		req.Target = cfg.TargetLanguage
	}

	result, err := p.registry.Translate(c.Request.Context(), req.Platform, req.Text, req.Source, req.Target)
	if err != nil {
		respondDomainError(c, err, "translate")
		return
	}
	c.JSON(http.StatusOK, result)
}
