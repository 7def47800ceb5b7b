package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/storage"
)

// ConfigsController reads and writes the hover, phonetic and translate
// configs. Writes go straight to storage; interested components pick
// them up through the change feed.
type ConfigsController struct {
	store *storage.Store
}

func NewConfigsController(store *storage.Store) *ConfigsController {
	return &ConfigsController{store: store}
}

// GetHover handles GET /api/config/hover.
func (cc *ConfigsController) GetHover(c *gin.Context) {
	cfg := entities.DefaultHoverConfig()
	if _, err := cc.store.Get(entities.KeyHoverConfig, &cfg); err != nil {
		respondInternalError(c, err, "get hover config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateHover handles PUT /api/config/hover.
func (cc *ConfigsController) UpdateHover(c *gin.Context) {
	var cfg entities.HoverConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if cfg.DelayMs < 0 || cfg.AutoCloseDelayMs < 0 {
		respondBadRequest(c, "delays must not be negative")
		return
	}
	if err := cc.store.Put(entities.KeyHoverConfig, cfg); err != nil {
		respondInternalError(c, err, "update hover config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetPhonetic handles GET /api/config/phonetic.
func (cc *ConfigsController) GetPhonetic(c *gin.Context) {
	cfg := entities.DefaultPhoneticConfig()
	if _, err := cc.store.Get(entities.KeyPhoneticConfig, &cfg); err != nil {
		respondInternalError(c, err, "get phonetic config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdatePhonetic handles PUT /api/config/phonetic.
func (cc *ConfigsController) UpdatePhonetic(c *gin.Context) {
	var cfg entities.PhoneticConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if err := cc.store.Put(entities.KeyPhoneticConfig, cfg); err != nil {
		respondInternalError(c, err, "update phonetic config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetTranslate handles GET /api/config/translate.
func (cc *ConfigsController) GetTranslate(c *gin.Context) {
	cfg := entities.DefaultTranslateConfig()
	if _, err := cc.store.Get(entities.KeyTranslateConfig, &cfg); err != nil {
		respondInternalError(c, err, "get translate config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateTranslate handles PUT /api/config/translate.
func (cc *ConfigsController) UpdateTranslate(c *gin.Context) {
	var cfg entities.TranslateConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondBadRequest(c, "invalid config: "+err.Error())
		return
	}
	if cfg.Platform == "" {
		respondBadRequest(c, "platform is required")
		return
	}
	if err := cc.store.Put(entities.KeyTranslateConfig, cfg); err != nil {
		respondInternalError(c, err, "update translate config")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetLastWord handles GET /api/last-word.
func (cc *ConfigsController) GetLastWord(c *gin.Context) {
	var word entities.LastWord
	found, err := cc.store.Get(entities.KeyLastWord, &word)
	if err != nil {
		respondInternalError(c, err, "get last word")
		return
	}
	if !found {
		respondNotFound(c, "last word")
		return
	}
	c.JSON(http.StatusOK, word)
}
