// Package http exposes the daemon's API: the message endpoint the page
// surfaces talk to, REST endpoints for the collections and configs, and
// a server-sent event stream carrying coordinator broadcasts.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/router"
	"github.com/lexhover/lexhover/internal/session"
	"github.com/lexhover/lexhover/internal/storage"
)

// RouterConfig carries every dependency the HTTP router needs. Optional
// fields (TaskClient, Sweeper) may be nil; their endpoints degrade
// gracefully.
type RouterConfig struct {
	Store         *storage.Store
	Registry      *providers.Registry
	History       *collections.History
	Vocabulary    *collections.Vocabulary
	MessageRouter *router.Router
	Hover         *session.HoverSession
	Selection     *session.SelectionPipeline
	TaskClient    TaskEnqueuer
	Sweeper       HealthSweeper
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())

	health := NewHealthController(cfg.Store, cfg.Version)
	message := NewMessageController(cfg.MessageRouter)
	events := NewEventsController(cfg.MessageRouter)
	history := NewHistoryController(cfg.History)
	vocabulary := NewVocabularyController(cfg.Vocabulary, cfg.TaskClient)
	configs := NewConfigsController(cfg.Store)
	platforms := NewProvidersController(cfg.Registry, cfg.Store, cfg.Sweeper)
	sessions := NewSessionController(cfg.Hover, cfg.Selection, cfg.MessageRouter)

	// Health endpoints
	engine.GET("/health", health.Status)
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Cross-context messaging
	engine.POST("/api/message", message.Dispatch)
	engine.GET("/api/events", events.Stream)

	// Interaction state
	engine.POST("/api/selection", sessions.PostSelection)
	engine.GET("/api/hover", sessions.GetHover)
	engine.POST("/api/hover/dismiss", sessions.DismissHover)
	engine.POST("/api/hover/favorite", sessions.FavoriteHover)
	engine.POST("/api/panel/open", sessions.PanelOpen)

	// Translation endpoints
	engine.POST("/api/translate", platforms.Translate)
	engine.GET("/api/providers", platforms.List)
	engine.GET("/api/providers/health", platforms.Health)
	engine.PUT("/api/providers/:code/config", platforms.UpdateConfig)

	// History endpoints
	engine.GET("/api/history", history.List)
	engine.GET("/api/history/stats", history.Stats)
	engine.GET("/api/history/config", history.GetConfig)
	engine.PUT("/api/history/config", history.UpdateConfig)
	engine.DELETE("/api/history/:id", history.Remove)
	engine.DELETE("/api/history", history.Clear)

	// Vocabulary endpoints
	engine.GET("/api/vocabulary", vocabulary.List)
	engine.POST("/api/vocabulary", vocabulary.Add)
	engine.GET("/api/vocabulary/stats", vocabulary.Stats)
	engine.GET("/api/vocabulary/export", vocabulary.Export)
	engine.GET("/api/vocabulary/config", vocabulary.GetConfig)
	engine.PUT("/api/vocabulary/config", vocabulary.UpdateConfig)
	engine.POST("/api/vocabulary/enrich-all", vocabulary.EnrichAll)
	engine.GET("/api/vocabulary/:id", vocabulary.Get)
	engine.PATCH("/api/vocabulary/:id", vocabulary.Update)
	engine.DELETE("/api/vocabulary/:id", vocabulary.Remove)
	engine.DELETE("/api/vocabulary", vocabulary.Clear)
	engine.POST("/api/vocabulary/:id/favorite", vocabulary.ToggleFavorite)
	engine.POST("/api/vocabulary/:id/review", vocabulary.MarkReviewed)

	// Config endpoints
	engine.GET("/api/config/hover", configs.GetHover)
	engine.PUT("/api/config/hover", configs.UpdateHover)
	engine.GET("/api/config/phonetic", configs.GetPhonetic)
	engine.PUT("/api/config/phonetic", configs.UpdatePhonetic)
	engine.GET("/api/config/translate", configs.GetTranslate)
	engine.PUT("/api/config/translate", configs.UpdateTranslate)
	engine.GET("/api/last-word", configs.GetLastWord)

	return engine
}
