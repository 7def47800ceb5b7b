package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/config"
	"github.com/lexhover/lexhover/internal/coordinator"
	http_controllers "github.com/lexhover/lexhover/internal/http"
	"github.com/lexhover/lexhover/internal/phonetic"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/router"
	"github.com/lexhover/lexhover/internal/scheduler"
	"github.com/lexhover/lexhover/internal/storage"
	"github.com/lexhover/lexhover/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// within the configured timeout. onShutdown runs before the listener
// closes so in-flight work can drain first.
func Serve(engine *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: engine,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the whole daemon together: storage, provider registry,
// collections, phonetics, message router, coordinator, task queue,
// health sweep scheduler and the HTTP surface.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting LexHover v%s", version)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	registry := providers.NewRegistry(store)
	history := collections.NewHistory(store)
	vocabulary := collections.NewVocabulary(store)
	phonetics := phonetic.NewService(store)
	messageRouter := router.New()

	// Task queue for background phonetic enrichment.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichPhoneticQueue(vocabulary, phonetics),
			tasks.NewEnrichAllMissingPhoneticsQueue(vocabulary, phonetics),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	var enqueuer coordinator.PhoneticEnqueuer
	if taskClient != nil {
		enqueuer = taskClient
	}

	coord, err := coordinator.New(store, registry, history, vocabulary, phonetics, messageRouter, enqueuer)
	if err != nil {
		log.Fatalf("Failed to initialize coordinator: %v", err)
	}
	defer coord.Close()

	// Periodic provider availability sweep.
	sweeper := scheduler.NewHealthSweepScheduler(registry, store, cfg.HealthSweep.Schedule)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	if err := sweeper.Start(sweepCtx); err != nil {
		log.Fatalf("Failed to start health sweep scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:         store,
		Registry:      registry,
		History:       history,
		Vocabulary:    vocabulary,
		MessageRouter: messageRouter,
		Hover:         coord.Hover(),
		Selection:     coord.Selection(),
		Sweeper:       sweeper,
		Version:       version,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	engine := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		sweeper.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(engine, cfg, onShutdown)
}
