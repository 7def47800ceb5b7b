// Package scheduler runs the periodic platform health sweep on a cron
// schedule. Sweep results are persisted so surfaces and the CLI can show
// availability without triggering canary translations themselves.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lexhover/lexhover/internal/entities"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/storage"
)

const sweepTimeout = 2 * time.Minute

// HealthSweepScheduler periodically checks every registered platform.
type HealthSweepScheduler struct {
	registry *providers.Registry
	store    *storage.Store
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSweeping bool
	cancelFunc context.CancelFunc
}

// NewHealthSweepScheduler creates a scheduler with a standard five-field
// cron schedule, e.g. "*/30 * * * *".
func NewHealthSweepScheduler(registry *providers.Registry, store *storage.Store, schedule string) *HealthSweepScheduler {
	return &HealthSweepScheduler{
		registry: registry,
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. An empty schedule disables it.
func (s *HealthSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Health sweep scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Health sweep scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (s *HealthSweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Health sweep scheduler: stopped")
}

// RunNow triggers an immediate sweep.
func (s *HealthSweepScheduler) RunNow() {
	go s.runSweep()
}

// IsRunning reports whether the scheduler is active.
func (s *HealthSweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sweep will occur, or nil when the
// scheduler is not running.
func (s *HealthSweepScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *HealthSweepScheduler) runSweep() {
	s.mu.Lock()
	if s.isSweeping {
		s.mu.Unlock()
		log.Printf("Health sweep: skipped (already sweeping)")
		return
	}
	s.isSweeping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSweeping = false
		s.mu.Unlock()
	}()

	log.Printf("Health sweep: checking platforms")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	health := s.registry.Health(ctx)

	snapshot := providers.HealthSnapshot{
		CheckedAt: time.Now().UnixMilli(),
		Platforms: health,
	}
	if err := s.store.Put(entities.KeyPlatformHealth, snapshot); err != nil {
		log.Printf("Health sweep: failed to persist snapshot: %v", err)
		return
	}

	available := 0
	for _, h := range health {
		if h.Available {
			available++
		}
	}
	log.Printf("Health sweep: %d/%d platforms available in %v",
		available, len(health), time.Since(startTime).Round(time.Millisecond))
}
