// Package scheduler runs the periodic jobs the server needs. Currently
// that is only the demo mode catalog reset.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/demo"
)

// DemoResetScheduler periodically restores the demo catalog so a public
// demo instance always comes back to a clean state.
type DemoResetScheduler struct {
	db  *database.Database
	cfg config.Demo

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewDemoResetScheduler creates a new scheduler instance.
func NewDemoResetScheduler(db *database.Database, cfg config.Demo) *DemoResetScheduler {
	return &DemoResetScheduler{
		db:   db,
		cfg:  cfg,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if demo mode is enabled.
func (s *DemoResetScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Demo reset scheduler: disabled")
		return nil
	}

	if s.cfg.ResetSchedule == "" {
		log.Printf("Demo reset scheduler: no schedule configured, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.ResetSchedule, func() {
		s.runReset()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule demo reset job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Demo reset scheduler: started with schedule '%s'", s.cfg.ResetSchedule)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *DemoResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Demo reset scheduler: stopped")
}

// RunNow triggers an immediate reset.
func (s *DemoResetScheduler) RunNow() error {
	go s.runReset()
	return nil
}

// IsRunning returns whether the scheduler is active.
func (s *DemoResetScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *DemoResetScheduler) runReset() {
	log.Printf("Demo reset: restoring catalog")
	if err := demo.Reset(s.db); err != nil {
		log.Printf("Demo reset failed: %v", err)
		return
	}
	log.Printf("Demo reset: done")
}
