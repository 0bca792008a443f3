package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pdro-dev/wheelscreener/internal/universe"
	"github.com/pdro-dev/wheelscreener/pkg/config"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// prewarmTimeout bounds one full universe warm-up pass
const prewarmTimeout = 2 * time.Minute

// Scheduler runs periodic background jobs. The only job today is the
// cache prewarm pass that keeps the hot path serving warm series.
type Scheduler struct {
	cron     *cron.Cron
	cronSpec string
	universe *universe.Universe
	fetch    func(ctx context.Context, symbol string)
	logger   *logger.Logger
}

func New(cfg *config.Config, uni *universe.Universe, fetch func(ctx context.Context, symbol string), log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cronSpec: cfg.Screening.PrewarmCron,
		universe: uni,
		fetch:    fetch,
		logger:   log,
	}
}

// Start registers the prewarm job and starts the cron loop
func (s *Scheduler) Start() error {
	if s.cronSpec == "" {
		s.logger.Info("prewarm disabled, no cron spec configured")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cronSpec, s.prewarm); err != nil {
		return fmt.Errorf("register prewarm job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("cron", s.cronSpec).Info("prewarm scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("prewarm scheduler stopped")
}

// prewarm fetches every universe symbol so the series cache stays fresh
// between requests
func (s *Scheduler) prewarm() {
	ctx, cancel := context.WithTimeout(context.Background(), prewarmTimeout)
	defer cancel()

	start := time.Now()
	warmed := 0
	for _, symbol := range s.universe.Symbols() {
		if ctx.Err() != nil {
			s.logger.Warn("prewarm pass aborted, timeout reached")
			return
		}
		s.fetch(ctx, symbol)
		warmed++
	}

	s.logger.WithFields(map[string]interface{}{
		"symbols": warmed,
		"elapsed": time.Since(start).String(),
	}).Info("prewarm pass finished")
}
