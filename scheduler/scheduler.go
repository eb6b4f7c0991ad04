package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pitchprice/config"
)

// Triggerable allows workers to be kicked by the schedule
type Triggerable interface {
	Trigger()
}

// Scheduler drives the refresh worker from either a cron expression or a
// fixed interval. The worker owns the actual reload; the scheduler only
// decides when.
type Scheduler struct {
	cfg     *config.Config
	refresh Triggerable
	cron    *cron.Cron
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func New(cfg *config.Config, refresh Triggerable) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		refresh: refresh,
		cron:    cron.New(),
		stopCh:  make(chan struct{}),
	}
}

func (s *Scheduler) Start() error {
	if s.cfg.Refresh.Cron != "" {
		log.Printf("Starting refresh schedule with cron: %s", s.cfg.Refresh.Cron)
		_, err := s.cron.AddFunc(s.cfg.Refresh.Cron, s.refresh.Trigger)
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		s.cron.Start()
	} else if s.cfg.Refresh.Interval > 0 {
		log.Printf("Starting refresh schedule with interval: %s", s.cfg.Refresh.Interval)
		s.ticker = time.NewTicker(s.cfg.Refresh.Interval)
		go func() {
			for {
				select {
				case <-s.ticker.C:
					s.refresh.Trigger()
				case <-s.stopCh:
					return
				}
			}
		}()
	} else {
		log.Println("No refresh schedule configured, data loads once at startup")
	}

	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopCh)
}
