package jobs

import (
	"fmt"
	"time"

	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionJanitor periodically marks abandoned in-progress sessions as paused.
// Pausing is an administrative action outside the progression state machine;
// a paused session resumes the moment the user asks for questions again.
type SessionJanitor struct {
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	cron        *cron.Cron
}

func NewSessionJanitor(sessionRepo repository.SessionRepository, cfg *config.Config) *SessionJanitor {
	return &SessionJanitor{
		sessionRepo: sessionRepo,
		cfg:         cfg,
		cron:        cron.New(),
	}
}

// Start schedules the janitor. No-op when disabled.
func (j *SessionJanitor) Start() error {
	if !j.cfg.Janitor.Enabled {
		log.Info().Msg("Session janitor is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.cfg.Janitor.Schedule, func() {
		if err := j.RunOnce(); err != nil {
			log.Error().Err(err).Msg("Session janitor run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session janitor: %w", err)
	}

	j.cron.Start()
	log.Info().Str("schedule", j.cfg.Janitor.Schedule).
		Dur("idleTimeout", j.cfg.Janitor.IdleTimeout).Msg("Session janitor started")
	return nil
}

// RunOnce pauses every in-progress session idle past the configured timeout.
func (j *SessionJanitor) RunOnce() error {
	cutoff := time.Now().Add(-j.cfg.Janitor.IdleTimeout)
	paused, err := j.sessionRepo.PauseIdleSince(cutoff)
	if err != nil {
		return fmt.Errorf("failed to pause idle sessions: %w", err)
	}
	if paused > 0 {
		log.Info().Int64("sessions", paused).Time("cutoff", cutoff).Msg("Paused idle interview sessions")
	}
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (j *SessionJanitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}
