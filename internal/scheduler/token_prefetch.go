package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
)

// TokenWarmer is satisfied by the Ogury token manager.
type TokenWarmer interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenPrefetchService periodically asks the token manager for a token so an
// expiring one is refreshed before a tool call needs it.
type TokenPrefetchService struct {
	scheduler    *gocron.Scheduler
	cronSchedule string
	tokens       TokenWarmer
	timeout      time.Duration

	runMutex    sync.Mutex
	running     bool
	lastRunAt   time.Time
	lastFailure error
}

func NewTokenPrefetchService(tokens TokenWarmer, cfg *config.Config) *TokenPrefetchService {
	timeout := cfg.Ogury.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &TokenPrefetchService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cronSchedule: cfg.Ogury.TokenPrefetchCron,
		tokens:       tokens,
		timeout:      timeout,
	}
}

// Start schedules the prefetch job. An empty schedule leaves it disabled.
func (s *TokenPrefetchService) Start(ctx context.Context) error {
	if s.cronSchedule == "" {
		logrus.Debug("scheduler: token prefetch disabled")
		return nil
	}

	logrus.WithField("cron", s.cronSchedule).Info("scheduler: starting token prefetch")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.prefetch(ctx)
	})
	if err != nil {
		return errors.Wrap(err, "schedule token prefetch")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping token prefetch")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *TokenPrefetchService) prefetch(ctx context.Context) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Debug("scheduler: token prefetch already running, skipping")
		return
	}
	s.running = true
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.runMutex.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.tokens.AccessToken(runCtx)

	s.runMutex.Lock()
	s.lastRunAt = time.Now()
	s.lastFailure = err
	s.runMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Warn("scheduler: token prefetch failed")
		return
	}

	logrus.Debug("scheduler: token prefetch completed")
}

// LastRun reports when the job last ran and the error it ended with, if any.
func (s *TokenPrefetchService) LastRun() (time.Time, error) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return s.lastRunAt, s.lastFailure
}
