package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
)

type fakeWarmer struct {
	mu      sync.Mutex
	calls   int
	err     error
	release chan struct{}
}

func (f *fakeWarmer) AccessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}

	return "token", f.err
}

func (f *fakeWarmer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestConfig(cron string) *config.Config {
	return &config.Config{
		Ogury: config.Ogury{
			HTTPTimeout:       time.Second,
			TokenPrefetchCron: cron,
		},
	}
}

func TestTokenPrefetchService_DisabledWithoutSchedule(t *testing.T) {
	warmer := &fakeWarmer{}
	service := NewTokenPrefetchService(warmer, newTestConfig(""))

	require.NoError(t, service.Start(context.Background()))

	assert.Equal(t, 0, len(service.scheduler.Jobs()))
	assert.Equal(t, 0, warmer.Calls())
}

func TestTokenPrefetchService_InvalidSchedule(t *testing.T) {
	service := NewTokenPrefetchService(&fakeWarmer{}, newTestConfig("not a cron"))

	err := service.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule token prefetch")
}

func TestTokenPrefetchService_StartSchedulesJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewTokenPrefetchService(&fakeWarmer{}, newTestConfig("*/30 * * * *"))

	require.NoError(t, service.Start(ctx))

	assert.Len(t, service.scheduler.Jobs(), 1)
	assert.True(t, service.scheduler.IsRunning())
}

func TestTokenPrefetchService_Prefetch(t *testing.T) {
	t.Run("records success", func(t *testing.T) {
		warmer := &fakeWarmer{}
		service := NewTokenPrefetchService(warmer, newTestConfig("*/30 * * * *"))

		service.prefetch(context.Background())

		lastRun, err := service.LastRun()
		assert.NoError(t, err)
		assert.False(t, lastRun.IsZero())
		assert.Equal(t, 1, warmer.Calls())
	})

	t.Run("records failure", func(t *testing.T) {
		warmer := &fakeWarmer{err: errors.New("authentication failed: 401 Unauthorized")}
		service := NewTokenPrefetchService(warmer, newTestConfig("*/30 * * * *"))

		service.prefetch(context.Background())

		_, err := service.LastRun()
		assert.EqualError(t, err, "authentication failed: 401 Unauthorized")
	})

	t.Run("overlapping runs are skipped", func(t *testing.T) {
		warmer := &fakeWarmer{release: make(chan struct{})}
		service := NewTokenPrefetchService(warmer, newTestConfig("*/30 * * * *"))

		done := make(chan struct{})
		go func() {
			service.prefetch(context.Background())
			close(done)
		}()

		require.Eventually(t, func() bool { return warmer.Calls() == 1 }, time.Second, 5*time.Millisecond)

		service.prefetch(context.Background())
		assert.Equal(t, 1, warmer.Calls())

		close(warmer.release)
		<-done
	})
}
