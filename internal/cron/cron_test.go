package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCleaner struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (f *fakeCleaner) CleanupOldLogs(_ context.Context, days int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, days)
	return 3, f.err
}

func (f *fakeCleaner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRunCleanup_ImmediateThenTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cleaner := &fakeCleaner{}
	done := make(chan struct{})

	go func() {
		runCleanup(ctx, cleaner, 30, zap.NewNop(), time.NewTicker(5*time.Millisecond))
		close(done)
	}()

	assert.Eventually(t, func() bool { return cleaner.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, 30, cleaner.calls[0])
}

func TestStartCleanupTask_Disabled(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("unused")}
	StartCleanupTask(context.Background(), cleaner, 0, zap.NewNop())
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, cleaner.count())
}
