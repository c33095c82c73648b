package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPool() *Pool {
	return NewPool(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPool_SubmitRunsTask(t *testing.T) {
	pool := newTestPool()

	done := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("submitted task never ran")
	}
	pool.Shutdown(time.Second)
}

func TestPool_ShutdownWaitsForInFlightTasks(t *testing.T) {
	pool := newTestPool()

	var finished atomic.Bool
	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	<-started
	pool.Shutdown(5 * time.Second)
	assert.True(t, finished.Load())
}

func TestPool_ShutdownCancelsContext(t *testing.T) {
	pool := newTestPool()

	canceled := make(chan struct{})
	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(canceled)
	})

	<-started
	pool.Shutdown(5 * time.Second)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("task context was not canceled on shutdown")
	}
}

func TestPool_SubmitWithTimeoutExpiresContext(t *testing.T) {
	pool := newTestPool()

	expired := make(chan struct{})
	pool.SubmitWithTimeout(20*time.Millisecond, func(ctx context.Context) {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			close(expired)
		}
	})

	select {
	case <-expired:
	case <-time.After(5 * time.Second):
		t.Fatal("task context did not hit its deadline")
	}
	pool.Shutdown(time.Second)
}
