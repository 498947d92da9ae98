package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingJob signals each start and blocks until released or timed out.
type blockingJob struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func newBlockingJob() *blockingJob {
	return &blockingJob{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (j *blockingJob) ProcessBatch(ctx context.Context) error {
	j.calls.Add(1)
	select {
	case j.started <- struct{}{}:
	default:
	}
	select {
	case <-j.release:
	case <-ctx.Done():
	}
	return j.err
}

func waitStarted(t *testing.T, j *blockingJob) {
	t.Helper()
	select {
	case <-j.started:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("ProcessBatch was not called in time")
	}
}

func TestScheduler_StartsStopped(t *testing.T) {
	job := newBlockingJob()
	s := NewSchedulerService("test", job, 5*time.Millisecond, time.Second)
	t.Cleanup(func() { _ = s.Close() })

	time.Sleep(30 * time.Millisecond)
	assert.False(t, s.IsRunning())
	assert.Zero(t, job.calls.Load())
}

func TestScheduler_StartTriggersBatch(t *testing.T) {
	job := newBlockingJob()
	close(job.release)
	s := NewSchedulerService("test", job, 10*time.Millisecond, time.Second)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Start())

	waitStarted(t, job)
	assert.True(t, s.IsRunning())
}

func TestScheduler_StopWaitsForBatch(t *testing.T) {
	job := newBlockingJob()
	s := NewSchedulerService("test", job, 5*time.Millisecond, 2*time.Second)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Start())
	waitStarted(t, job)

	stopped := make(chan error, 1)
	go func() { stopped <- s.Stop() }()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the batch was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(job.release)

	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Stop did not return after the batch finished")
	}
	assert.False(t, s.IsRunning())
}

func TestScheduler_StatusDuringBatch(t *testing.T) {
	job := newBlockingJob()
	s := NewSchedulerService("test", job, 5*time.Millisecond, 2*time.Second)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Start())
	waitStarted(t, job)

	assert.True(t, s.IsRunning(), "control loop must answer while a batch runs")

	close(job.release)
	require.NoError(t, s.Stop())
}

func TestScheduler_BatchErrorKeepsRunning(t *testing.T) {
	job := newBlockingJob()
	job.err = errors.New("db down")
	close(job.release)
	s := NewSchedulerService("test", job, 5*time.Millisecond, time.Second)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool { return job.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, s.IsRunning())
}

func TestScheduler_RaceStartStop(t *testing.T) {
	job := newBlockingJob()
	s := NewSchedulerService("test", job, 5*time.Millisecond, 50*time.Millisecond)
	t.Cleanup(func() { _ = s.Close() })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Start()
		}()
		go func() {
			defer wg.Done()
			_ = s.Stop()
		}()
	}
	wg.Wait()
}

func TestScheduler_CloseEndsLoop(t *testing.T) {
	job := newBlockingJob()
	s := NewSchedulerService("test", job, 5*time.Millisecond, 2*time.Second)

	require.NoError(t, s.Start())
	waitStarted(t, job)

	closed := make(chan error, 1)
	go func() { closed <- s.Close() }()

	select {
	case <-closed:
		t.Fatal("Close returned while the batch was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(job.release)

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Close did not return after the batch finished")
	}

	assert.ErrorIs(t, s.Start(), ErrClosed)
	assert.ErrorIs(t, s.Stop(), ErrClosed)
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Close())
}
