package lazybones_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/lazybones"
	"github.com/danpasecinic/lazybones/lazybonestest"
	"github.com/danpasecinic/lazybones/lifecycle"
)

func newPool(t *testing.T) *ants.Pool {
	t.Helper()

	p, err := ants.NewPool(8)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLaunchOnStarted(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	running := make(chan struct{})

	launched := lazybones.LaunchOnStarted(tl, func(ctx context.Context) error {
		close(running)
		<-ctx.Done()
		return ctx.Err()
	}, lazybones.WithPool(newPool(t)))

	tl.RequireEvent(ctx, lifecycle.EventCreate)
	job := launched.MustValue()
	assert.False(t, job.Started())

	tl.RequireEvent(ctx, lifecycle.EventStart)
	assert.True(t, job.Started())

	select {
	case <-running:
	case <-ctx.Done():
		t.Fatal("job did not start")
	}
	assert.NoError(t, job.Err())

	tl.RequireEvents(ctx, lifecycle.EventStop, lifecycle.EventStart)
	tl.RequireEvents(ctx, lifecycle.EventStop, lifecycle.EventDestroy)

	require.ErrorIs(t, job.Wait(ctx), context.Canceled)
	require.ErrorIs(t, job.Err(), context.Canceled)
}

func TestLaunchOnCreated_BlockResult(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	failure := errors.New("sync failed")

	launched := lazybones.LaunchOnCreated(tl, func(context.Context) error {
		return failure
	}, lazybones.WithPool(newPool(t)))

	tl.RequireEvent(ctx, lifecycle.EventCreate)

	job := launched.MustValue()
	<-job.Done()
	require.ErrorIs(t, job.Err(), failure)
}

func TestLaunchOnResumed_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	ran := false

	launched := lazybones.LaunchOnResumed(tl, func(context.Context) error {
		ran = true
		return nil
	}, lazybones.WithPool(newPool(t)))

	tl.RequireEvents(ctx, lifecycle.EventCreate, lifecycle.EventDestroy)

	job := launched.MustValue()
	require.ErrorIs(t, job.Wait(ctx), context.Canceled)
	assert.False(t, ran)

	job.Cancel()
}

func TestLaunch_RejectedByPool(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	pool.Release()

	launched := lazybones.LaunchOnCreated(tl, func(context.Context) error {
		return nil
	}, lazybones.WithPool(pool))

	err = tl.HandleEvent(context.Background(), lifecycle.EventCreate)
	require.Error(t, err)
	assert.True(t, lazybones.IsReceiverFailed(err))
	assert.True(t, lazybones.IsJobRejected(err))
	require.ErrorIs(t, err, ants.ErrPoolClosed)

	job := launched.MustValue()
	<-job.Done()
	require.ErrorIs(t, job.Err(), ants.ErrPoolClosed)
}

func TestCollectOnStarted(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)

	values := make(chan int)
	received := make(chan int, 3)

	launched := lazybones.CollectOnStarted(tl, values, func(v int) {
		received <- v
	}, lazybones.WithPool(newPool(t)))

	tl.RequireMoveTo(ctx, lifecycle.StateStarted)
	for i := 1; i <= 3; i++ {
		values <- i
	}
	close(values)

	job := launched.MustValue()
	require.NoError(t, job.Wait(ctx))
	assert.Equal(t, 1, <-received)
	assert.Equal(t, 2, <-received)
	assert.Equal(t, 3, <-received)
}

func TestCollectOnCreated_CancelledOnDestroy(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	values := make(chan string)

	launched := lazybones.CollectOnCreated(tl, values, func(string) {}, lazybones.WithPool(newPool(t)))

	tl.RequireEvent(ctx, lifecycle.EventCreate)
	values <- "first"
	tl.RequireEvent(ctx, lifecycle.EventDestroy)

	require.ErrorIs(t, launched.MustValue().Wait(ctx), context.Canceled)
}

func TestCollectOnResumed(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	values := make(chan int, 1)
	got := make(chan int, 1)

	launched := lazybones.CollectOnResumed(tl, values, func(v int) { got <- v }, lazybones.WithPool(newPool(t)))

	values <- 7
	tl.RequireMoveTo(ctx, lifecycle.StateStarted)
	assert.False(t, launched.MustValue().Started())

	tl.RequireEvent(ctx, lifecycle.EventResume)
	assert.Equal(t, 7, <-got)
}

func TestRepeatOnLifecycle(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)
	runs := make(chan struct{}, 4)

	repeating := lazybones.RepeatOnLifecycle(tl, lazybones.PhaseStart, func(ctx context.Context) error {
		runs <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}, lazybones.WithPool(newPool(t)))

	tl.RequireMoveTo(ctx, lifecycle.StateStarted)
	<-runs
	r := repeating.MustValue()
	first := r.Current()
	require.NotNil(t, first)

	tl.RequireEvent(ctx, lifecycle.EventStop)
	require.ErrorIs(t, first.Wait(ctx), context.Canceled)

	tl.RequireEvent(ctx, lifecycle.EventStart)
	<-runs
	second := r.Current()
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, r.Runs())

	tl.RequireEvent(ctx, lifecycle.EventStop)
	tl.RequireEvent(ctx, lifecycle.EventDestroy)
	require.ErrorIs(t, second.Wait(ctx), context.Canceled)
	assert.Equal(t, lazybones.StateTerminated, repeating.State())
}

func TestRepeatOnLifecycle_Resume(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := waitCtx(t)

	repeating := lazybones.RepeatOnLifecycle(tl, lazybones.PhaseResume, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}, lazybones.WithPool(newPool(t)))

	tl.RequireMoveTo(ctx, lifecycle.StateResumed)
	tl.RequireEvent(ctx, lifecycle.EventPause)

	r := repeating.MustValue()
	require.NoError(t, r.Current().Wait(ctx))

	r.Cancel()
	tl.RequireEvent(ctx, lifecycle.EventResume)
	assert.Equal(t, 1, r.Runs())
}

func TestRepeatOnLifecycle_UnsupportedPhase(t *testing.T) {
	t.Parallel()

	repeating := lazybones.RepeatOnLifecycle(nil, lazybones.PhaseStop, func(context.Context) error {
		return nil
	})

	assert.True(t, lazybones.IsUnsupportedPhase(repeating.Err()))
	assert.Nil(t, repeating.MustValue().Current())
}
