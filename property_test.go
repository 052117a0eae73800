package lazybones_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/lazybones"
	"github.com/danpasecinic/lazybones/lazybonestest"
	"github.com/danpasecinic/lazybones/lifecycle"
)

type Counter struct {
	Number int
}

func TestProperty_ObserveOnStop(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	ctx := context.Background()
	others := 0

	prop := lazybones.Observe(tl, Counter{Number: 20}).
		ObserveOnStop(func(c *Counter) error {
			c.Number = 30
			return nil
		}).
		ObserveOnDestroy(func(*Counter) error {
			others++
			return nil
		})

	tl.RequireEvents(ctx, lifecycle.EventCreate, lifecycle.EventStart, lifecycle.EventResume)
	assert.Equal(t, 20, prop.Value().Number)

	tl.RequireEvent(ctx, lifecycle.EventStop)
	assert.Equal(t, 30, prop.Value().Number)
	assert.Zero(t, others)
}

func TestProperty_MutationVisibility(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	var seenOnResume int

	lazybones.Observe(tl, Counter{}).
		ObserveOnStart(func(c *Counter) error {
			c.Number += 5
			return nil
		}).
		ObserveOnResume(func(c *Counter) error {
			seenOnResume = c.Number
			return nil
		})

	tl.RequireMoveTo(context.Background(), lifecycle.StateResumed)
	assert.Equal(t, 5, seenOnResume)
}

func TestProperty_ReadsCurrentValue(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	var seen []int

	prop := lazybones.Observe(tl, Counter{Number: 1}).
		ObserveOnAny(func(c *Counter) error {
			seen = append(seen, c.Number)
			return nil
		})

	ctx := context.Background()
	tl.RequireEvent(ctx, lifecycle.EventCreate)
	prop.Set(Counter{Number: 2})
	tl.RequireEvent(ctx, lifecycle.EventStart)
	prop.Update(func(c *Counter) { c.Number *= 10 })
	tl.RequireEvent(ctx, lifecycle.EventResume)

	assert.Equal(t, []int{1, 2, 20}, seen)
}

func TestProperty_ObserveOnAllPhases(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	var order []string
	add := func(name string) func(*Counter) error {
		return func(*Counter) error {
			order = append(order, name)
			return nil
		}
	}

	prop := lazybones.Observe(tl, Counter{}).
		ObserveOnCreate(add("create")).
		ObserveOnStart(add("start")).
		ObserveOnResume(add("resume")).
		ObserveOnPause(add("pause")).
		ObserveOnStop(add("stop")).
		ObserveOnDestroy(add("destroy")).
		ObserveOn(lazybones.PhaseCreate, add("create2"))

	ctx := context.Background()
	tl.RequireMoveTo(ctx, lifecycle.StateResumed)
	tl.RequireMoveTo(ctx, lifecycle.StateDestroyed)

	assert.Equal(t, []string{"create", "create2", "start", "resume", "pause", "stop", "destroy"}, order)
	assert.Equal(t, lazybones.StateTerminated, prop.State())
}

func TestProperty_ReceiverFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	failure := errors.New("flush failed")

	prop := lazybones.Observe[Counter](nil, Counter{}).
		ObserveOnStop(func(*Counter) error { return failure }).
		ObserveOnStop(func(c *Counter) error { c.Number = 99; return nil })

	err := prop.Dispatch(ctx, lazybones.PhaseStop)
	require.ErrorIs(t, err, failure)
	assert.True(t, lazybones.IsReceiverFailed(err))
	assert.Zero(t, prop.Value().Number)
}

func TestPropertyBuilder(t *testing.T) {
	t.Parallel()

	tl := lazybonestest.NewLifecycle(t)
	var order []string

	builder := lazybones.NewPropertyBuilder(tl, Counter{Number: 1}).
		OnCreate(func(c *Counter) error {
			c.Number++
			order = append(order, "create")
			return nil
		}).
		OnStart(func(*Counter) error {
			order = append(order, "start")
			return nil
		}).
		OnResume(func(*Counter) error { return nil }).
		OnPause(func(*Counter) error { return nil }).
		OnStop(func(*Counter) error { return nil }).
		OnDestroy(func(*Counter) error { return nil }).
		OnAny(func(*Counter) error { return nil })

	assert.Zero(t, tl.ObserverCount())

	prop := builder.Build()
	assert.Equal(t, 1, tl.ObserverCount())
	assert.True(t, prop.Frozen())

	tl.RequireEvents(context.Background(), lifecycle.EventCreate, lifecycle.EventStart)
	assert.Equal(t, []string{"create", "start"}, order)
	assert.Equal(t, 2, prop.Value().Number)

	prop.ObserveOnStop(func(*Counter) error { return nil })
	assert.True(t, lazybones.IsFrozen(prop.Err()))
	assert.Equal(t, 7, prop.Info().Receivers)

	assert.Panics(t, func() { builder.Build() })
}

func TestProperty_String(t *testing.T) {
	t.Parallel()

	prop := lazybones.Observe[Counter](nil, Counter{Number: 3})
	assert.Equal(t, "Property[lazybones_test.Counter](state=unbound, value={3})", prop.String())
}
