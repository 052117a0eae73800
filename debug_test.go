package lazybones_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/lazybones"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	l := lazybones.BindFunc[int](nil, func() int { return 1 }).
		OnDestroy(func(int) error { return nil }).
		OnCreate(func(int) error { return nil }).
		OnCreate(func(int) error { return nil })

	info := l.Info()
	assert.Equal(t, "Lazy[int]", info.Name)
	assert.Equal(t, lazybones.StateBound, info.State)
	assert.False(t, info.Realized)
	assert.Equal(t, 3, info.Receivers)
	assert.Equal(t, []lazybones.PhaseInfo{
		{Phase: lazybones.PhaseCreate, Receivers: 2},
		{Phase: lazybones.PhaseDestroy, Receivers: 1},
	}, info.Phases)

	require.NoError(t, l.Dispatch(context.Background(), lazybones.PhaseCreate))
	assert.True(t, l.Info().Realized)
	assert.Equal(t, lazybones.StateActive, l.Info().State)
}

func TestSprintInfo(t *testing.T) {
	t.Parallel()

	l := lazybones.BindFunc[int](nil, func() int { return 1 }).
		OnStart(func(int) error { return nil }).
		On(lazybones.PhaseClear, func(int) error { return nil })

	out := lazybones.SprintInfo(l.Info())
	assert.Contains(t, out, "○ Lazy[int] [bound]")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "error: [UNSUPPORTED_PHASE]")

	empty := lazybones.Observe[int](nil, 0)
	out = lazybones.SprintInfo(empty.Info())
	assert.Contains(t, out, "● Property[int] [unbound]")
	assert.Contains(t, out, "(no receivers)")
}
