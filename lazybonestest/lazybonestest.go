package lazybonestest

import (
	"context"

	"github.com/danpasecinic/lazybones"
	"github.com/danpasecinic/lazybones/lifecycle"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

// TestLifecycle is a lifecycle host destroyed when the test finishes.
type TestLifecycle struct {
	*lifecycle.Registry
	tb TB
}

func NewLifecycle(tb TB, opts ...lifecycle.Option) *TestLifecycle {
	tb.Helper()

	r := lifecycle.NewRegistry(opts...)
	tl := &TestLifecycle{
		Registry: r,
		tb:       tb,
	}

	tb.Cleanup(func() {
		if err := r.MoveTo(context.Background(), lifecycle.StateDestroyed); err != nil {
			tb.Fatalf("failed to destroy lifecycle: %v", err)
		}
	})

	return tl
}

func (tl *TestLifecycle) RequireEvent(ctx context.Context, e lifecycle.Event) {
	tl.tb.Helper()

	if err := tl.HandleEvent(ctx, e); err != nil {
		tl.tb.Fatalf("failed to handle %s: %v", e, err)
	}
}

func (tl *TestLifecycle) RequireEvents(ctx context.Context, events ...lifecycle.Event) {
	tl.tb.Helper()

	for _, e := range events {
		tl.RequireEvent(ctx, e)
	}
}

func (tl *TestLifecycle) RequireMoveTo(ctx context.Context, state lifecycle.State) {
	tl.tb.Helper()

	if err := tl.MoveTo(ctx, state); err != nil {
		tl.tb.Fatalf("failed to move lifecycle to %s: %v", state, err)
	}
}

func (tl *TestLifecycle) AssertState(state lifecycle.State) {
	tl.tb.Helper()

	if got := tl.State(); got != state {
		tl.tb.Fatalf("expected lifecycle state %s, got %s", state, got)
	}
}

// TestViewModelOwner is a view-model owner cleared when the test finishes.
type TestViewModelOwner struct {
	*lifecycle.ViewModelOwner
	tb TB
}

func NewViewModelOwner(tb TB, opts ...lifecycle.Option) *TestViewModelOwner {
	tb.Helper()

	owner := lifecycle.NewViewModelOwner(opts...)
	tb.Cleanup(func() {
		if err := owner.Close(); err != nil {
			tb.Fatalf("failed to clear view model owner: %v", err)
		}
	})

	return &TestViewModelOwner{ViewModelOwner: owner, tb: tb}
}

func (to *TestViewModelOwner) RequireInitialize(ctx context.Context) {
	to.tb.Helper()

	if err := to.Initialize(ctx); err != nil {
		to.tb.Fatalf("failed to initialize view model owner: %v", err)
	}
}

func (to *TestViewModelOwner) RequireClear(ctx context.Context) {
	to.tb.Helper()

	if err := to.Clear(ctx); err != nil {
		to.tb.Fatalf("failed to clear view model owner: %v", err)
	}
}

func MustValue[T any](tb TB, l *lazybones.Lazy[T]) T {
	tb.Helper()

	v, err := l.Value()
	if err != nil {
		tb.Fatalf("failed to realize %s: %v", l, err)
	}
	return v
}

func RequireNoRegistrationError(tb TB, err error) {
	tb.Helper()

	if err != nil {
		tb.Fatalf("unexpected registration error: %v", err)
	}
}

func RequireDispatch[T any](ctx context.Context, tb TB, l *lazybones.Lazy[T], phases ...lazybones.Phase) {
	tb.Helper()

	for _, p := range phases {
		if err := l.Dispatch(ctx, p); err != nil {
			tb.Fatalf("failed to dispatch %s to %s: %v", p, l, err)
		}
	}
}
