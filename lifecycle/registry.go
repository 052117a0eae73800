package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry is a lifecycle host driven by explicit HandleEvent calls.
//
// Upward events (create, start, resume) reach observers in the order they were
// added; downward events (pause, stop, destroy) reach them in reverse order.
// Every observer receives the event even when an earlier one fails; the
// failures are returned joined. After EventDestroy nothing is delivered.
type Registry struct {
	mu        sync.Mutex
	name      string
	state     State
	observers []Observer
	logger    *slog.Logger
}

func NewRegistry(opts ...Option) *Registry {
	cfg := newConfig(opts)
	return &Registry{
		name:   cfg.name,
		state:  StateInitialized,
		logger: cfg.logger,
	}
}

func (r *Registry) AddObserver(o Observer) {
	if o == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.observers = append(r.observers, o)
}

func (r *Registry) HandleEvent(ctx context.Context, e Event) error {
	return r.handle(ctx, e, nil)
}

// handleFrom delivers e only when the registry is in state from. The check and
// the transition happen under one lock, so concurrent callers deliver e once.
func (r *Registry) handleFrom(ctx context.Context, from State, e Event) error {
	return r.handle(ctx, e, &from)
}

func (r *Registry) handle(ctx context.Context, e Event, from *State) error {
	r.mu.Lock()
	if r.state == StateDestroyed {
		r.mu.Unlock()
		r.logger.Debug("ignoring event after destroy", "lifecycle", r.name, "event", e)
		return nil
	}
	if from != nil && r.state != *from {
		r.mu.Unlock()
		return nil
	}

	r.state = e.TargetState()
	observers := slices.Clone(r.observers)
	r.mu.Unlock()

	if e.IsDownward() {
		slices.Reverse(observers)
	}

	r.logger.Debug("dispatching lifecycle event", "lifecycle", r.name, "event", e, "observers", len(observers))

	var errs []error
	for _, o := range observers {
		if err := o.OnStateChanged(ctx, e); err != nil {
			r.logger.Warn("lifecycle observer failed", "lifecycle", r.name, "event", e, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// HandleEvents delivers events in order, stopping at the first failing one.
func (r *Registry) HandleEvents(ctx context.Context, events ...Event) error {
	for _, e := range events {
		if err := r.HandleEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo emits the events that walk the registry from its current state to
// target, the way a host steps through its lifecycle one transition at a time.
func (r *Registry) MoveTo(ctx context.Context, target State) error {
	for {
		current := r.State()
		if current == target || current == StateDestroyed {
			return nil
		}

		e, ok := stepTowards(current, target)
		if !ok {
			return fmt.Errorf("cannot move %s from %s to %s", r.name, current, target)
		}
		if err := r.HandleEvent(ctx, e); err != nil {
			return err
		}
	}
}

func stepTowards(current, target State) (Event, bool) {
	if target == StateDestroyed {
		switch current {
		case StateResumed:
			return EventPause, true
		case StateStarted:
			return EventStop, true
		default:
			return EventDestroy, true
		}
	}

	if target == StateInitialized {
		return 0, false
	}

	if current < target {
		switch current {
		case StateInitialized:
			return EventCreate, true
		case StateCreated:
			return EventStart, true
		case StateStarted:
			return EventResume, true
		}
	}

	switch current {
	case StateResumed:
		return EventPause, true
	case StateStarted:
		return EventStop, true
	}
	return 0, false
}

func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Registry) ObserverCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

func (r *Registry) Name() string {
	return r.name
}
