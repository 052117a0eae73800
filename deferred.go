package lazybones

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// SyncMode controls how a Deferred guards its first realization.
type SyncMode int

const (
	// SyncNone assumes every access happens on the lifecycle's dispatch goroutine.
	SyncNone SyncMode = iota
	// SyncLocked serializes concurrent first access so the initializer still
	// succeeds exactly once.
	SyncLocked
)

func (m SyncMode) String() string {
	switch m {
	case SyncNone:
		return "none"
	case SyncLocked:
		return "locked"
	default:
		return "unknown"
	}
}

var errNilInitializer = errors.New("nil initializer")

// Deferred is a value built on first demand and memoized afterwards. A failed
// initialization is not cached: the next Force runs the initializer again.
type Deferred[T any] struct {
	mu       sync.Mutex
	mode     SyncMode
	init     func() (T, error)
	value    T
	realized atomic.Bool
	onInit   []InitHook
}

func NewDeferred[T any](init func() (T, error), mode SyncMode) *Deferred[T] {
	return &Deferred[T]{
		mode: mode,
		init: init,
	}
}

func newDeferredWithConfig[T any](init func() (T, error), cfg *bindingConfig) *Deferred[T] {
	d := NewDeferred(init, cfg.syncMode)
	d.onInit = cfg.onInit
	return d
}

func (d *Deferred[T]) Force() (T, error) {
	if d.realized.Load() {
		return d.value, nil
	}

	if d.mode == SyncLocked {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.realized.Load() {
			return d.value, nil
		}
	}

	return d.realize()
}

func (d *Deferred[T]) realize() (T, error) {
	var zero T
	if d.init == nil {
		return zero, errInitializationFailed(errNilInitializer)
	}

	start := time.Now()
	v, err := d.init()
	for _, hook := range d.onInit {
		hook(time.Since(start), err)
	}

	if err != nil {
		return zero, errInitializationFailed(err)
	}

	d.value = v
	d.realized.Store(true)
	return v, nil
}

func (d *Deferred[T]) IsRealized() bool {
	return d.realized.Load()
}

func (d *Deferred[T]) Mode() SyncMode {
	return d.mode
}

func (d *Deferred[T]) String() string {
	if d.IsRealized() {
		return fmt.Sprintf("Deferred(realized, mode=%s)", d.mode)
	}
	return fmt.Sprintf("Deferred(pending, mode=%s)", d.mode)
}
