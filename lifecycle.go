package lazybones

import (
	"context"
	"sync"
	"time"

	"github.com/danpasecinic/lazybones/internal/dispatch"
	"github.com/danpasecinic/lazybones/lifecycle"
)

// binding is the single observer a bound value attaches to its lifecycle
// source. It translates host events into phases and runs the dispatch table.
type binding[T any] struct {
	name     string
	table    *dispatch.Table[T]
	value    func() (T, error)
	toPhase  func(lifecycle.Event) (Phase, bool)
	supports func(Phase) bool
	cfg      *bindingConfig

	mu  sync.Mutex
	err error
}

func newBinding[T any](
	name string,
	src lifecycle.Source,
	value func() (T, error),
	toPhase func(lifecycle.Event) (Phase, bool),
	supports func(Phase) bool,
	cfg *bindingConfig,
) *binding[T] {
	b := &binding[T]{
		name:     name,
		table:    dispatch.New[T](),
		value:    value,
		toPhase:  toPhase,
		supports: supports,
		cfg:      cfg,
	}

	if src != nil {
		src.AddObserver(b)
	}

	return b
}

func (b *binding[T]) OnStateChanged(ctx context.Context, e lifecycle.Event) error {
	p, ok := b.toPhase(e)
	if !ok {
		return nil
	}
	return b.dispatch(ctx, p)
}

func (b *binding[T]) register(p Phase, fn dispatch.Receiver[T]) {
	if !b.supports(p) {
		b.fail(errUnsupportedPhase(p))
		return
	}
	if fn == nil {
		return
	}

	if b.table.State() == StateTerminated {
		b.cfg.logger.Debug("receiver registered after termination will never fire", "binding", b.name, "phase", p)
	}
	b.table.Register(p, fn)
}

func (b *binding[T]) fail(err *Error) {
	err.WithBinding(b.name)
	b.cfg.logger.Warn("rejected receiver registration", "binding", b.name, "error", err)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err == nil {
		b.err = err
	}
}

func (b *binding[T]) dispatch(ctx context.Context, p Phase) error {
	if b.table.State() == StateTerminated {
		b.cfg.logger.DebugContext(ctx, "ignoring phase after termination", "binding", b.name, "phase", p)
		return nil
	}
	if p != PhaseAny && !b.supports(p) {
		return errUnsupportedPhase(p).WithBinding(b.name)
	}

	start := time.Now()
	out, err := b.table.Dispatch(p, b.value)
	if out.Ignored {
		b.cfg.logger.DebugContext(ctx, "ignoring phase after termination", "binding", b.name, "phase", p)
		return nil
	}

	err = wrapDispatchError(b.name, p, err)
	b.cfg.logger.DebugContext(
		ctx, "dispatched phase",
		"binding", b.name,
		"phase", p,
		"receivers", out.Matched,
		"ran", out.Ran,
	)

	for _, hook := range b.cfg.onDispatch {
		hook(p, out.Matched, time.Since(start), err)
	}

	if p.IsTerminal() {
		b.cfg.logger.DebugContext(ctx, "binding terminated", "binding", b.name)
	}

	return err
}

func (b *binding[T]) state() State {
	return b.table.State()
}

func (b *binding[T]) registrationErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
