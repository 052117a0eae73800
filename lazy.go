package lazybones

import (
	"context"
	"fmt"

	"github.com/danpasecinic/lazybones/internal/reflect"
	"github.com/danpasecinic/lazybones/lifecycle"
)

// Lazy is a value created on first access whose receivers fire as its
// lifecycle source moves through the component phases.
type Lazy[T any] struct {
	deferred *Deferred[T]
	binding  *binding[T]
}

// Bind attaches a lazily initialized value to src. A nil src is allowed; the
// binding is then driven only by Dispatch.
func Bind[T any](src lifecycle.Source, init func() (T, error), opts ...Option) *Lazy[T] {
	return bindLazy(src, init, "Lazy", componentPhase, componentSupports, opts)
}

// BindFunc is Bind for initializers that cannot fail.
func BindFunc[T any](src lifecycle.Source, init func() T, opts ...Option) *Lazy[T] {
	var wrapped func() (T, error)
	if init != nil {
		wrapped = func() (T, error) { return init(), nil }
	}
	return Bind(src, wrapped, opts...)
}

func bindLazy[T any](
	src lifecycle.Source,
	init func() (T, error),
	kind string,
	toPhase func(lifecycle.Event) (Phase, bool),
	supports func(Phase) bool,
	opts []Option,
) *Lazy[T] {
	cfg := newBindingConfig(opts)
	d := newDeferredWithConfig(init, cfg)
	name := kind + "[" + reflect.TypeName[T]() + "]"

	return &Lazy[T]{
		deferred: d,
		binding:  newBinding(name, src, d.Force, toPhase, supports, cfg),
	}
}

func (l *Lazy[T]) On(p Phase, receiver func(v T) error) *Lazy[T] {
	l.binding.register(p, receiver)
	return l
}

func (l *Lazy[T]) OnCreate(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseCreate, receiver)
}

func (l *Lazy[T]) OnStart(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseStart, receiver)
}

func (l *Lazy[T]) OnResume(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseResume, receiver)
}

func (l *Lazy[T]) OnPause(receiver func(v T) error) *Lazy[T] {
	return l.On(PhasePause, receiver)
}

func (l *Lazy[T]) OnStop(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseStop, receiver)
}

func (l *Lazy[T]) OnDestroy(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseDestroy, receiver)
}

// OnAny fires on every transition.
func (l *Lazy[T]) OnAny(receiver func(v T) error) *Lazy[T] {
	return l.On(PhaseAny, receiver)
}

// Value realizes the value if needed.
func (l *Lazy[T]) Value() (T, error) {
	return l.deferred.Force()
}

func (l *Lazy[T]) MustValue() T {
	v, err := l.Value()
	if err != nil {
		panic(err)
	}
	return v
}

func (l *Lazy[T]) Deferred() *Deferred[T] {
	return l.deferred
}

// Dispatch runs the receivers of p as if the source had emitted it.
func (l *Lazy[T]) Dispatch(ctx context.Context, p Phase) error {
	return l.binding.dispatch(ctx, p)
}

func (l *Lazy[T]) State() State {
	return l.binding.state()
}

// Err returns the first rejected registration, if any.
func (l *Lazy[T]) Err() error {
	return l.binding.registrationErr()
}

func (l *Lazy[T]) Info() BindingInfo {
	return l.binding.info(l.deferred.IsRealized())
}

func (l *Lazy[T]) String() string {
	return fmt.Sprintf("%s(state=%s, %s)", l.binding.name, l.State(), l.deferred)
}
