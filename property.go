package lazybones

import (
	"context"
	"fmt"

	"github.com/danpasecinic/lazybones/internal/dispatch"
	"github.com/danpasecinic/lazybones/internal/reflect"
	"github.com/danpasecinic/lazybones/lifecycle"
)

// Property holds a value that exists from construction. Receivers get a
// pointer to the current value at dispatch time, so a change made in one
// phase is seen by every later phase.
//
// A Property is meant to be used from the lifecycle's dispatch goroutine.
type Property[T any] struct {
	value   T
	binding *binding[*T]
	frozen  bool
}

func Observe[T any](src lifecycle.Source, value T, opts ...Option) *Property[T] {
	return observe(src, value, "Property", componentPhase, componentSupports, opts)
}

func observe[T any](
	src lifecycle.Source,
	value T,
	kind string,
	toPhase func(lifecycle.Event) (Phase, bool),
	supports func(Phase) bool,
	opts []Option,
) *Property[T] {
	cfg := newBindingConfig(opts)
	p := &Property[T]{value: value}
	name := kind + "[" + reflect.TypeName[T]() + "]"
	p.binding = newBinding(name, src, p.current, toPhase, supports, cfg)
	return p
}

func (p *Property[T]) current() (*T, error) {
	return &p.value, nil
}

func (p *Property[T]) ObserveOn(ph Phase, receiver func(v *T) error) *Property[T] {
	if p.frozen {
		p.binding.fail(errFrozen(ph))
		return p
	}
	p.binding.register(ph, receiver)
	return p
}

func (p *Property[T]) ObserveOnCreate(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseCreate, receiver)
}

func (p *Property[T]) ObserveOnStart(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseStart, receiver)
}

func (p *Property[T]) ObserveOnResume(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseResume, receiver)
}

func (p *Property[T]) ObserveOnPause(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhasePause, receiver)
}

func (p *Property[T]) ObserveOnStop(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseStop, receiver)
}

func (p *Property[T]) ObserveOnDestroy(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseDestroy, receiver)
}

func (p *Property[T]) ObserveOnAny(receiver func(v *T) error) *Property[T] {
	return p.ObserveOn(PhaseAny, receiver)
}

func (p *Property[T]) Value() T {
	return p.value
}

func (p *Property[T]) Set(v T) {
	p.value = v
}

func (p *Property[T]) Update(fn func(v *T)) {
	fn(&p.value)
}

func (p *Property[T]) Dispatch(ctx context.Context, ph Phase) error {
	return p.binding.dispatch(ctx, ph)
}

func (p *Property[T]) State() State {
	return p.binding.state()
}

func (p *Property[T]) Err() error {
	return p.binding.registrationErr()
}

// Frozen reports whether the property came from a builder.
func (p *Property[T]) Frozen() bool {
	return p.frozen
}

func (p *Property[T]) Info() BindingInfo {
	return p.binding.info(true)
}

func (p *Property[T]) String() string {
	return fmt.Sprintf("%s(state=%s, value=%v)", p.binding.name, p.State(), p.value)
}

type pendingReceiver[T any] struct {
	phase Phase
	fn    dispatch.Receiver[*T]
}

// PropertyBuilder collects receivers before anything is attached to the
// source. The built Property rejects further receivers.
type PropertyBuilder[T any] struct {
	src       lifecycle.Source
	value     T
	opts      []Option
	kind      string
	toPhase   func(lifecycle.Event) (Phase, bool)
	supports  func(Phase) bool
	receivers []pendingReceiver[T]
	built     bool
}

func NewPropertyBuilder[T any](src lifecycle.Source, value T, opts ...Option) *PropertyBuilder[T] {
	return &PropertyBuilder[T]{
		src:      src,
		value:    value,
		opts:     opts,
		kind:     "Property",
		toPhase:  componentPhase,
		supports: componentSupports,
	}
}

func (b *PropertyBuilder[T]) On(p Phase, receiver func(v *T) error) *PropertyBuilder[T] {
	b.receivers = append(b.receivers, pendingReceiver[T]{phase: p, fn: receiver})
	return b
}

func (b *PropertyBuilder[T]) OnCreate(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseCreate, receiver)
}

func (b *PropertyBuilder[T]) OnStart(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseStart, receiver)
}

func (b *PropertyBuilder[T]) OnResume(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseResume, receiver)
}

func (b *PropertyBuilder[T]) OnPause(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhasePause, receiver)
}

func (b *PropertyBuilder[T]) OnStop(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseStop, receiver)
}

func (b *PropertyBuilder[T]) OnDestroy(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseDestroy, receiver)
}

func (b *PropertyBuilder[T]) OnAny(receiver func(v *T) error) *PropertyBuilder[T] {
	return b.On(PhaseAny, receiver)
}

// Build attaches the property to its source. It panics when called twice.
func (b *PropertyBuilder[T]) Build() *Property[T] {
	if b.built {
		panic("lazybones: PropertyBuilder.Build called twice")
	}
	b.built = true

	p := observe(b.src, b.value, b.kind, b.toPhase, b.supports, b.opts)
	for _, r := range b.receivers {
		p.binding.register(r.phase, r.fn)
	}
	p.frozen = true
	return p
}
