package lazybones

import (
	"context"

	"github.com/danpasecinic/lazybones/lifecycle"
)

// ViewModelLazy is a lazily initialized value bound to a two-phase owner:
// INITIALIZE when the owner is created and CLEAR when it is discarded.
type ViewModelLazy[T any] struct {
	lazy *Lazy[T]
}

func BindViewModel[T any](owner lifecycle.Source, init func() (T, error), opts ...Option) *ViewModelLazy[T] {
	return &ViewModelLazy[T]{
		lazy: bindLazy(owner, init, "ViewModelLazy", viewModelPhase, viewModelSupports, opts),
	}
}

func BindViewModelFunc[T any](owner lifecycle.Source, init func() T, opts ...Option) *ViewModelLazy[T] {
	var wrapped func() (T, error)
	if init != nil {
		wrapped = func() (T, error) { return init(), nil }
	}
	return BindViewModel(owner, wrapped, opts...)
}

func (v *ViewModelLazy[T]) OnInitialize(receiver func(v T) error) *ViewModelLazy[T] {
	v.lazy.On(PhaseInitialize, receiver)
	return v
}

func (v *ViewModelLazy[T]) OnClear(receiver func(v T) error) *ViewModelLazy[T] {
	v.lazy.On(PhaseClear, receiver)
	return v
}

func (v *ViewModelLazy[T]) Value() (T, error) {
	return v.lazy.Value()
}

func (v *ViewModelLazy[T]) MustValue() T {
	return v.lazy.MustValue()
}

func (v *ViewModelLazy[T]) Deferred() *Deferred[T] {
	return v.lazy.Deferred()
}

func (v *ViewModelLazy[T]) Dispatch(ctx context.Context, p Phase) error {
	return v.lazy.Dispatch(ctx, p)
}

func (v *ViewModelLazy[T]) State() State {
	return v.lazy.State()
}

func (v *ViewModelLazy[T]) Err() error {
	return v.lazy.Err()
}

func (v *ViewModelLazy[T]) Info() BindingInfo {
	return v.lazy.Info()
}

func (v *ViewModelLazy[T]) String() string {
	return v.lazy.String()
}

// ViewModelProperty is the eager counterpart of ViewModelLazy.
type ViewModelProperty[T any] struct {
	property *Property[T]
}

func ObserveViewModel[T any](owner lifecycle.Source, value T, opts ...Option) *ViewModelProperty[T] {
	return &ViewModelProperty[T]{
		property: observe(owner, value, "ViewModelProperty", viewModelPhase, viewModelSupports, opts),
	}
}

func (v *ViewModelProperty[T]) ObserveOnInitialize(receiver func(v *T) error) *ViewModelProperty[T] {
	v.property.ObserveOn(PhaseInitialize, receiver)
	return v
}

func (v *ViewModelProperty[T]) ObserveOnClear(receiver func(v *T) error) *ViewModelProperty[T] {
	v.property.ObserveOn(PhaseClear, receiver)
	return v
}

func (v *ViewModelProperty[T]) Value() T {
	return v.property.Value()
}

func (v *ViewModelProperty[T]) Set(value T) {
	v.property.Set(value)
}

func (v *ViewModelProperty[T]) Update(fn func(v *T)) {
	v.property.Update(fn)
}

func (v *ViewModelProperty[T]) Dispatch(ctx context.Context, p Phase) error {
	return v.property.Dispatch(ctx, p)
}

func (v *ViewModelProperty[T]) State() State {
	return v.property.State()
}

func (v *ViewModelProperty[T]) Err() error {
	return v.property.Err()
}

func (v *ViewModelProperty[T]) Frozen() bool {
	return v.property.Frozen()
}

func (v *ViewModelProperty[T]) Info() BindingInfo {
	return v.property.Info()
}

func (v *ViewModelProperty[T]) String() string {
	return v.property.String()
}

type ViewModelPropertyBuilder[T any] struct {
	builder *PropertyBuilder[T]
}

func NewViewModelPropertyBuilder[T any](owner lifecycle.Source, value T, opts ...Option) *ViewModelPropertyBuilder[T] {
	b := NewPropertyBuilder(owner, value, opts...)
	b.kind = "ViewModelProperty"
	b.toPhase = viewModelPhase
	b.supports = viewModelSupports
	return &ViewModelPropertyBuilder[T]{builder: b}
}

func (b *ViewModelPropertyBuilder[T]) OnInitialize(receiver func(v *T) error) *ViewModelPropertyBuilder[T] {
	b.builder.On(PhaseInitialize, receiver)
	return b
}

func (b *ViewModelPropertyBuilder[T]) OnClear(receiver func(v *T) error) *ViewModelPropertyBuilder[T] {
	b.builder.On(PhaseClear, receiver)
	return b
}

func (b *ViewModelPropertyBuilder[T]) Build() *ViewModelProperty[T] {
	return &ViewModelProperty[T]{property: b.builder.Build()}
}
