package lifecycle

import (
	"context"
	"io"
)

var _ io.Closer = (*ViewModelOwner)(nil)

// ViewModelOwner is a two-phase host: it is created once and cleared once.
type ViewModelOwner struct {
	registry *Registry
}

func NewViewModelOwner(opts ...Option) *ViewModelOwner {
	return &ViewModelOwner{registry: NewRegistry(append([]Option{WithName("viewmodel")}, opts...)...)}
}

func (o *ViewModelOwner) AddObserver(observer Observer) {
	o.registry.AddObserver(observer)
}

// Initialize delivers EventCreate. Calls after the first are no-ops.
func (o *ViewModelOwner) Initialize(ctx context.Context) error {
	return o.registry.handleFrom(ctx, StateInitialized, EventCreate)
}

// Clear delivers EventDestroy. Calls after the first are no-ops.
func (o *ViewModelOwner) Clear(ctx context.Context) error {
	return o.registry.HandleEvent(ctx, EventDestroy)
}

func (o *ViewModelOwner) Close() error {
	return o.Clear(context.Background())
}

func (o *ViewModelOwner) State() State {
	return o.registry.State()
}
