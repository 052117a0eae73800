package lifecycle

import "context"

// Event is a transition reported by a lifecycle host.
type Event int

const (
	EventCreate Event = iota
	EventStart
	EventResume
	EventPause
	EventStop
	EventDestroy
)

func (e Event) String() string {
	switch e {
	case EventCreate:
		return "ON_CREATE"
	case EventStart:
		return "ON_START"
	case EventResume:
		return "ON_RESUME"
	case EventPause:
		return "ON_PAUSE"
	case EventStop:
		return "ON_STOP"
	case EventDestroy:
		return "ON_DESTROY"
	default:
		return "ON_UNKNOWN"
	}
}

// TargetState is the state a host is in right after e.
func (e Event) TargetState() State {
	switch e {
	case EventCreate, EventStop:
		return StateCreated
	case EventStart, EventPause:
		return StateStarted
	case EventResume:
		return StateResumed
	case EventDestroy:
		return StateDestroyed
	default:
		return StateInitialized
	}
}

// IsDownward reports whether e moves the host towards destruction.
func (e Event) IsDownward() bool {
	return e == EventPause || e == EventStop || e == EventDestroy
}

type State int

const (
	StateInitialized State = iota
	StateCreated
	StateStarted
	StateResumed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "INITIALIZED"
	case StateCreated:
		return "CREATED"
	case StateStarted:
		return "STARTED"
	case StateResumed:
		return "RESUMED"
	case StateDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// AtLeast reports whether s is the same as or further along than other.
func (s State) AtLeast(other State) bool {
	return s >= other
}

type Observer interface {
	OnStateChanged(ctx context.Context, e Event) error
}

type ObserverFunc func(ctx context.Context, e Event) error

func (f ObserverFunc) OnStateChanged(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Source is anything observers can subscribe to. Observers are never removed;
// a destroyed source simply stops delivering.
type Source interface {
	AddObserver(o Observer)
}
