package dispatch

import (
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/danpasecinic/lazybones/internal/phase"
)

type Receiver[T any] func(v T) error

type State int

const (
	StateUnbound State = iota
	StateBound
	StateActive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ReceiverError reports the receiver that aborted a dispatch.
type ReceiverError struct {
	Phase      phase.Phase
	Registered phase.Phase
	Index      int
	Err        error
}

func (e *ReceiverError) Error() string {
	if e.Registered != e.Phase {
		return fmt.Sprintf("receiver %d (registered on %s) failed on %s: %v", e.Index, e.Registered, e.Phase, e.Err)
	}
	return fmt.Sprintf("receiver %d failed on %s: %v", e.Index, e.Phase, e.Err)
}

func (e *ReceiverError) Unwrap() error {
	return e.Err
}

type Outcome struct {
	Matched int
	Ran     int
	Ignored bool
}

type Entry struct {
	Phase     phase.Phase
	Receivers int
}

type registration[T any] struct {
	phase phase.Phase
	fn    Receiver[T]
}

type Table[T any] struct {
	mu        sync.Mutex
	receivers btree.Map[phase.Phase, []registration[T]]
	state     State
	size      int
}

func New[T any]() *Table[T] {
	return &Table[T]{}
}

func (t *Table[T]) Register(p phase.Phase, fn Receiver[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, _ := t.receivers.Get(p)
	t.receivers.Set(p, append(list, registration[T]{phase: p, fn: fn}))
	t.size++

	if t.state == StateUnbound {
		t.state = StateBound
	}
}

// Dispatch runs the receivers matching p. Receivers run without the table
// lock held, so a receiver may register more receivers; those fire on the
// next matching dispatch.
func (t *Table[T]) Dispatch(p phase.Phase, value func() (T, error)) (Outcome, error) {
	t.mu.Lock()
	if t.state == StateTerminated {
		t.mu.Unlock()
		return Outcome{Ignored: true}, nil
	}

	matched := t.match(p)
	switch {
	case p.IsTerminal():
		t.state = StateTerminated
	case p.IsInitial():
		t.state = StateActive
	}
	t.mu.Unlock()

	out := Outcome{Matched: len(matched)}
	if len(matched) == 0 {
		return out, nil
	}

	v, err := value()
	if err != nil {
		return out, err
	}

	for i, r := range matched {
		if err := r.fn(v); err != nil {
			return out, &ReceiverError{Phase: p, Registered: r.phase, Index: i, Err: err}
		}
		out.Ran++
	}

	return out, nil
}

func (t *Table[T]) match(p phase.Phase) []registration[T] {
	var matched []registration[T]

	if p == phase.Any {
		t.receivers.Scan(func(_ phase.Phase, list []registration[T]) bool {
			matched = append(matched, list...)
			return true
		})
		return matched
	}

	exact, _ := t.receivers.Get(p)
	matched = append(matched, exact...)
	if wildcard, ok := t.receivers.Get(phase.Any); ok {
		matched = append(matched, wildcard...)
	}
	return matched
}

func (t *Table[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Table[T]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Entries lists registered phases in lifecycle order.
func (t *Table[T]) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, t.receivers.Len())
	t.receivers.Scan(func(p phase.Phase, list []registration[T]) bool {
		entries = append(entries, Entry{Phase: p, Receivers: len(list)})
		return true
	})
	return entries
}
