package lazybones

import (
	"github.com/danpasecinic/lazybones/internal/dispatch"
	"github.com/danpasecinic/lazybones/internal/phase"
	"github.com/danpasecinic/lazybones/lifecycle"
)

type Phase = phase.Phase

const (
	PhaseCreate     = phase.Create
	PhaseStart      = phase.Start
	PhaseResume     = phase.Resume
	PhasePause      = phase.Pause
	PhaseStop       = phase.Stop
	PhaseDestroy    = phase.Destroy
	PhaseAny        = phase.Any
	PhaseInitialize = phase.Initialize
	PhaseClear      = phase.Clear
)

// State is the binding state: unbound, bound, active or terminated.
type State = dispatch.State

const (
	StateUnbound    = dispatch.StateUnbound
	StateBound      = dispatch.StateBound
	StateActive     = dispatch.StateActive
	StateTerminated = dispatch.StateTerminated
)

// componentPhase maps a six-event host transition to its phase.
func componentPhase(e lifecycle.Event) (Phase, bool) {
	switch e {
	case lifecycle.EventCreate:
		return PhaseCreate, true
	case lifecycle.EventStart:
		return PhaseStart, true
	case lifecycle.EventResume:
		return PhaseResume, true
	case lifecycle.EventPause:
		return PhasePause, true
	case lifecycle.EventStop:
		return PhaseStop, true
	case lifecycle.EventDestroy:
		return PhaseDestroy, true
	default:
		return 0, false
	}
}

// viewModelPhase maps host creation to INITIALIZE and destruction to CLEAR.
// Every other transition is outside the two-phase vocabulary.
func viewModelPhase(e lifecycle.Event) (Phase, bool) {
	switch e {
	case lifecycle.EventCreate:
		return PhaseInitialize, true
	case lifecycle.EventDestroy:
		return PhaseClear, true
	default:
		return 0, false
	}
}

func componentSupports(p Phase) bool {
	return p.Valid() && p != PhaseInitialize && p != PhaseClear
}

func viewModelSupports(p Phase) bool {
	return p == PhaseInitialize || p == PhaseClear
}
