package phase

type Phase int

const (
	Create Phase = iota
	Start
	Resume
	Pause
	Stop
	Destroy
	Any
	Initialize
	Clear
)

func (p Phase) String() string {
	switch p {
	case Create:
		return "create"
	case Start:
		return "start"
	case Resume:
		return "resume"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	case Destroy:
		return "destroy"
	case Any:
		return "any"
	case Initialize:
		return "initialize"
	case Clear:
		return "clear"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no dispatch is accepted after p.
func (p Phase) IsTerminal() bool {
	return p == Destroy || p == Clear
}

// IsInitial reports whether p activates a bound table.
func (p Phase) IsInitial() bool {
	return p == Create || p == Initialize
}

func (p Phase) Valid() bool {
	return p >= Create && p <= Clear
}
