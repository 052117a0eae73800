package lazybones

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type BindingInfo struct {
	Name      string
	State     State
	Realized  bool
	Receivers int
	Phases    []PhaseInfo
	Err       error
}

type PhaseInfo struct {
	Phase     Phase
	Receivers int
}

func (b *binding[T]) info(realized bool) BindingInfo {
	entries := b.table.Entries()
	phases := make([]PhaseInfo, 0, len(entries))
	for _, e := range entries {
		phases = append(phases, PhaseInfo{Phase: e.Phase, Receivers: e.Receivers})
	}

	return BindingInfo{
		Name:      b.name,
		State:     b.table.State(),
		Realized:  realized,
		Receivers: b.table.Size(),
		Phases:    phases,
		Err:       b.registrationErr(),
	}
}

func PrintInfo(info BindingInfo) {
	FprintInfo(os.Stdout, info)
}

func FprintInfo(w io.Writer, info BindingInfo) {
	status := "○"
	if info.Realized {
		status = "●"
	}

	_, _ = fmt.Fprintf(w, "%s %s [%s]\n", status, info.Name, info.State)

	if len(info.Phases) == 0 {
		_, _ = fmt.Fprintln(w, "  (no receivers)")
	}
	for _, p := range info.Phases {
		_, _ = fmt.Fprintf(w, "  %-10s %d\n", p.Phase, p.Receivers)
	}

	if info.Err != nil {
		_, _ = fmt.Fprintf(w, "  error: %v\n", info.Err)
	}
}

func SprintInfo(info BindingInfo) string {
	var sb strings.Builder
	FprintInfo(&sb, info)
	return sb.String()
}
