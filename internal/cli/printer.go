package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/state"
	"github.com/muesli/termenv"
)

// Printer writes a colored log of dispatched actions and committed mutations,
// followed by the state leaves each commit changed.
type Printer struct {
	mu      sync.Mutex
	out     *termenv.Output
	profile termenv.Profile
	last    map[string]any
}

// NewPrinter creates a printer on w. Colors follow the terminal unless noColor is set.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	out := termenv.NewOutput(w)
	profile := out.EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	return &Printer{out: out, profile: profile}
}

// Plugin subscribes the printer to a store.
func (p *Printer) Plugin() func(*strata.Store) {
	return func(s *strata.Store) {
		p.mu.Lock()
		p.last = s.State().ToMap()
		p.mu.Unlock()

		s.SubscribeAction(func(_ context.Context, a strata.ActionRecord, _ *strata.State) {
			p.line("#c084fc", "dispatch", a.Type, a.Payload)
		})
		s.Subscribe(func(_ context.Context, m strata.MutationRecord, st *strata.State) {
			p.line("#818cf8", "commit", m.Type, m.Payload)
			p.changes(st.ToMap())
		})
	}
}

func (p *Printer) changes(current map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delta := state.Diff(p.last, current)
	p.last = current
	for _, path := range slices.Sorted(maps.Keys(delta)) {
		fmt.Fprintf(p.out, "  %s %s\n", p.profile.String(path+":").Faint(), encode(delta[path]))
	}
}

// Failure reports a failed step.
func (p *Printer) Failure(step Step, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	label := p.profile.String("✗ " + step.String()).Foreground(p.profile.Color("#fb7185")).Bold()
	fmt.Fprintf(p.out, "%s %v\n", label, err)
}

func (p *Printer) line(color, kind, name string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	label := p.profile.String(fmt.Sprintf("%-8s", kind)).Foreground(p.profile.Color(color))
	fmt.Fprintf(p.out, "%s %s", label, p.profile.String(name).Bold())
	if payload != nil {
		fmt.Fprintf(p.out, " %s", p.profile.String(encode(payload)).Faint())
	}
	fmt.Fprintln(p.out)
}

func encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
