package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/strata"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Report is the final snapshot printed after a run.
type Report struct {
	State   map[string]any `json:"state" yaml:"state"`
	Getters map[string]any `json:"getters" yaml:"getters"`
}

// NewReport snapshots the store.
func NewReport(s *strata.Store) Report {
	return Report{
		State:   s.State().ToMap(),
		Getters: s.Getters().ToMap(),
	}
}

// Write encodes r to w in the given format.
func (r Report) Write(w io.Writer, format string) error {
	switch format {
	case "", OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
