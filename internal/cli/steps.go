package cli

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidStep is returned for malformed --step values.
var ErrInvalidStep = errors.New("invalid step")

// Step kinds.
const (
	StepCommit   = "commit"
	StepDispatch = "dispatch"
)

// Step is one scripted store operation.
type Step struct {
	Kind    string
	Name    string
	Payload any
}

func (s Step) String() string {
	return s.Kind + ":" + s.Name
}

// ParseStep parses "commit:NAME", "dispatch:NAME" and either followed by
// "=PAYLOAD". PAYLOAD is JSON or a YAML flow value, so integers stay integers.
func ParseStep(raw string) (Step, error) {
	kind, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return Step{}, fmt.Errorf("%w %q: expected KIND:NAME[=PAYLOAD]", ErrInvalidStep, raw)
	}
	if kind != StepCommit && kind != StepDispatch {
		return Step{}, fmt.Errorf("%w %q: unknown kind %q", ErrInvalidStep, raw, kind)
	}

	name, data, hasPayload := strings.Cut(rest, "=")
	if name == "" {
		return Step{}, fmt.Errorf("%w %q: missing name", ErrInvalidStep, raw)
	}

	step := Step{Kind: kind, Name: name}
	if hasPayload {
		if err := yaml.Unmarshal([]byte(data), &step.Payload); err != nil {
			return Step{}, fmt.Errorf("%w %q: payload: %v", ErrInvalidStep, raw, err)
		}
	}
	return step, nil
}

// ParseSteps parses every raw step, stopping at the first error.
func ParseSteps(raw []string) ([]Step, error) {
	steps := make([]Step, 0, len(raw))
	for _, r := range raw {
		s, err := ParseStep(r)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}
