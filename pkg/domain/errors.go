package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidType is returned when the resolved commit or dispatch type is not a string.
var ErrInvalidType = errors.New("invalid type")

// ErrUnknownMutation is returned when committing a mutation that was never registered.
var ErrUnknownMutation = errors.New("unknown mutation type")

// ErrUnknownAction is returned when dispatching an action that was never registered.
var ErrUnknownAction = errors.New("unknown action type")

// ErrDuplicateGetter is returned when two getters are registered under the same name.
var ErrDuplicateGetter = errors.New("duplicate getter key")

// ErrDuplicateMutation is returned when two mutations are registered under the same name.
var ErrDuplicateMutation = errors.New("duplicate mutation key")

// ErrDuplicateAction is returned when two actions are registered under the same name.
var ErrDuplicateAction = errors.New("duplicate action key")

// ErrGetterCycle is returned when a getter reads itself, directly or through other getters.
var ErrGetterCycle = errors.New("getter dependency cycle")

// ErrStateMutationOutsideCommit is returned when state is written outside a mutation handler
// while strict mode is enabled.
var ErrStateMutationOutsideCommit = errors.New("do not mutate store state outside mutation handlers")

// TypeError reports a non-string type after payload normalization.
type TypeError struct {
	Found string // Go type of the offending value, "nil" for nil
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expects string as the type, but found %s", e.Found)
}

func (e *TypeError) Unwrap() error {
	return ErrInvalidType
}

// NewTypeError builds a TypeError describing v.
func NewTypeError(v any) *TypeError {
	if v == nil {
		return &TypeError{Found: "nil"}
	}
	return &TypeError{Found: fmt.Sprintf("%T", v)}
}
