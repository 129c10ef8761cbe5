package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPayload is matched by every error returned from ValidatePayload.
var ErrInvalidPayload = errors.New("invalid payload")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name, empty for scalar payloads
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	key := e.Key
	if key == "" {
		key = "payload"
	}
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures, ordered by field name.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err)
	}
	return b.String()
}

func (e *AggregateError) Unwrap() error {
	return ErrInvalidPayload
}

// ValidationErrors returns the individual failures wrapped in err, if any.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
