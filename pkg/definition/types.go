package definition

import "time"

// Profiles select the validation mode of the built store.
const (
	ProfileDevelopment = "development"
	ProfileProduction  = "production"
)

// Definition is the decoded form of a store document.
type Definition struct {
	Name    string `json:"name" mapstructure:"name"`
	Profile string `json:"profile,omitempty" mapstructure:"profile"`
	// Strict defaults to true when omitted.
	Strict *bool `json:"strict,omitempty" mapstructure:"strict"`

	State     map[string]any      `json:"state" mapstructure:"state"`
	Getters   map[string]Getter   `json:"getters,omitempty" mapstructure:"getters"`
	Mutations map[string]Mutation `json:"mutations,omitempty" mapstructure:"mutations"`
	Actions   map[string]Action   `json:"actions,omitempty" mapstructure:"actions"`
}

// Mutation writes one state leaf.
type Mutation struct {
	Op string `json:"op" mapstructure:"op"`
	// Field is a dotted state path, e.g. "filter.done".
	Field string `json:"field" mapstructure:"field"`
	// Value is a constant operand. Without it the payload is used,
	// or the payload field named by From.
	Value any    `json:"value,omitempty" mapstructure:"value"`
	From  string `json:"from,omitempty" mapstructure:"from"`
	// Accepts is either a type string for scalar payloads ("int") or a
	// mapping of payload fields to type strings.
	Accepts any `json:"accepts,omitempty" mapstructure:"accepts"`
}

// Getter derives a value from a state leaf or from another getter.
type Getter struct {
	Op     string `json:"op" mapstructure:"op"`
	Field  string `json:"field,omitempty" mapstructure:"field"`
	Getter string `json:"getter,omitempty" mapstructure:"getter"`
	// Value is the comparand of eq, gt and lt.
	Value any `json:"value,omitempty" mapstructure:"value"`
}

// Action runs its steps in order.
type Action struct {
	Steps   []Step `json:"steps" mapstructure:"steps"`
	Accepts any    `json:"accepts,omitempty" mapstructure:"accepts"`
}

// Step commits a mutation or dispatches (and awaits) an action.
type Step struct {
	Commit   string `json:"commit,omitempty" mapstructure:"commit"`
	Dispatch string `json:"dispatch,omitempty" mapstructure:"dispatch"`
	// Payload replaces the action payload for this step when set.
	Payload any           `json:"payload,omitempty" mapstructure:"payload"`
	Delay   time.Duration `json:"delay,omitempty" mapstructure:"delay"`
}

// Async reports whether the action has to run on its own goroutine.
func (a Action) Async() bool {
	for _, s := range a.Steps {
		if s.Delay > 0 {
			return true
		}
	}
	return false
}
