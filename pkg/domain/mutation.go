package domain

// Typed is implemented by object-style payloads that carry their own type name.
//
//	type Increment struct{ Amount int }
//
//	func (Increment) Type() string { return "increment" }
//
//	store.Commit(ctx, Increment{Amount: 2})
type Typed interface {
	Type() string
}

// TypeKey is the map key naming the handler in map-shaped object-style payloads.
const TypeKey = "type"

// MutationRecord describes a committed mutation.
type MutationRecord struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ActionRecord describes a dispatched action.
type ActionRecord struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
