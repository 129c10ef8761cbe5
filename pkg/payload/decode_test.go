package payload_test

import (
	"testing"
	"time"

	"github.com/aretw0/strata/pkg/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transfer struct {
	Amount int
	To     string        `payload:"recipient"`
	Delay  time.Duration `payload:"delay"`
}

func TestDecode_MapPayload(t *testing.T) {
	var got transfer
	err := payload.Decode(map[string]any{
		"type":      "transfer",
		"amount":    "5",
		"recipient": "ada",
		"delay":     "2s",
	}, &got)
	require.NoError(t, err)

	assert.Equal(t, transfer{Amount: 5, To: "ada", Delay: 2 * time.Second}, got)
}

func TestDecode_AssignableValue(t *testing.T) {
	var n int
	require.NoError(t, payload.Decode(7, &n))
	assert.Equal(t, 7, n)

	var tr transfer
	require.NoError(t, payload.Decode(transfer{Amount: 1}, &tr))
	assert.Equal(t, 1, tr.Amount)
}

func TestDecode_BadTarget(t *testing.T) {
	var n int
	assert.Error(t, payload.Decode(1, n))
	assert.Error(t, payload.Decode(1, (*int)(nil)))
}

func TestField(t *testing.T) {
	assert.Equal(t, 2, payload.Field(2, "amount"))
	assert.Equal(t, 3, payload.Field(map[string]any{"type": "x", "amount": 3}, "amount"))
	assert.Nil(t, payload.Field(map[string]any{"type": "x"}, "amount"))
}

func TestStrip(t *testing.T) {
	in := map[string]any{"type": "x", "amount": 3}
	assert.Equal(t, map[string]any{"amount": 3}, payload.Strip(in))
	assert.Equal(t, "x", in["type"], "input untouched")
	assert.Equal(t, 4, payload.Strip(4))
}
