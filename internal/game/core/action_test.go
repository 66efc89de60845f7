package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_Validate(t *testing.T) {
	state := State{3, 0, 1}

	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{"take whole pile", Action{Pile: 0, Count: 3}, nil},
		{"take one", Action{Pile: 2, Count: 1}, nil},
		{"negative pile", Action{Pile: -1, Count: 1}, ErrInvalidPile},
		{"pile out of range", Action{Pile: NumPiles, Count: 1}, ErrInvalidPile},
		{"zero count", Action{Pile: 0, Count: 0}, ErrInvalidCount},
		{"negative count", Action{Pile: 0, Count: -2}, ErrInvalidCount},
		{"more than pile holds", Action{Pile: 0, Count: 4}, ErrInvalidCount},
		{"empty pile", Action{Pile: 1, Count: 1}, ErrInvalidCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate(state)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAction_Apply(t *testing.T) {
	start := State{3, 0, 1}
	next := Action{Pile: 0, Count: 3}.Apply(start)

	assert.Equal(t, State{0, 0, 1}, next)
	assert.Equal(t, State{3, 0, 1}, start, "Apply must not modify its input")
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "take 2 from pile 1", Action{Pile: 1, Count: 2}.String())
}
