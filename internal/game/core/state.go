package core

import (
	"fmt"
	"strings"
)

// NumPiles is the fixed number of piles in a position
const NumPiles = 3

// State holds the remaining object count of every pile.
// It is an array so positions can be compared and used as map keys directly.
type State [NumPiles]int

// Total returns the number of objects left on the table
func (s State) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// IsEmpty reports whether every pile has been cleared
func (s State) IsEmpty() bool {
	for _, n := range s {
		if n != 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether no pile is negative
func (s State) IsValid() bool {
	for _, n := range s {
		if n < 0 {
			return false
		}
	}
	return true
}

func (s State) String() string {
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
