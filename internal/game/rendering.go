package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// ObjectSymbol is drawn once per remaining object
const ObjectSymbol = "@"

// RenderPiles draws one line per pile, e.g. "row 0: @@@"
func RenderPiles(s core.State) string {
	var sb strings.Builder
	sb.Grow(core.NumPiles*12 + s.Total())
	for i, n := range s {
		sb.WriteString(fmt.Sprintf("row %d: %s\n", i, strings.Repeat(ObjectSymbol, n)))
	}
	return sb.String()
}

// String renders the current piles
func (e *Engine) String() string {
	return RenderPiles(e.state)
}
