package rules

import "github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"

// LegalActions returns every action available in the position, ordered by pile
// and then by count. The order carries no meaning for the rules, but callers
// that break ties by first occurrence rely on it being stable.
func LegalActions(s core.State) []core.Action {
	actions := make([]core.Action, 0, s.Total())
	for pile, n := range s {
		for count := 1; count <= n; count++ {
			actions = append(actions, core.Action{Pile: pile, Count: count})
		}
	}
	return actions
}

// IsLegal reports whether the action is one of LegalActions(s)
func IsLegal(s core.State, a core.Action) bool {
	return a.Validate(s) == nil
}

// GetLegalActionMask returns a flattened mask over every (pile, count) pair
// up to maxPile. Index = pile*maxPile + (count-1).
func GetLegalActionMask(s core.State, maxPile int) []bool {
	mask := make([]bool, core.NumPiles*maxPile)
	for pile, n := range s {
		for count := 1; count <= n && count <= maxPile; count++ {
			mask[pile*maxPile+count-1] = true
		}
	}
	return mask
}
