package experience

import "github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"

// Pending is a decision whose outcome is not known yet
type Pending struct {
	State  core.State
	Action core.Action
}

// PendingTracker holds at most one pending decision per player. A player's
// decision is resolved after the opponent replies, or when the game ends.
type PendingTracker struct {
	slots [2]Pending
	set   [2]bool
}

// Remember records the player's latest decision, replacing the previous one
func (p *PendingTracker) Remember(player core.Player, s core.State, a core.Action) {
	if !player.IsValid() {
		return
	}
	p.slots[player] = Pending{State: s, Action: a}
	p.set[player] = true
}

// Get returns the player's pending decision, if any
func (p *PendingTracker) Get(player core.Player) (Pending, bool) {
	if !player.IsValid() || !p.set[player] {
		return Pending{}, false
	}
	return p.slots[player], true
}
