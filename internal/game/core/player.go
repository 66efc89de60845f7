package core

// Player identifies one of the two seats
type Player int

const (
	Player0 Player = 0
	Player1 Player = 1

	// NoPlayer marks an unset winner
	NoPlayer Player = -1
)

// OtherPlayer maps 0 to 1 and 1 to 0
func OtherPlayer(p Player) Player {
	if p == Player1 {
		return Player0
	}
	return Player1
}

// IsValid reports whether p is one of the two seats
func (p Player) IsValid() bool {
	return p == Player0 || p == Player1
}
