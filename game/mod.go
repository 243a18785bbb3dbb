package game

// Board dimensions shared by the encoder, the policy and the selector.
const (
	PitsPerHalf = 16
	InputSize   = 2*PitsPerHalf + 1
	NumMoves    = PitsPerHalf
)

// State is the view of a Bao position the rule engine exposes to an agent.
// It is read-only: agents never play moves on it.
type State interface {
	// Turn reports which player is to move.
	Turn() Turn
	// Half returns the pit counts of the given player's side of the board.
	Half(player Turn) HalfBoard
	// Direction reports the current sowing direction.
	Direction() Direction
	// IsValidIndex reports whether the active player may play the pit at index.
	IsValidIndex(index int) bool
}

// Legality decides whether a pit index is playable for the active player.
type Legality func(index int) bool
