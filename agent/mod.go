// Package agent wires encoding, scoring and selection into a move picker.
package agent

import "bao/game"

// Agent picks a pit index for the side to move in state.
type Agent interface {
	PickIndex(state game.State) (int, error)
}
