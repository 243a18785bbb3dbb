package game

// Input is the network input for one decision: the active half, the
// passive half, then the direction.
type Input [InputSize]float64

// Encode writes state into dst from the active player's perspective.
// The active player's pits come first, so the same network plays both sides.
func Encode(state State, dst *Input) {
	active := state.Turn()
	own := state.Half(active)
	opp := state.Half(active.Other())

	for i, seeds := range own {
		dst[i] = float64(seeds)
	}
	for i, seeds := range opp {
		dst[PitsPerHalf+i] = float64(seeds)
	}
	dst[2*PitsPerHalf] = state.Direction().Encode()
}

// EncodeNew is Encode into a fresh Input.
func EncodeNew(state State) Input {
	var in Input
	Encode(state, &in)
	return in
}
