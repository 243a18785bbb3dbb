package game

import "fmt"

type Turn int

const (
	Player1 Turn = iota
	Player2
)

// Other returns the opponent of t.
func (t Turn) Other() Turn {
	if t == Player1 {
		return Player2
	}
	return Player1
}

func (t Turn) String() string {
	switch t {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return fmt.Sprintf("Turn(%d)", int(t))
	}
}

type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Encode maps the direction onto the last network input.
func (d Direction) Encode() float64 {
	if d == CounterClockwise {
		return 1.0
	}
	return 0.0
}

func (d Direction) String() string {
	if d == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// HalfBoard holds one player's row of pit counts.
type HalfBoard [PitsPerHalf]int

// Snapshot is a plain State filled in by the rule engine for one decision.
type Snapshot struct {
	Player1 HalfBoard
	Player2 HalfBoard
	Active  Turn
	Sowing  Direction
	Legal   Legality // nil means no index is playable
}

func (s *Snapshot) Turn() Turn {
	return s.Active
}

func (s *Snapshot) Half(player Turn) HalfBoard {
	if player == Player2 {
		return s.Player2
	}
	return s.Player1
}

func (s *Snapshot) Direction() Direction {
	return s.Sowing
}

func (s *Snapshot) IsValidIndex(index int) bool {
	if s.Legal == nil {
		return false
	}
	return s.Legal(index)
}

// Mask is a fixed legality table, one entry per pit of the active half.
type Mask [NumMoves]bool

// MaskOf returns a mask allowing exactly the given indices.
func MaskOf(indices ...int) Mask {
	var m Mask
	for _, i := range indices {
		if i >= 0 && i < NumMoves {
			m[i] = true
		}
	}
	return m
}

// Allows reports whether index is playable. Out-of-range indices never are.
func (m Mask) Allows(index int) bool {
	return index >= 0 && index < NumMoves && m[index]
}
