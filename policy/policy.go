// Package policy adapts scoring networks to the fixed board shapes.
//
// A network is treated as an opaque capability: it gets the 33 encoded
// inputs and fills one score per pit. Training and topology live elsewhere.
package policy

import (
	"bao/game"
	"errors"
	"fmt"
)

// ErrShape reports a network or weight file whose sizes do not match the board.
var ErrShape = errors.New("policy: shape mismatch")

// Scores holds one score per pit of the active half, higher is better.
type Scores [game.NumMoves]float64

// Network scores an encoded board. Activate must fill output completely and
// must not retain either slice.
type Network interface {
	Activate(input []float64, output []float64) error
}

// Evaluate runs n on in and stores the scores in out.
func Evaluate(n Network, in *game.Input, out *Scores) error {
	if err := n.Activate(in[:], out[:]); err != nil {
		return fmt.Errorf("failed to activate network: %w", err)
	}
	return nil
}

// Func adapts a plain function to Network.
type Func func(input []float64, output []float64) error

func (f Func) Activate(input []float64, output []float64) error {
	return f(input, output)
}

// Fixed ignores its input and always returns the same scores.
type Fixed Scores

func (f *Fixed) Activate(input []float64, output []float64) error {
	if err := checkShape(input, output); err != nil {
		return err
	}
	copy(output, f[:])
	return nil
}

func checkShape(input, output []float64) error {
	if len(input) != game.InputSize {
		return fmt.Errorf("%w: got %d inputs, want %d", ErrShape, len(input), game.InputSize)
	}
	if len(output) != game.NumMoves {
		return fmt.Errorf("%w: got %d outputs, want %d", ErrShape, len(output), game.NumMoves)
	}
	return nil
}
