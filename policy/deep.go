package policy

import (
	"bao/game"
	"fmt"

	deep "github.com/patrikeh/go-deep"
)

// Deep adapts a go-deep network. Predict writes neuron state, so each
// session needs its own Deep.
type Deep struct {
	net *deep.Neural
}

// NewDeep builds a randomly initialised regression network with the given
// hidden layer widths.
func NewDeep(hidden ...int) *Deep {
	layout := append(append([]int(nil), hidden...), game.NumMoves)
	return &Deep{net: deep.NewNeural(&deep.Config{
		Inputs:     game.InputSize,
		Layout:     layout,
		Activation: deep.ActivationTanh,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.5, 0.0),
		Bias:       true,
	})}
}

// WrapDeep adapts an existing network after checking its shape.
func WrapDeep(net *deep.Neural) (*Deep, error) {
	cfg := net.Config
	if cfg.Inputs != game.InputSize {
		return nil, fmt.Errorf("%w: network takes %d inputs, want %d", ErrShape, cfg.Inputs, game.InputSize)
	}
	if n := len(cfg.Layout); n == 0 || cfg.Layout[n-1] != game.NumMoves {
		return nil, fmt.Errorf("%w: network layout %v does not end in %d outputs", ErrShape, cfg.Layout, game.NumMoves)
	}
	return &Deep{net: net}, nil
}

// Clone copies the weights into a fresh network.
func (d *Deep) Clone() *Deep {
	net := deep.NewNeural(d.net.Config)
	net.ApplyWeights(d.net.Weights())
	return &Deep{net: net}
}

func (d *Deep) Activate(input []float64, output []float64) error {
	if err := checkShape(input, output); err != nil {
		return err
	}
	prediction := d.net.Predict(input)
	if len(prediction) != len(output) {
		return fmt.Errorf("%w: network predicted %d scores, want %d", ErrShape, len(prediction), len(output))
	}
	copy(output, prediction)
	return nil
}
