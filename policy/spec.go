package policy

import (
	"bao/game"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the on-disk form of a dense network.
type Spec struct {
	Name   string      `yaml:"name"`
	Layers []LayerSpec `yaml:"layers"`
}

// LayerSpec holds one fully connected layer. Weights has one row per output
// neuron; an empty Bias means no bias.
type LayerSpec struct {
	Weights    [][]float64 `yaml:"weights"`
	Bias       []float64   `yaml:"bias,omitempty"`
	Activation string      `yaml:"activation"`
}

// LoadSpec reads a YAML weight file.
func LoadSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network file: %w", err)
	}
	defer f.Close()

	spec, err := ReadSpec(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file %s: %w", path, err)
	}
	return spec, nil
}

func ReadSpec(r io.Reader) (*Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *Spec) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}

// Validate checks that layers chain from the board input to one score per pit.
func (s *Spec) Validate() error {
	if len(s.Layers) == 0 {
		return fmt.Errorf("%w: network has no layers", ErrShape)
	}

	width := game.InputSize
	for i, l := range s.Layers {
		if len(l.Weights) == 0 {
			return fmt.Errorf("%w: layer %d has no neurons", ErrShape, i)
		}
		for j, row := range l.Weights {
			if len(row) != width {
				return fmt.Errorf("%w: layer %d neuron %d has %d weights, want %d", ErrShape, i, j, len(row), width)
			}
		}
		if len(l.Bias) != 0 && len(l.Bias) != len(l.Weights) {
			return fmt.Errorf("%w: layer %d has %d biases for %d neurons", ErrShape, i, len(l.Bias), len(l.Weights))
		}
		if _, ok := activations[l.Activation]; !ok {
			return fmt.Errorf("policy: layer %d has unknown activation %q", i, l.Activation)
		}
		width = len(l.Weights)
	}

	if width != game.NumMoves {
		return fmt.Errorf("%w: network emits %d scores, want %d", ErrShape, width, game.NumMoves)
	}
	return nil
}
