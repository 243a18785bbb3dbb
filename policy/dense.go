package policy

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var activations = map[string]func(float64) float64{
	"":        linear,
	"linear":  linear,
	"sigmoid": sigmoid,
	"tanh":    math.Tanh,
	"relu":    relu,
}

func linear(x float64) float64  { return x }
func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

type layer struct {
	weights  *mat.Dense
	bias     *mat.VecDense // nil without bias
	activate func(float64) float64
}

// Dense is a feed-forward network. Layers are read-only after construction;
// the scratch vectors are not, so a Dense must not be shared between
// goroutines. Use Clone to get one per session.
type Dense struct {
	name    string
	layers  []*layer
	scratch []*mat.VecDense
}

// LoadDense reads a YAML weight file and builds the network.
func LoadDense(path string) (*Dense, error) {
	spec, err := LoadSpec(path)
	if err != nil {
		return nil, err
	}
	return NewDense(spec)
}

func NewDense(spec *Spec) (*Dense, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	layers := make([]*layer, len(spec.Layers))
	for i, ls := range spec.Layers {
		rows, cols := len(ls.Weights), len(ls.Weights[0])
		data := make([]float64, 0, rows*cols)
		for _, row := range ls.Weights {
			data = append(data, row...)
		}

		l := &layer{
			weights:  mat.NewDense(rows, cols, data),
			activate: activations[ls.Activation],
		}
		if len(ls.Bias) > 0 {
			l.bias = mat.NewVecDense(rows, append([]float64(nil), ls.Bias...))
		}
		layers[i] = l
	}

	return &Dense{
		name:    spec.Name,
		layers:  layers,
		scratch: newScratch(layers),
	}, nil
}

func newScratch(layers []*layer) []*mat.VecDense {
	scratch := make([]*mat.VecDense, len(layers))
	for i, l := range layers {
		rows, _ := l.weights.Dims()
		scratch[i] = mat.NewVecDense(rows, nil)
	}
	return scratch
}

func (d *Dense) Name() string {
	return d.name
}

// Clone returns a network sharing d's weights with its own scratch space.
func (d *Dense) Clone() *Dense {
	return &Dense{
		name:    d.name,
		layers:  d.layers,
		scratch: newScratch(d.layers),
	}
}

func (d *Dense) Activate(input []float64, output []float64) error {
	if err := checkShape(input, output); err != nil {
		return err
	}

	var x mat.Vector = mat.NewVecDense(len(input), input)
	for i, l := range d.layers {
		out := d.scratch[i]
		out.MulVec(l.weights, x)
		if l.bias != nil {
			out.AddVec(out, l.bias)
		}
		raw := out.RawVector().Data
		for j, v := range raw {
			raw[j] = l.activate(v)
		}
		x = out
	}

	copy(output, d.scratch[len(d.scratch)-1].RawVector().Data)
	return nil
}
