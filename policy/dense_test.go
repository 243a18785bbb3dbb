package policy

import (
	"bao/game"
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// passThrough copies the active half of the input onto the scores.
func passThrough() *Spec {
	weights := make([][]float64, game.NumMoves)
	for i := range weights {
		weights[i] = make([]float64, game.InputSize)
		weights[i][i] = 1
	}
	return &Spec{Name: "pass-through", Layers: []LayerSpec{{Weights: weights, Activation: "linear"}}}
}

func constant(width, rows int, value float64) [][]float64 {
	weights := make([][]float64, rows)
	for i := range weights {
		weights[i] = make([]float64, width)
		for j := range weights[i] {
			weights[i][j] = value
		}
	}
	return weights
}

func TestDense(t *testing.T) {
	t.Run("single linear layer", func(t *testing.T) {
		net, err := NewDense(passThrough())
		require.NoError(t, err)

		in := game.EncodeNew(&game.Snapshot{Player1: game.HalfBoard{3, 1, 4, 1, 5, 9, 2, 6}})
		var out Scores
		require.NoError(t, Evaluate(net, &in, &out))

		require.Equal(t, Scores{3, 1, 4, 1, 5, 9, 2, 6}, out)
	})

	t.Run("bias and activation are applied", func(t *testing.T) {
		spec := &Spec{Layers: []LayerSpec{
			{Weights: constant(game.InputSize, 4, 1), Bias: []float64{-100, 0, 1, 2}, Activation: "relu"},
			{Weights: constant(4, game.NumMoves, 0.5), Activation: "sigmoid"},
		}}
		net, err := NewDense(spec)
		require.NoError(t, err)

		var in game.Input // all zeros: hidden = relu(bias) = {0, 0, 1, 2}
		var out Scores
		require.NoError(t, Evaluate(net, &in, &out))

		want := 1 / (1 + math.Exp(-1.5))
		for i := range out {
			require.InDelta(t, want, out[i], 1e-12)
		}
	})

	t.Run("clones share weights but not scratch", func(t *testing.T) {
		net, err := NewDense(passThrough())
		require.NoError(t, err)
		clone := net.Clone()

		a := game.EncodeNew(&game.Snapshot{Player1: game.HalfBoard{1}})
		b := game.EncodeNew(&game.Snapshot{Player1: game.HalfBoard{2}})
		var outA, outB Scores
		require.NoError(t, Evaluate(net, &a, &outA))
		require.NoError(t, Evaluate(clone, &b, &outB))

		require.Equal(t, 1.0, outA[0])
		require.Equal(t, 2.0, outB[0])
		require.Equal(t, "pass-through", clone.Name())
	})

	t.Run("rejects wrong slice sizes", func(t *testing.T) {
		net, err := NewDense(passThrough())
		require.NoError(t, err)

		require.ErrorIs(t, net.Activate(make([]float64, 10), make([]float64, 16)), ErrShape)
	})
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  *Spec
		shape bool
	}{
		{"no layers", &Spec{}, true},
		{"wrong input width", &Spec{Layers: []LayerSpec{{Weights: constant(32, 16, 1)}}}, true},
		{"wrong output count", &Spec{Layers: []LayerSpec{{Weights: constant(33, 15, 1)}}}, true},
		{"layers do not chain", &Spec{Layers: []LayerSpec{
			{Weights: constant(33, 8, 1)},
			{Weights: constant(7, 16, 1)},
		}}, true},
		{"bias length mismatch", &Spec{Layers: []LayerSpec{{Weights: constant(33, 16, 1), Bias: []float64{1}}}}, true},
		{"unknown activation", &Spec{Layers: []LayerSpec{{Weights: constant(33, 16, 1), Activation: "softsign"}}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate()
			require.Error(t, err)
			if tc.shape {
				require.ErrorIs(t, err, ErrShape)
			}
			_, err = NewDense(tc.spec)
			require.Error(t, err)
		})
	}
}

func TestSpecFiles(t *testing.T) {
	t.Run("write then load", func(t *testing.T) {
		spec := passThrough()
		spec.Layers[0].Bias = make([]float64, game.NumMoves)
		spec.Layers[0].Bias[5] = 0.25

		var buf bytes.Buffer
		require.NoError(t, spec.Write(&buf))

		path := filepath.Join(t.TempDir(), "net.yaml")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

		loaded, err := LoadSpec(path)
		require.NoError(t, err)
		require.Equal(t, spec, loaded)

		net, err := LoadDense(path)
		require.NoError(t, err)
		var in game.Input
		var out Scores
		require.NoError(t, Evaluate(net, &in, &out))
		require.Equal(t, 0.25, out[5])
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := ReadSpec(bytes.NewBufferString("name: x\nlayerz: []\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDense(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
