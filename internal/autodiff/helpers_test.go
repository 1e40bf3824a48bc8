package autodiff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/backend/cpu"
	"github.com/born-ml/backprop/internal/tensor"
)

type namedEngine struct {
	name   string
	engine *Engine[tensor.Backend]
}

// engines returns every backend/traversal combination under test.
func engines() []namedEngine {
	iterative := Config{Traversal: Iterative}
	return []namedEngine{
		{"cpu/recursive", New[tensor.Backend](cpu.New())},
		{"cpu/iterative", NewWithConfig[tensor.Backend](cpu.New(), iterative)},
		{"mock/recursive", New[tensor.Backend](tensor.NewMockBackend())},
		{"mock/iterative", NewWithConfig[tensor.Backend](tensor.NewMockBackend(), iterative)},
	}
}

func raw64(t *testing.T, data []float64, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return r
}

func leaf64(t *testing.T, data []float64, shape ...int) *Tensor {
	t.Helper()
	return Leaf(raw64(t, data, shape...))
}

// must unwraps a forward constructor result; constructor errors in these
// tests are setup bugs.
func must(out *Tensor, err error) *Tensor {
	if err != nil {
		panic(err)
	}
	return out
}
