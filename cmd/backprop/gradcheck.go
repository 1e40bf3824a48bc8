package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/autodiff"
	"github.com/born-ml/backprop/backend/cpu"
	"github.com/born-ml/backprop/tensor"
)

type cpuEngine = autodiff.Engine[*cpu.Backend]

// gradCase is one operation under check: its random input shapes and a
// builder that reduces the operation to a scalar loss.
type gradCase struct {
	name   string
	shapes []tensor.Shape
	relu   bool
	build  func(e *cpuEngine, in []*autodiff.Tensor) (*autodiff.Tensor, error)
}

// weighted reduces out to Σ out ⊙ k so each element gets a distinct upstream gradient.
func weighted(e *cpuEngine, out, k *autodiff.Tensor) (*autodiff.Tensor, error) {
	p, err := e.Multiply(out, k)
	if err != nil {
		return nil, err
	}
	return e.Sum(p), nil
}

func binaryCase(name string, op func(e *cpuEngine, a, b *autodiff.Tensor) (*autodiff.Tensor, error)) gradCase {
	shape := tensor.Shape{2, 3}
	return gradCase{
		name:   name,
		shapes: []tensor.Shape{shape, shape, shape},
		build: func(e *cpuEngine, in []*autodiff.Tensor) (*autodiff.Tensor, error) {
			out, err := op(e, in[0], in[1])
			if err != nil {
				return nil, err
			}
			return weighted(e, out, in[2])
		},
	}
}

var gradCases = []gradCase{
	{
		name:   "sum",
		shapes: []tensor.Shape{{3, 4}},
		build: func(e *cpuEngine, in []*autodiff.Tensor) (*autodiff.Tensor, error) {
			return e.Sum(in[0]), nil
		},
	},
	binaryCase("add", (*cpuEngine).Add),
	binaryCase("subtract", (*cpuEngine).Subtract),
	binaryCase("multiply", (*cpuEngine).Multiply),
	{
		name:   "relu",
		shapes: []tensor.Shape{{3, 3}, {3, 3}},
		relu:   true,
		build: func(e *cpuEngine, in []*autodiff.Tensor) (*autodiff.Tensor, error) {
			return weighted(e, e.ReLU(in[0]), in[1])
		},
	},
	{
		name:   "dot_product",
		shapes: []tensor.Shape{{2, 3}, {3, 4}, {2, 4}},
		build: func(e *cpuEngine, in []*autodiff.Tensor) (*autodiff.Tensor, error) {
			out, err := e.DotProduct(in[0], in[1])
			if err != nil {
				return nil, err
			}
			return weighted(e, out, in[2])
		},
	},
}

func runGradCheck(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	fs.SetOutput(w)
	seed := fs.Int64("seed", 42, "Random seed for inputs")
	eps := fs.Float64("eps", 1e-6, "Finite-difference step")
	tol := fs.Float64("tol", 1e-4, "Maximum allowed absolute difference")
	iterative := fs.Bool("iterative", false, "Use explicit-stack traversal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine := autodiff.NewWithConfig(cpu.New(), engineConfig(*iterative))
	rng := rand.New(rand.NewSource(*seed))

	failed := 0
	for _, c := range gradCases {
		diff, err := checkCase(engine, c, rng, *eps, *tol)
		status := "ok"
		if err != nil {
			status = "FAIL: " + err.Error()
			failed++
		}
		fmt.Fprintf(w, "%-12s max diff %.3e  %s\n", c.name, diff, status)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d operations failed the gradient check", failed, len(gradCases))
	}
	return nil
}

// checkCase returns the largest analytic/numeric difference over all inputs.
func checkCase(e *cpuEngine, c gradCase, rng *rand.Rand, eps, tol float64) (float64, error) {
	inputs := make([]*tensor.RawTensor, len(c.shapes))
	for i, shape := range c.shapes {
		inputs[i] = tensor.Randn[float64](shape, rng)
	}
	if c.relu {
		// Keep the first input away from the kink at zero.
		data := inputs[0].AsFloat64()
		for i, v := range data {
			if math.Abs(v) < 0.1 {
				data[i] = math.Copysign(0.5, v)
			}
		}
	}

	return e.CheckGraph(func(leaves []*autodiff.Tensor) (*autodiff.Tensor, error) {
		return c.build(e, leaves)
	}, inputs, eps, tol)
}
