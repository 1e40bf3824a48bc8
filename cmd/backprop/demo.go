package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/autodiff"
	"github.com/born-ml/backprop/backend/cpu"
	"github.com/born-ml/backprop/internal/serialization"
	"github.com/born-ml/backprop/tensor"
)

// runDemo computes loss = Σ relu(x @ w - offset) with w the identity and
// prints every gradient, optionally saving them with -out.
func runDemo(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(w)
	iterative := fs.Bool("iterative", false, "Use explicit-stack traversal")
	out := fs.String("out", "", "Write values and gradients to this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine := autodiff.NewWithConfig(cpu.New(), engineConfig(*iterative))

	x, err := leaf([]float64{1, 2, 3, 4}, 2, 2)
	if err != nil {
		return err
	}
	weights, err := leaf([]float64{1, 0, 0, 1}, 2, 2)
	if err != nil {
		return err
	}
	offset, err := leaf([]float64{0, 0, 5, 5}, 2, 2)
	if err != nil {
		return err
	}

	y, err := engine.DotProduct(x, weights)
	if err != nil {
		return err
	}
	d, err := engine.Subtract(y, offset)
	if err != nil {
		return err
	}
	loss := engine.Sum(engine.ReLU(d))

	if err := engine.Backward(loss, nil); err != nil {
		return err
	}

	fmt.Fprintf(w, "engine:      %s (%s)\n", engine.Name(), engine.Config().Traversal)
	fmt.Fprintf(w, "nodes:       %d\n", autodiff.CountNodes(loss))
	fmt.Fprintf(w, "loss:        %v\n", loss.Value())
	fmt.Fprintf(w, "x.grad:      %v\n", x.Grad())
	fmt.Fprintf(w, "w.grad:      %v\n", weights.Grad())
	fmt.Fprintf(w, "offset.grad: %v\n", offset.Grad())

	if *out == "" {
		return nil
	}
	snapshot, err := serialization.Snapshot(map[string]*autodiff.Tensor{
		"x":      x,
		"w":      weights,
		"offset": offset,
		"loss":   loss,
	})
	if err != nil {
		return err
	}
	meta := map[string]string{"engine": engine.Name(), "version": version}
	if err := serialization.SaveSafeTensors(*out, snapshot, meta); err != nil {
		return errors.Wrapf(err, "write %s", *out)
	}
	fmt.Fprintf(w, "wrote %d tensors to %s\n", len(snapshot), *out)
	return nil
}

func leaf(data []float64, shape ...int) (*autodiff.Tensor, error) {
	raw, err := tensor.FromSlice(data, tensor.Shape(shape))
	if err != nil {
		return nil, err
	}
	return autodiff.Leaf(raw), nil
}

func engineConfig(iterative bool) autodiff.Config {
	cfg := autodiff.DefaultConfig()
	if iterative {
		cfg.Traversal = autodiff.Iterative
	}
	return cfg
}
