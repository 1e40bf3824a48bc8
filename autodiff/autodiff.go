// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Forward operations evaluate eagerly and record their operands. Backward
// walks the recorded graph from a scalar loss (or from any tensor with an
// explicit gradient) and accumulates gradients into every tensor it reaches.
//
// Example:
//
//	import (
//	    "github.com/born-ml/backprop/autodiff"
//	    "github.com/born-ml/backprop/backend/cpu"
//	    "github.com/born-ml/backprop/tensor"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//
//	    a, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2})
//	    b, _ := tensor.FromSlice([]float64{4, 5}, tensor.Shape{2})
//	    x, y := autodiff.Leaf(a), autodiff.Leaf(b)
//
//	    prod, _ := engine.Multiply(x, y)
//	    loss := engine.Sum(prod)
//
//	    if err := engine.Backward(loss, nil); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad()) // [4, 5]
//	}
package autodiff

import (
	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/tensor"
)

// Engine builds differentiable tensors on top of a backend.
type Engine[B tensor.Backend] = autodiff.Engine[B]

// Config configures an Engine.
type Config = autodiff.Config

// Traversal selects how Backward walks the graph.
type Traversal = autodiff.Traversal

// Traversal modes.
const (
	Recursive = autodiff.Recursive
	Iterative = autodiff.Iterative
)

// New creates an engine wrapping the given backend.
//
// Example:
//
//	engine := autodiff.New(cpu.New())
func New[B tensor.Backend](backend B) *Engine[B] {
	return autodiff.New(backend)
}

// NewWithConfig creates an engine with an explicit configuration.
//
// Example:
//
//	engine := autodiff.NewWithConfig(cpu.New(), autodiff.Config{Traversal: autodiff.Iterative})
func NewWithConfig[B tensor.Backend](backend B, cfg Config) *Engine[B] {
	return autodiff.NewWithConfig(backend, cfg)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return autodiff.DefaultConfig()
}

// Tensor is a node in the computation graph.
type Tensor = autodiff.Tensor

// Leaf wraps a value as an input tensor with a zero gradient.
func Leaf(value *tensor.RawTensor) *Tensor {
	return autodiff.Leaf(value)
}

// Origin records the operation that produced a non-leaf tensor.
type Origin = autodiff.Origin

// OpKind names the operation of an Origin.
type OpKind = autodiff.OpKind

// Operation kinds.
const (
	OpSum        = autodiff.OpSum
	OpAdd        = autodiff.OpAdd
	OpSubtract   = autodiff.OpSubtract
	OpMultiply   = autodiff.OpMultiply
	OpReLU       = autodiff.OpReLU
	OpDotProduct = autodiff.OpDotProduct
)

// Origin variants.
type (
	SumOrigin        = autodiff.SumOrigin
	AddOrigin        = autodiff.AddOrigin
	SubtractOrigin   = autodiff.SubtractOrigin
	MultiplyOrigin   = autodiff.MultiplyOrigin
	ReLUOrigin       = autodiff.ReLUOrigin
	DotProductOrigin = autodiff.DotProductOrigin
)

// OpError describes a failed graph operation.
type OpError = autodiff.OpError

// Error kinds, matched with errors.Is.
var (
	ErrShape                  = autodiff.ErrShape
	ErrLeafBackward           = autodiff.ErrLeafBackward
	ErrScalarRequired         = autodiff.ErrScalarRequired
	ErrUnimplementedOperation = autodiff.ErrUnimplementedOperation
	ErrDTypeMismatch          = autodiff.ErrDTypeMismatch
	ErrGradientMismatch       = autodiff.ErrGradientMismatch
)

// Walk visits every distinct tensor reachable from root in depth-first pre-order.
func Walk(root *Tensor, fn func(*Tensor) bool) {
	autodiff.Walk(root, fn)
}

// Leaves returns the distinct leaves reachable from root.
func Leaves(root *Tensor) []*Tensor {
	return autodiff.Leaves(root)
}

// CountNodes returns the number of distinct tensors reachable from root.
func CountNodes(root *Tensor) int {
	return autodiff.CountNodes(root)
}

// ZeroGrads resets the gradient of every tensor reachable from root.
func ZeroGrads(root *Tensor) {
	autodiff.ZeroGrads(root)
}

// NumericalGradient estimates d f / d x by central differences.
func NumericalGradient(f func() (float64, error), x *tensor.RawTensor, eps float64) (*tensor.RawTensor, error) {
	return autodiff.NumericalGradient(f, x, eps)
}

// CheckGradient returns the largest absolute difference between analytic and
// numeric, failing with ErrGradientMismatch above tol.
func CheckGradient(analytic, numeric *tensor.RawTensor, tol float64) (float64, error) {
	return autodiff.CheckGradient(analytic, numeric, tol)
}
