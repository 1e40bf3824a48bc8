// Package autodiff implements reverse-mode automatic differentiation over an
// eagerly evaluated expression graph.
//
// Every Tensor carries its forward value, an accumulated gradient, and an
// Origin describing the operation and operands that produced it. Leaves have
// no origin. Backward walks the graph from a root toward the leaves,
// accumulating the incoming gradient into each node it visits and routing
// per-operand contributions through the local derivative of each operation.
//
// Architecture:
//   - Engine[B]: binds a tensor.Backend that performs all array math
//   - Origin: closed set of operation variants dispatched by a type switch
//   - Traversal: recursive (default) or explicit-stack depth-first order
//
// Usage:
//
//	engine := autodiff.New(cpu.New())
//
//	x := autodiff.Leaf(xValue)
//	w := autodiff.Leaf(wValue)
//	y, _ := engine.DotProduct(x, w)
//	loss := engine.Sum(engine.ReLU(y))
//
//	if err := engine.Backward(loss, nil); err != nil {
//		return err
//	}
//	fmt.Println(w.Grad())
package autodiff

import (
	"fmt"

	"github.com/born-ml/backprop/internal/tensor"
)

// Traversal selects how Backward walks the graph.
type Traversal int

const (
	// Recursive follows the graph with native recursion. Depth is bounded
	// by the goroutine stack.
	Recursive Traversal = iota

	// Iterative keeps an explicit stack of pending visits. It visits nodes
	// in exactly the same order as Recursive and handles arbitrarily deep
	// chains.
	Iterative
)

// String returns the traversal name.
func (t Traversal) String() string {
	switch t {
	case Recursive:
		return "recursive"
	case Iterative:
		return "iterative"
	default:
		return fmt.Sprintf("Traversal(%d)", int(t))
	}
}

// Config configures an Engine.
type Config struct {
	Traversal Traversal
}

// DefaultConfig returns the default engine configuration (recursive traversal).
func DefaultConfig() Config {
	return Config{Traversal: Recursive}
}

// Engine builds differentiable tensors and propagates gradients through them.
// All numeric work is delegated to the wrapped backend.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Engine[B tensor.Backend] struct {
	backend B
	cfg     Config
}

// New creates an Engine over backend with DefaultConfig.
func New[B tensor.Backend](backend B) *Engine[B] {
	return NewWithConfig(backend, DefaultConfig())
}

// NewWithConfig creates an Engine over backend with the given configuration.
func NewWithConfig[B tensor.Backend](backend B, cfg Config) *Engine[B] {
	return &Engine[B]{
		backend: backend,
		cfg:     cfg,
	}
}

// Backend returns the wrapped backend for direct access.
func (e *Engine[B]) Backend() B {
	return e.backend
}

// Config returns the engine configuration.
func (e *Engine[B]) Config() Config {
	return e.cfg
}

// Name returns the engine name, e.g. "Autodiff(CPU)".
func (e *Engine[B]) Name() string {
	return "Autodiff(" + e.backend.Name() + ")"
}
