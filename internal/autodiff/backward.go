package autodiff

import (
	"github.com/born-ml/backprop/internal/tensor"
)

// Backward propagates grad from t toward the leaves of its graph.
//
// Every visit to a node adds the incoming gradient to that node's Grad and,
// for non-leaves, forwards per-operand contributions computed from the local
// derivative of the node's operation. A node reachable along several paths
// is visited once per path, so its Grad ends up holding the sum over paths.
// Operands are visited left before right, depth first.
//
// If grad is nil, t must be a non-leaf scalar and is seeded with ones.
// Otherwise grad must match t in shape and dtype. Gradients accumulate
// across calls; use ZeroGrads to reset a graph.
//
// Errors:
//   - ErrLeafBackward: grad is nil and t is a leaf
//   - ErrScalarRequired: grad is nil and t holds more than one element
//   - ErrShape: grad does not match t
//   - ErrUnimplementedOperation: an origin has no derivative rule
//
// A failure part-way through leaves the gradients already accumulated in place.
func (e *Engine[B]) Backward(t *Tensor, grad *tensor.RawTensor) error {
	if grad == nil {
		if t.IsLeaf() {
			return newOpError(ErrLeafBackward, "backward", "leaf of shape %s has no origin; pass an explicit gradient", t.Shape())
		}
		if !t.Shape().IsScalar() {
			return newOpError(ErrScalarRequired, "backward", "implicit gradient needs a single-element tensor, got shape %s", t.Shape())
		}
		grad = tensor.OnesLike(t.value)
	} else {
		if err := checkGradient(t, grad); err != nil {
			return err
		}
		// Detach from the caller, who may pass another tensor's Grad.
		grad = grad.Clone()
	}

	if e.cfg.Traversal == Iterative {
		return e.backwardIterative(t, grad)
	}
	return e.backwardRecursive(t, grad)
}

func (e *Engine[B]) backwardRecursive(t *Tensor, grad *tensor.RawTensor) error {
	contributions, err := e.visit(t, grad)
	if err != nil {
		return err
	}
	for i, operand := range t.Operands() {
		if err := e.backwardRecursive(operand, contributions[i]); err != nil {
			return err
		}
	}
	return nil
}

type pendingVisit struct {
	node *Tensor
	grad *tensor.RawTensor
}

func (e *Engine[B]) backwardIterative(t *Tensor, grad *tensor.RawTensor) error {
	stack := []pendingVisit{{node: t, grad: grad}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		contributions, err := e.visit(v.node, v.grad)
		if err != nil {
			return err
		}
		// Push right to left so the leftmost operand is popped first.
		operands := v.node.Operands()
		for i := len(operands) - 1; i >= 0; i-- {
			stack = append(stack, pendingVisit{node: operands[i], grad: contributions[i]})
		}
	}
	return nil
}

// visit accumulates grad into t and returns the contributions for its
// operands, in operand order. Leaves return nil.
func (e *Engine[B]) visit(t *Tensor, grad *tensor.RawTensor) ([]*tensor.RawTensor, error) {
	if err := checkGradient(t, grad); err != nil {
		return nil, err
	}
	e.backend.Accumulate(t.grad, grad)
	if t.origin == nil {
		return nil, nil
	}
	return e.localGradients(t.origin, grad)
}

// localGradients applies the chain rule for one operation.
func (e *Engine[B]) localGradients(origin Origin, grad *tensor.RawTensor) ([]*tensor.RawTensor, error) {
	b := e.backend
	switch o := origin.(type) {
	case *SumOrigin:
		return []*tensor.RawTensor{b.Expand(grad, o.Source.Shape())}, nil

	case *AddOrigin:
		return []*tensor.RawTensor{grad, grad}, nil

	case *SubtractOrigin:
		return []*tensor.RawTensor{grad, b.MulScalar(grad, -1)}, nil

	case *MultiplyOrigin:
		return []*tensor.RawTensor{
			b.Mul(grad, o.Right.value),
			b.Mul(grad, o.Left.value),
		}, nil

	case *ReLUOrigin:
		x := o.Source.value
		mask := b.Cast(b.Greater(x, tensor.ZerosLike(x)), x.DType())
		return []*tensor.RawTensor{b.Mul(grad, mask)}, nil

	case *DotProductOrigin:
		return []*tensor.RawTensor{
			b.MatMul(grad, b.Transpose(o.Right.value)),
			b.MatMul(b.Transpose(o.Left.value), grad),
		}, nil

	default:
		return nil, newOpError(ErrUnimplementedOperation, "backward", "no derivative rule for origin %T", origin)
	}
}
