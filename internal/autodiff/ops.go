package autodiff

import (
	"github.com/born-ml/backprop/internal/tensor"
)

// Sum reduces every element of t to a rank-0 tensor.
func (e *Engine[B]) Sum(t *Tensor) *Tensor {
	return newTensor(e.backend.Sum(t.value), &SumOrigin{Source: t})
}

// Add computes a + b element-wise. Operands must have the same shape and dtype.
func (e *Engine[B]) Add(a, b *Tensor) (*Tensor, error) {
	if err := checkElementwise("add", a, b); err != nil {
		return nil, err
	}
	return newTensor(e.backend.Add(a.value, b.value), &AddOrigin{Left: a, Right: b}), nil
}

// Subtract computes a - b element-wise. Operands must have the same shape and dtype.
func (e *Engine[B]) Subtract(a, b *Tensor) (*Tensor, error) {
	if err := checkElementwise("subtract", a, b); err != nil {
		return nil, err
	}
	return newTensor(e.backend.Sub(a.value, b.value), &SubtractOrigin{Left: a, Right: b}), nil
}

// Multiply computes a ⊙ b element-wise. Operands must have the same shape and dtype.
func (e *Engine[B]) Multiply(a, b *Tensor) (*Tensor, error) {
	if err := checkElementwise("multiply", a, b); err != nil {
		return nil, err
	}
	return newTensor(e.backend.Mul(a.value, b.value), &MultiplyOrigin{Left: a, Right: b}), nil
}

// ReLU computes max(t, 0) element-wise.
func (e *Engine[B]) ReLU(t *Tensor) *Tensor {
	return newTensor(e.backend.ReLU(t.value), &ReLUOrigin{Source: t})
}

// DotProduct computes the matrix product (M, K) @ (K, N) -> (M, N).
func (e *Engine[B]) DotProduct(a, b *Tensor) (*Tensor, error) {
	if a.DType() != b.DType() {
		return nil, newOpError(ErrDTypeMismatch, "dot_product", "%s vs %s", a.DType(), b.DType())
	}
	as, bs := a.Shape(), b.Shape()
	if as.Rank() != 2 || bs.Rank() != 2 {
		return nil, newOpError(ErrShape, "dot_product", "operands must be 2-D, got %s and %s", as, bs)
	}
	if as[1] != bs[0] {
		return nil, newOpError(ErrShape, "dot_product", "inner dimensions differ: %s @ %s", as, bs)
	}
	return newTensor(e.backend.MatMul(a.value, b.value), &DotProductOrigin{Left: a, Right: b}), nil
}

func checkElementwise(op string, a, b *Tensor) error {
	if a.DType() != b.DType() {
		return newOpError(ErrDTypeMismatch, op, "%s vs %s", a.DType(), b.DType())
	}
	if !a.Shape().Equal(b.Shape()) {
		return newOpError(ErrShape, op, "%s vs %s", a.Shape(), b.Shape())
	}
	return nil
}

// checkGradient validates a gradient arriving at t.
func checkGradient(t *Tensor, grad *tensor.RawTensor) error {
	if !grad.Shape().Equal(t.Shape()) {
		return newOpError(ErrShape, "backward", "gradient shape %s does not match tensor shape %s", grad.Shape(), t.Shape())
	}
	if grad.DType() != t.DType() {
		return newOpError(ErrShape, "backward", "gradient dtype %s does not match tensor dtype %s", grad.DType(), t.DType())
	}
	return nil
}
