package autodiff

import (
	"fmt"

	"github.com/born-ml/backprop/internal/tensor"
)

// Tensor is a node in the expression graph.
//
// The value is fixed at construction. The gradient starts at zero, has the
// same shape and dtype as the value, and only grows through Backward or
// resets through ZeroGrad. A Tensor may be the operand of any number of
// later tensors; it is shared by pointer, never copied.
type Tensor struct {
	value  *tensor.RawTensor
	grad   *tensor.RawTensor
	origin Origin // nil for leaves
}

// Leaf wraps value as an input tensor with a zero gradient.
// It panics if value is nil or not a floating-point tensor.
func Leaf(value *tensor.RawTensor) *Tensor {
	return newTensor(value, nil)
}

func newTensor(value *tensor.RawTensor, origin Origin) *Tensor {
	if value == nil {
		panic("autodiff: nil tensor value")
	}
	if !value.DType().IsFloat() {
		panic(fmt.Sprintf("autodiff: value must be float32 or float64, got %s", value.DType()))
	}
	return &Tensor{
		value:  value,
		grad:   tensor.ZerosLike(value),
		origin: origin,
	}
}

// Value returns the forward value. Callers must not modify it.
func (t *Tensor) Value() *tensor.RawTensor {
	return t.value
}

// Grad returns the accumulated gradient.
func (t *Tensor) Grad() *tensor.RawTensor {
	return t.grad
}

// Origin returns the operation that produced t, or nil for a leaf.
func (t *Tensor) Origin() Origin {
	return t.origin
}

// IsLeaf reports whether t has no origin.
func (t *Tensor) IsLeaf() bool {
	return t.origin == nil
}

// Operands returns the tensors t was computed from, or nil for a leaf.
func (t *Tensor) Operands() []*Tensor {
	if t.origin == nil {
		return nil
	}
	return t.origin.Operands()
}

// Shape returns the value shape.
func (t *Tensor) Shape() tensor.Shape {
	return t.value.Shape()
}

// DType returns the value element type.
func (t *Tensor) DType() tensor.DataType {
	return t.value.DType()
}

// ZeroGrad resets the gradient of t alone to zeros.
func (t *Tensor) ZeroGrad() {
	t.grad.Zero()
}

// String renders the value followed by the producing operation.
func (t *Tensor) String() string {
	op := "leaf"
	if t.origin != nil {
		op = t.origin.Op().String()
	}
	return fmt.Sprintf("Tensor(%s, op=%s)", t.value, op)
}
