package autodiff

// OpKind names the operation recorded in an Origin.
type OpKind int

// Operation kinds.
const (
	OpSum OpKind = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpReLU
	OpDotProduct
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpSum:
		return "sum"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpReLU:
		return "relu"
	case OpDotProduct:
		return "dot_product"
	default:
		return "unknown"
	}
}

// Origin records how a non-leaf Tensor was produced. The set of variants is
// closed: only types in this package implement it.
type Origin interface {
	// Op returns the operation kind.
	Op() OpKind

	// Operands returns the input tensors in left-to-right order.
	Operands() []*Tensor

	origin()
}

// SumOrigin records output = Σ source.
//
// Backward pass:
//   - every element contributes once, so grad_source = expand(grad, source.shape)
type SumOrigin struct {
	Source *Tensor
}

// AddOrigin records output = left + right.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_left = grad
//   - d(a+b)/db = 1, so grad_right = grad
type AddOrigin struct {
	Left, Right *Tensor
}

// SubtractOrigin records output = left - right.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_left = grad
//   - d(a-b)/db = -1, so grad_right = -grad
type SubtractOrigin struct {
	Left, Right *Tensor
}

// MultiplyOrigin records output = left ⊙ right.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_left = grad ⊙ right
//   - d(a*b)/db = a, so grad_right = grad ⊙ left
type MultiplyOrigin struct {
	Left, Right *Tensor
}

// ReLUOrigin records output = max(source, 0).
//
// Backward pass:
//   - grad_source = grad ⊙ (source > 0)
//
// The subgradient at exactly zero is 0.
type ReLUOrigin struct {
	Source *Tensor
}

// DotProductOrigin records output = left @ right for 2-D operands.
//
// Backward pass:
//   - grad_left = grad @ right^T
//   - grad_right = left^T @ grad
type DotProductOrigin struct {
	Left, Right *Tensor
}

func (*SumOrigin) Op() OpKind        { return OpSum }
func (*AddOrigin) Op() OpKind        { return OpAdd }
func (*SubtractOrigin) Op() OpKind   { return OpSubtract }
func (*MultiplyOrigin) Op() OpKind   { return OpMultiply }
func (*ReLUOrigin) Op() OpKind       { return OpReLU }
func (*DotProductOrigin) Op() OpKind { return OpDotProduct }

func (o *SumOrigin) Operands() []*Tensor        { return []*Tensor{o.Source} }
func (o *AddOrigin) Operands() []*Tensor        { return []*Tensor{o.Left, o.Right} }
func (o *SubtractOrigin) Operands() []*Tensor   { return []*Tensor{o.Left, o.Right} }
func (o *MultiplyOrigin) Operands() []*Tensor   { return []*Tensor{o.Left, o.Right} }
func (o *ReLUOrigin) Operands() []*Tensor       { return []*Tensor{o.Source} }
func (o *DotProductOrigin) Operands() []*Tensor { return []*Tensor{o.Left, o.Right} }

func (*SumOrigin) origin()        {}
func (*AddOrigin) origin()        {}
func (*SubtractOrigin) origin()   {}
func (*MultiplyOrigin) origin()   {}
func (*ReLUOrigin) origin()       {}
func (*DotProductOrigin) origin() {}
