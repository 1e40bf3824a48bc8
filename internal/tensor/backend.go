package tensor

// Backend defines the array operations the autodiff engine consumes.
// Backends handle the actual computation; the engine only decides which
// operation to call and how to route the results.
//
// Implementations:
//   - cpu.CPUBackend: pure Go elementwise ops, gonum BLAS matmul
//   - MockBackend: naive float64 reference used in tests
//
// Binary elementwise operations require operands of equal shape and dtype.
// Callers validate first; a violation reaching a backend is a programming
// error and panics.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by scalar.
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Accumulate adds src into dst in place (dst += src).
	Accumulate(dst, src *RawTensor)

	// ReLU computes max(x, 0) element-wise.
	ReLU(x *RawTensor) *RawTensor

	// Greater compares element-wise and returns a Bool tensor (a > b).
	Greater(a, b *RawTensor) *RawTensor

	// Cast converts x to dtype (Bool converts to 0/1).
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// MatMul computes the 2-D matrix product (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Transpose permutes axes; with no axes it reverses them.
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Sum reduces all elements to a rank-0 tensor.
	Sum(x *RawTensor) *RawTensor

	// Expand broadcasts x to shape (NumPy rules).
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
