package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements every operation naively in float64 for correctness
// verification of faster backends.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise("mul", a, b, func(x, y float64) float64 { return x * y })
}

// MulScalar multiplies every element by scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar float64) *RawTensor {
	return m.unary(x, func(v float64) float64 { return v * scalar })
}

// Accumulate adds src into dst in place.
func (m *MockBackend) Accumulate(dst, src *RawTensor) {
	sum := m.Add(dst, src)
	copy(dst.Data(), sum.Data())
}

// ReLU computes max(x, 0).
func (m *MockBackend) ReLU(x *RawTensor) *RawTensor {
	return m.unary(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Greater returns a Bool tensor with a > b.
func (m *MockBackend) Greater(a, b *RawTensor) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("greater: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}
	result := Zeros(a.Shape(), Bool)
	aData, bData := a.Float64s(), b.Float64s()
	out := result.AsBool()
	for i := range out {
		out[i] = aData[i] > bData[i]
	}
	return result
}

// Cast converts x to dtype.
func (m *MockBackend) Cast(x *RawTensor, dtype DataType) *RawTensor {
	result := Zeros(x.Shape(), dtype)
	m.fromFloat64Slice(x.Float64s(), result)
	return result
}

// MatMul performs matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic("MatMul only supports 2D tensors in mock backend")
	}

	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}

	M, K := aShape[0], aShape[1]
	N := bShape[1]

	result := Zeros(Shape{M, N}, a.DType())
	aData := a.Float64s()
	bData := b.Float64s()
	resultData := make([]float64, M*N)

	// Naive matrix multiplication
	for i := 0; i < M; i++ {
		for j := 0; j < N; j++ {
			sum := 0.0
			for k := 0; k < K; k++ {
				sum += aData[i*K+k] * bData[k*N+j]
			}
			resultData[i*N+j] = sum
		}
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Transpose transposes tensor dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, len(shape))
		for i := range axes {
			axes[i] = len(shape) - 1 - i
		}
	}

	if len(axes) != len(shape) {
		panic(fmt.Sprintf("axes length %d doesn't match tensor dimensions %d", len(axes), len(shape)))
	}

	newShape := make(Shape, len(shape))
	for i, axis := range axes {
		if axis < 0 || axis >= len(shape) {
			panic(fmt.Sprintf("axis %d out of bounds for tensor with %d dimensions", axis, len(shape)))
		}
		newShape[i] = shape[axis]
	}

	result := Zeros(newShape, t.DType())
	tData := t.Float64s()
	resultData := make([]float64, len(tData))

	oldStrides := shape.ComputeStrides()
	newStrides := newShape.ComputeStrides()

	for i := range tData {
		newIdx := 0
		for j, axis := range axes {
			idx := (i / oldStrides[axis]) % shape[axis]
			newIdx += idx * newStrides[j]
		}
		resultData[newIdx] = tData[i]
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Sum reduces all elements to a scalar.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	total := 0.0
	for _, v := range x.Float64s() {
		total += v
	}
	result := Zeros(Shape{}, x.DType())
	m.fromFloat64Slice([]float64{total}, result)
	return result
}

// Expand broadcasts x to shape.
func (m *MockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	if !CanExpand(x.Shape(), shape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", x.Shape(), shape))
	}
	result := Zeros(shape, x.DType())
	xData := x.Float64s()
	resultData := make([]float64, shape.NumElements())
	for i := range resultData {
		resultData[i] = xData[m.broadcastIndex(i, shape, x.Shape())]
	}
	m.fromFloat64Slice(resultData, result)
	return result
}

// Helper functions

func (m *MockBackend) elementWise(name string, a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	if !a.Shape().Equal(b.Shape()) || a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: operand mismatch %v/%s vs %v/%s", name, a.Shape(), a.DType(), b.Shape(), b.DType()))
	}
	result := Zeros(a.Shape(), a.DType())
	aData, bData := a.Float64s(), b.Float64s()
	resultData := make([]float64, len(aData))
	for i := range resultData {
		resultData[i] = op(aData[i], bData[i])
	}
	m.fromFloat64Slice(resultData, result)
	return result
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result := Zeros(x.Shape(), x.DType())
	data := x.Float64s()
	for i, v := range data {
		data[i] = op(v)
	}
	m.fromFloat64Slice(data, result)
	return result
}

func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	case Bool:
		dst := t.AsBool()
		for i, v := range src {
			dst[i] = v != 0
		}
	}
}

func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	// Convert flat index to multi-dimensional indices in output shape
	outStrides := outShape.ComputeStrides()
	indices := make([]int, len(outShape))

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		indices[i] = temp / outStrides[i]
		temp %= outStrides[i]
	}

	// Map to input shape (accounting for broadcasting)
	inStrides := inShape.ComputeStrides()
	inIdx := 0

	offset := len(outShape) - len(inShape)
	for i := 0; i < len(inShape); i++ {
		outDimIdx := indices[offset+i]

		// If input dimension is 1, always use index 0 (broadcasting)
		if inShape[i] == 1 {
			outDimIdx = 0
		}

		inIdx += outDimIdx * inStrides[i]
	}

	return inIdx
}
