// Package tensor provides the dense array types consumed by the autodiff engine.
package tensor

// DType is a constraint for the element types differentiable tensors can hold.
// Named float types are excluded: storage is addressed through []float32 and
// []float64 views.
type DType interface {
	float32 | float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
// Bool only appears as the output of comparisons (see Backend.Greater).
const (
	Float32 DataType = iota
	Float64
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// IsFloat reports whether the data type can carry gradients.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
