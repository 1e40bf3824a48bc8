package tensor

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level dense array: a row-major byte buffer plus
// shape and type information. Autodiff treats a RawTensor it did not
// allocate itself as read-only.
type RawTensor struct {
	data   []byte   // Row-major element storage
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
	device Device   // Compute device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Float64s returns a float64 copy of the elements, whatever the dtype.
// Bool elements convert to 0 and 1.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

// Item returns the value of a one-element tensor.
// Panics if the tensor holds more than one element.
func (r *RawTensor) Item() float64 {
	if r.NumElements() != 1 {
		panic(fmt.Sprintf("item: tensor with shape %s has %d elements", r.shape, r.NumElements()))
	}
	return r.Float64s()[0]
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Zero clears every element in place.
func (r *RawTensor) Zero() {
	clear(r.data)
}

// String renders the elements as nested brackets, row-major.
func (r *RawTensor) String() string {
	values := r.Float64s()
	if len(r.shape) == 0 {
		return formatElement(values[0], r.dtype)
	}
	var sb strings.Builder
	r.format(&sb, values, 0, 0)
	return sb.String()
}

func (r *RawTensor) format(sb *strings.Builder, values []float64, dim, offset int) {
	sb.WriteByte('[')
	for i := 0; i < r.shape[dim]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		pos := offset + i*r.stride[dim]
		if dim == len(r.shape)-1 {
			sb.WriteString(formatElement(values[pos], r.dtype))
		} else {
			r.format(sb, values, dim+1, pos)
		}
	}
	sb.WriteByte(']')
}

func formatElement(v float64, dtype DataType) string {
	switch dtype {
	case Bool:
		return strconv.FormatBool(v != 0)
	case Float32:
		return strconv.FormatFloat(v, 'g', -1, 32)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
