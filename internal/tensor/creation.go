package tensor

import (
	"fmt"
	"math/rand"
)

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), CPU)
	if err != nil {
		return nil, err
	}

	switch values := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), values)
	case []float64:
		copy(raw.AsFloat64(), values)
	}
	return raw, nil
}

// Scalar creates a rank-0 tensor holding v.
func Scalar[T DType](v T) *RawTensor {
	raw, err := FromSlice([]T{v}, Shape{})
	if err != nil {
		panic(err) // One element always fits Shape{}
	}
	return raw
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		panic(err)
	}
	return raw
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return Full(shape, dtype, 1)
}

// Full creates a tensor filled with value.
// Bool tensors are set to value != 0.
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	raw := Zeros(shape, dtype)
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	case Bool:
		data := raw.AsBool()
		for i := range data {
			data[i] = value != 0
		}
	}
	return raw
}

// ZerosLike creates a zero tensor with the same shape, dtype and device as t.
func ZerosLike(t *RawTensor) *RawTensor {
	raw, err := NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(err)
	}
	return raw
}

// OnesLike creates a tensor of ones with the same shape and dtype as t.
func OnesLike(t *RawTensor) *RawTensor {
	return Ones(t.Shape(), t.DType())
}

// Randn creates a tensor with values from a normal distribution (mean=0, std=1)
// drawn from rng, so gradient checks can be reproduced from a seed.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	x := tensor.Randn[float64](Shape{3, 4}, rng)
func Randn[T DType](shape Shape, rng *rand.Rand) *RawTensor {
	var dummy T
	raw := Zeros(shape, inferDataType(dummy))
	switch raw.DType() {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(rng.NormFloat64())
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = rng.NormFloat64()
		}
	}
	return raw
}
