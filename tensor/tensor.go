// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for dense tensors in the backprop engine.
//
// The package defines core types and constructors:
//   - RawTensor: dense row-major tensor
//   - Backend: interface for device-specific compute implementations
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	fmt.Println(x.Shape()) // (2, 3)
package tensor

import (
	"math/rand"

	"github.com/born-ml/backprop/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types: float32 or float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a 2×3 matrix; Shape{} is a scalar.
type Shape = tensor.Shape

// Creation functions

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a rank-0 tensor holding v.
//
// Example:
//
//	s := tensor.Scalar(3.5) // float64, Shape{}
func Scalar[T DType](v T) *RawTensor {
	return tensor.Scalar(v)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	x := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64)
func Ones(shape Shape, dtype DataType) *RawTensor {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full(tensor.Shape{2, 3}, tensor.Float32, 3.14)
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	return tensor.Full(shape, dtype, value)
}

// ZerosLike creates a zero tensor with the shape and dtype of t.
func ZerosLike(t *RawTensor) *RawTensor {
	return tensor.ZerosLike(t)
}

// OnesLike creates a ones tensor with the shape and dtype of t.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}

// Randn creates a tensor filled with random values from the standard normal
// distribution N(0, 1), drawn from rng.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	x := tensor.Randn[float64](tensor.Shape{2, 3}, rng)
func Randn[T DType](shape Shape, rng *rand.Rand) *RawTensor {
	return tensor.Randn[T](shape, rng)
}

// NewRaw creates a new zeroed raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use the creation functions above.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Utility functions

// CanExpand reports whether src broadcasts to dst under NumPy rules.
//
// Example:
//
//	tensor.CanExpand(tensor.Shape{3, 1}, tensor.Shape{3, 4}) // true
//	tensor.CanExpand(tensor.Shape{3}, tensor.Shape{4})       // false
func CanExpand(src, dst Shape) bool {
	return tensor.CanExpand(src, dst)
}
