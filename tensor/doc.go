// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense array type the autodiff engine computes on.
//
// # Overview
//
// This package provides:
//   - RawTensor: contiguous row-major storage with shape and dtype
//   - Shape, DataType, Device: core type definitions
//   - Constructors: FromSlice, Scalar, Zeros, Ones, Full, Randn
//   - Backend: the array operations an autodiff engine consumes
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/backend/cpu"
//	    "github.com/born-ml/backprop/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    y := tensor.Ones(tensor.Shape{2, 2}, tensor.Float64)
//
//	    z := backend.Add(x, y)
//	    fmt.Println(z) // [[2, 3], [4, 5]]
//	}
//
// # Supported Data Types
//
// Values and gradients are float32 or float64. Bool tensors exist only as
// comparison results (Backend.Greater) and are cast back to a float dtype
// before use.
//
// # Broadcasting
//
// Binary elementwise operations require equal shapes. Backend.Expand is the
// one place NumPy broadcasting applies:
//
//	s := tensor.Scalar(2.0)                            // ()
//	m := backend.Expand(s, tensor.Shape{2, 3})         // (2, 3), all 2
package tensor
