// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/backprop/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation; the autodiff engine only decides
// which operation to call.
//
// Implementations:
//   - backend/cpu: pure Go, gonum BLAS for matrix products
//
// Example:
//
//	import (
//	    "github.com/born-ml/backprop/autodiff"
//	    "github.com/born-ml/backprop/backend/cpu"
//	)
//
//	engine := autodiff.New(cpu.New())
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.

	// Scalar and in-place operations.
	MulScalar(x *RawTensor, scalar float64) *RawTensor // Multiply by scalar.
	Accumulate(dst, src *RawTensor)                    // dst += src.

	// Activation and comparison.
	ReLU(x *RawTensor) *RawTensor                 // max(x, 0).
	Greater(a, b *RawTensor) *RawTensor           // a > b, Bool result.
	Cast(x *RawTensor, dtype DataType) *RawTensor // Convert dtype.

	// Matrix and shape operations.
	MatMul(a, b *RawTensor) *RawTensor              // (M, K) @ (K, N).
	Transpose(t *RawTensor, axes ...int) *RawTensor // Permute dimensions.
	Expand(x *RawTensor, shape Shape) *RawTensor    // Broadcast to shape.

	// Reduction.
	Sum(x *RawTensor) *RawTensor // Total sum (rank-0 result).

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
