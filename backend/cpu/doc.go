// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - gonum BLAS GEMM for matrix products
//   - Chunked goroutine parallelism for large elementwise kernels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/autodiff"
//	    "github.com/born-ml/backprop/backend/cpu"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//	    // build tensors with engine.Add, engine.DotProduct, ...
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// own result; only Accumulate writes into an existing tensor.
package cpu
