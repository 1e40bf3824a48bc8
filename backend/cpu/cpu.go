// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/backprop/internal/backend/cpu"
	"github.com/born-ml/backprop/internal/parallel"
	"github.com/born-ml/backprop/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go elementwise kernels and gonum BLAS matrix
// products.
type Backend = internalcpu.CPUBackend

// Config configures the CPU backend.
type Config = internalcpu.Config

// ParallelConfig controls how elementwise kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend with DefaultConfig.
//
// Example:
//
//	import (
//	    "github.com/born-ml/backprop/autodiff"
//	    "github.com/born-ml/backprop/backend/cpu"
//	)
//
//	func main() {
//	    engine := autodiff.New(cpu.New())
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit configuration.
//
// Example:
//
//	cfg := cpu.DefaultConfig()
//	cfg.Parallel = cpu.SequentialConfig()
//	backend := cpu.NewWithConfig(cfg)
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the default CPU backend configuration.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// SequentialConfig returns a parallel configuration that runs every kernel
// on the calling goroutine.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}
