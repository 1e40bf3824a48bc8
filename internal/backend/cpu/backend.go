// Package cpu implements the CPU backend: chunked elementwise loops and
// gonum BLAS matrix multiplication.
package cpu

import (
	"fmt"

	"github.com/born-ml/backprop/internal/parallel"
	"github.com/born-ml/backprop/internal/tensor"
)

// Verify that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// Config controls the CPU backend.
type Config struct {
	Parallel parallel.Config // Chunking of elementwise loops.
}

// DefaultConfig returns the default CPU backend configuration.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	cfg    Config
}

// New creates a new CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit configuration.
func NewWithConfig(cfg Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		cfg:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", opAdd, a, b)
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", opSub, a, b)
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", opMul, a, b)
}

// Accumulate adds src into dst in place (dst += src).
func (cpu *CPUBackend) Accumulate(dst, src *tensor.RawTensor) {
	checkBinary("accumulate", dst, src)

	switch dst.DType() {
	case tensor.Float32:
		binaryKernel(opAdd, dst.AsFloat32(), dst.AsFloat32(), src.AsFloat32(), cpu.cfg.Parallel)
	case tensor.Float64:
		binaryKernel(opAdd, dst.AsFloat64(), dst.AsFloat64(), src.AsFloat64(), cpu.cfg.Parallel)
	}
}

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	checkFloat("mulscalar", x)
	result := tensor.ZerosLike(x)

	switch x.DType() {
	case tensor.Float32:
		scaleKernel(result.AsFloat32(), x.AsFloat32(), float32(scalar), cpu.cfg.Parallel)
	case tensor.Float64:
		scaleKernel(result.AsFloat64(), x.AsFloat64(), scalar, cpu.cfg.Parallel)
	}
	return result
}

// ReLU computes max(x, 0) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("relu", x)
	result := tensor.ZerosLike(x)

	switch x.DType() {
	case tensor.Float32:
		reluKernel(result.AsFloat32(), x.AsFloat32(), cpu.cfg.Parallel)
	case tensor.Float64:
		reluKernel(result.AsFloat64(), x.AsFloat64(), cpu.cfg.Parallel)
	}
	return result
}

// Greater compares element-wise and returns a Bool tensor (a > b).
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("greater", a, b)
	result := tensor.Zeros(a.Shape(), tensor.Bool)

	switch a.DType() {
	case tensor.Float32:
		greaterKernel(result.AsBool(), a.AsFloat32(), b.AsFloat32(), cpu.cfg.Parallel)
	case tensor.Float64:
		greaterKernel(result.AsBool(), a.AsFloat64(), b.AsFloat64(), cpu.cfg.Parallel)
	}
	return result
}

// Cast converts x to dtype. Bool converts to 0/1, and any non-zero
// number converts to true.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result := tensor.Zeros(x.Shape(), dtype)
	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range x.Float64s() {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(result.AsFloat64(), x.Float64s())
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range x.Float64s() {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported dtype %s", dtype))
	}
	return result
}

// binary dispatches an element-wise binary op by dtype.
func (cpu *CPUBackend) binary(name string, op binaryOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary(name, a, b)
	result := tensor.ZerosLike(a)

	switch a.DType() {
	case tensor.Float32:
		binaryKernel(op, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), cpu.cfg.Parallel)
	case tensor.Float64:
		binaryKernel(op, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), cpu.cfg.Parallel)
	}
	return result
}

// checkBinary panics unless a and b are float tensors of equal shape and dtype.
func checkBinary(name string, a, b *tensor.RawTensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", name, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}
	checkFloat(name, a)
}

func checkFloat(name string, x *tensor.RawTensor) {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}
}
