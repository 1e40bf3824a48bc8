package cpu

import (
	"fmt"

	"github.com/born-ml/backprop/internal/tensor"
)

// Sum computes the total sum of all elements in the tensor (scalar result).
// Float32 input is accumulated in float64 and rounded once.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	// Result is a scalar (empty shape)
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
