package cpu

import (
	"fmt"

	"github.com/born-ml/backprop/internal/parallel"
	"github.com/born-ml/backprop/internal/tensor"
)

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	// Validate axes
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	// Compute new shape
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		permute(result.AsFloat32(), t.AsFloat32(), shape, axes)
	case tensor.Float64:
		permute(result.AsFloat64(), t.AsFloat64(), shape, axes)
	case tensor.Bool:
		permute(result.AsBool(), t.AsBool(), shape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

// Expand broadcasts the tensor to a new shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if !tensor.CanExpand(x.Shape(), newShape) {
		panic(fmt.Sprintf("expand: cannot broadcast %v to %v", x.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		broadcast(result.AsFloat32(), x.AsFloat32(), x.Shape(), newShape, cpu.cfg.Parallel)
	case tensor.Float64:
		broadcast(result.AsFloat64(), x.AsFloat64(), x.Shape(), newShape, cpu.cfg.Parallel)
	case tensor.Bool:
		broadcast(result.AsBool(), x.AsBool(), x.Shape(), newShape, cpu.cfg.Parallel)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %v", x.DType()))
	}

	return result
}

// permute writes src, laid out with srcShape, into dst with axes permuted:
// dst dimension i is src dimension axes[i].
func permute[T any](dst, src []T, srcShape tensor.Shape, axes []int) {
	srcStrides := srcShape.ComputeStrides()

	dstShape := make(tensor.Shape, len(axes))
	for i, ax := range axes {
		dstShape[i] = srcShape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	for i := range src {
		dstIdx := 0
		for j, ax := range axes {
			coord := (i / srcStrides[ax]) % srcShape[ax]
			dstIdx += coord * dstStrides[j]
		}
		dst[dstIdx] = src[i]
	}
}

// broadcast fills dst (dstShape) from src (srcShape) under NumPy rules.
func broadcast[T any](dst, src []T, srcShape, dstShape tensor.Shape, cfg parallel.Config) {
	if len(src) == 1 {
		for i := range dst {
			dst[i] = src[0]
		}
		return
	}

	dstStrides := dstShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()
	offset := len(dstShape) - len(srcShape)

	parallel.For(len(dst), func(i int) {
		srcIdx := 0
		for d := range srcShape {
			if srcShape[d] == 1 {
				continue
			}
			coord := (i / dstStrides[offset+d]) % dstShape[offset+d]
			srcIdx += coord * srcStrides[d]
		}
		dst[i] = src[srcIdx]
	}, cfg)
}
