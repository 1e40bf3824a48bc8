package cpu

import (
	"github.com/born-ml/backprop/internal/parallel"
	"github.com/born-ml/backprop/internal/tensor"
)

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
)

// binaryKernel computes dst = a op b. dst may alias a (used by Accumulate).
func binaryKernel[T tensor.DType](op binaryOp, dst, a, b []T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		switch op {
		case opAdd:
			for i := start; i < end; i++ {
				dst[i] = a[i] + b[i]
			}
		case opSub:
			for i := start; i < end; i++ {
				dst[i] = a[i] - b[i]
			}
		case opMul:
			for i := start; i < end; i++ {
				dst[i] = a[i] * b[i]
			}
		}
	}, cfg)
}

func scaleKernel[T tensor.DType](dst, x []T, scalar T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = x[i] * scalar
		}
	}, cfg)
}

func reluKernel[T tensor.DType](dst, x []T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			if x[i] > 0 {
				dst[i] = x[i]
			} else {
				dst[i] = 0
			}
		}
	}, cfg)
}

func greaterKernel[T tensor.DType](dst []bool, a, b []T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] > b[i]
		}
	}, cfg)
}
