package autodiff

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/tensor"
)

// NumericalGradient estimates d f / d x with central differences:
//
//	(f(x + eps·e_i) - f(x - eps·e_i)) / (2·eps)
//
// f must rebuild its graph from x on every call. x is perturbed in place one
// element at a time and restored before returning, also on error. The
// result has the shape and dtype of x.
func NumericalGradient(f func() (float64, error), x *tensor.RawTensor, eps float64) (*tensor.RawTensor, error) {
	if eps <= 0 {
		return nil, errors.Errorf("numerical gradient: eps must be positive, got %g", eps)
	}

	get, set, err := elementAccess(x)
	if err != nil {
		return nil, err
	}

	estimate := make([]float64, x.NumElements())
	for i := range estimate {
		orig := get(i)

		set(i, orig+eps)
		plus, err := f()
		if err != nil {
			set(i, orig)
			return nil, errors.Wrapf(err, "numerical gradient: element %d", i)
		}

		set(i, orig-eps)
		minus, err := f()
		set(i, orig)
		if err != nil {
			return nil, errors.Wrapf(err, "numerical gradient: element %d", i)
		}

		estimate[i] = (plus - minus) / (2 * eps)
	}

	result := tensor.ZerosLike(x)
	_, setResult, _ := elementAccess(result)
	for i, v := range estimate {
		setResult(i, v)
	}
	return result, nil
}

// CheckGradient compares an analytic gradient with a numerical estimate and
// returns the largest absolute difference. It fails with ErrGradientMismatch
// when that difference exceeds tol.
func CheckGradient(analytic, numeric *tensor.RawTensor, tol float64) (float64, error) {
	if !analytic.Shape().Equal(numeric.Shape()) {
		return 0, newOpError(ErrShape, "check_gradient", "%s vs %s", analytic.Shape(), numeric.Shape())
	}

	a, n := analytic.Float64s(), numeric.Float64s()
	maxDiff := 0.0
	worst := 0
	for i := range a {
		if d := math.Abs(a[i] - n[i]); d > maxDiff {
			maxDiff, worst = d, i
		}
	}

	if maxDiff > tol {
		return maxDiff, newOpError(ErrGradientMismatch, "check_gradient",
			"element %d: analytic %g, numeric %g (diff %g > tol %g)", worst, a[worst], n[worst], maxDiff, tol)
	}
	return maxDiff, nil
}

// CheckGraph runs Backward on build over leaves wrapping inputs and compares
// each input's gradient with NumericalGradient. build is called again with
// fresh leaves for every perturbed evaluation. It returns the largest
// difference seen, and the first input error wrapped with its index.
func (e *Engine[B]) CheckGraph(build func(leaves []*Tensor) (*Tensor, error), inputs []*tensor.RawTensor, eps, tol float64) (float64, error) {
	leaves := leavesOf(inputs)
	loss, err := build(leaves)
	if err != nil {
		return 0, err
	}
	if err := e.Backward(loss, nil); err != nil {
		return 0, err
	}

	f := func() (float64, error) {
		out, err := build(leavesOf(inputs))
		if err != nil {
			return 0, err
		}
		return out.Value().Item(), nil
	}

	worst := 0.0
	for i, in := range inputs {
		numeric, err := NumericalGradient(f, in, eps)
		if err != nil {
			return worst, errors.Wrapf(err, "input %d", i)
		}
		diff, err := CheckGradient(leaves[i].Grad(), numeric, tol)
		worst = math.Max(worst, diff)
		if err != nil {
			return worst, errors.Wrapf(err, "input %d", i)
		}
	}
	return worst, nil
}

func leavesOf(inputs []*tensor.RawTensor) []*Tensor {
	leaves := make([]*Tensor, len(inputs))
	for i, in := range inputs {
		leaves[i] = Leaf(in)
	}
	return leaves
}

func elementAccess(x *tensor.RawTensor) (get func(int) float64, set func(int, float64), err error) {
	switch x.DType() {
	case tensor.Float32:
		data := x.AsFloat32()
		return func(i int) float64 { return float64(data[i]) },
			func(i int, v float64) { data[i] = float32(v) },
			nil
	case tensor.Float64:
		data := x.AsFloat64()
		return func(i int) float64 { return data[i] },
			func(i int, v float64) { data[i] = v },
			nil
	default:
		return nil, nil, newOpError(ErrDTypeMismatch, "numerical_gradient", "unsupported dtype %s", x.DType())
	}
}
