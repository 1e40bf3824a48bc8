package serialization

import (
	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/tensor"
)

// GradSuffix is appended to a tensor name to store its gradient.
const GradSuffix = ".grad"

// Snapshot collects the value of every named tensor under its name and its
// gradient under name + GradSuffix. The result shares no memory with the
// graph.
func Snapshot(named map[string]*autodiff.Tensor) (map[string]*tensor.RawTensor, error) {
	out := make(map[string]*tensor.RawTensor, 2*len(named))
	for name, t := range named {
		for key, raw := range map[string]*tensor.RawTensor{
			name:              t.Value(),
			name + GradSuffix: t.Grad(),
		} {
			if _, dup := out[key]; dup {
				return nil, errors.Wrapf(ErrDuplicateTensor, "%q", key)
			}
			out[key] = raw.Clone()
		}
	}
	return out, nil
}
