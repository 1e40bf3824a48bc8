// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/backprop/internal/tensor"
)

// RawTensor is the dense tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsFloat64(), AsBool()
//   - Deep copies via Clone()
//   - Readable output via String(), e.g. [[1, 2], [3, 4]]
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // Typed view of the buffer
//	clone := raw.Clone()    // Independent copy
type RawTensor = tensor.RawTensor
