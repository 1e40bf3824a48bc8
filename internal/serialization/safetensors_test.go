package serialization

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/autodiff"
	"github.com/born-ml/backprop/internal/backend/cpu"
	"github.com/born-ml/backprop/internal/tensor"
)

func mustRaw[T tensor.DType](t *testing.T, data []T, shape ...int) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return raw
}

func TestSafeTensorsRoundTrip(t *testing.T) {
	tensors := map[string]*tensor.RawTensor{
		"weight": mustRaw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3),
		"bias":   mustRaw(t, []float64{0.1, 0.2, 0.3}, 3),
		"loss":   tensor.Scalar(3.0),
		"mask":   tensor.Full(tensor.Shape{2}, tensor.Bool, 1),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSafeTensors(&buf, tensors, map[string]string{"format": "pt"}))

	got, meta, err := ReadSafeTensors(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(tensors))
	assert.Equal(t, "pt", meta["format"])
	assert.Len(t, meta[checksumKey], 64)

	for name, want := range tensors {
		raw, ok := got[name]
		require.True(t, ok, name)
		assert.Equal(t, want.Shape(), raw.Shape(), name)
		assert.Equal(t, want.DType(), raw.DType(), name)
		assert.Equal(t, want.Data(), raw.Data(), name)
	}
}

func TestSafeTensorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grads.safetensors")
	tensors := map[string]*tensor.RawTensor{"x": mustRaw(t, []float64{1, 2}, 2)}

	require.NoError(t, SaveSafeTensors(path, tensors, nil))
	got, _, err := LoadSafeTensors(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got["x"].AsFloat64())

	_, _, err = LoadSafeTensors(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestSafeTensorsLayout(t *testing.T) {
	var buf bytes.Buffer
	tensors := map[string]*tensor.RawTensor{
		"b": mustRaw(t, []float32{1}, 1),
		"a": mustRaw(t, []float32{2, 3}, 2),
	}
	require.NoError(t, WriteSafeTensors(&buf, tensors, nil))

	data := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(data[:8])
	header := string(data[8 : 8+headerSize])
	assert.Contains(t, header, `"a":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}`)
	assert.Contains(t, header, `"b":{"dtype":"F32","shape":[1],"data_offsets":[8,12]}`)
	assert.Len(t, data, 8+int(headerSize)+12)
}

func TestSafeTensorsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSafeTensors(&buf, map[string]*tensor.RawTensor{
		"x": mustRaw(t, []float64{1, 2}, 2),
	}, nil))

	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF
	_, _, err := ReadSafeTensors(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrChecksumMismatch)

	_, _, err = ReadSafeTensors(bytes.NewReader(data[:len(data)-4]))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "out_of_bounds", verr.Type)
}

func TestSafeTensorsInvalidHeader(t *testing.T) {
	build := func(header string) *bytes.Reader {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(header))))
		buf.WriteString(header)
		buf.Write(make([]byte, 16))
		return bytes.NewReader(buf.Bytes())
	}

	_, _, err := ReadSafeTensors(build(`not json`))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, _, err = ReadSafeTensors(build(`{"x":{"dtype":"I8","shape":[1],"data_offsets":[0,1]}}`))
	require.ErrorIs(t, err, ErrUnsupportedDType)

	_, _, err = ReadSafeTensors(build(`{"x":{"dtype":"F64","shape":[3],"data_offsets":[0,16]}}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "size_mismatch", verr.Type)

	_, _, err = ReadSafeTensors(build(`{"../x":{"dtype":"F64","shape":[1],"data_offsets":[0,8]}}`))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_name", verr.Type)

	// 2^62 * 4 elements wraps to zero bytes without an overflow check.
	_, _, err = ReadSafeTensors(build(`{"x":{"dtype":"F64","shape":[4611686018427387904,4],"data_offsets":[0,0]}}`))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, _, err = ReadSafeTensors(build(`{"x":{"dtype":"F32","shape":[0,2],"data_offsets":[0,0]}}`))
	require.ErrorIs(t, err, ErrInvalidHeader)

	var big bytes.Buffer
	require.NoError(t, binary.Write(&big, binary.LittleEndian, uint64(MaxHeaderSize+1)))
	_, _, err = ReadSafeTensors(&big)
	require.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestValidateTensorOffsets(t *testing.T) {
	overlap := []TensorMeta{
		{Name: "a", Offset: 0, Size: 8},
		{Name: "b", Offset: 4, Size: 8},
	}
	err := ValidateTensorOffsets(overlap, 16)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "offset_overlap", verr.Type)
	assert.Equal(t, "b", verr.Tensor2)

	require.Error(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: -1, Size: 1}}, 16))
	require.NoError(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 8, Size: 8}, {Name: "b", Offset: 0, Size: 8}}, 16))
}

func TestValidateTensorName(t *testing.T) {
	for _, name := range []string{"x", "w.grad", "layer_1.weight"} {
		assert.NoError(t, ValidateTensorName(name), name)
	}
	for _, name := range []string{"", "a/b", `a\b`, "..", "x\x00", metadataKey, string(make([]byte, MaxTensorNameLen+1))} {
		assert.Error(t, ValidateTensorName(name), "%q", name)
	}
}

func TestSnapshot(t *testing.T) {
	e := autodiff.New(cpu.New())
	a := autodiff.Leaf(mustRaw(t, []float64{2, 3}, 2))
	b := autodiff.Leaf(mustRaw(t, []float64{4, 5}, 2))
	prod, err := e.Multiply(a, b)
	require.NoError(t, err)
	require.NoError(t, e.Backward(e.Sum(prod), nil))

	snap, err := Snapshot(map[string]*autodiff.Tensor{"a": a, "b": b})
	require.NoError(t, err)
	require.Len(t, snap, 4)
	assert.Equal(t, []float64{2, 3}, snap["a"].AsFloat64())
	assert.Equal(t, []float64{4, 5}, snap["a"+GradSuffix].AsFloat64())
	assert.Equal(t, []float64{2, 3}, snap["b"+GradSuffix].AsFloat64())

	// The snapshot is detached from the graph.
	autodiff.ZeroGrads(prod)
	assert.Equal(t, []float64{4, 5}, snap["a"+GradSuffix].AsFloat64())

	_, err = Snapshot(map[string]*autodiff.Tensor{"a": a, "a.grad": b})
	require.ErrorIs(t, err, ErrDuplicateTensor)

	path := filepath.Join(t.TempDir(), "snap.safetensors")
	require.NoError(t, SaveSafeTensors(path, snap, map[string]string{"engine": e.Name()}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
