package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/tensor"
)

const metadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes tensors to w in SafeTensors format.
//
// Tensors are written in alphabetical order by name. A "sha256" entry with
// the data checksum is added to metadata.
func WriteSafeTensors(w io.Writer, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	var data bytes.Buffer
	for _, name := range names {
		raw := tensors[name]
		dtype, err := dtypeToSafeTensors(raw.DType())
		if err != nil {
			return errors.Wrapf(err, "tensor %q", name)
		}

		shape := make([]int64, len(raw.Shape()))
		for i, dim := range raw.Shape() {
			shape[i] = int64(dim)
		}

		start := int64(data.Len())
		data.Write(raw.Data())
		header[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(data.Len())},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[checksumKey] = ComputeChecksum(data.Bytes())
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write tensor data")
	}
	return nil
}

// SaveSafeTensors writes tensors to the file at path, replacing it.
func SaveSafeTensors(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	return WriteSafeTensors(file, tensors, metadata)
}

// ReadSafeTensors reads every tensor and the metadata from r.
func ReadSafeTensors(r io.Reader) (map[string]*tensor.RawTensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &entries); err != nil {
		return nil, nil, errors.Wrap(ErrInvalidHeader, err.Error())
	}

	var metadata map[string]string
	if msg, ok := entries[metadataKey]; ok {
		if err := json.Unmarshal(msg, &metadata); err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidHeader, "metadata: %v", err)
		}
		delete(entries, metadataKey)
	}

	metas := make([]TensorMeta, 0, len(entries))
	for name, msg := range entries {
		meta, err := parseTensorMeta(name, msg)
		if err != nil {
			return nil, nil, err
		}
		metas = append(metas, meta)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}
	if stored, ok := metadata[checksumKey]; ok {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, nil, err
		}
	}

	tensors := make(map[string]*tensor.RawTensor, len(metas))
	for _, meta := range metas {
		raw, err := tensor.NewRaw(meta.Shape, meta.DType, tensor.CPU)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "tensor %q", meta.Name)
		}
		copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
		tensors[meta.Name] = raw
	}
	return tensors, metadata, nil
}

// LoadSafeTensors reads every tensor and the metadata from the file at path.
func LoadSafeTensors(path string) (map[string]*tensor.RawTensor, map[string]string, error) {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close() // Read-only; close errors carry no data loss
	}()

	return ReadSafeTensors(file)
}

func parseTensorMeta(name string, msg json.RawMessage) (TensorMeta, error) {
	if err := ValidateTensorName(name); err != nil {
		return TensorMeta{}, err
	}

	var h SafeTensorHeader
	if err := json.Unmarshal(msg, &h); err != nil {
		return TensorMeta{}, errors.Wrapf(ErrInvalidHeader, "tensor %q: %v", name, err)
	}

	dtype, err := dtypeFromSafeTensors(h.DType)
	if err != nil {
		return TensorMeta{}, errors.Wrapf(err, "tensor %q", name)
	}

	// Element count times element size must fit in an int.
	limit := int64(math.MaxInt / dtype.Size())
	elems := int64(1)
	shape := make(tensor.Shape, len(h.Shape))
	for i, dim := range h.Shape {
		if dim <= 0 {
			return TensorMeta{}, errors.Wrapf(ErrInvalidHeader, "tensor %q: non-positive dimension %d", name, dim)
		}
		if elems > limit/dim {
			return TensorMeta{}, errors.Wrapf(ErrInvalidHeader, "tensor %q: shape %v overflows", name, h.Shape)
		}
		elems *= dim
		shape[i] = int(dim)
	}

	start, end := h.DataOffsets[0], h.DataOffsets[1]
	size := end - start
	if want := elems * int64(dtype.Size()); size != want {
		return TensorMeta{}, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %s needs %d bytes, offsets span %d", shape, want, size),
		}
	}

	return TensorMeta{Name: name, DType: dtype, Shape: shape, Offset: start, Size: size}, nil
}

// dtypeToSafeTensors converts tensor.DataType to SafeTensors dtype string.
func dtypeToSafeTensors(dt tensor.DataType) (string, error) {
	switch dt {
	case tensor.Float32:
		return "F32", nil
	case tensor.Float64:
		return "F64", nil
	case tensor.Bool:
		return "BOOL", nil
	default:
		return "", errors.Wrapf(ErrUnsupportedDType, "%s", dt)
	}
}

func dtypeFromSafeTensors(s string) (tensor.DataType, error) {
	switch s {
	case "F32":
		return tensor.Float32, nil
	case "F64":
		return tensor.Float64, nil
	case "BOOL":
		return tensor.Bool, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedDType, "%q", s)
	}
}
