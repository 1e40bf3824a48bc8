package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsFloat64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float64, CPU)
	data := raw.AsFloat64()

	if len(data) != 6 {
		t.Errorf("AsFloat64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat64()[0] != 42 {
		t.Error("AsFloat64 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool, CPU)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[0] = true
	if !raw.AsBool()[0] {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	raw.AsFloat32()[0] = 1.0

	clone := raw.Clone()
	if clone.AsFloat32()[0] != 1.0 {
		t.Error("Clone should copy data")
	}

	clone.AsFloat32()[0] = 5.0
	if raw.AsFloat32()[0] != 1.0 {
		t.Error("Writing to a clone must not change the original")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("Clone shape = %v, want %v", clone.Shape(), raw.Shape())
	}
}

func TestRawTensorZero(t *testing.T) {
	raw := Full(Shape{3}, Float64, 7)
	raw.Zero()
	for i, v := range raw.AsFloat64() {
		if v != 0 {
			t.Errorf("after Zero()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewRawAllTypes(t *testing.T) {
	types := []struct {
		dtype       DataType
		elementSize int
	}{
		{Float32, 4},
		{Float64, 8},
		{Bool, 1},
	}

	shape := Shape{2, 3}
	for _, tt := range types {
		raw, err := NewRaw(shape, tt.dtype, CPU)
		if err != nil {
			t.Fatalf("NewRaw(%v, %v) failed: %v", shape, tt.dtype, err)
		}

		if raw.DType() != tt.dtype {
			t.Errorf("DType = %v, want %v", raw.DType(), tt.dtype)
		}

		expectedByteSize := 6 * tt.elementSize // 2*3 elements
		if raw.ByteSize() != expectedByteSize {
			t.Errorf("ByteSize = %d, want %d for type %v", raw.ByteSize(), expectedByteSize, tt.dtype)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	invalidShapes := []Shape{
		{0},
		{-1},
		{2, 0},
		{2, -3},
	}

	for _, shape := range invalidShapes {
		_, err := NewRaw(shape, Float32, CPU)
		if err == nil {
			t.Errorf("NewRaw(%v) should fail but didn't", shape)
		}
	}
}

func TestRawTensorAsWrongTypePanics(t *testing.T) {
	raw32, _ := NewRaw(Shape{2}, Float32, CPU)

	// AsFloat32 should work
	_ = raw32.AsFloat32()

	defer func() {
		if r := recover(); r == nil {
			t.Error("AsFloat64 on Float32 tensor should panic")
		}
	}()
	_ = raw32.AsFloat64()
}

func TestRawTensorAsBoolWrongTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("AsBool on Float32 tensor should panic")
		}
	}()
	_ = raw.AsBool()
}

func TestRawTensorScalar(t *testing.T) {
	raw, _ := NewRaw(Shape{}, Float32, CPU)

	if raw.NumElements() != 1 {
		t.Errorf("Scalar tensor NumElements = %d, want 1", raw.NumElements())
	}

	if raw.ByteSize() != 4 {
		t.Errorf("Scalar tensor ByteSize = %d, want 4", raw.ByteSize())
	}

	data := raw.AsFloat32()
	if len(data) != 1 {
		t.Errorf("Scalar tensor data length = %d, want 1", len(data))
	}
}

func TestRawTensorItem(t *testing.T) {
	if got := Scalar(2.5).Item(); got != 2.5 {
		t.Errorf("Item() = %v, want 2.5", got)
	}

	single, _ := FromSlice([]float32{-3}, Shape{1, 1})
	if got := single.Item(); got != -3 {
		t.Errorf("Item() = %v, want -3", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Item on a multi-element tensor should panic")
		}
	}()
	Ones(Shape{2}, Float64).Item()
}

func TestRawTensorFloat64s(t *testing.T) {
	mask := Zeros(Shape{3}, Bool)
	mask.AsBool()[1] = true

	got := mask.Float64s()
	want := []float64{0, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Float64s()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRawTensorString(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawTensor
		want string
	}{
		{"scalar", Scalar(3.5), "3.5"},
		{"vector", mustFromSlice(t, []float64{1, 2, 3}, Shape{3}), "[1, 2, 3]"},
		{"matrix", mustFromSlice(t, []float64{1, 2, 3, 4}, Shape{2, 2}), "[[1, 2], [3, 4]]"},
		{"bool", Full(Shape{2}, Bool, 1), "[true, true]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.raw.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func mustFromSlice[T DType](t *testing.T, data []T, shape Shape) *RawTensor {
	t.Helper()
	raw, err := FromSlice(data, shape)
	if err != nil {
		t.Fatalf("FromSlice(%v, %v): %v", data, shape, err)
	}
	return raw
}
