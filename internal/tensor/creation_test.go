package tensor

import (
	"math"
	"math/rand"
	"testing"
)

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if raw.DType() != Float32 {
		t.Errorf("DType = %v, want float32", raw.DType())
	}
	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "FromSlice shape")

	data := raw.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		if data[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want)
		}
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2}
	raw, _ := FromSlice(src, Shape{2})
	src[0] = 100

	if raw.AsFloat64()[0] != 1 {
		t.Error("FromSlice must copy the input slice")
	}
}

func TestFromSliceWrongLength(t *testing.T) {
	if _, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice with 3 elements for shape (2, 2) should fail")
	}
}

func TestScalar(t *testing.T) {
	s := Scalar(float32(4))
	if s.Shape().Rank() != 0 {
		t.Errorf("Scalar rank = %d, want 0", s.Shape().Rank())
	}
	if s.AsFloat32()[0] != 4 {
		t.Errorf("Scalar value = %v, want 4", s.AsFloat32()[0])
	}
}

func TestZerosOnesFull(t *testing.T) {
	shape := Shape{2, 3}

	zeros := Zeros(shape, Float64)
	for i, v := range zeros.AsFloat64() {
		if v != 0 {
			t.Errorf("Zeros[%d] = %v, want 0", i, v)
		}
	}

	ones := Ones(shape, Float32)
	for i, v := range ones.AsFloat32() {
		if v != 1 {
			t.Errorf("Ones[%d] = %v, want 1", i, v)
		}
	}

	full := Full(shape, Float64, 3.14)
	for i, v := range full.AsFloat64() {
		if v != 3.14 {
			t.Errorf("Full[%d] = %v, want 3.14", i, v)
		}
	}
}

func TestLikeConstructors(t *testing.T) {
	src := Full(Shape{4, 1}, Float32, 9)

	zeros := ZerosLike(src)
	assertEqualShape(t, src.Shape(), zeros.Shape(), "ZerosLike shape")
	if zeros.DType() != Float32 {
		t.Errorf("ZerosLike dtype = %v, want float32", zeros.DType())
	}

	ones := OnesLike(src)
	assertEqualShape(t, src.Shape(), ones.Shape(), "OnesLike shape")
	for i, v := range ones.AsFloat32() {
		if v != 1 {
			t.Errorf("OnesLike[%d] = %v, want 1", i, v)
		}
	}
}

func TestRandnIsSeeded(t *testing.T) {
	shape := Shape{50, 40}

	a := Randn[float64](shape, rand.New(rand.NewSource(7)))
	b := Randn[float64](shape, rand.New(rand.NewSource(7)))

	assertEqualShape(t, shape, a.Shape(), "Randn shape")

	aData, bData := a.AsFloat64(), b.AsFloat64()
	for i := range aData {
		if aData[i] != bData[i] {
			t.Fatalf("same seed produced different values at %d: %v vs %v", i, aData[i], bData[i])
		}
	}

	// Mean should be close to 0 for 2000 samples
	sum := 0.0
	for _, v := range aData {
		sum += v
	}
	if mean := sum / float64(len(aData)); math.Abs(mean) > 0.2 {
		t.Errorf("Randn mean = %v, expected close to 0", mean)
	}
}

func assertEqualShape(t *testing.T, want, got Shape, msg string) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("%s: shape = %v, want %v", msg, got, want)
	}
}

func checkFromSliceDType[T DType](t *testing.T, want DataType) {
	t.Helper()
	raw, err := FromSlice([]T{1, 2}, Shape{2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if raw.DType() != want {
		t.Errorf("Expected dtype %s, got %s", want, raw.DType())
	}
	if got := raw.Float64s(); got[0] != 1 || got[1] != 2 {
		t.Errorf("Expected [1 2], got %v", got)
	}
}

// Every type admitted by DType must map to a DataType and keep its data.
func TestFromSliceEveryDType(t *testing.T) {
	checkFromSliceDType[float32](t, Float32)
	checkFromSliceDType[float64](t, Float64)
}
