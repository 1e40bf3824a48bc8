package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{1}, 1},
		{Shape{3}, 3},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeIsScalar(t *testing.T) {
	tests := []struct {
		shape Shape
		want  bool
	}{
		{Shape{}, true},
		{Shape{1}, true},
		{Shape{1, 1}, true},
		{Shape{2}, false},
		{Shape{1, 2}, false},
	}

	for _, tt := range tests {
		if got := tt.shape.IsScalar(); got != tt.want {
			t.Errorf("%v.IsScalar() = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("ComputeStrides([2,3,4]) = %v, want %v", strides, want)
		}
	}

	if got := (Shape{}).ComputeStrides(); len(got) != 0 {
		t.Errorf("scalar strides = %v, want []", got)
	}
}

func TestShapeCloneIsIndependent(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("modifying a clone changed the original shape")
	}
}

func TestShapeString(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{Shape{}, "()"},
		{Shape{3}, "(3,)"},
		{Shape{2, 4}, "(2, 4)"},
	}

	for _, tt := range tests {
		if got := tt.shape.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCanExpand(t *testing.T) {
	tests := []struct {
		src, dst Shape
		want     bool
	}{
		{Shape{}, Shape{2, 3}, true},
		{Shape{1}, Shape{2, 3}, true},
		{Shape{3}, Shape{2, 3}, true},
		{Shape{2, 1}, Shape{2, 3}, true},
		{Shape{2}, Shape{2, 3}, false},
		{Shape{2, 3, 1}, Shape{2, 3}, false},
	}

	for _, tt := range tests {
		if got := CanExpand(tt.src, tt.dst); got != tt.want {
			t.Errorf("CanExpand(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
		}
	}
}
