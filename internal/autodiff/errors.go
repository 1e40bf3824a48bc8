package autodiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Use errors.Is to classify a returned error.
var (
	// ErrShape reports operands or gradients whose shapes are not compatible.
	ErrShape = errors.New("shape mismatch")

	// ErrLeafBackward reports a backward pass started from a leaf without
	// an explicit gradient.
	ErrLeafBackward = errors.New("backward from leaf")

	// ErrScalarRequired reports an implicit seed on a tensor that is not a
	// scalar. It is a refinement of ErrShape: errors.Is matches both.
	ErrScalarRequired = errors.New("scalar required")

	// ErrUnimplementedOperation reports an origin the engine has no
	// derivative rule for.
	ErrUnimplementedOperation = errors.New("unimplemented operation")

	// ErrDTypeMismatch reports operands with different element types.
	ErrDTypeMismatch = errors.New("dtype mismatch")

	// ErrGradientMismatch reports an analytic gradient that disagrees with
	// its numerical estimate beyond tolerance.
	ErrGradientMismatch = errors.New("gradient mismatch")
)

// OpError describes a failed graph operation.
type OpError struct {
	Kind error  // One of the Err* kinds above
	Op   string // Operation that failed ("add", "backward", ...)
	Msg  string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the error kind.
func (e *OpError) Unwrap() error {
	return e.Kind
}

// Is lets a scalar-required error also match ErrShape.
func (e *OpError) Is(target error) bool {
	return e.Kind == ErrScalarRequired && target == ErrShape
}

func newOpError(kind error, op, format string, args ...any) error {
	return errors.WithStack(&OpError{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	})
}
