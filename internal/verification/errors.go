package verification

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformedResponse is returned when a successful reply cannot be interpreted: its body does not decode, or it
// carries no address, no alternatives and no reason.
var ErrMalformedResponse = errors.New("verification: malformed service response")

// MalformedResponseError carries the reason a reply was unusable. It matches ErrMalformedResponse with errors.Is
// and unwraps to the decode error, when there is one.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return ErrMalformedResponse.Error() + ": " + e.Err.Error()
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// CoordinateParseError is returned when a confident match carries a coordinate that is not a number.
type CoordinateParseError struct {
	Axis  string
	Value string
	Err   error
}

func (e *CoordinateParseError) Error() string {
	return fmt.Sprintf("verification: invalid %s %q: %v", e.Axis, e.Value, e.Err)
}

func (e *CoordinateParseError) Unwrap() error {
	return e.Err
}
