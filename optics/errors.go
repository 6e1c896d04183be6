package optics

import (
	"errors"
	"fmt"
)

// FormatError reports a malformed line in a text asset (OBJ, MTL, material
// table).
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// ErrInvalidReference is returned for an unknown reference-point kind or a
// Manual kind without coordinates.
var ErrInvalidReference = errors.New("invalid reference point request")

// ErrRayTerminated is returned when terminating a ray that already has a
// terminal point. Rays are never re-terminated.
var ErrRayTerminated = errors.New("ray already terminated")
