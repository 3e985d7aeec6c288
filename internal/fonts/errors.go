package fonts

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates a font could not be loaded.
var ErrUnavailable = errors.New("font unavailable")

// UnavailableError names the font that failed to load.
type UnavailableError struct {
	Key Key
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("font %s unavailable: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("font %s unavailable", e.Key)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnavailable as well as the wrapped error.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
