package datafill

import (
	"errors"
	"fmt"

	"github.com/lvkit/lvrsrc/internal/typedesc"
)

var (
	// ErrTypeMismatch reports an attempt to bind a fill to a
	// descriptor of a different type tag.
	ErrTypeMismatch = errors.New("datafill: type descriptor mismatch")
	// ErrSizeLimit reports a declared element or level count above the
	// configured ceiling. Size fields come straight from the file, so
	// this is the guard against corrupt or hostile input driving
	// unbounded allocation.
	ErrSizeLimit = errors.New("datafill: declared count exceeds limit")
	// ErrUnsupported reports a format variant this toolkit does not
	// cover: a coverage gap, not corrupt data.
	ErrUnsupported = errors.New("datafill: unsupported format variant")
	// ErrMalformed reports structurally inconsistent input.
	ErrMalformed = errors.New("datafill: malformed data")
)

// childErr wraps a failing child's error with the child's type tag so
// a deep failure can be located in the descriptor tree.
func childErr(tag typedesc.TypeTag, err error) error {
	return fmt.Errorf("data type %s: %w", tag.Name(), err)
}
