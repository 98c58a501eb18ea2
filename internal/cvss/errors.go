package cvss

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFormat     = errors.New("invalid CVSS vector")
	ErrIncompleteVector  = errors.New("incomplete CVSS vector")
	ErrInvalidAdjustment = errors.New("invalid CVSS adjustment")
)

// Error describes a rejected vector or adjustment. Kind is one of the
// Err* sentinels and is what errors.Is matches against.
type Error struct {
	Kind    error
	Token   string
	Key     string
	Value   string
	Missing []Key
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrIncompleteVector:
		names := make([]string, len(e.Missing))
		for i, k := range e.Missing {
			names[i] = k.String()
		}
		return fmt.Sprintf("%v: missing %s", e.Kind, strings.Join(names, ", "))
	case ErrInvalidAdjustment:
		return fmt.Sprintf("%v: %q is not a valid value for %s", e.Kind, e.Value, e.Key)
	default:
		return fmt.Sprintf("%v: bad token %q", e.Kind, e.Token)
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}
