package mprlist

import (
	"errors"
	"fmt"
)

// ErrUnknownConflict is returned by Insert for a conflict-resolution
// value that is not one of InsertReplace, InsertAppend or InsertSkip.
var ErrUnknownConflict = errors.New("mprlist: unknown insert conflict resolution")

// ErrOuterType is returned by the encoder for an outer TLV-TYPE that is
// neither Content nor MPRList. This is a caller mistake, not wire data
// going bad, so it is distinct from Error.
var ErrOuterType = errors.New("mprlist: TLV-TYPE is neither Content nor MPRList")

// ErrOutOfRange is returned by Get for an index outside [0, Len()).
var ErrOutOfRange = errors.New("mprlist: delegation index out of range")

// Error reports wire data that violates the MPRList grammar. When a
// lower layer rejected a payload (a malformed NonNegativeInteger or
// Name), Cause preserves its error for diagnostics.
type Error struct {
	Msg   string
	Cause error
}

func wireErrf(cause error, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return "mprlist: " + e.Msg + ": " + e.Cause.Error()
	}
	return "mprlist: " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
