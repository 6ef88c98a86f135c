package capi

import (
	"errors"
	"fmt"

	"github.com/hsiuhsiu/anoncreds-go/internal/handles"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds"
)

// ErrorCode is the status every boundary call returns. The numbering follows
// the indy-crypto C ABI so existing foreign wrappers can reuse their tables.
type ErrorCode int32

const (
	Success ErrorCode = 0
	Unknown ErrorCode = 1

	// InvalidParam1..InvalidParam4 report a NULL or empty argument and name
	// its position.
	InvalidParam1 ErrorCode = 100
	InvalidParam2 ErrorCode = 101
	InvalidParam3 ErrorCode = 102
	InvalidParam4 ErrorCode = 103

	// InvalidState reports a handle that is unknown, already consumed or
	// already released.
	InvalidState ErrorCode = 112
	// InvalidStructure reports a live handle of the wrong type.
	InvalidStructure ErrorCode = 113
	// AllocationFailure reports that no new handle could be issued.
	AllocationFailure ErrorCode = 114

	DuplicateAttribute   ErrorCode = 300
	InvalidNumericFormat ErrorCode = 301
)

// ErrInvalidState is the Go-side error for InvalidState and InvalidStructure.
var ErrInvalidState = errors.New("anoncreds/capi: invalid handle state")

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidParam1, InvalidParam2, InvalidParam3, InvalidParam4:
		return fmt.Sprintf("InvalidParam%d", c-InvalidParam1+1)
	case InvalidState:
		return "InvalidState"
	case InvalidStructure:
		return "InvalidStructure"
	case AllocationFailure:
		return "AllocationFailure"
	case DuplicateAttribute:
		return "DuplicateAttribute"
	case InvalidNumericFormat:
		return "InvalidNumericFormat"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(c))
	}
}

// Class folds c into the error kind it belongs to: one of the anoncreds
// sentinels, ErrInvalidState, or nil for Success.
func (c ErrorCode) Class() error {
	switch c {
	case Success:
		return nil
	case InvalidParam1, InvalidParam2, InvalidParam3, InvalidParam4:
		return anoncreds.ErrInvalidArgument
	case DuplicateAttribute:
		return anoncreds.ErrDuplicateAttribute
	case InvalidNumericFormat:
		return anoncreds.ErrInvalidNumericFormat
	case AllocationFailure:
		return anoncreds.ErrAllocationFailure
	case InvalidState, InvalidStructure:
		return ErrInvalidState
	default:
		return errors.New("anoncreds/capi: unknown error")
	}
}

// Err returns nil for Success and otherwise an error that matches Class under
// errors.Is.
func (c ErrorCode) Err() error {
	class := c.Class()
	if class == nil {
		return nil
	}
	return fmt.Errorf("%w (%s)", class, c)
}

// codeOf maps a Go error to its boundary code. param is reported for
// ErrInvalidArgument so the caller learns which text argument was rejected.
func codeOf(err error, param ErrorCode) ErrorCode {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, anoncreds.ErrInvalidArgument):
		return param
	case errors.Is(err, anoncreds.ErrDuplicateAttribute):
		return DuplicateAttribute
	case errors.Is(err, anoncreds.ErrInvalidNumericFormat):
		return InvalidNumericFormat
	case errors.Is(err, anoncreds.ErrAllocationFailure), errors.Is(err, handles.ErrFull):
		return AllocationFailure
	case errors.Is(err, handles.ErrWrongKind):
		return InvalidStructure
	case errors.Is(err, handles.ErrUnknown),
		errors.Is(err, anoncreds.ErrBuilderConsumed),
		errors.Is(err, anoncreds.ErrReleased):
		return InvalidState
	default:
		return Unknown
	}
}
