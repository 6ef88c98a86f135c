package anoncreds

import "errors"

// Error kinds reported by the builders. Callers match them with errors.Is; the
// returned errors wrap these sentinels with the offending attribute name.
var (
	// ErrInvalidArgument reports an empty (or, at the C boundary, NULL)
	// required text input.
	ErrInvalidArgument = errors.New("anoncreds: invalid argument")

	// ErrDuplicateAttribute reports an attribute name that is already present
	// in the set or map under construction.
	ErrDuplicateAttribute = errors.New("anoncreds: duplicate attribute")

	// ErrInvalidNumericFormat reports a decimal value that is not a
	// non-empty string of ASCII digits.
	ErrInvalidNumericFormat = errors.New("anoncreds: invalid numeric format")

	// ErrAllocationFailure reports that a builder, product or handle could
	// not be allocated.
	ErrAllocationFailure = errors.New("anoncreds: allocation failure")

	// ErrBuilderConsumed reports use of a builder after it was moved into a
	// newer builder or finalized.
	ErrBuilderConsumed = errors.New("anoncreds: builder already consumed")

	// ErrReleased reports use of a product after Release.
	ErrReleased = errors.New("anoncreds: product already released")

	// ErrAttributeMismatch reports a value map whose keys differ from the
	// attribute set it is paired with.
	ErrAttributeMismatch = errors.New("anoncreds: attribute values do not match attribute set")
)

// IsInputError reports whether err is one of the "fix your input" kinds as
// opposed to resource exhaustion or a lifecycle violation.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrDuplicateAttribute) ||
		errors.Is(err, ErrInvalidNumericFormat)
}
