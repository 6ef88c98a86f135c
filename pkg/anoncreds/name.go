package anoncreds

import (
	"fmt"
	"unicode/utf8"
)

// AttributeName identifies a claim attribute. Names compare by exact byte
// equality: no case folding, trimming or Unicode normalization is applied, so
// issuer and verifier must agree on the exact spelling.
type AttributeName = string

func validateName(name AttributeName) error {
	if name == "" {
		return fmt.Errorf("%w: attribute name must not be empty", ErrInvalidArgument)
	}
	return nil
}

// encodableName rejects names JSON cannot carry byte for byte. encoding/json
// rewrites invalid UTF-8 as U+FFFD, which would merge distinct names.
func encodableName(name AttributeName) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: attribute name %q is not valid UTF-8 and has no JSON form", ErrInvalidArgument, name)
	}
	return nil
}
