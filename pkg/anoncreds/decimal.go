package anoncreds

import (
	"fmt"
	"math/big"
)

// DecimalValue is the encoded numeric form of an attribute: an
// arbitrary-precision non-negative integer written as ASCII digits. Only
// well-formedness is checked here; range checks against a group order belong
// to the signature scheme consuming the value.
type DecimalValue string

// ParseDecimal validates s as a decimal value. It accepts one or more ASCII
// digits and nothing else: no sign, no whitespace, no separators. Leading
// zeros are kept as written.
func ParseDecimal(s string) (DecimalValue, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty decimal value", ErrInvalidNumericFormat)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: unexpected character at offset %d", ErrInvalidNumericFormat, i)
		}
	}
	return DecimalValue(s), nil
}

// String returns the digits.
func (d DecimalValue) String() string {
	return string(d)
}

// BigInt returns a freshly allocated big.Int holding the value.
// WARNING: big.Int arithmetic is not constant-time; use it for encoding and
// debugging, not for secret-dependent computation.
func (d DecimalValue) BigInt() *big.Int {
	n, ok := new(big.Int).SetString(string(d), 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}
