package baseconv

import (
	"fmt"
	"strconv"
	"strings"
)

// Converter validates and converts foreign-digit tokens for a single base.
//
// A foreign-digit token is an integer typed with decimal digit characters
// whose digits are read as digits of the configured base: with Binary, the
// token 110 means six. Values are int32, which is the calculator's precision
// ceiling; overflow wraps and is not reported.
type Converter struct {
	base     Base
	alphabet string
}

// New returns a Converter for b.
func New(b Base) (*Converter, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBase, int(b))
	}
	return &Converter{base: b, alphabet: b.Alphabet()}, nil
}

// Base returns the configured radix.
func (c *Converter) Base() Base {
	return c.base
}

// IsValidDigits reports whether every character of the decimal rendering of
// token belongs to the base's alphabet. Only membership is checked.
func (c *Converter) IsValidDigits(token int32) bool {
	for _, r := range strconv.FormatInt(int64(token), 10) {
		if !strings.ContainsRune(c.alphabet, r) {
			return false
		}
	}
	return true
}

// FromForeignDigits reads the decimal digits of token as base digits and
// returns their value. The caller must have checked IsValidDigits.
func (c *Converter) FromForeignDigits(token int32) int32 {
	s := strconv.FormatInt(int64(token), 10)

	var value, weight int32 = 0, 1
	for i := len(s) - 1; i >= 0; i-- {
		value += int32(s[i]-'0') * weight
		weight *= int32(c.base)
	}
	return value
}

// ToForeignDigits renders value in the configured base, most significant
// digit first. Negative values get a leading '-' and the magnitude's digits
// instead of the empty string a bare while-positive loop would produce.
func (c *Converter) ToForeignDigits(value int32) string {
	if value == 0 {
		return "0"
	}

	// int64 so the magnitude of math.MinInt32 still fits.
	v := int64(value)
	neg := v < 0
	if neg {
		v = -v
	}

	base := int64(c.base)
	out := make([]byte, 0, 32)
	for v > 0 {
		out = append(out, c.alphabet[v%base])
		v /= base
	}
	if neg {
		out = append(out, '-')
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
