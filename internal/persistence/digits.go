package persistence

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidNumber is returned when input is not a non-negative decimal integer.
var ErrInvalidNumber = errors.New("invalid number")

// Digits holds the decimal digit values (0-9) of a number, most significant first.
// string(d) is the memo key of the sequence.
type Digits []byte

// DigitsOf returns the canonical base-10 digits of n. n must be non-negative.
func DigitsOf(n *big.Int) Digits {
	text := n.Text(10)
	d := make(Digits, len(text))
	for i := 0; i < len(text); i++ {
		d[i] = text[i] - '0'
	}
	return d
}

// HasZero reports whether any digit is 0.
func (d Digits) HasZero() bool {
	for _, v := range d {
		if v == 0 {
			return true
		}
	}
	return false
}

// Key returns the memoization key of the sequence.
func (d Digits) Key() string {
	return string(d)
}

// String renders the digits as decimal text.
func (d Digits) String() string {
	var sb strings.Builder
	sb.Grow(len(d))
	for _, v := range d {
		sb.WriteByte('0' + mustDigit(v))
	}
	return sb.String()
}

// Int converts the digits back into an integer.
func (d Digits) Int() *big.Int {
	if len(d) == 0 {
		return new(big.Int)
	}
	n, _ := new(big.Int).SetString(d.String(), 10)
	return n
}

// ParseNumber parses a non-negative decimal integer. Signs, spaces, and
// base prefixes are rejected.
func ParseNumber(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: %q contains non-digit %q", ErrInvalidNumber, truncate(s, 32), s[i])
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, truncate(s, 32))
	}
	return n, nil
}

// mustDigit panics on values outside 0-9. Such a value can only come from a
// broken extraction step, never from user input.
func mustDigit(v byte) byte {
	if v > 9 {
		panic(fmt.Sprintf("persistence: digit value %d out of range", v))
	}
	return v
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
