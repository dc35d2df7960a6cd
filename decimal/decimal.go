// Package decimal parses the narrow signed decimal format used for measurement
// values: an optional minus sign, one or more digits, and optionally a dot
// followed by one or more digits.
package decimal

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidDigit is returned for any byte outside '-', '.' and '0'-'9'.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrSyntax is returned when the bytes are legal but do not form a number,
	// e.g. "", "-", "1.", ".5" or "1-2".
	ErrSyntax = errors.New("invalid syntax")
)

// NumError records a failed conversion.
type NumError struct {
	Num string
	Err error
}

func (e *NumError) Error() string {
	return "decimal: parsing " + strconv.Quote(e.Num) + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error { return e.Err }

// maxExact is the number of significant digits that always fits the float64
// mantissa exactly.
const maxExact = 15

var pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// Parse converts b to a float64. The result is the same as strconv.ParseFloat
// would give for b.
func Parse(b []byte) (float64, error) {
	var (
		n      int64
		digits int
		frac   int
		neg    bool
		dot    bool
	)

	i := 0
	if len(b) > 0 && b[0] == '-' {
		neg = true
		i++
	}

	start := i
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case '0' <= c && c <= '9':
			if digits < maxExact {
				n = n*10 + int64(c-'0')
			}
			digits++
			if dot {
				frac++
			}

		case c == '.':
			if dot || i == start {
				return 0, syntaxError(b)
			}
			dot = true

		case c == '-':
			return 0, syntaxError(b)

		default:
			return 0, &NumError{Num: string(b), Err: ErrInvalidDigit}
		}
	}

	if digits == 0 || (dot && frac == 0) {
		return 0, syntaxError(b)
	}

	if digits > maxExact {
		// slow path, we lost digits in n
		return strconv.ParseFloat(string(b), 64)
	}

	v := float64(n) / pow10[frac]
	if neg {
		v = -v
	}
	return v, nil
}

func syntaxError(b []byte) error {
	return &NumError{Num: string(b), Err: ErrSyntax}
}
