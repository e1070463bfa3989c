package baseconv

import (
	"errors"
	"fmt"
)

// Base is a numeral radix between 2 and 10.
type Base int

const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
)

const digits = "0123456789"

var (
	ErrUnsupportedBase = errors.New("unsupported base")
	ErrInvalidDigits   = errors.New("invalid data")
)

// Offered lists the bases the calculator shells expose, in menu order.
var Offered = []Base{Binary, Octal, Decimal}

// Valid reports whether b can be represented with decimal digit characters.
func (b Base) Valid() bool {
	return b >= 2 && b <= 10
}

// Alphabet returns the ordered digit characters for b. Its length equals b.
func (b Base) Alphabet() string {
	if !b.Valid() {
		return ""
	}
	return digits[:b]
}

// Name returns a human readable label for the offered bases.
func (b Base) Name() string {
	switch b {
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Decimal:
		return "decimal"
	default:
		return fmt.Sprintf("base%d", int(b))
	}
}

func (b Base) String() string {
	return b.Name()
}
