package baseconv

import (
	"errors"
	"fmt"
)

// Operation is one of the two arithmetic operations the calculator offers.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

var ErrUnknownOperation = errors.New("unknown operation")

// ParseOperation maps an operation name to an Operation.
func ParseOperation(name string) (Operation, error) {
	switch op := Operation(name); op {
	case OpAdd, OpSubtract:
		return op, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}
}

// Symbol returns the infix symbol used when displaying op.
func (op Operation) Symbol() string {
	if op == OpSubtract {
		return "-"
	}
	return "+"
}

// Apply computes a op b on decimal values.
func (op Operation) Apply(a, b int32) int32 {
	if op == OpSubtract {
		return Subtract(a, b)
	}
	return Add(a, b)
}

// Add returns a + b. Overflow wraps.
func Add(a, b int32) int32 { return a + b }

// Subtract returns a - b. Overflow wraps.
func Subtract(a, b int32) int32 { return a - b }

// Calculation is the outcome of one calculator session.
type Calculation struct {
	Base      Base
	Operation Operation
	A, B      int32 // tokens as typed
	ADecimal  int32
	BDecimal  int32
	Decimal   int32
	Result    string
}

// Calculate validates both tokens, converts them, applies op and renders
// the result in the converter's base.
func (c *Converter) Calculate(a, b int32, op Operation) (Calculation, error) {
	if !c.IsValidDigits(a) {
		return Calculation{}, fmt.Errorf("%w: operand a=%d for %s", ErrInvalidDigits, a, c.base)
	}
	if !c.IsValidDigits(b) {
		return Calculation{}, fmt.Errorf("%w: operand b=%d for %s", ErrInvalidDigits, b, c.base)
	}

	calc := Calculation{
		Base:      c.base,
		Operation: op,
		A:         a,
		B:         b,
		ADecimal:  c.FromForeignDigits(a),
		BDecimal:  c.FromForeignDigits(b),
	}
	calc.Decimal = op.Apply(calc.ADecimal, calc.BDecimal)
	calc.Result = c.ToForeignDigits(calc.Decimal)

	return calc, nil
}
