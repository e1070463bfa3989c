// Package console is the interactive front end of the base calculator.
//
// A session asks for a base, two operands typed in that base and an
// operation, then prints the result in the same base and ends. Bad input is
// never an error: the shell prints "Dato invalido" and asks again.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go-chi-baseconv/internal/baseconv"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

const (
	invalidMessage = "Dato invalido"
	clearSequence  = "\033[H\033[2J"
)

// Shell runs one calculator session over a pair of streams.
type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	clear   bool
	invalid *color.Color
	logger  *zap.Logger

	startScan sync.Once
	tokens    chan string
	scanErr   error // set before tokens is closed
}

type Option func(*Shell)

// WithClearScreen toggles the ANSI clear sequence written between steps.
func WithClearScreen(enabled bool) Option {
	return func(s *Shell) { s.clear = enabled }
}

// WithColor(false) turns off colouring of the invalid input message. When
// enabled, color's own terminal detection still decides.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		if !enabled {
			s.invalid.DisableColor()
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// New returns a Shell reading whitespace separated tokens from in.
func New(in io.Reader, out io.Writer, opts ...Option) *Shell {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	s := &Shell{
		in:      sc,
		out:     out,
		clear:   true,
		invalid: color.New(color.FgRed),
		logger:  zap.NewNop(),
		tokens:  make(chan string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a single session and returns what was computed. It fails only
// when input ends early, the reader fails, or ctx is done.
func (s *Shell) Run(ctx context.Context) (baseconv.Calculation, error) {
	s.clearScreen()

	base, err := s.chooseBase(ctx)
	if err != nil {
		return baseconv.Calculation{}, err
	}

	conv, err := baseconv.New(base)
	if err != nil {
		return baseconv.Calculation{}, err
	}
	s.logger.Debug("base selected", zap.Stringer("base", base))
	s.clearScreen()

	a, err := s.readOperand(ctx, conv, "Numero 1: ")
	if err != nil {
		return baseconv.Calculation{}, err
	}
	s.clearScreen()

	b, err := s.readOperand(ctx, conv, "Numero 2: ")
	if err != nil {
		return baseconv.Calculation{}, err
	}

	op, err := s.chooseOperation(ctx, conv.FromForeignDigits(a), conv.FromForeignDigits(b))
	if err != nil {
		return baseconv.Calculation{}, err
	}

	calc, err := conv.Calculate(a, b, op)
	if err != nil {
		return baseconv.Calculation{}, err
	}
	s.logger.Debug("calculation completed",
		zap.Stringer("base", base),
		zap.String("operation", string(op)),
		zap.Int32("result_decimal", calc.Decimal),
		zap.String("result", calc.Result),
	)

	s.clearScreen()
	fmt.Fprintln(s.out, calc.Result)

	return calc, nil
}

func (s *Shell) chooseBase(ctx context.Context) (baseconv.Base, error) {
	for {
		fmt.Fprint(s.out, "1. Binario\n2. Octal\n3. Decimal\n: ")

		n, ok, err := s.readInt(ctx)
		if err != nil {
			return 0, err
		}
		if ok && n >= 1 && int(n) <= len(baseconv.Offered) {
			return baseconv.Offered[n-1], nil
		}

		s.invalid.Fprintln(s.out, invalidMessage)
		s.clearScreen()
	}
}

func (s *Shell) readOperand(ctx context.Context, conv *baseconv.Converter, prompt string) (int32, error) {
	for {
		fmt.Fprint(s.out, prompt)

		n, ok, err := s.readInt(ctx)
		if err != nil {
			return 0, err
		}
		if ok && conv.IsValidDigits(n) {
			return n, nil
		}

		s.logger.Debug("operand rejected", zap.Stringer("base", conv.Base()))
		s.clearScreen()
		s.invalid.Fprintln(s.out, invalidMessage)
	}
}

func (s *Shell) chooseOperation(ctx context.Context, a, b int32) (baseconv.Operation, error) {
	for {
		s.clearScreen()
		fmt.Fprintf(s.out, "1. Suma (%d+%d)\n2. Resta (%d-%d)\n", a, b, a, b)

		n, ok, err := s.readInt(ctx)
		if err != nil {
			return "", err
		}
		switch {
		case ok && n == 1:
			return baseconv.OpAdd, nil
		case ok && n == 2:
			return baseconv.OpSubtract, nil
		}
	}
}

// readInt reads the next token. ok is false when the token is not an int32.
func (s *Shell) readInt(ctx context.Context) (int32, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.startScan.Do(func() { go s.scan(ctx) })

	var text string
	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	case t, more := <-s.tokens:
		if !more {
			if s.scanErr != nil {
				return 0, false, fmt.Errorf("read input: %w", s.scanErr)
			}
			return 0, false, io.ErrUnexpectedEOF
		}
		text = t
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, false, nil
	}
	return int32(n), true, nil
}

// scan feeds tokens to readInt so a blocked read never delays cancellation.
// A Scan already blocked on the reader is left behind when ctx is done.
func (s *Shell) scan(ctx context.Context) {
	defer close(s.tokens)

	for s.in.Scan() {
		select {
		case s.tokens <- s.in.Text():
		case <-ctx.Done():
			return
		}
	}
	s.scanErr = s.in.Err()
}

func (s *Shell) clearScreen() {
	if s.clear {
		fmt.Fprint(s.out, clearSequence)
	}
}
