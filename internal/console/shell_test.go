package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go-chi-baseconv/internal/baseconv"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func run(t *testing.T, input string, opts ...Option) (baseconv.Calculation, string, error) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithClearScreen(false), WithColor(false)}, opts...)
	calc, err := New(strings.NewReader(input), &out, opts...).Run(context.Background())
	return calc, out.String(), err
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	return lines[len(lines)-1]
}

func TestRunSessions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "decimal add", input: "3 45 12 1", want: "57"},
		{name: "binary subtract", input: "1\n110\n11\n2\n", want: "11"},
		{name: "octal add", input: "2 10 7 1", want: "17"},
		{name: "zero", input: "1 0 0 1", want: "0"},
		{name: "negative result", input: "1 11 110 2", want: "-11"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc, out, err := run(t, tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if calc.Result != tc.want {
				t.Fatalf("expected result %q, got %q", tc.want, calc.Result)
			}
			if got := lastLine(out); got != tc.want {
				t.Fatalf("expected final line %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRunRepromptsOnInvalidInput(t *testing.T) {
	// bad base choices, then a non-number and a non-binary operand, then a
	// bad operation choice.
	calc, out, err := run(t, "0 4 x 1 abc 12 101 -1 1 9 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calc.Base != baseconv.Binary {
		t.Fatalf("expected binary base, got %s", calc.Base)
	}
	if calc.ADecimal != 5 || calc.BDecimal != 1 {
		t.Fatalf("expected decimal operands 5 and 1, got %d and %d", calc.ADecimal, calc.BDecimal)
	}
	if calc.Result != "110" {
		t.Fatalf("expected result %q, got %q", "110", calc.Result)
	}

	if got := strings.Count(out, invalidMessage); got != 6 {
		t.Fatalf("expected 6 invalid messages, got %d\n%s", got, out)
	}
	if got := strings.Count(out, "1. Suma (5+1)"); got != 2 {
		t.Fatalf("expected operation menu twice, got %d", got)
	}
}

func TestRunShowsDecimalOperandsInOperationMenu(t *testing.T) {
	_, out, err := run(t, "2 17 10 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1. Suma (15+8)\n2. Resta (15-8)\n") {
		t.Fatalf("expected operation menu with decimal operands, got:\n%s", out)
	}
	if got := lastLine(out); got != "7" {
		t.Fatalf("expected result %q, got %q", "7", got)
	}
}

func TestRunClearsScreen(t *testing.T) {
	_, out, err := run(t, "3 1 1 1", WithClearScreen(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, clearSequence) {
		t.Fatal("expected output to start with the clear sequence")
	}
	if !strings.HasSuffix(out, clearSequence+"2\n") {
		t.Fatalf("expected clear before the result, got %q", out)
	}
}

func TestRunEndOfInput(t *testing.T) {
	for _, input := range []string{"", "1", "1 101", "1 101 1"} {
		_, _, err := run(t, input)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("input %q: expected io.ErrUnexpectedEOF, got %v", input, err)
		}
	}
}

func TestRunStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := New(strings.NewReader("3 1 1 1"), &out, WithClearScreen(false)).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunStopsWhileWaitingForInput(t *testing.T) {
	prompts := []struct {
		name  string
		input string
	}{
		{name: "base choice", input: ""},
		{name: "first operand", input: "1 "},
		{name: "operation choice", input: "1 101 1 "},
	}

	for _, tc := range prompts {
		t.Run(tc.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			t.Cleanup(func() { pw.Close() })

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error, 1)
			go func() {
				_, err := New(pr, io.Discard, WithClearScreen(false)).Run(ctx)
				done <- err
			}()

			if tc.input != "" {
				if _, err := io.WriteString(pw, tc.input); err != nil {
					t.Fatalf("writing input: %v", err)
				}
			}
			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				if !errors.Is(err, context.Canceled) {
					t.Fatalf("expected context.Canceled, got %v", err)
				}
			case <-time.After(time.Second):
				t.Fatal("Run still blocked 1s after cancel")
			}
		})
	}
}

func TestWithColorKeepsTerminalDetection(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = oldNoColor })

	var buf bytes.Buffer
	_, err := New(strings.NewReader("4 3 1 1 1"), &buf, WithClearScreen(false), WithColor(true)).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI colour codes on a non-terminal, got %q", out)
	}
	if !strings.Contains(out, invalidMessage) {
		t.Fatalf("expected %q in output", invalidMessage)
	}
}

func TestRunLogsRejectedOperands(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	if _, _, err := run(t, "2 9 7 7 1", WithLogger(zap.New(core))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := logs.FilterMessage("operand rejected").Len(); got != 1 {
		t.Fatalf("expected 1 rejected operand log, got %d", got)
	}
	entries := logs.FilterMessage("calculation completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 completion log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["result"]; got != "16" {
		t.Fatalf("expected logged result %q, got %#v", "16", got)
	}
}
