package baseconv

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func mustNew(t *testing.T, b Base) *Converter {
	t.Helper()
	c, err := New(b)
	if err != nil {
		t.Fatalf("New(%d): %v", b, err)
	}
	return c
}

func TestNewRejectsUnsupportedBase(t *testing.T) {
	for _, b := range []Base{0, 1, 11, 16, -2} {
		if _, err := New(b); !errors.Is(err, ErrUnsupportedBase) {
			t.Fatalf("New(%d): expected ErrUnsupportedBase, got %v", b, err)
		}
	}
}

func TestAlphabet(t *testing.T) {
	tests := []struct {
		base Base
		want string
	}{
		{Binary, "01"},
		{Octal, "01234567"},
		{Decimal, "0123456789"},
		{3, "012"},
		{16, ""},
	}

	for _, tc := range tests {
		t.Run(tc.base.String(), func(t *testing.T) {
			got := tc.base.Alphabet()
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if tc.base.Valid() && len(got) != int(tc.base) {
				t.Fatalf("alphabet length %d does not match base %d", len(got), tc.base)
			}
		})
	}
}

func TestIsValidDigits(t *testing.T) {
	tests := []struct {
		base  Base
		token int32
		want  bool
	}{
		{Binary, 110, true},
		{Binary, 0, true},
		{Binary, 123, false},
		{Binary, 2, false},
		{Binary, 1111111111, true},
		{Octal, 17, true},
		{Octal, 8, false},
		{Octal, 1089, false},
		{Decimal, 987654321, true},
		{Decimal, 0, true},
		{Decimal, -5, false},
		{Binary, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.base.String()+"/"+strconv.Itoa(int(tc.token)), func(t *testing.T) {
			c := mustNew(t, tc.base)
			if got := c.IsValidDigits(tc.token); got != tc.want {
				t.Fatalf("IsValidDigits(%d) = %t, want %t", tc.token, got, tc.want)
			}
		})
	}
}

func TestFromForeignDigits(t *testing.T) {
	tests := []struct {
		base  Base
		token int32
		want  int32
	}{
		{Binary, 110, 6},
		{Binary, 11, 3},
		{Binary, 0, 0},
		{Binary, 1, 1},
		{Octal, 17, 15},
		{Octal, 10, 8},
		{Octal, 777, 511},
		{Decimal, 45, 45},
		{Decimal, 2147483647, 2147483647},
	}

	for _, tc := range tests {
		c := mustNew(t, tc.base)
		if got := c.FromForeignDigits(tc.token); got != tc.want {
			t.Fatalf("%s FromForeignDigits(%d) = %d, want %d", tc.base, tc.token, got, tc.want)
		}
	}
}

func TestToForeignDigits(t *testing.T) {
	tests := []struct {
		base  Base
		value int32
		want  string
	}{
		{Binary, 3, "11"},
		{Binary, 6, "110"},
		{Octal, 15, "17"},
		{Octal, 8, "10"},
		{Decimal, 57, "57"},
		{Binary, -3, "-11"},
		{Decimal, math.MinInt32, "-2147483648"},
		{Decimal, math.MaxInt32, "2147483647"},
	}

	for _, tc := range tests {
		c := mustNew(t, tc.base)
		if got := c.ToForeignDigits(tc.value); got != tc.want {
			t.Fatalf("%s ToForeignDigits(%d) = %q, want %q", tc.base, tc.value, got, tc.want)
		}
	}
}

func TestToForeignDigitsZero(t *testing.T) {
	for b := Base(2); b <= 10; b++ {
		if got := mustNew(t, b).ToForeignDigits(0); got != "0" {
			t.Fatalf("%s: expected %q, got %q", b, "0", got)
		}
	}
}

func TestRoundTripOfValidTokens(t *testing.T) {
	for _, b := range Offered {
		c := mustNew(t, b)
		for token := int32(0); token <= 20000; token++ {
			if !c.IsValidDigits(token) {
				continue
			}
			// Leading zeros cannot appear in a decimal rendering, so the
			// token string is exactly what the conversion must reproduce.
			got := c.ToForeignDigits(c.FromForeignDigits(token))
			if want := strconv.Itoa(int(token)); got != want {
				t.Fatalf("%s: round trip of %d gave %q", b, token, got)
			}
		}
	}
}
