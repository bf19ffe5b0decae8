package dump

import (
	"errors"
	"testing"
)

func TestByteAtOutOfRange(t *testing.T) {
	buf := NewBuffer([]byte("abc"))

	if c, err := buf.ByteAt(2); err != nil || c != 'c' {
		t.Fatalf("ByteAt(2) = %q, %v; want 'c', nil", c, err)
	}
	for _, offset := range []int{-1, 3, 100} {
		if _, err := buf.ByteAt(offset); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("ByteAt(%d) error = %v, want ErrOutOfRange", offset, err)
		}
	}
	if _, err := buf.Range(2, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Range past end error = %v, want ErrOutOfRange", err)
	}
}

func TestRowsIsAtLeastOne(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 16: 1, 17: 2, 20: 2, 32: 2, 33: 3}
	for n, want := range cases {
		if got := NewBuffer(make([]byte, n)).Rows(); got != want {
			t.Fatalf("Rows() for %d bytes = %d, want %d", n, got, want)
		}
	}
}

func TestDisplayChar(t *testing.T) {
	cases := []struct {
		in   byte
		want string
	}{
		{'A', "A"},
		{' ', " "},
		{'<', "<"},
		{'\n', "␊"},
		{'\t', "⭾"},
		{0x00, "␀"},
		{0x1b, "␛"},
		{0x0d, "␍"},
		{0x7f, "␡"},
		{0x85, "�"},
		{0xe9, "é"},
	}
	for _, tc := range cases {
		if got := DisplayChar(tc.in); got != tc.want {
			t.Fatalf("DisplayChar(%#x) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHexAt(t *testing.T) {
	buf := NewBuffer([]byte{0x00, 0xab, 0x7f})
	for offset, want := range []string{"00", "ab", "7f"} {
		got, err := buf.hexAt(offset)
		if err != nil || got != want {
			t.Fatalf("hexAt(%d) = %q, %v; want %q", offset, got, err, want)
		}
	}
}
