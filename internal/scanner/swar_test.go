package scanner

import (
	"fmt"
	"testing"
)

func TestSWAR_IsEightDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"00000000", true},
		{"12345678", true},
		{"99999999", true},
		{"1234567.", false},
		{"-1234567", false},
		{"1234e678", false},
		{"1234 678", false},
		{"/0000000", false},
		{"0000000:", false},
		{"abcdefgh", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := IsEightDigits(Load([]byte(tt.input), 0))
			if got != tt.expected {
				t.Errorf("IsEightDigits(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSWAR_ParseEightDigits(t *testing.T) {
	values := []uint32{0, 1, 7, 10, 99, 12345678, 87654321, 99999999, 10000000, 20240101}
	for _, v := range values {
		s := fmt.Sprintf("%08d", v)
		t.Run(s, func(t *testing.T) {
			w := Load([]byte(s), 0)
			if !IsEightDigits(w) {
				t.Fatalf("expected %q to be eight digits", s)
			}
			if got := ParseEightDigits(w); got != v {
				t.Errorf("ParseEightDigits(%q) = %d, want %d", s, got, v)
			}
		})
	}
}

func TestSWAR_LoadOffset(t *testing.T) {
	buf := []byte("-x1234567890")
	if got := ParseEightDigits(Load(buf, 2)); got != 12345678 {
		t.Errorf("got %d, want 12345678", got)
	}
	if IsEightDigits(Load(buf, 1)) {
		t.Error("chunk with a letter must not be all digits")
	}
}

func TestSetSWAR(t *testing.T) {
	orig := HasSWAR()
	restore := SetSWAR(!orig)
	if HasSWAR() == orig {
		t.Fatal("SetSWAR did not take effect")
	}
	restore()
	if HasSWAR() != orig {
		t.Fatal("restore did not reset the previous setting")
	}
}
