package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int
		off, n  int
		wantEnd int
		wantErr bool
	}{
		{name: "whole range", lo: 0, hi: 64, off: 0, n: 64, wantEnd: 64},
		{name: "inner range", lo: 16, hi: 64, off: 20, n: 4, wantEnd: 24},
		{name: "empty at end", lo: 0, hi: 64, off: 64, n: 0, wantEnd: 64},
		{name: "below lo", lo: 16, hi: 64, off: 15, n: 1, wantErr: true},
		{name: "past hi", lo: 0, hi: 64, off: 60, n: 5, wantErr: true},
		{name: "negative length", lo: 0, hi: 64, off: 0, n: -1, wantErr: true},
		{name: "overflow", lo: 0, hi: math.MaxInt, off: math.MaxInt, n: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := CheckRange(tt.lo, tt.hi, tt.off, tt.n)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CheckRange(%d,%d,%d,%d) expected error", tt.lo, tt.hi, tt.off, tt.n)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckRange: %v", err)
			}
			if end != tt.wantEnd {
				t.Fatalf("end = %d, want %d", end, tt.wantEnd)
			}
		})
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
}
