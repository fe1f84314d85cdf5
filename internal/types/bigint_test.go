package types

import (
	"math/big"
	"testing"
)

func TestFitsInBits(t *testing.T) {
	tests := []struct {
		name    string
		v       int64
		bits    uint8
		signed  bool
		want    bool
	}{
		{"127 fits in SINT", 127, 8, true, true},
		{"128 does not fit in SINT", 128, 8, true, false},
		{"-128 fits in SINT", -128, 8, true, true},
		{"-129 does not fit in SINT", -129, 8, true, false},
		{"255 fits in USINT", 255, 8, false, true},
		{"256 does not fit in USINT", 256, 8, false, false},
		{"negative does not fit unsigned", -1, 8, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := big.NewInt(tt.v)
			if got := FitsInBits(v, tt.bits, tt.signed); got != tt.want {
				t.Errorf("FitsInBits(%d, %d, %v) = %v, want %v", tt.v, tt.bits, tt.signed, got, tt.want)
			}
		})
	}
}

func TestFitsInInt128(t *testing.T) {
	if !FitsInInt128(Int128Max) {
		t.Error("Int128Max should fit in itself")
	}
	if !FitsInInt128(Int128Min) {
		t.Error("Int128Min should fit in itself")
	}
	overflow := new(big.Int).Add(Int128Max, big.NewInt(1))
	if FitsInInt128(overflow) {
		t.Error("Int128Max+1 should not fit")
	}
	underflow := new(big.Int).Sub(Int128Min, big.NewInt(1))
	if FitsInInt128(underflow) {
		t.Error("Int128Min-1 should not fit")
	}
}
