package types

import "testing"

func TestDerivesFrom(t *testing.T) {
	tests := []struct {
		name     string
		n        Nature
		ancestor Nature
		want     bool
	}{
		{"signed derives from int", NatureSigned, NatureInt, true},
		{"signed derives from num", NatureSigned, NatureNum, true},
		{"signed derives from any", NatureSigned, NatureAny, true},
		{"signed does not derive from real", NatureSigned, NatureReal, false},
		{"string derives from chars", NatureString, NatureChars, true},
		{"string does not derive from bit", NatureString, NatureBit, false},
		{"every nature derives from itself", NatureDuration, NatureDuration, true},
		{"bit does not derive from num", NatureBit, NatureNum, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivesFrom(tt.n, tt.ancestor); got != tt.want {
				t.Errorf("DerivesFrom(%v, %v) = %v, want %v", tt.n, tt.ancestor, got, tt.want)
			}
		})
	}
}

func TestIsNumericalIsRealIsBit(t *testing.T) {
	if !IsNumerical(NatureUnsigned) {
		t.Error("NatureUnsigned should be numerical")
	}
	if IsNumerical(NatureString) {
		t.Error("NatureString should not be numerical")
	}
	if !IsReal(NatureReal) {
		t.Error("NatureReal should be real")
	}
	if IsReal(NatureInt) {
		t.Error("NatureInt should not be real")
	}
	if !IsBit(NatureBit) {
		t.Error("NatureBit should be bit")
	}
}

func TestNatureString(t *testing.T) {
	if got := NatureInt.String(); got != "ANY_INT" {
		t.Errorf("NatureInt.String() = %q, want ANY_INT", got)
	}
	if got := Nature(999).String(); got != "ANY" {
		t.Errorf("unknown nature should fall back to ANY, got %q", got)
	}
}
