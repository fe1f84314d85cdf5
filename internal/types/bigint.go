package types

import "math/big"

// Int128Min/Max bound the magnitude spec §3.1 requires integer literals to
// support ("128-bit signed"). The constant evaluator folds arithmetic using
// math/big and checks results against these bounds to detect overflow
// (spec §4.4).
var (
	Int128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	Int128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// FitsInBits reports whether v fits in a two's-complement integer of the
// given bit size and signedness.
func FitsInBits(v *big.Int, bitSize uint8, signed bool) bool {
	if signed {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bitSize)-1)
		min := new(big.Int).Neg(limit)
		max := new(big.Int).Sub(limit, big.NewInt(1))
		return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
	}
	if v.Sign() < 0 {
		return false
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitSize)), big.NewInt(1))
	return v.Cmp(max) <= 0
}

// FitsInInt128 reports whether v is within the 128-bit signed range.
func FitsInInt128(v *big.Int) bool {
	return v.Cmp(Int128Min) >= 0 && v.Cmp(Int128Max) <= 0
}
