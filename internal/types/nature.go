package types

// Nature classifies a type for generic-parameter constraint matching
// (GLOSSARY: ANY_INT, ANY_NUM, ...). The derives-from relation below is a
// fixed lattice the implementer must reproduce exactly (spec §4.2); it is
// not meant to be extended at runtime.
type Nature int

const (
	NatureAny Nature = iota
	NatureDerived
	NatureElementary
	NatureMagnitude
	NatureNum
	NatureReal
	NatureInt
	NatureSigned
	NatureUnsigned
	NatureDuration
	NatureBit
	NatureChars
	NatureString
	NatureChar
	NatureDate
	NatureVLA
)

var natureNames = map[Nature]string{
	NatureAny:        "ANY",
	NatureDerived:    "ANY_DERIVED",
	NatureElementary: "ANY_ELEMENTARY",
	NatureMagnitude:  "ANY_MAGNITUDE",
	NatureNum:        "ANY_NUM",
	NatureReal:       "ANY_REAL",
	NatureInt:        "ANY_INT",
	NatureSigned:     "ANY_SIGNED",
	NatureUnsigned:   "ANY_UNSIGNED",
	NatureDuration:   "ANY_DURATION",
	NatureBit:        "ANY_BIT",
	NatureChars:      "ANY_CHARS",
	NatureString:     "ANY_STRING",
	NatureChar:       "ANY_CHAR",
	NatureDate:       "ANY_DATE",
	NatureVLA:        "ANY_VLA",
}

func (n Nature) String() string {
	if s, ok := natureNames[n]; ok {
		return s
	}
	return "ANY"
}

// parent maps each nature to its immediate parent in the lattice; NatureAny
// has no parent. This table is the single source of truth for DerivesFrom.
var parent = map[Nature]Nature{
	NatureDerived:    NatureAny,
	NatureElementary: NatureAny,
	NatureVLA:        NatureAny,
	NatureMagnitude:  NatureElementary,
	NatureNum:        NatureMagnitude,
	NatureReal:       NatureNum,
	NatureInt:        NatureNum,
	NatureSigned:     NatureInt,
	NatureUnsigned:   NatureInt,
	NatureDuration:   NatureMagnitude,
	NatureBit:        NatureElementary,
	NatureChars:      NatureElementary,
	NatureDate:       NatureElementary,
	NatureString:     NatureChars,
	NatureChar:       NatureChars,
}

// DerivesFrom reports whether n derives from ancestor, walking the lattice
// upward. Every nature (including NatureAny itself) derives from NatureAny.
func DerivesFrom(n, ancestor Nature) bool {
	if ancestor == NatureAny {
		return true
	}
	cur := n
	for {
		if cur == ancestor {
			return true
		}
		p, ok := parent[cur]
		if !ok {
			return false
		}
		cur = p
	}
}

// IsNumerical reports whether n derives from ANY_NUM.
func IsNumerical(n Nature) bool { return DerivesFrom(n, NatureNum) }

// IsReal reports whether n derives from ANY_REAL.
func IsReal(n Nature) bool { return DerivesFrom(n, NatureReal) }

// IsBit reports whether n derives from ANY_BIT.
func IsBit(n Nature) bool { return DerivesFrom(n, NatureBit) }
