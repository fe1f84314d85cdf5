package ast

// IntegerLiteral is a signed 128-bit-capable integer constant. The value is
// stored as a pair of (magnitude string, negative flag) rather than a Go
// int64 so that literals outside the int64 range (legal per spec §3.1,
// "128-bit signed") survive the parser->core boundary without truncation;
// the constant evaluator widens as needed (see internal/types.BigInt).
type IntegerLiteral struct {
	base
	Text string // verbatim digits, optionally with a type-qualifier prefix stripped by the parser
	// Qualifier is the optional type-qualified-literal prefix, e.g. "BYTE" in BYTE#255.
	Qualifier string
}

func NewIntegerLiteral(p *IdProvider, rng SourceRange, text, qualifier string) *IntegerLiteral {
	return &IntegerLiteral{base: newBase(p, KindIntegerLiteral, rng), Text: text, Qualifier: qualifier}
}

// RealLiteral keeps the decimal text verbatim; parsing into a float is
// deferred to the constant evaluator / annotator so that REAL-vs-LREAL
// classification (spec §4.5, §8 boundary cases) happens in one place.
type RealLiteral struct {
	base
	Text string
}

func NewRealLiteral(p *IdProvider, rng SourceRange, text string) *RealLiteral {
	return &RealLiteral{base: newBase(p, KindRealLiteral, rng), Text: text}
}

// BoolLiteral is TRUE or FALSE.
type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(p *IdProvider, rng SourceRange, v bool) *BoolLiteral {
	return &BoolLiteral{base: newBase(p, KindBoolLiteral, rng), Value: v}
}

// StringLiteral holds the literal's text value and whether it was written
// with a wide-string quoting convention (e.g. a leading W or double-quotes
// depending on dialect); the annotator still decides the final encoding
// based on context (cast target, declared type) per spec §4.5.
type StringLiteral struct {
	base
	Value string
	Wide  bool
}

func NewStringLiteral(p *IdProvider, rng SourceRange, value string, wide bool) *StringLiteral {
	return &StringLiteral{base: newBase(p, KindStringLiteral, rng), Value: value, Wide: wide}
}

// TimeLiteral represents a TIME# duration literal in broken-down form.
type TimeLiteral struct {
	base
	Days, Hours, Minutes, Seconds, Millis int64
	Negative                              bool
}

func NewTimeLiteral(p *IdProvider, rng SourceRange) *TimeLiteral {
	return &TimeLiteral{base: newBase(p, KindTimeLiteral, rng)}
}

// DateLiteral represents a DATE# literal.
type DateLiteral struct {
	base
	Year, Month, Day int
}

func NewDateLiteral(p *IdProvider, rng SourceRange) *DateLiteral {
	return &DateLiteral{base: newBase(p, KindDateLiteral, rng)}
}

// DateTimeLiteral represents a DATE_AND_TIME# literal.
type DateTimeLiteral struct {
	base
	Year, Month, Day, Hour, Minute, Second int
}

func NewDateTimeLiteral(p *IdProvider, rng SourceRange) *DateTimeLiteral {
	return &DateTimeLiteral{base: newBase(p, KindDateTimeLiteral, rng)}
}

// TimeOfDayLiteral represents a TIME_OF_DAY# literal.
type TimeOfDayLiteral struct {
	base
	Hour, Minute, Second int
}

func NewTimeOfDayLiteral(p *IdProvider, rng SourceRange) *TimeOfDayLiteral {
	return &TimeOfDayLiteral{base: newBase(p, KindTimeOfDayLiteral, rng)}
}

// ArrayLiteral is an array-value constant: an ordered element list, or nil
// for an all-default-initialized array.
type ArrayLiteral struct {
	base
	Elements []Expression
}

func NewArrayLiteral(p *IdProvider, rng SourceRange, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{base: newBase(p, KindArrayLiteral, rng), Elements: elements}
}

// NullLiteral is the untyped NULL/0 pointer literal.
type NullLiteral struct{ base }

func NewNullLiteral(p *IdProvider, rng SourceRange) *NullLiteral {
	return &NullLiteral{base: newBase(p, KindNullLiteral, rng)}
}

func (*IntegerLiteral) expressionNode()  {}
func (*RealLiteral) expressionNode()     {}
func (*BoolLiteral) expressionNode()     {}
func (*StringLiteral) expressionNode()   {}
func (*TimeLiteral) expressionNode()     {}
func (*DateLiteral) expressionNode()     {}
func (*DateTimeLiteral) expressionNode() {}
func (*TimeOfDayLiteral) expressionNode() {}
func (*ArrayLiteral) expressionNode()    {}
func (*NullLiteral) expressionNode()     {}
