package ast

import "fmt"

// SourceRange is a byte-offset span into an optional named source file.
// The core never interprets these bytes; it only forwards them into
// diagnostics. Line/column translation happens via the CompilationUnit's
// new-line table (see internal/errors.LineTable), not here.
type SourceRange struct {
	File  string
	Start uint32
	End   uint32
}

func (r SourceRange) String() string {
	if r.File == "" {
		return fmt.Sprintf("[%d:%d]", r.Start, r.End)
	}
	return fmt.Sprintf("%s[%d:%d]", r.File, r.Start, r.End)
}

// Contains reports whether offset o falls within the range, inclusive of
// Start and exclusive of End.
func (r SourceRange) Contains(o uint32) bool {
	return o >= r.Start && o < r.End
}

// Join returns the smallest range covering both r and other. A zero-value
// operand is ignored so callers can fold ranges without special-casing the
// first element.
func (r SourceRange) Join(other SourceRange) SourceRange {
	if r == (SourceRange{}) {
		return other
	}
	if other == (SourceRange{}) {
		return r
	}
	joined := r
	if other.Start < joined.Start {
		joined.Start = other.Start
	}
	if other.End > joined.End {
		joined.End = other.End
	}
	if joined.File == "" {
		joined.File = other.File
	}
	return joined
}
