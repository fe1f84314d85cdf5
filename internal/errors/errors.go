// Package errors formats core diagnostics with source context — line/column
// lookup, a caret pointing at the offending byte range, and optional ANSI
// color — adapted from the teacher compiler's error-rendering convention.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iec61131/stcore/internal/ast"
)

// Position is a 1-based line/column pair resolved from a byte offset via a
// LineTable.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// LineTable resolves byte offsets to (line, column), built from a
// CompilationUnit's NewLines table (spec §6).
type LineTable struct {
	offsets []uint32
}

// NewLineTable builds a LineTable from a CompilationUnit's new-line entries.
// Entries need not be pre-sorted; NewLineTable sorts a copy.
func NewLineTable(entries []ast.NewLineEntry) *LineTable {
	offsets := make([]uint32, len(entries))
	for i, e := range entries {
		offsets[i] = e.Offset
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	return &LineTable{offsets: offsets}
}

// Resolve returns the 1-based (line, column) for a byte offset.
func (lt *LineTable) Resolve(offset uint32) Position {
	line := 1
	lastNewline := uint32(0)
	for _, nl := range lt.offsets {
		if nl > offset {
			break
		}
		line++
		lastNewline = nl
	}
	col := int(offset-lastNewline) + 1
	return Position{Line: line, Column: col}
}

// SourceError is a single rendered diagnostic: position, message, and the
// source text needed to print a context line and caret.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     Position
}

// NewSourceError constructs a SourceError from a raw byte range by
// resolving it through lt.
func NewSourceError(lt *LineTable, rng ast.SourceRange, message, source string) *SourceError {
	return &SourceError{
		Message: message,
		Source:  source,
		File:    rng.File,
		Pos:     lt.Resolve(rng.Start),
	}
}

func (e *SourceError) Error() string { return e.Format(false) }

// Format renders the error with a source-context line and a caret pointing
// at the offending column. If color is true, ANSI escapes highlight the
// caret and message.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%s\n", e.File, e.Pos))
	} else {
		sb.WriteString(fmt.Sprintf("Error at %s\n", e.Pos))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *SourceError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of SourceErrors, numbering them when there is
// more than one, matching the teacher's multi-error summary convention.
func FormatAll(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analysis failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
