package semantic

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/types"
)

// normalizeFoldKey is foldKey's text-normalization step: Unicode text can
// reach the index in more than one normalization form (e.g. a precomposed
// "é" versus "e" + combining acute) and still name the same identifier. NFC
// folds both to one representative form before the case-fold, so ordered_map
// and the dependency graph compare identifiers by meaning, not by byte
// sequence.
func normalizeFoldKey(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

var utf16LittleEndian = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// typeStringLiteral resolves a STRING/WSTRING literal's natural type from
// its quoting convention (spec §4.5: single-quoted is STRING, double-quoted
// WSTRING, mirrored here by ast.StringLiteral.Wide) and normalizes its text
// to NFC so two literals that denote the same string compare equal
// regardless of how the source text was composed.
func (an *annotator) typeStringLiteral(lit *ast.StringLiteral) *types.DataType {
	lit.Value = norm.NFC.String(lit.Value)
	typeName := "STRING"
	if lit.Wide {
		typeName = "WSTRING"
	}
	dt, _ := an.idx.LookupType(typeName)
	return dt
}

// transcodeStringLiteral re-encodes text between STRING's UTF-8 and
// WSTRING's UTF-16 representation. It mirrors the original resolver's
// literal re-registration when a STRING#/WSTRING# cast target's encoding
// disagrees with the literal's own quoting convention (original_source
// resolver.rs, resolve_string_literal): rather than reporting a type error,
// the literal is silently transcoded to the cast's encoding.
func transcodeStringLiteral(text string, toWide bool) (string, error) {
	if !toWide {
		return text, nil
	}
	encoded, _, err := transform.String(utf16LittleEndian.NewEncoder(), text)
	if err != nil {
		return text, err
	}
	decoded, _, err := transform.String(utf16LittleEndian.NewDecoder(), encoded)
	if err != nil {
		return text, err
	}
	return decoded, nil
}

// typeCastExpr handles an explicit TypeName(expr) cast, special-casing a
// string-literal operand whose quoting convention disagrees with the cast's
// target encoding (STRING#"..." or WSTRING#'...').
func (an *annotator) typeCastExpr(e *ast.CastExpr, ctx *visitorContext) *types.DataType {
	an.annotateExpression(e.Operand, ctx)
	dt, _ := an.idx.LookupType(e.TargetTypeName)
	if dt == nil {
		return nil
	}
	lit, ok := e.Operand.(*ast.StringLiteral)
	if !ok {
		return dt
	}
	info, ok := dt.Information.(types.StringInfo)
	if !ok {
		return dt
	}
	wantsWide := info.Encoding == types.EncodingUTF16
	if wantsWide == lit.Wide {
		return dt
	}
	if transcoded, err := transcodeStringLiteral(lit.Value, wantsWide); err == nil {
		lit.Value = transcoded
		lit.Wide = wantsWide
		an.m.typeMap[lit.ID()] = dt
	}
	return dt
}
