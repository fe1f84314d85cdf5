package semantic

import (
	"math/big"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/internal/types"
)

// EvaluateConstants folds every constant-expression handle in idx to a
// fix-point (spec §4.4): it repeatedly sweeps the still-Unresolved entries,
// resolving any whose dependencies have already settled, until a sweep makes
// no further progress or maxIterations is reached. Entries that still depend
// on something unresolvable at that point are marked ConstUnresolvable.
func EvaluateConstants(idx *Index, provider *ast.IdProvider, maxIterations int, report *diagnostics.Report) {
	EvaluateConstantsWithOptions(idx, provider, maxIterations, false, report)
}

// EvaluateConstantsWithOptions is EvaluateConstants with the overflow-severity
// policy spelled out explicitly (spec §9 Open Question 3: overflow during
// folding is reported as diagnostic E038 rather than silently failing;
// treatOverflowAsError raises that diagnostic's severity from warning to
// error, but in both cases the entry still resolves to Unresolvable since
// there is no in-range value to fold to).
func EvaluateConstantsWithOptions(idx *Index, provider *ast.IdProvider, maxIterations int, treatOverflowAsError bool, report *diagnostics.Report) {
	ev := &constEvaluator{idx: idx, provider: provider, report: report, treatOverflowAsError: treatOverflowAsError}

	limitHit := true
	for iteration := 0; iteration < maxIterations; iteration++ {
		progressed := false
		for _, h := range idx.AllConstHandles() {
			entry := idx.ConstEntryFor(h)
			if entry.State != ConstUnresolved {
				continue
			}
			folded, err := ev.evaluate(entry.Stmt, entry.Scope)
			switch {
			case err == errDeferredAddress:
				entry.State = ConstUnresolvable
				entry.Reason = "resolve during codegen"
				entry.DeferredMetadata = ev.lastDeferred
				progressed = true
			case err == errNotYetResolved:
				// dependency still unresolved; retry next sweep.
			case err != nil:
				entry.State = ConstUnresolvable
				entry.Reason = err.Error()
				progressed = true
			default:
				entry.State = ConstResolved
				entry.Result = folded
				progressed = true
			}
		}
		if !progressed {
			limitHit = false
			break
		}
	}

	reason := "could not resolve to a fix-point"
	if limitHit {
		reason = "iteration limit exceeded"
	}
	for _, h := range idx.AllConstHandles() {
		entry := idx.ConstEntryFor(h)
		if entry.State == ConstUnresolved {
			entry.State = ConstUnresolvable
			entry.Reason = reason
			report.Errorf(diagnostics.CodeUnresolvedConstant, entry.Stmt.Range(), "constant expression did not resolve to a fix-point")
		}
	}
}

type constEvalError string

func (e constEvalError) Error() string { return string(e) }

const (
	errNotYetResolved  = constEvalError("dependency not yet resolved")
	errDeferredAddress = constEvalError("deferred to codegen")
)

type constEvaluator struct {
	idx                  *Index
	provider             *ast.IdProvider
	report               *diagnostics.Report
	lastDeferred         *DeferredAddress
	treatOverflowAsError bool
}

// evaluate structurally folds expr, looking up referenced constants through
// idx. It returns errNotYetResolved when expr transitively depends on a
// still-Unresolved handle (the caller retries on the next sweep), and
// errDeferredAddress for REF()/ADR() forms whose value only codegen can
// produce.
func (ev *constEvaluator) evaluate(expr ast.Expression, scope string) (ast.Expression, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral, *ast.RealLiteral, *ast.BoolLiteral, *ast.StringLiteral,
		*ast.TimeLiteral, *ast.DateLiteral, *ast.DateTimeLiteral, *ast.TimeOfDayLiteral, *ast.NullLiteral:
		return expr, nil

	case *ast.ParenExpr:
		return ev.evaluate(e.Inner, scope)

	case *ast.UnaryExpr:
		return ev.evalUnary(e, scope)

	case *ast.BinaryExpr:
		return ev.evalBinary(e, scope)

	case *ast.Identifier:
		return ev.evalReference(e.Name, scope)

	case *ast.ReferenceExpr:
		return ev.evalReferenceExpr(e, scope)

	case *ast.ArrayLiteral:
		out := make([]ast.Expression, len(e.Elements))
		for i, el := range e.Elements {
			folded, err := ev.evaluate(el, scope)
			if err != nil {
				return nil, err
			}
			out[i] = folded
		}
		return ast.NewArrayLiteral(ev.provider, e.Range(), out), nil

	case *ast.MultipliedExpr:
		if _, err := ev.evaluate(e.Count, scope); err != nil {
			return nil, err
		}
		if _, err := ev.evaluate(e.Element, scope); err != nil {
			return nil, err
		}
		return e, nil

	default:
		return nil, constEvalError("not a constant expression")
	}
}

// evalReference resolves a bare identifier: it must name an already-folded
// constant (a registered member/global whose own InitialValue handle has
// resolved), per spec §4.4.
func (ev *constEvaluator) evalReference(name string, scope string) (ast.Expression, error) {
	var v *VariableEntry
	var ok bool
	if scope != "" {
		v, ok = ev.idx.LookupMember(scope, name)
	}
	if !ok {
		v, ok = ev.idx.LookupGlobal(name)
	}
	if !ok {
		return nil, constEvalError("undefined identifier in constant expression: " + name)
	}
	if !v.Constant {
		return nil, constEvalError("reference to non-constant variable in constant expression: " + name)
	}
	if v.InitialValue == types.NoHandle {
		return nil, constEvalError("constant has no initializer: " + name)
	}
	dep := ev.idx.ConstEntryFor(v.InitialValue)
	switch dep.State {
	case ConstResolved:
		return dep.Result, nil
	case ConstUnresolvable:
		return nil, constEvalError("depends on an unresolvable constant: " + name)
	default:
		return nil, errNotYetResolved
	}
}

// evalReferenceExpr handles REF()/ADR()-shaped access nodes specially: these
// never fold to a literal, they defer to codegen (spec §4.4 "Deferred
// addresses"). A member access whose base is a bare identifier is looked up
// as the qualified global Base.Child (how enum members written as
// Type.Member are registered); any other member chain is not a constant
// expression.
func (ev *constEvaluator) evalReferenceExpr(e *ast.ReferenceExpr, scope string) (ast.Expression, error) {
	switch e.Access {
	case ast.AccessAddress:
		lhsName := identifierChainName(e.Base)
		ev.lastDeferred = &DeferredAddress{Scope: scope, LHS: lhsName, TargetTypeName: ""}
		return nil, errDeferredAddress
	case ast.AccessMember:
		base := identifierChainName(e.Base)
		child, _ := e.Child.(*ast.Identifier)
		if base != "" && child != nil {
			if v, ok := ev.idx.LookupGlobal(base + "." + child.Name); ok {
				if v.InitialValue == types.NoHandle {
					return nil, constEvalError("constant has no initializer: " + base + "." + child.Name)
				}
				dep := ev.idx.ConstEntryFor(v.InitialValue)
				switch dep.State {
				case ConstResolved:
					return dep.Result, nil
				case ConstUnresolvable:
					return nil, constEvalError("depends on an unresolvable constant: " + base + "." + child.Name)
				default:
					return nil, errNotYetResolved
				}
			}
		}
		return nil, constEvalError("member access is not a constant expression")
	default:
		return nil, constEvalError("reference expression is not a constant expression")
	}
}

func identifierChainName(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func (ev *constEvaluator) evalUnary(e *ast.UnaryExpr, scope string) (ast.Expression, error) {
	operand, err := ev.evaluate(e.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case ast.OpNeg:
		if lit, ok := operand.(*ast.IntegerLiteral); ok {
			v, ok := parseBigInt(lit.Text)
			if !ok {
				return nil, constEvalError("malformed integer literal: " + lit.Text)
			}
			v.Neg(v)
			if !types.FitsInInt128(v) {
				ev.reportOverflow(e.Range(), "constant overflows 128-bit signed range")
				return nil, constEvalError("constant overflows 128-bit signed range")
			}
			return ast.NewIntegerLiteral(ev.provider, e.Range(), v.String(), lit.Qualifier), nil
		}
		return nil, constEvalError("unary - applied to a non-integer constant")
	case ast.OpPos:
		return operand, nil
	case ast.OpNot:
		if b, ok := operand.(*ast.BoolLiteral); ok {
			return ast.NewBoolLiteral(ev.provider, e.Range(), !b.Value), nil
		}
		return nil, constEvalError("NOT applied to a non-BOOL constant")
	}
	return nil, constEvalError("unsupported unary operator")
}

func (ev *constEvaluator) evalBinary(e *ast.BinaryExpr, scope string) (ast.Expression, error) {
	left, err := ev.evaluate(e.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := ev.evaluate(e.Right, scope)
	if err != nil {
		return nil, err
	}

	if isLogicalOp(e.Operator) {
		lb, lok := left.(*ast.BoolLiteral)
		rb, rok := right.(*ast.BoolLiteral)
		if !lok || !rok {
			return nil, constEvalError("logical operator applied to non-BOOL constants")
		}
		return ast.NewBoolLiteral(ev.provider, e.Range(), applyLogical(e.Operator, lb.Value, rb.Value)), nil
	}

	lInt, lIsInt := left.(*ast.IntegerLiteral)
	rInt, rIsInt := right.(*ast.IntegerLiteral)
	if lIsInt && rIsInt {
		lv, lok := parseBigInt(lInt.Text)
		rv, rok := parseBigInt(rInt.Text)
		if !lok || !rok {
			return nil, constEvalError("malformed integer literal in constant expression")
		}
		return ev.applyIntegerOp(e, lv, rv)
	}

	return nil, constEvalError("binary operator applied to non-integer constants")
}

func isLogicalOp(op ast.BinaryOp) bool {
	return op == ast.OpAnd || op == ast.OpOr || op == ast.OpXor
}

func applyLogical(op ast.BinaryOp, l, r bool) bool {
	switch op {
	case ast.OpAnd:
		return l && r
	case ast.OpOr:
		return l || r
	default: // OpXor
		return l != r
	}
}

func (ev *constEvaluator) applyIntegerOp(e *ast.BinaryExpr, lv, rv *big.Int) (ast.Expression, error) {
	switch e.Operator {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return ast.NewBoolLiteral(ev.provider, e.Range(), compareIntegers(e.Operator, lv, rv)), nil
	}

	var result *big.Int
	switch e.Operator {
	case ast.OpAdd:
		result = new(big.Int).Add(lv, rv)
	case ast.OpSub:
		result = new(big.Int).Sub(lv, rv)
	case ast.OpMul:
		result = new(big.Int).Mul(lv, rv)
	case ast.OpDiv:
		if rv.Sign() == 0 {
			return nil, constEvalError("division by zero in constant expression")
		}
		result = new(big.Int).Quo(lv, rv)
	case ast.OpMod:
		if rv.Sign() == 0 {
			return nil, constEvalError("modulo by zero in constant expression")
		}
		result = new(big.Int).Rem(lv, rv)
	default:
		return nil, constEvalError("unsupported binary operator in constant expression")
	}

	if !types.FitsInInt128(result) {
		ev.reportOverflow(e.Range(), "constant arithmetic overflows 128-bit signed range")
		return nil, constEvalError("constant arithmetic overflows 128-bit signed range")
	}
	return ast.NewIntegerLiteral(ev.provider, e.Range(), result.String(), ""), nil
}

// reportOverflow emits diagnostic E038 for an overflowing constant-folding
// step, at warning severity by default and error severity when the pipeline
// was configured with AnalysisOptions.TreatOverflowAsError.
func (ev *constEvaluator) reportOverflow(rng ast.SourceRange, message string) {
	if ev.treatOverflowAsError {
		ev.report.Errorf(diagnostics.CodeOverflowWarning, rng, "%s", message)
		return
	}
	ev.report.Warnf(diagnostics.CodeOverflowWarning, rng, "%s", message)
}

func compareIntegers(op ast.BinaryOp, l, r *big.Int) bool {
	c := l.Cmp(r)
	switch op {
	case ast.OpEq:
		return c == 0
	case ast.OpNeq:
		return c != 0
	case ast.OpLt:
		return c < 0
	case ast.OpLte:
		return c <= 0
	case ast.OpGt:
		return c > 0
	default: // OpGte
		return c >= 0
	}
}

func parseBigInt(text string) (*big.Int, bool) {
	v := new(big.Int)
	_, ok := v.SetString(text, 10)
	return v, ok
}
