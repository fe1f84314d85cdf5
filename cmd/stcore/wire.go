package main

import (
	"encoding/json"
	"fmt"

	"github.com/iec61131/stcore/internal/ast"
)

// This file decodes the JSON wire format `stcore check` accepts into the
// core's internal/ast.CompilationUnit. It is intentionally a convenience
// subset: declarations, literals, references, and the common statement
// forms, not every exotic literal or sentinel the core itself understands.
// A real parser living outside this module would build ast nodes directly
// and never go through JSON at all (spec §6: "no parser ... is part of the
// core's surface").

type wireUnit struct {
	FileName        string           `json:"fileName"`
	GlobalVarBlocks []wireBlock      `json:"globalVarBlocks"`
	Pous            []wirePou        `json:"pous"`
	Implementations []wireImpl       `json:"implementations"`
}

type wireBlock struct {
	Kind      string     `json:"kind"`
	Constant  bool       `json:"constant"`
	Variables []wireVar  `json:"variables"`
}

type wireVar struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Init json.RawMessage `json:"init,omitempty"`
}

type wirePou struct {
	Name       string      `json:"name"`
	Kind       string      `json:"kind"`
	ReturnType string      `json:"returnType,omitempty"`
	Blocks     []wireBlock `json:"blocks"`
}

type wireImpl struct {
	Name string        `json:"name"`
	Body []json.RawMessage `json:"body"`
}

func decodeUnit(data []byte, p *ast.IdProvider) (*ast.CompilationUnit, error) {
	var w wireUnit
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding compilation unit: %w", err)
	}

	unit := &ast.CompilationUnit{FileName: w.FileName, Ids: p}

	for _, b := range w.GlobalVarBlocks {
		blk, err := decodeBlock(b, p)
		if err != nil {
			return nil, err
		}
		unit.GlobalVarBlocks = append(unit.GlobalVarBlocks, blk)
	}

	for _, wp := range w.Pous {
		pou := ast.PouDecl{Name: wp.Name, Kind: decodePouKind(wp.Kind)}
		if wp.ReturnType != "" {
			pou.ReturnType = ast.NewNamedTypeExpr(p, ast.SourceRange{}, wp.ReturnType)
		}
		for _, b := range wp.Blocks {
			blk, err := decodeBlock(b, p)
			if err != nil {
				return nil, err
			}
			pou.Blocks = append(pou.Blocks, blk)
		}
		unit.Pous = append(unit.Pous, pou)
	}

	for _, wi := range w.Implementations {
		impl := ast.Implementation{Name: wi.Name}
		for _, raw := range wi.Body {
			stmt, err := decodeStatement(raw, p)
			if err != nil {
				return nil, err
			}
			impl.Body = append(impl.Body, stmt)
		}
		unit.Implementations = append(unit.Implementations, impl)
	}

	return unit, nil
}

func decodeBlock(b wireBlock, p *ast.IdProvider) (ast.VariableBlock, error) {
	blk := ast.VariableBlock{Kind: decodeBlockKind(b.Kind), Constant: b.Constant}
	for _, v := range b.Variables {
		decl := ast.VariableDecl{Name: v.Name, Type: ast.NewNamedTypeExpr(p, ast.SourceRange{}, v.Type)}
		if len(v.Init) > 0 {
			init, err := decodeExpression(v.Init, p)
			if err != nil {
				return blk, err
			}
			decl.Initializer = init
		}
		blk.Variables = append(blk.Variables, decl)
	}
	return blk, nil
}

func decodePouKind(k string) ast.PouKind {
	switch k {
	case "FUNCTION":
		return ast.PouFunction
	case "FUNCTION_BLOCK":
		return ast.PouFunctionBlock
	case "CLASS":
		return ast.PouClass
	case "METHOD":
		return ast.PouMethod
	case "ACTION":
		return ast.PouAction
	default:
		return ast.PouProgram
	}
}

func decodeBlockKind(k string) ast.VariableBlockKind {
	switch k {
	case "VAR_INPUT":
		return ast.BlockInput
	case "VAR_IN_OUT":
		return ast.BlockInOut
	case "VAR_OUTPUT":
		return ast.BlockOutput
	case "VAR_TEMP":
		return ast.BlockTemp
	case "VAR_GLOBAL":
		return ast.BlockGlobal
	default:
		return ast.BlockLocal
	}
}

type wireNode struct {
	Kind string `json:"kind"`
}

func decodeExpression(raw json.RawMessage, p *ast.IdProvider) (ast.Expression, error) {
	var head wireNode
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "integer":
		var n struct {
			Text      string `json:"text"`
			Qualifier string `json:"qualifier"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return ast.NewIntegerLiteral(p, ast.SourceRange{}, n.Text, n.Qualifier), nil
	case "real":
		var n struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return ast.NewRealLiteral(p, ast.SourceRange{}, n.Text), nil
	case "bool":
		var n struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return ast.NewBoolLiteral(p, ast.SourceRange{}, n.Value), nil
	case "string":
		var n struct {
			Value string `json:"value"`
			Wide  bool   `json:"wide"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(p, ast.SourceRange{}, n.Value, n.Wide), nil
	case "identifier":
		var n struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return ast.NewIdentifier(p, ast.SourceRange{}, n.Name), nil
	case "binary":
		var n struct {
			Left     json.RawMessage `json:"left"`
			Operator string          `json:"operator"`
			Right    json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpression(n.Left, p)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(n.Right, p)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(p, ast.SourceRange{}, left, ast.BinaryOp(n.Operator), right), nil
	case "unary":
		var n struct {
			Operator string          `json:"operator"`
			Operand  json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		operand, err := decodeExpression(n.Operand, p)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(p, ast.SourceRange{}, ast.UnaryOp(n.Operator), operand), nil
	case "member":
		var n struct {
			Base  json.RawMessage `json:"base"`
			Child string          `json:"child"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		base, err := decodeExpression(n.Base, p)
		if err != nil {
			return nil, err
		}
		child := ast.NewIdentifier(p, ast.SourceRange{}, n.Child)
		return ast.NewReferenceExpr(p, ast.SourceRange{}, base, ast.AccessMember, child), nil
	default:
		return nil, fmt.Errorf("unsupported expression kind %q", head.Kind)
	}
}

func decodeStatement(raw json.RawMessage, p *ast.IdProvider) (ast.Statement, error) {
	var head wireNode
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "assign":
		var n struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpression(n.Left, p)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(n.Right, p)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignStatement(p, ast.SourceRange{}, left, right), nil
	case "call":
		var n struct {
			Operator  json.RawMessage   `json:"operator"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		op, err := decodeExpression(n.Operator, p)
		if err != nil {
			return nil, err
		}
		var args []ast.Expression
		for _, a := range n.Arguments {
			arg, err := decodeExpression(a, p)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		var param ast.Expression
		if len(args) > 0 {
			param = ast.NewExpressionList(p, ast.SourceRange{}, args)
		}
		return ast.NewCallStatement(p, ast.SourceRange{}, op, param), nil
	case "if":
		var n struct {
			Condition json.RawMessage   `json:"condition"`
			Then      []json.RawMessage `json:"then"`
			Else      []json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(n.Condition, p)
		if err != nil {
			return nil, err
		}
		thenBody, err := decodeStatements(n.Then, p)
		if err != nil {
			return nil, err
		}
		elseBody, err := decodeStatements(n.Else, p)
		if err != nil {
			return nil, err
		}
		return ast.NewIfStatement(p, ast.SourceRange{}, []ast.ConditionalBlock{{Condition: cond, Body: thenBody}}, elseBody), nil
	default:
		return nil, fmt.Errorf("unsupported statement kind %q", head.Kind)
	}
}

func decodeStatements(raws []json.RawMessage, p *ast.IdProvider) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(raws))
	for _, raw := range raws {
		s, err := decodeStatement(raw, p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
