package ast

import "testing"

func TestExcludedFromTypeMap(t *testing.T) {
	p := NewIdProvider()
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"empty statement excluded", NewEmptyStatement(p, SourceRange{}), true},
		{"default value excluded", NewDefaultValue(p, SourceRange{}), true},
		{"case condition excluded", NewCaseCondition(p, SourceRange{}, NewBoolLiteral(p, SourceRange{}, true)), true},
		{"exit statement excluded", NewExitStatement(p, SourceRange{}), true},
		{"continue statement excluded", NewContinueStatement(p, SourceRange{}), true},
		{"return statement excluded", NewReturnStatement(p, SourceRange{}, nil), true},
		{"integer literal not excluded", NewIntegerLiteral(p, SourceRange{}, "1", ""), false},
		{"identifier not excluded", NewIdentifier(p, SourceRange{}, "x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExcludedFromTypeMap(tt.node); got != tt.want {
				t.Errorf("ExcludedFromTypeMap(%T) = %v, want %v", tt.node, got, tt.want)
			}
		})
	}
}

func TestSourceRangeJoin(t *testing.T) {
	a := SourceRange{File: "x.st", Start: 5, End: 10}
	b := SourceRange{File: "x.st", Start: 8, End: 20}
	joined := a.Join(b)
	if joined.Start != 5 || joined.End != 20 {
		t.Errorf("Join() = %+v, want Start=5 End=20", joined)
	}

	if got := a.Join(SourceRange{}); got != a {
		t.Errorf("joining with zero-value range should be a no-op, got %+v", got)
	}
	if got := (SourceRange{}).Join(a); got != a {
		t.Errorf("joining a zero-value range into non-zero should return the other, got %+v", got)
	}
}

func TestSourceRangeContains(t *testing.T) {
	r := SourceRange{Start: 10, End: 20}
	if !r.Contains(10) {
		t.Error("range should contain its start offset")
	}
	if r.Contains(20) {
		t.Error("range should not contain its end offset (exclusive)")
	}
	if r.Contains(9) || r.Contains(21) {
		t.Error("range should not contain offsets outside its bounds")
	}
}
