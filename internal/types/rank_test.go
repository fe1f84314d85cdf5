package types

import "testing"

func builtinByName(t *testing.T, name string) *DataType {
	t.Helper()
	for _, d := range Builtins() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("builtin %q not found", name)
	return nil
}

func TestGetBiggerTypeSameFamily(t *testing.T) {
	dint := builtinByName(t, "DINT")
	intT := builtinByName(t, "INT")
	real := builtinByName(t, "REAL")
	lreal := builtinByName(t, "LREAL")

	if got := GetBiggerType(dint, intT, real, lreal); got != dint {
		t.Errorf("DINT vs INT should stay DINT, got %s", got.Name)
	}
	if got := GetBiggerType(intT, dint, real, lreal); got != dint {
		t.Errorf("INT vs DINT should promote to DINT, got %s", got.Name)
	}
}

func TestGetBiggerTypeCrossFamily(t *testing.T) {
	dint := builtinByName(t, "DINT")
	real := builtinByName(t, "REAL")
	lreal := builtinByName(t, "LREAL")
	lint := builtinByName(t, "LINT")

	if got := GetBiggerType(dint, real, real, lreal); got != real {
		t.Errorf("DINT vs REAL should be REAL, got %s", got.Name)
	}
	if got := GetBiggerType(lint, real, real, lreal); got != lreal {
		t.Errorf("LINT (64-bit) vs REAL should widen to LREAL, got %s", got.Name)
	}
}

func TestRankPanicsOnNonNumerical(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Rank to panic on a non-numerical Information")
		}
	}()
	Rank(StringInfo{})
}
