package types

import "testing"

func TestBuiltinsRegistersStringAndWString(t *testing.T) {
	var str, wstr *DataType
	for _, d := range Builtins() {
		switch d.Name {
		case "STRING":
			str = d
		case "WSTRING":
			wstr = d
		}
	}
	if str == nil || wstr == nil {
		t.Fatal("expected both STRING and WSTRING to be registered")
	}
	strInfo := str.Information.(StringInfo)
	wstrInfo := wstr.Information.(StringInfo)
	if strInfo.Encoding != EncodingUTF8 {
		t.Errorf("STRING encoding = %v, want EncodingUTF8", strInfo.Encoding)
	}
	if wstrInfo.Encoding != EncodingUTF16 {
		t.Errorf("WSTRING encoding = %v, want EncodingUTF16", wstrInfo.Encoding)
	}
	if strInfo.Size.Literal != DefaultStringLen+1 {
		t.Errorf("STRING default size = %d, want %d", strInfo.Size.Literal, DefaultStringLen+1)
	}
}

func TestRangeCheckFunctionName(t *testing.T) {
	tests := []struct {
		bits   uint8
		signed bool
		want   string
	}{
		{8, true, RangeCheckSigned},
		{32, true, RangeCheckSigned},
		{64, true, RangeCheckLSigned},
		{16, false, RangeCheckUnsigned},
		{64, false, RangeCheckLUnsigned},
	}
	for _, tt := range tests {
		if got := RangeCheckFunctionName(tt.bits, tt.signed); got != tt.want {
			t.Errorf("RangeCheckFunctionName(%d, %v) = %q, want %q", tt.bits, tt.signed, got, tt.want)
		}
	}
}
