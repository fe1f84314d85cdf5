package semantic

import "testing"

func TestNormalizeFoldKeyFoldsNFCThenCase(t *testing.T) {
	precomposed := "Caf\u00e9"
	decomposed := "Cafe\u0301"
	if normalizeFoldKey(precomposed) != normalizeFoldKey(decomposed) {
		t.Error("normalizeFoldKey should fold both normalization forms to the same key")
	}
	if normalizeFoldKey("MyVar") != "myvar" {
		t.Errorf("normalizeFoldKey(%q) = %q, want lowercase", "MyVar", normalizeFoldKey("MyVar"))
	}
}

func TestTranscodeStringLiteralRoundTripsThroughUTF16(t *testing.T) {
	text := "hello, world"
	got, err := transcodeStringLiteral(text, true)
	if err != nil {
		t.Fatalf("transcodeStringLiteral returned error: %v", err)
	}
	if got != text {
		t.Errorf("round-tripping ASCII text through UTF-16 should be lossless, got %q", got)
	}
}

func TestTranscodeStringLiteralNarrowIsNoOp(t *testing.T) {
	text := "unchanged"
	got, err := transcodeStringLiteral(text, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != text {
		t.Errorf("narrowing transcode should be a no-op, got %q", got)
	}
}
