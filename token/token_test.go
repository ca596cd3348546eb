package token

import "testing"

func TestKindString(t *testing.T) {
	if Identifier.String() != "Identifier" {
		t.Fatalf("got %q", Identifier.String())
	}
	if got := Kind(999).String(); got != "Kind(999)" {
		t.Fatalf("got %q", got)
	}
}

func TestTokenLen(t *testing.T) {
	tok := Token{Start: 3, End: 10}
	if tok.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", tok.Len())
	}
}
