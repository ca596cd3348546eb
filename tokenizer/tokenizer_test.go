package tokenizer

import (
	"testing"

	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/token"
)

func TestTokenizeSimpleFunction(t *testing.T) {
	toks, err := Tokenize([]byte("fn main() {}"), rustlex.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	want := []token.Kind{
		token.Identifier, token.Whitespace, token.Identifier, token.Punctuation,
		token.Punctuation, token.Whitespace, token.Punctuation, token.Punctuation,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestTokenizeRejectsUnterminatedBlockComment(t *testing.T) {
	_, err := Tokenize([]byte("/* xyz /*/"), rustlex.Options{})
	if err == nil {
		t.Fatal("expected rejection")
	}
	reason, ok := err.(*rustlex.RejectionReason)
	if !ok || reason.Tag != rustlex.LexFail {
		t.Fatalf("got %v, want LexFail", err)
	}
}

func TestTokenizeRejectsBadUTF8(t *testing.T) {
	_, err := Tokenize([]byte{'a', 0xff}, rustlex.Options{})
	reason, ok := err.(*rustlex.RejectionReason)
	if !ok || reason.Tag != rustlex.BadUTF8 {
		t.Fatalf("got %v, want BadUTF8", err)
	}
}

func TestTokenizeWithShebangAndDocLowering(t *testing.T) {
	src := "#!/usr/bin/env rustc\n/// docs\nfn f() {}"
	toks, err := Tokenize([]byte(src), rustlex.Options{
		Cleaning:         rustlex.CleaningShebang,
		LowerDocComments: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.Punctuation || toks[0].Mark != '#' {
		t.Fatalf("expected doc-comment lowering to begin with '#', got %+v", toks[0])
	}
}

func TestTokenizeSingle(t *testing.T) {
	tok, ok := TokenizeSingle([]byte("abc"), rustlex.Options{})
	if !ok || tok.Kind != token.Identifier {
		t.Fatalf("got ok=%v tok=%+v", ok, tok)
	}
	_, ok = TokenizeSingle([]byte("abc def"), rustlex.Options{})
	if ok {
		t.Fatal("expected failure: input is more than one token")
	}
}

func TestFirstNonWhitespaceSkipsNonDocComments(t *testing.T) {
	tok, ok := FirstNonWhitespace([]rune("  // hi\nfn"), rustlex.Edition2015)
	if !ok || tok.Kind != token.Identifier {
		t.Fatalf("got ok=%v tok=%+v", ok, tok)
	}
}
