package reprocess

import (
	"testing"

	"github.com/rustlex/rustlex/grammar"
	"github.com/rustlex/rustlex/token"
)

func reprocessOK(t *testing.T, kind, text string) token.Token {
	tok, rej := Reprocess(kind, []rune(text))
	if rej != nil {
		t.Fatalf("Reprocess(%q, %q): unexpected rejection: %v", kind, text, rej)
	}
	return tok
}

func TestLineCommentDocStyles(t *testing.T) {
	tok := reprocessOK(t, grammar.LineComment, "///hi")
	if tok.Style != token.OuterDoc || string(tok.Body) != "hi" {
		t.Fatalf("got style=%v body=%q", tok.Style, string(tok.Body))
	}
	tok = reprocessOK(t, grammar.LineComment, "//!hi")
	if tok.Style != token.InnerDoc || string(tok.Body) != "hi" {
		t.Fatalf("got style=%v body=%q", tok.Style, string(tok.Body))
	}
	tok = reprocessOK(t, grammar.LineComment, "// hi")
	if tok.Style != token.NonDoc {
		t.Fatalf("got style=%v, want NonDoc", tok.Style)
	}
	tok = reprocessOK(t, grammar.LineComment, "////section")
	if tok.Style != token.NonDoc {
		t.Fatalf("got style=%v, want NonDoc for ////section", tok.Style)
	}
}

func TestBlockCommentNotDocWhenDoubleStar(t *testing.T) {
	tok := reprocessOK(t, grammar.BlockComment, "/**/")
	if tok.Style != token.NonDoc {
		t.Fatalf("got style=%v, want NonDoc for /**/", tok.Style)
	}
	tok = reprocessOK(t, grammar.BlockComment, "/***/")
	if tok.Style != token.NonDoc {
		t.Fatalf("got style=%v, want NonDoc for /***/", tok.Style)
	}
}

func TestCharacterLiteralEscapes(t *testing.T) {
	tok := reprocessOK(t, grammar.SingleQuotedLiteral, `'\n'`)
	if tok.Kind != token.CharacterLiteral || tok.RepresentedCharacter != '\n' {
		t.Fatalf("got %+v", tok)
	}
	tok = reprocessOK(t, grammar.SingleQuotedLiteral, `'\u{1F600}'`)
	if tok.RepresentedCharacter != 0x1F600 {
		t.Fatalf("got %U, want U+1F600", tok.RepresentedCharacter)
	}
}

func TestByteLiteralRejectsUnicodeEscape(t *testing.T) {
	_, rej := Reprocess(grammar.SingleQuotedLiteral, []rune(`b'\u{41}'`))
	if rej == nil {
		t.Fatal("expected rejection for byte literal with Unicode escape")
	}
}

func TestStringLiteralEscapeDecoding(t *testing.T) {
	tok := reprocessOK(t, grammar.DoubleQuotedLiteral, `"a\nb"`)
	if string(tok.RepresentedString) != "a\nb" {
		t.Fatalf("got %q", string(tok.RepresentedString))
	}
}

func TestRawStringHashStripping(t *testing.T) {
	tok := reprocessOK(t, grammar.RawDoubleQuotedLiteral, `r##"a"b"##`)
	if string(tok.RepresentedString) != `a"b` {
		t.Fatalf("got %q, want %q", string(tok.RepresentedString), `a"b`)
	}
}

func TestIntegerLiteralBaseAndDigits(t *testing.T) {
	tok := reprocessOK(t, grammar.IntegerLiteral, "0xFFu8")
	if tok.IntBase != token.Hex || string(tok.Digits) != "FF" || string(tok.Suffix) != "u8" {
		t.Fatalf("got %+v", tok)
	}
	_, rej := Reprocess(grammar.IntegerLiteral, []rune("0b012"))
	if rej == nil {
		t.Fatal("expected rejection for invalid binary digit")
	}
}

func TestRawIdentifierRejectsReservedNames(t *testing.T) {
	_, rej := Reprocess(grammar.RawIdentifier, []rune("r#self"))
	if rej == nil {
		t.Fatal("expected rejection for r#self")
	}
	tok := reprocessOK(t, grammar.RawIdentifier, "r#fn")
	if string(tok.RepresentedIdent) != "fn" {
		t.Fatalf("got %q", string(tok.RepresentedIdent))
	}
}

func TestLifetimeNotNFCNormalised(t *testing.T) {
	// The NFC-decomposed and NFC-composed forms of "Å" must be preserved
	// distinctly for a lifetime name, unlike an Identifier.
	decomposed := "Å" // A + combining ring above
	tok := reprocessOK(t, grammar.LifetimeOrLabel, "'"+decomposed)
	if string(tok.Name) != decomposed {
		t.Fatalf("lifetime name was normalised: got %q", string(tok.Name))
	}
}

func TestPunctuationMark(t *testing.T) {
	tok := reprocessOK(t, grammar.Punctuation, ";")
	if tok.Mark != ';' {
		t.Fatalf("got mark=%q", tok.Mark)
	}
}
