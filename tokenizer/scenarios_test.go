package tokenizer

import (
	"reflect"
	"testing"

	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/token"
)

// one tokenizes src to exactly one token under the given edition, or
// fails the test.
func one(t *testing.T, src string, ed rustlex.Edition) token.Token {
	t.Helper()
	toks, err := Tokenize([]byte(src), rustlex.Options{Edition: ed})
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", src, err)
	}
	if len(toks) != 1 {
		t.Fatalf("Tokenize(%q): got %d tokens %+v, want 1", src, len(toks), toks)
	}
	return toks[0]
}

func TestScenarioHexBeforeDecimalSuffix(t *testing.T) {
	tok := one(t, "0x3", rustlex.Edition2015)
	if tok.Kind != token.IntegerLiteral || tok.IntBase != token.Hex || string(tok.Digits) != "3" || len(tok.Suffix) != 0 {
		t.Fatalf("got %+v", tok)
	}
}

func TestScenarioBinaryWithDecimalTail(t *testing.T) {
	_, err := Tokenize([]byte("0b1e2"), rustlex.Options{Edition: rustlex.Edition2015})
	if err == nil {
		t.Fatal("expected rejection for 0b1e2")
	}
}

func TestScenarioRawStringHashAndSuffix(t *testing.T) {
	tok := one(t, `r#"ab"c"#xyz`, rustlex.Edition2015)
	if tok.Kind != token.RawStringLiteral || string(tok.RepresentedString) != `ab"c` || string(tok.Suffix) != "xyz" {
		t.Fatalf("got %+v", tok)
	}
}

func TestScenarioCharacterUnicodeEscape(t *testing.T) {
	tok := one(t, `'\u{211D}'`, rustlex.Edition2015)
	if tok.Kind != token.CharacterLiteral || tok.RepresentedCharacter != 0x211D {
		t.Fatalf("got %+v", tok)
	}
}

func TestScenarioByteStringHexEscape(t *testing.T) {
	tok := one(t, `b"\x80"`, rustlex.Edition2015)
	if tok.Kind != token.ByteStringLiteral || len(tok.RepresentedBytes) != 1 || tok.RepresentedBytes[0] != 0x80 {
		t.Fatalf("got %+v", tok)
	}
}

func TestScenarioCStringRejectsNUL(t *testing.T) {
	_, err := Tokenize([]byte(`c"a\0b"`), rustlex.Options{Edition: rustlex.Edition2021})
	if err == nil {
		t.Fatal("expected rejection for embedded NUL in C string")
	}
}

// TestCStringGatedByEdition checks that the c/cr prefixes only introduce
// C-string/raw-C-string literals from 2021 onward; in 2015 the leading
// letters are just an identifier (maximal munch swallows the "r" too),
// leaving an ordinary double-quoted string literal behind.
func TestCStringGatedByEdition(t *testing.T) {
	toks, err := Tokenize([]byte(`c"x"`), rustlex.Options{Edition: rustlex.Edition2015})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != token.Identifier || string(toks[0].RepresentedIdent) != "c" ||
		toks[1].Kind != token.StringLiteral || string(toks[1].RepresentedString) != "x" {
		t.Fatalf("got %+v", toks)
	}

	toks, err = Tokenize([]byte(`cr"x"`), rustlex.Options{Edition: rustlex.Edition2015})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != token.Identifier || string(toks[0].RepresentedIdent) != "cr" ||
		toks[1].Kind != token.StringLiteral || string(toks[1].RepresentedString) != "x" {
		t.Fatalf("got %+v", toks)
	}

	tok := one(t, `c"x"`, rustlex.Edition2021)
	if tok.Kind != token.CStringLiteral {
		t.Fatalf("got %+v, want CStringLiteral under 2021", tok)
	}
}

func TestScenarioNestedBlockCommentOneToken(t *testing.T) {
	tok := one(t, "/* /* */ */", rustlex.Edition2015)
	if tok.Kind != token.BlockComment || tok.Style != token.NonDoc || len(tok.Body) != 0 {
		t.Fatalf("got %+v", tok)
	}
}

func TestScenarioUnbalancedNestedBlockCommentRejected(t *testing.T) {
	_, err := Tokenize([]byte("/* xyz /*/"), rustlex.Options{Edition: rustlex.Edition2015})
	if err == nil {
		t.Fatal("expected rejection for unbalanced nested block comment")
	}
}

func TestScenarioLifetimeName(t *testing.T) {
	tok := one(t, "'Kelvin", rustlex.Edition2015)
	if tok.Kind != token.LifetimeOrLabel || string(tok.Name) != "Kelvin" {
		t.Fatalf("got %+v", tok)
	}
}

// TestScenarioLifetimeCompatibilityFormNotNormalised checks that a
// lifetime name built from a Kelvin-sign-style compatibility character
// (one that NFC would fold to a different codepoint) is preserved
// byte-for-byte, per universal 6.
func TestScenarioLifetimeCompatibilityFormNotNormalised(t *testing.T) {
	src := "'" + string(rune(0x212A)) // U+212A KELVIN SIGN, NFC-folds to 'K' (U+004B)
	tok := one(t, src, rustlex.Edition2015)
	if tok.Kind != token.LifetimeOrLabel {
		t.Fatalf("got %+v", tok)
	}
	if string(tok.Name) != string(rune(0x212A)) {
		t.Fatalf("lifetime name was normalised: got %q, want U+212A preserved", string(tok.Name))
	}
}

// TestExtentRoundTrip checks universal property 1: concatenating every
// token's source extent reproduces the cleaned input exactly.
func TestExtentRoundTrip(t *testing.T) {
	corpus := []string{
		"fn main() { let x = 1 + 2; }",
		"// line\nfn f() {}",
		"/// doc\nfn g() {}",
		`let s = "a\nb";`,
		`r#"raw "quoted" text"#`,
		"'label: loop { break 'label; }",
		"0x1F + 0b101 - 0o17",
		"1.5e-10f64",
		"struct S<'a> { f: &'a i32 }",
	}
	for _, src := range corpus {
		toks, err := Tokenize([]byte(src), rustlex.Options{Edition: rustlex.Edition2021})
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		var rebuilt []byte
		for _, tk := range toks {
			rebuilt = append(rebuilt, src[tk.Start:tk.End]...)
		}
		if string(rebuilt) != src {
			t.Fatalf("round-trip mismatch: got %q, want %q", rebuilt, src)
		}
	}
}

// TestDeterminism checks universal property 2: repeated calls with the
// same input and options produce identical results.
func TestDeterminism(t *testing.T) {
	src := []byte("fn f(x: i32) -> i32 { x * 2 }")
	opts := rustlex.Options{Edition: rustlex.Edition2021}
	a, errA := Tokenize(src, opts)
	b, errB := Tokenize(src, opts)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if len(a) != len(b) {
		t.Fatalf("nondeterministic token count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("nondeterministic token %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestProgressNoEmptyTokenLoop checks universal property 3 indirectly:
// tokenizing never hangs on a short input of identifiers separated by
// spaces, and every token has nonzero length.
func TestProgressNoEmptyTokenLoop(t *testing.T) {
	toks, err := Tokenize([]byte("a a a"), rustlex.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tk := range toks {
		if tk.Len() == 0 {
			t.Fatalf("token %d has zero length: %+v", i, tk)
		}
	}
}
