// Package grammar holds the static, edition-parameterised grammar data:
// the shared sub-nonterminals (identifier, suffix, escape sub-grammar,
// hash-balanced raw-string bodies) and, per edition, the prioritised
// list of token-kind nonterminals the tokenizer driver tries in order.
//
// Everything here is data built once at package init and shared,
// read-only, by every Tokenize call — mirroring how ava12-llx/grammar
// describes a compiled automaton as plain structs rather than code, just
// built from *peg.Expr values instead of regex terms and state tables.
package grammar

import (
	"sync"

	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/peg"
)

// Names of the shared and per-kind nonterminals, exported so the
// reprocessor can tell, from the Result it receives, which alternative
// of a Choice-shaped nonterminal actually matched by re-deriving it from
// the consumed text — the grammar only needs to delimit spans correctly.
const (
	Whitespace             = "Whitespace"
	LineComment            = "LineComment"
	BlockComment           = "BlockComment"
	UnterminatedBlockComment = "UnterminatedBlockComment"
	SingleQuotedLiteral    = "SingleQuotedLiteral"
	// DoubleQuotedLiteral and RawDoubleQuotedLiteral additionally accept
	// the c/cr prefix (C-string literals); they are used from 2021
	// onward. The 2015/2018 forms, which have no C-string prefix, are
	// the ...2015 variants below.
	DoubleQuotedLiteral        = "DoubleQuotedLiteral"
	RawDoubleQuotedLiteral     = "RawDoubleQuotedLiteral"
	DoubleQuotedLiteral2015    = "DoubleQuotedLiteral2015"
	RawDoubleQuotedLiteral2015 = "RawDoubleQuotedLiteral2015"
	UnterminatedLiteral        = "UnterminatedLiteral"
	UnterminatedLiteral2015    = "UnterminatedLiteral2015"
	FloatLiteral           = "FloatLiteral"
	ReservedFloat          = "ReservedFloat"
	IntegerLiteral         = "IntegerLiteral"
	LifetimeOrLabel        = "LifetimeOrLabel"
	RawLifetimeOrLabel     = "RawLifetimeOrLabel"
	RawIdentifier          = "RawIdentifier"
	ReservedPrefix         = "ReservedPrefix"
	ReservedGuard2024      = "ReservedGuard2024"
	Identifier             = "Identifier"
	Punctuation            = "Punctuation"

	Frontmatter     = "Frontmatter"
	ReservedFence   = "ReservedFence"
)

// Punct lists the punctuation characters recognised by the Punctuation
// token kind, in the order spec'd.
const Punct = ";,.(){}[]@#~?:$=!<>-&|+*/^%"

var (
	buildOnce sync.Once
	g         *peg.Grammar

	edition2015Order []string
	edition2021Order []string
	edition2024Order []string
)

// Grammar returns the shared, immutable compiled grammar. Safe to call
// concurrently; the underlying build runs exactly once.
func Grammar() *peg.Grammar {
	buildOnce.Do(build)
	return g
}

// TokenKindOrder returns the prioritised list of token-kind nonterminal
// names for the given edition, highest priority first.
func TokenKindOrder(ed rustlex.Edition) []string {
	Grammar() // ensure built
	switch ed {
	case rustlex.Edition2021:
		return edition2021Order
	case rustlex.Edition2024:
		return edition2024Order
	default:
		return edition2015Order
	}
}

func build() {
	gr := peg.NewGrammar()
	defineShared(gr)
	defineComments(gr)
	defineIdentLifetime(gr)
	defineNumeric(gr)
	defineQuoted(gr)
	definePunctuation(gr)
	defineFrontmatter(gr)
	g = gr

	edition2015Order = []string{
		Whitespace, LineComment, BlockComment, UnterminatedBlockComment,
		SingleQuotedLiteral, DoubleQuotedLiteral2015, RawDoubleQuotedLiteral2015,
		UnterminatedLiteral2015, FloatLiteral, ReservedFloat, IntegerLiteral,
		LifetimeOrLabel, RawIdentifier, Identifier, Punctuation,
	}
	edition2021Order = []string{
		Whitespace, LineComment, BlockComment, UnterminatedBlockComment,
		SingleQuotedLiteral, DoubleQuotedLiteral, RawDoubleQuotedLiteral,
		UnterminatedLiteral, FloatLiteral, ReservedFloat, IntegerLiteral,
		RawLifetimeOrLabel, LifetimeOrLabel, RawIdentifier, ReservedPrefix,
		Identifier, Punctuation,
	}
	edition2024Order = []string{
		Whitespace, LineComment, BlockComment, UnterminatedBlockComment,
		SingleQuotedLiteral, DoubleQuotedLiteral, RawDoubleQuotedLiteral,
		UnterminatedLiteral, ReservedGuard2024, FloatLiteral, ReservedFloat,
		IntegerLiteral, RawLifetimeOrLabel, LifetimeOrLabel, RawIdentifier,
		ReservedPrefix, Identifier, Punctuation,
	}
}

// --- shared sub-nonterminals -------------------------------------------------

const (
	identStart  = "IdentStart"
	identCont   = "IdentContinueStar"
	ident       = "Ident"
	suffix      = "Suffix"
	suffixNoE   = "SuffixNoE"
	hexDigit    = "HexDigit"
)

func defineShared(gr *peg.Grammar) {
	gr.Define(identStart, peg.Choice(peg.Class(peg.ClassXidStart), peg.Lit("_")))
	gr.Define(identCont, peg.Star(peg.Class(peg.ClassXidContinue)))
	gr.Define(ident, peg.Seq(peg.Ref(identStart), peg.Ref(identCont)))
	gr.Define(suffix, peg.Ref(ident))
	gr.Define(suffixNoE, peg.Seq(peg.Not(peg.Choice(peg.Lit("e"), peg.Lit("E"))), peg.Ref(suffix)))
	gr.Define(hexDigit, peg.Choice(peg.RuneRange('0', '9'), peg.RuneRange('a', 'f'), peg.RuneRange('A', 'F')))
}

// --- comments -----------------------------------------------------------------

const blockCommentBody = "BlockCommentBody"

func defineComments(gr *peg.Grammar) {
	gr.Define(Whitespace, peg.Plus(peg.Class(peg.ClassPatternWhiteSpace)))
	gr.Define(LineComment, peg.Seq(peg.Lit("//"), peg.Star(peg.Seq(peg.Not(peg.Class(peg.ClassLF)), peg.Class(peg.ClassAny)))))

	gr.Define(blockCommentBody, peg.Star(peg.Choice(
		peg.Ref(BlockComment),
		peg.Seq(peg.Not(peg.Lit("*/")), peg.Not(peg.Lit("/*")), peg.Class(peg.ClassAny)),
	)))
	gr.Define(BlockComment, peg.Seq(peg.Lit("/*"), peg.Ref(blockCommentBody), peg.Lit("*/")))
	gr.Define(UnterminatedBlockComment, peg.Seq(peg.Lit("/*"), peg.Ref(blockCommentBody)))
}

// --- identifiers and lifetimes ------------------------------------------------

func defineIdentLifetime(gr *peg.Grammar) {
	gr.Define(Identifier, peg.Ref(ident))
	gr.Define(RawIdentifier, peg.Seq(peg.Lit("r#"), peg.Ref(ident)))
	gr.Define(LifetimeOrLabel, peg.Seq(peg.Lit("'"), peg.Ref(ident), peg.Not(peg.Lit("'"))))
	gr.Define(RawLifetimeOrLabel, peg.Seq(peg.Lit("'r#"), peg.Ref(ident), peg.Not(peg.Lit("'"))))
	// IDENT followed by one of #, ", ' is reserved from 2021 onward (it
	// would otherwise be ambiguous with a prefixed literal or raw ident).
	gr.Define(ReservedPrefix, peg.Seq(peg.Ref(ident), peg.Choice(peg.Lit("#"), peg.Lit("\""), peg.Lit("'"))))
}

// --- numeric literals -----------------------------------------------------------

const (
	digitsRunLiberal = "DigitsRunLiberal" // any alnum/underscore run; base validity checked during reprocessing
	decDigits        = "DecDigits"
	floatExp         = "FloatExp"
)

func defineNumeric(gr *peg.Grammar) {
	// Liberal across bin/oct/hex digits (0-9, a-f, A-F) plus the
	// underscore separator; a binary or octal literal whose digits use
	// a character outside its own digit set is rejected during
	// reprocessing rather than here (spec explicitly allows either).
	// Restricting to the hex superset, rather than all alnum, keeps a
	// following suffix like "u8" from being swallowed into the digit
	// run: "u" is not a hex digit, so the run stops before it.
	gr.Define(digitsRunLiberal, peg.Plus(peg.Choice(
		peg.RuneRange('0', '9'), peg.RuneRange('a', 'f'), peg.RuneRange('A', 'F'), peg.Lit("_"),
	)))
	gr.Define(decDigits, peg.Plus(peg.Choice(peg.RuneRange('0', '9'), peg.Lit("_"))))
	gr.Define(floatExp, peg.Seq(peg.Choice(peg.Lit("e"), peg.Lit("E")), peg.Opt(peg.Choice(peg.Lit("+"), peg.Lit("-"))), peg.Ref(decDigits)))

	gr.Define(IntegerLiteral, peg.Choice(
		peg.Seq(peg.Lit("0b"), peg.Ref(digitsRunLiberal), peg.Opt(peg.Ref(suffix))),
		peg.Seq(peg.Lit("0o"), peg.Ref(digitsRunLiberal), peg.Opt(peg.Ref(suffix))),
		peg.Seq(peg.Lit("0x"), peg.Ref(digitsRunLiberal), peg.Opt(peg.Ref(suffix))),
		peg.Seq(peg.Ref(decDigits), peg.Opt(peg.Ref(suffixNoE))),
	))

	// Full fractional form (1.2, 1.2e3) and exponent-only form (1e2) are
	// tried ahead of the trailing-dot form (1.) so the richer match wins.
	gr.Define(FloatLiteral, peg.Choice(
		peg.Seq(peg.Ref(decDigits), peg.Lit("."), peg.Ref(decDigits), peg.Opt(peg.Ref(floatExp)), peg.Opt(peg.Ref(suffix))),
		peg.Seq(peg.Ref(decDigits), peg.Ref(floatExp), peg.Opt(peg.Ref(suffix))),
		peg.Seq(peg.Ref(decDigits), peg.Lit("."), peg.Not(peg.Lit(".")), peg.Not(peg.Ref(identStart))),
	))

	// A float body whose exponent has no digits (1e, 1e+) is reserved:
	// it must not silently fall through to Integer+suffix.
	gr.Define(ReservedFloat, peg.Seq(peg.Ref(decDigits), peg.Choice(peg.Lit("e"), peg.Lit("E")), peg.Opt(peg.Choice(peg.Lit("+"), peg.Lit("-"))), peg.Not(peg.Ref(decDigits))))
}

// --- quoted literals --------------------------------------------------------

const (
	nonEscape          = "NonEscape"
	simpleEscape       = "SimpleEscape"
	hexEscape          = "HexEscape"
	unicodeEscape      = "UnicodeEscape"
	stringContinuation = "StringContinuation"
	singleEscape       = "SingleEscape" // one component, excludes string-continuation
	literalComponent   = "LiteralComponent"
	hashesUpTo255      = "Hashes"
)

func defineQuoted(gr *peg.Grammar) {
	gr.Define(nonEscape, peg.Seq(peg.Not(peg.Class(peg.ClassBackslash)), peg.Class(peg.ClassAny)))
	gr.Define(simpleEscape, peg.Seq(peg.Class(peg.ClassBackslash), peg.Class(peg.ClassAny)))
	gr.Define(hexEscape, peg.Seq(peg.Lit("\\x"), peg.Ref(hexDigit), peg.Ref(hexDigit)))
	gr.Define(unicodeEscape, peg.Seq(peg.Lit("\\u{"), peg.Ref(hexDigit), peg.Bounded(peg.Choice(peg.Ref(hexDigit), peg.Lit("_")), 5), peg.Lit("}")))
	gr.Define(stringContinuation, peg.Seq(peg.Class(peg.ClassBackslash), peg.Class(peg.ClassLF),
		peg.Star(peg.Choice(peg.Class(peg.ClassTab), peg.Class(peg.ClassLF), peg.Lit("\r"), peg.Lit(" ")))))

	gr.Define(singleEscape, peg.Choice(peg.Ref(unicodeEscape), peg.Ref(hexEscape), peg.Ref(simpleEscape), peg.Ref(nonEscape)))
	gr.Define(literalComponent, peg.Choice(peg.Ref(stringContinuation), peg.Ref(unicodeEscape), peg.Ref(hexEscape), peg.Ref(simpleEscape), peg.Ref(nonEscape)))

	gr.Define(hashesUpTo255, peg.Bounded(peg.Lit("#"), 255))

	// Single_quoted_literal: optional "b" prefix, one literal component
	// between quotes (char or byte, disambiguated during reprocessing).
	gr.Define(SingleQuotedLiteral, peg.Seq(
		peg.Opt(peg.Lit("b")), peg.Lit("'"), peg.Ref(singleEscape), peg.Lit("'"), peg.Opt(peg.Ref(suffix)),
	))

	// Double_quoted_literal: prefix in {"", b, c} from 2021 onward; 2015
	// and 2018 have no c-string form, so their prefix is only {"", b}.
	// Content is a run of literal components up to the closing quote.
	dqContent := peg.Star(peg.Seq(peg.Not(peg.Class(peg.ClassDoublequote)), peg.Ref(literalComponent)))
	gr.Define(DoubleQuotedLiteral, peg.Seq(
		peg.Opt(peg.Choice(peg.Lit("b"), peg.Lit("c"))), peg.Class(peg.ClassDoublequote),
		dqContent, peg.Class(peg.ClassDoublequote), peg.Opt(peg.Ref(suffix)),
	))
	gr.Define(DoubleQuotedLiteral2015, peg.Seq(
		peg.Opt(peg.Lit("b")), peg.Class(peg.ClassDoublequote),
		dqContent, peg.Class(peg.ClassDoublequote), peg.Opt(peg.Ref(suffix)),
	))

	// Raw_double_quoted_literal: prefix in {r, br, cr} from 2021 onward;
	// 2015/2018 have no cr form. Mark/Check on the hash count balances
	// `r##"..."##`-style forms.
	rawContent := peg.Star(peg.Seq(peg.Not(peg.Seq(peg.Class(peg.ClassDoublequote), peg.Check(hashesUpTo255, peg.Ref(hashesUpTo255)))), peg.Class(peg.ClassAny)))
	gr.Define(RawDoubleQuotedLiteral, peg.Seq(
		peg.Choice(peg.Lit("br"), peg.Lit("cr"), peg.Lit("r")),
		peg.Mark(hashesUpTo255, peg.Ref(hashesUpTo255)),
		peg.Class(peg.ClassDoublequote),
		rawContent,
		peg.Class(peg.ClassDoublequote),
		peg.Check(hashesUpTo255, peg.Ref(hashesUpTo255)),
		peg.Opt(peg.Ref(suffix)),
	))
	gr.Define(RawDoubleQuotedLiteral2015, peg.Seq(
		peg.Choice(peg.Lit("br"), peg.Lit("r")),
		peg.Mark(hashesUpTo255, peg.Ref(hashesUpTo255)),
		peg.Class(peg.ClassDoublequote),
		rawContent,
		peg.Class(peg.ClassDoublequote),
		peg.Check(hashesUpTo255, peg.Ref(hashesUpTo255)),
		peg.Opt(peg.Ref(suffix)),
	))

	// Unterminated_literal: an opener with no matching closer anywhere in
	// the remaining input; always rejected by R. This must match only the
	// opener itself (never a greedy run of literal components), or it
	// would also swallow a bare 'label/'a lifetime opener, which sits
	// right behind it in the edition order and would then never get a
	// chance to match. The single-quote form is therefore restricted to
	// the byte-literal opener b'; an un-prefixed bare quote is left for
	// Lifetime_or_label/Single_quoted_literal to claim or reject on their
	// own terms. The 2015 variant excludes the c/cr prefixes for the
	// double-quoted and raw forms for the same reason as above.
	// The "#"-ending alternatives must not shadow a valid raw identifier
	// (r# followed by an identifier, grammar.go:160): only treat a bare
	// "r#" as an unterminated-literal opener when it is NOT the start of
	// r#ident.
	rawHashOpener := peg.Seq(peg.Lit("r#"), peg.Not(peg.Ref(identStart)))
	rawOpener := peg.Choice(
		peg.Lit("br\""), peg.Lit("cr\""), peg.Lit("r\""), peg.Lit("br#"), peg.Lit("cr#"), rawHashOpener,
	)
	rawOpener2015 := peg.Choice(peg.Lit("br\""), peg.Lit("r\""), peg.Lit("br#"), rawHashOpener)
	gr.Define(UnterminatedLiteral, peg.Choice(
		peg.Seq(peg.Lit("b"), peg.Lit("'")),
		peg.Seq(peg.Opt(peg.Choice(peg.Lit("b"), peg.Lit("c"))), peg.Class(peg.ClassDoublequote), dqContent),
		rawOpener,
	))
	gr.Define(UnterminatedLiteral2015, peg.Choice(
		peg.Seq(peg.Lit("b"), peg.Lit("'")),
		peg.Seq(peg.Opt(peg.Lit("b")), peg.Class(peg.ClassDoublequote), dqContent),
		rawOpener2015,
	))

	gr.Define(ReservedGuard2024, peg.Choice(peg.Lit("##"), peg.Seq(peg.Lit("#"), peg.Class(peg.ClassDoublequote))))
}

// --- punctuation --------------------------------------------------------------

func definePunctuation(gr *peg.Grammar) {
	alts := make([]peg.Expr, 0, len(Punct))
	for _, r := range Punct {
		alts = append(alts, peg.Lit(string(r)))
	}
	gr.Define(Punctuation, peg.Choice(alts...))
}

// --- frontmatter fences ---------------------------------------------------------

const (
	fenceDashes = "FenceDashes"
	fenceLine   = "FenceOpenLine"
)

func defineFrontmatter(gr *peg.Grammar) {
	gr.Define(fenceDashes, peg.Seq(peg.Lit("---"), peg.Star(peg.Lit("-"))))
	// Opening line: optional leading whitespace, >=3 dashes, an optional
	// info string, then LF.
	infoString := peg.Star(peg.Seq(peg.Not(peg.Class(peg.ClassLF)), peg.Class(peg.ClassAny)))
	gr.Define(fenceLine, peg.Seq(
		peg.Star(peg.Class(peg.ClassPatternWhiteSpace)),
		peg.Mark("FENCE", peg.Ref(fenceDashes)),
		infoString,
		peg.Class(peg.ClassLF),
	))
	body := peg.Star(peg.Seq(
		peg.Not(peg.Seq(peg.Star(peg.Class(peg.ClassPatternWhiteSpace)), peg.Check("FENCE", peg.Ref(fenceDashes)), peg.Choice(peg.Class(peg.ClassLF), peg.Class(peg.ClassEndOfInput)))),
		peg.Class(peg.ClassAny),
	))
	closeLine := peg.Seq(
		peg.Star(peg.Class(peg.ClassPatternWhiteSpace)),
		peg.Check("FENCE", peg.Ref(fenceDashes)),
		peg.Choice(peg.Class(peg.ClassLF), peg.Class(peg.ClassEndOfInput)),
	)
	gr.Define(Frontmatter, peg.Seq(peg.Ref(fenceLine), body, closeLine))

	// A conservative pattern that looks like an attempted fence but did
	// not satisfy Frontmatter: optional leading whitespace, then >=3 dashes.
	gr.Define(ReservedFence, peg.Seq(peg.Star(peg.Class(peg.ClassPatternWhiteSpace)), peg.Ref(fenceDashes)))
}
