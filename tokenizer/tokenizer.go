// Package tokenizer is the driver loop: it composes cleanup, the
// compiled grammar, and the reprocessor into the two modes described for
// the tokeniser driver — the normal full-stream loop and a
// first-non-whitespace-token lookahead — and is the library's public
// entry point.
package tokenizer

import (
	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/charstream"
	"github.com/rustlex/rustlex/cleanup"
	"github.com/rustlex/rustlex/doccomment"
	"github.com/rustlex/rustlex/grammar"
	"github.com/rustlex/rustlex/peg"
	"github.com/rustlex/rustlex/reprocess"
	"github.com/rustlex/rustlex/token"
)

// Tokenize runs the full pipeline on input: cleanup, then the normal
// driver loop to either a complete token stream or the earliest
// rejection. The strict termination property (each successful iteration
// consumes at least one character) holds because none of the grammar's
// token-kind nonterminals can match zero characters.
func Tokenize(input []byte, opts rustlex.Options) ([]token.Token, error) {
	buf, err := cleanup.Run(input, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeBuffer(buf, opts)
}

func tokenizeBuffer(buf *charstream.Buffer, opts rustlex.Options) ([]token.Token, error) {
	gr := grammar.Grammar()
	order := grammar.TokenKindOrder(opts.Edition)
	chars := buf.Chars()

	var toks []token.Token
	pos := 0
	for pos < len(chars) {
		kindName, n, ok := matchOne(gr, order, chars[pos:])
		if !ok {
			return nil, &rustlex.RejectionReason{
				Tag:    rustlex.LexFail,
				Offset: buf.ByteOffset(pos),
			}
		}
		text := chars[pos : pos+n]
		tok, rej := reprocess.Reprocess(kindName, text)
		if rej != nil {
			rej.Offset = buf.ByteOffset(pos)
			return nil, rej
		}
		tok.Start = buf.ByteOffset(pos)
		tok.End = buf.ByteOffset(pos + n)
		toks = append(toks, tok)
		pos += n
	}

	if opts.LowerDocComments {
		toks = doccomment.Lower(toks)
	}
	return toks, nil
}

func matchOne(gr *peg.Grammar, order []string, chars []rune) (kindName string, consumed int, ok bool) {
	for _, name := range order {
		r := gr.Eval(name, chars)
		if r.OK {
			return name, r.Consumed, true
		}
	}
	return "", 0, false
}

// TokenizeSingle succeeds only when the entire (already-cleaned-up, per
// opts) input is consumed by exactly one token-kind match; it does not
// run the cleanup pipeline, mirroring a lex-as-single-token entry point
// used to probe one grammar alternative in isolation.
func TokenizeSingle(input []byte, opts rustlex.Options) (token.Token, bool) {
	buf, err := charstream.Decode(input)
	if err != nil {
		return token.Token{}, false
	}
	chars := buf.Chars()
	gr := grammar.Grammar()
	order := grammar.TokenKindOrder(opts.Edition)
	kindName, n, ok := matchOne(gr, order, chars)
	if !ok || n != len(chars) {
		return token.Token{}, false
	}
	tok, rej := reprocess.Reprocess(kindName, chars)
	if rej != nil {
		return token.Token{}, false
	}
	tok.Start = 0
	tok.End = buf.ByteLen()
	return tok, true
}

// FirstNonWhitespace runs the driver's first-non-whitespace-token mode:
// it skips Whitespace and non-doc comments and returns the first other
// token, or ok=false if none is found (rejection or empty input). Unlike
// Tokenize it does not run cleanup first; the caller is expected to have
// already decoded/cleaned the input, or to be probing raw cleaned text
// directly (this is what cleanup's own shebang-lookahead logic does
// internally, duplicated in miniature there to avoid an import cycle).
func FirstNonWhitespace(chars []rune, ed rustlex.Edition) (token.Token, bool) {
	gr := grammar.Grammar()
	order := grammar.TokenKindOrder(ed)
	pos := 0
	for pos < len(chars) {
		kindName, n, ok := matchOne(gr, order, chars[pos:])
		if !ok || n == 0 {
			return token.Token{}, false
		}
		text := chars[pos : pos+n]
		tok, rej := reprocess.Reprocess(kindName, text)
		if rej != nil {
			return token.Token{}, false
		}
		switch tok.Kind {
		case token.Whitespace:
			pos += n
			continue
		case token.LineComment, token.BlockComment:
			if tok.Style == token.NonDoc {
				pos += n
				continue
			}
		}
		buf := charstream.FromRunes(chars)
		tok.Start = buf.ByteOffset(pos)
		tok.End = buf.ByteOffset(pos + n)
		return tok, true
	}
	return token.Token{}, false
}

// Describe expands err into short diagnostic lines; see rustlex.Describe.
func Describe(err error) []string { return rustlex.Describe(err) }
