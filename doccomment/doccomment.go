// Package doccomment implements the optional doc-comment lowering
// post-pass: every inner-doc or outer-doc LineComment/BlockComment in a
// token stream is replaced, in place, by the fixed token sequence an
// attribute macro would expand it to. This pass cannot fail; unrelated
// tokens (including non-doc comments) pass through unchanged.
package doccomment

import "github.com/rustlex/rustlex/token"

// Lower returns a new token slice with every doc-comment token expanded
// into its attribute-token-sequence form. The input slice is not
// modified.
func Lower(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !isDocComment(t) {
			out = append(out, t)
			continue
		}
		out = append(out, expand(t)...)
	}
	return out
}

func isDocComment(t token.Token) bool {
	switch t.Kind {
	case token.LineComment, token.BlockComment:
		return t.Style == token.OuterDoc || t.Style == token.InnerDoc
	default:
		return false
	}
}

// expand produces: '#', ' ', ['!' for inner-doc], '[', doc, '=', ' ',
// RawStringLiteral(body), ']'. The whitespace tokens stand for a single
// space purely to preserve spacing for downstream consumers; they are
// not semantically observable. Every token of the expansion has a zero
// Start/End extent.
func expand(t token.Token) []token.Token {
	seq := make([]token.Token, 0, 8)
	seq = append(seq, punct('#'), space())
	if t.Style == token.InnerDoc {
		seq = append(seq, punct('!'))
	}
	seq = append(seq,
		punct('['),
		token.Token{Kind: token.Identifier, RepresentedIdent: []rune("doc")},
		punct('='),
		space(),
		token.Token{Kind: token.RawStringLiteral, RepresentedString: t.Body, Suffix: nil},
		punct(']'),
	)
	return seq
}

func punct(r rune) token.Token { return token.Token{Kind: token.Punctuation, Mark: r} }

func space() token.Token { return token.Token{Kind: token.Whitespace} }
