// Package cleanup runs the pre-tokenising pipeline: UTF-8 decode, BOM
// strip, CRLF normalisation, shebang removal, and (edition permitting)
// frontmatter removal. Each step either transforms the character
// sequence or rejects the whole input; failures here are fatal to
// tokenisation and are reported through the same *rustlex.RejectionReason
// the main token loop uses.
//
// Shebang removal needs to know the first non-whitespace token after a
// leading "#!" without running the full tokenizer package (which itself
// composes cleanup ahead of the main loop) — package tokenizer imports
// cleanup, so cleanup cannot import tokenizer without a cycle. It keeps
// its own small copy of the "first non-whitespace token" loop instead;
// tokenizer.FirstNonWhitespace exposes the same operation for external
// callers.
package cleanup

import (
	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/charstream"
	"github.com/rustlex/rustlex/grammar"
	"github.com/rustlex/rustlex/peg"
)

// Run decodes raw and applies BOM strip, CRLF normalisation, shebang
// removal, and (if opts.Cleaning is CleaningShebangAndFrontmatter)
// frontmatter removal, returning the resulting Buffer or a rejection.
func Run(raw []byte, opts rustlex.Options) (*charstream.Buffer, error) {
	buf, err := charstream.Decode(raw)
	if err != nil {
		de := err.(*charstream.DecodeError)
		return nil, &rustlex.RejectionReason{Tag: rustlex.BadUTF8, Offset: de.ByteOffset, Message: err.Error()}
	}

	chars := stripBOM(buf.Chars())
	chars = normaliseCRLF(chars)

	if opts.Cleaning == rustlex.CleaningNone {
		return charstream.FromRunes(chars), nil
	}

	chars, err = stripShebang(chars)
	if err != nil {
		return nil, err
	}

	if opts.Cleaning == rustlex.CleaningShebangAndFrontmatter {
		chars, err = stripFrontmatter(chars)
		if err != nil {
			return nil, err
		}
	}

	return charstream.FromRunes(chars), nil
}

func stripBOM(chars []rune) []rune {
	if len(chars) > 0 && chars[0] == '\uFEFF' {
		return chars[1:]
	}
	return chars
}

// normaliseCRLF replaces every maximal non-overlapping CR-LF pair with
// LF; a CR CR LF run yields CR LF (one pair consumed, the earlier CR
// left alone). Isolated CRs are preserved.
func normaliseCRLF(chars []rune) []rune {
	out := make([]rune, 0, len(chars))
	i := 0
	for i < len(chars) {
		if chars[i] == '\r' && i+1 < len(chars) && chars[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			continue
		}
		out = append(out, chars[i])
		i++
	}
	return out
}

// stripShebang removes a leading "#!" line, unless the first
// non-whitespace token following it is a Punctuation '[' — which marks
// an inner attribute, not a shebang.
func stripShebang(chars []rune) ([]rune, error) {
	if len(chars) < 2 || chars[0] != '#' || chars[1] != '!' {
		return chars, nil
	}
	rest := chars[2:]
	isBracket, found := firstNonWhitespaceIsBracket(rest)
	if found && isBracket {
		return chars, nil
	}
	for i, r := range chars {
		if r == '\n' {
			return chars[i+1:], nil
		}
	}
	return nil, nil
}

// firstNonWhitespaceIsBracket runs the grammar's token-kind choice
// (edition-independent for this purpose: Whitespace/comments/Punctuation
// are identical across editions) over chars, skipping Whitespace and
// non-doc comments, and reports whether the first other token is a
// Punctuation '[' and whether any such token was found at all.
func firstNonWhitespaceIsBracket(chars []rune) (isBracket bool, found bool) {
	gr := grammar.Grammar()
	order := grammar.TokenKindOrder(rustlex.Edition2015)
	pos := 0
	for pos < len(chars) {
		kind, n, ok := matchOne(gr, order, chars[pos:])
		if !ok {
			return false, false
		}
		if n == 0 {
			return false, false
		}
		switch kind {
		case grammar.Whitespace:
			pos += n
			continue
		case grammar.LineComment, grammar.BlockComment:
			text := chars[pos : pos+n]
			if isNonDocComment(kind, text) {
				pos += n
				continue
			}
			return false, true
		case grammar.Punctuation:
			return chars[pos] == '[', true
		default:
			return false, true
		}
	}
	return false, false
}

func matchOne(gr *peg.Grammar, order []string, chars []rune) (kind string, consumed int, ok bool) {
	for _, name := range order {
		r := gr.Eval(name, chars)
		if r.OK {
			return name, r.Consumed, true
		}
	}
	return "", 0, false
}

// isNonDocComment reports whether a matched LineComment/BlockComment
// span is a non-doc comment, by inspecting its leading characters
// directly (the same classification reprocess.Reprocess computes, kept
// duplicated here in miniature to avoid importing reprocess for one
// boolean).
func isNonDocComment(kind string, text []rune) bool {
	switch kind {
	case grammar.LineComment:
		content := text[2:]
		if len(content) > 1 && content[0] == '/' && content[1] == '/' {
			return true
		}
		return !(len(content) > 0 && (content[0] == '/' || content[0] == '!'))
	case grammar.BlockComment:
		inner := text[2 : len(text)-2]
		if len(inner) >= 2 && inner[0] == '*' && inner[1] == '*' {
			return true
		}
		if len(inner) >= 2 && inner[0] == '*' {
			return false
		}
		if len(inner) >= 1 && inner[0] == '!' {
			return false
		}
		return true
	}
	return true
}

// stripFrontmatter attempts to match the Frontmatter nonterminal at the
// start of chars; on success the matched characters are removed. On
// failure, if the conservative ReservedFence pattern matches, the input
// is rejected; otherwise chars is returned unchanged (there was no
// frontmatter to remove).
func stripFrontmatter(chars []rune) ([]rune, error) {
	gr := grammar.Grammar()
	if r := gr.Eval(grammar.Frontmatter, chars); r.OK {
		return chars[r.Consumed:], nil
	}
	if r := gr.Eval(grammar.ReservedFence, chars); r.OK {
		return nil, &rustlex.RejectionReason{
			Tag:     rustlex.FrontmatterMalformed,
			Offset:  0,
			Message: "input begins with a fence-like dash run but no valid frontmatter block",
		}
	}
	return chars, nil
}
