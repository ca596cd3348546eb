// Package rustlex is a fine-grained lexical analyzer for Rust source text.
//
// The top-level entry point lives in the tokenizer subpackage
// (tokenizer.Tokenize); this package holds the types shared across every
// stage of the pipeline: the edition/cleaning configuration a caller
// selects and the rejection taxonomy every stage reports through.
//
//   - unicodedata: Unicode property membership and NFC normalisation
//   - charstream: decoded-character cursor with byte offsets
//   - cleanup: decode/BOM/CRLF/shebang/frontmatter pipeline
//   - peg: the backtracking-free PEG evaluator
//   - grammar: the static, edition-parameterised grammar data
//   - reprocess: per-kind validation, escape decoding, attribute computation
//   - token: the Token value type and its attribute payloads
//   - tokenizer: the driver loop
//   - doccomment: the doc-comment lowering post-pass
//
// A typical caller only needs:
//
//	toks, err := tokenizer.Tokenize(src, rustlex.Options{Edition: rustlex.Edition2021})
//	if err != nil {
//	    var reason *rustlex.RejectionReason
//	    errors.As(err, &reason)
//	    // reason.Tag, reason.Offset, reason.KindHint describe the failure.
//	}
package rustlex

import "fmt"

// Edition selects which grammar rules apply. 2015 and 2018 are
// lexically identical and both map to Edition2015.
type Edition int

const (
	Edition2015 Edition = iota
	Edition2021
	Edition2024
)

func (e Edition) String() string {
	switch e {
	case Edition2015:
		return "2015"
	case Edition2021:
		return "2021"
	case Edition2024:
		return "2024"
	default:
		return fmt.Sprintf("Edition(%d)", int(e))
	}
}

// Cleaning selects how much of the pre-tokenising cleanup pipeline runs
// before the main token loop.
type Cleaning int

const (
	// CleaningNone skips shebang and frontmatter removal entirely.
	CleaningNone Cleaning = iota
	// CleaningShebang strips a leading shebang line only.
	CleaningShebang
	// CleaningShebangAndFrontmatter strips a leading shebang line, then
	// attempts to strip a frontmatter block.
	CleaningShebangAndFrontmatter
)

// Options configures a single Tokenize (or TokenizeSingle) call. The zero
// value selects Edition2015 and CleaningNone, with doc-comment lowering
// off.
type Options struct {
	Edition          Edition
	Cleaning         Cleaning
	LowerDocComments bool
}

// RejectionTag classifies why a tokenize attempt failed.
type RejectionTag int

const (
	// BadUTF8 means the input was not well-formed UTF-8.
	BadUTF8 RejectionTag = iota
	// FrontmatterMalformed means cleanup found an opening frontmatter
	// fence but could not find a matching closing fence, or the fence
	// used a reserved character sequence.
	FrontmatterMalformed
	// LexFail means the grammar failed to match any token-kind
	// alternative, or a match was produced but rejected during
	// reprocessing, starting at Offset.
	LexFail
)

func (t RejectionTag) String() string {
	switch t {
	case BadUTF8:
		return "BadUTF8"
	case FrontmatterMalformed:
		return "FrontmatterMalformed"
	case LexFail:
		return "LexFail"
	default:
		return fmt.Sprintf("RejectionTag(%d)", int(t))
	}
}

// RejectionReason is the single error type every stage of the pipeline
// reports through. The engine always surfaces the earliest failure in
// the input; there is no recovery or multi-error reporting.
type RejectionReason struct {
	Tag RejectionTag

	// Offset is the byte offset at which the failure was detected. For
	// BadUTF8 it is an offset into the original input; for LexFail it is
	// an offset into the cleaned input, where the failing token-kind
	// attempt began.
	Offset int

	// KindHint names the token kind that was being attempted when a
	// LexFail occurred, if the engine can identify one (e.g.
	// "UnterminatedBlockComment" for an unterminated block comment). Empty when not
	// applicable.
	KindHint string

	// Message is a short human-readable description, used by Describe
	// and by the CLI's diagnostic output.
	Message string
}

func (r *RejectionReason) Error() string {
	if r.KindHint != "" {
		return fmt.Sprintf("%s at byte %d (%s): %s", r.Tag, r.Offset, r.KindHint, r.Message)
	}
	return fmt.Sprintf("%s at byte %d: %s", r.Tag, r.Offset, r.Message)
}

// Describe expands err into a short, ordered set of diagnostic lines
// suitable for CLI output. Non-*RejectionReason errors are rendered as a
// single line via err.Error().
func Describe(err error) []string {
	if err == nil {
		return nil
	}
	r, ok := err.(*RejectionReason)
	if !ok {
		return []string{err.Error()}
	}
	lines := []string{r.Error()}
	switch r.Tag {
	case BadUTF8:
		lines = append(lines, "input is not well-formed UTF-8")
	case FrontmatterMalformed:
		lines = append(lines, "frontmatter block has no matching closing fence, or uses a reserved fence")
	case LexFail:
		if r.KindHint != "" {
			lines = append(lines, "token-kind alternative "+r.KindHint+" matched here but was rejected")
		} else {
			lines = append(lines, "no token-kind alternative matched starting here")
		}
	}
	return lines
}
