// Package token defines the fine-grained Token value produced by the
// tokenizer and the typed attribute payloads carried by each kind.
//
// A Token owns its attribute data: represented strings/bytes/idents are
// the reprocessor's decoded values, not slices of the source text, so a
// Token remains valid after its originating character buffer is
// discarded. This mirrors the split ava12-llx/lexer.Token makes between
// a token's Type/Text and its Source/position, generalised here to a
// richer, kind-specific attribute set instead of one flat Text field.
package token

import "fmt"

// Kind identifies which of the fine-grained token variants a Token is.
type Kind int

const (
	Whitespace Kind = iota
	LineComment
	BlockComment
	Punctuation
	Identifier
	RawIdentifier
	LifetimeOrLabel
	RawLifetimeOrLabel
	CharacterLiteral
	ByteLiteral
	StringLiteral
	RawStringLiteral
	ByteStringLiteral
	RawByteStringLiteral
	CStringLiteral
	RawCStringLiteral
	IntegerLiteral
	FloatLiteral
)

var kindNames = [...]string{
	Whitespace:            "Whitespace",
	LineComment:           "LineComment",
	BlockComment:          "BlockComment",
	Punctuation:           "Punctuation",
	Identifier:            "Identifier",
	RawIdentifier:         "RawIdentifier",
	LifetimeOrLabel:       "LifetimeOrLabel",
	RawLifetimeOrLabel:    "RawLifetimeOrLabel",
	CharacterLiteral:      "CharacterLiteral",
	ByteLiteral:           "ByteLiteral",
	StringLiteral:         "StringLiteral",
	RawStringLiteral:      "RawStringLiteral",
	ByteStringLiteral:     "ByteStringLiteral",
	RawByteStringLiteral:  "RawByteStringLiteral",
	CStringLiteral:        "CStringLiteral",
	RawCStringLiteral:     "RawCStringLiteral",
	IntegerLiteral:        "IntegerLiteral",
	FloatLiteral:          "FloatLiteral",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// CommentStyle classifies a line or block comment.
type CommentStyle int

const (
	NonDoc CommentStyle = iota
	OuterDoc
	InnerDoc
)

func (s CommentStyle) String() string {
	switch s {
	case NonDoc:
		return "NonDoc"
	case OuterDoc:
		return "OuterDoc"
	case InnerDoc:
		return "InnerDoc"
	default:
		return fmt.Sprintf("CommentStyle(%d)", int(s))
	}
}

// Base names an integer literal's numeral base.
type Base int

const (
	Bin Base = iota
	Oct
	Dec
	Hex
)

func (b Base) String() string {
	switch b {
	case Bin:
		return "Bin"
	case Oct:
		return "Oct"
	case Dec:
		return "Dec"
	case Hex:
		return "Hex"
	default:
		return fmt.Sprintf("Base(%d)", int(b))
	}
}

// Token is a single fine-grained lexical token: a Kind, the byte extent
// it occupied in the original source, and the attribute fields relevant
// to that Kind. Fields irrelevant to Kind are left at their zero value;
// callers must only read the attributes documented for a Token's Kind.
type Token struct {
	Kind Kind

	// Start and End are byte offsets into the cleaned input (the text left
	// after the cleanup pipeline), which equals the original input when
	// cleanup removed or rewrote nothing.
	Start int
	End   int

	// LineComment / BlockComment.
	Style CommentStyle
	Body  []rune

	// Punctuation.
	Mark rune

	// Identifier / RawIdentifier.
	RepresentedIdent []rune

	// LifetimeOrLabel / RawLifetimeOrLabel.
	Name []rune

	// CharacterLiteral.
	RepresentedCharacter rune

	// ByteLiteral.
	RepresentedByte byte

	// StringLiteral / RawStringLiteral.
	RepresentedString []rune

	// ByteStringLiteral / RawByteStringLiteral / CStringLiteral / RawCStringLiteral.
	RepresentedBytes []byte

	// IntegerLiteral.
	IntBase Base
	Digits  []rune

	// FloatLiteral.
	FloatBody []rune

	// CharacterLiteral, ByteLiteral, *StringLiteral*, IntegerLiteral,
	// FloatLiteral.
	Suffix []rune
}

// Len returns the byte length the token occupied in the cleaned input.
func (t Token) Len() int { return t.End - t.Start }
