// Package charstream decodes a byte buffer into Unicode scalar values and
// provides a read-only cursor over the result, tracking each character's
// byte offset so later stages can report byte-offset rejections.
//
// Buffer and Cursor follow the split ava12-llx/source uses between a
// Source (an immutable byte buffer plus derived line-start index) and a
// cursor/Pos over it — here the buffer holds decoded characters instead of
// raw bytes, since the grammar and reprocessor never look at bytes again
// once decoding succeeds.
package charstream

import (
	"fmt"
	"unicode/utf8"
)

// Buffer holds a decoded character sequence together with the byte offset
// of each character, so a Cursor position can be translated back to a byte
// offset for error reporting.
type Buffer struct {
	chars       []rune
	byteOffsets []int // len(chars)+1; byteOffsets[i] is the byte offset of chars[i]
}

// DecodeError reports where UTF-8 decoding failed.
type DecodeError struct {
	ByteOffset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ill-formed UTF-8 at byte offset %d", e.ByteOffset)
}

// Decode interprets raw as UTF-8 and returns the decoded Buffer, or a
// *DecodeError if raw contains an ill-formed sequence.
func Decode(raw []byte) (*Buffer, error) {
	chars := make([]rune, 0, len(raw))
	offsets := make([]int, 0, len(raw)+1)

	pos := 0
	for pos < len(raw) {
		r, size := utf8.DecodeRune(raw[pos:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &DecodeError{ByteOffset: pos}
		}
		offsets = append(offsets, pos)
		chars = append(chars, r)
		pos += size
	}
	offsets = append(offsets, pos)

	return &Buffer{chars: chars, byteOffsets: offsets}, nil
}

// FromRunes builds a Buffer directly from already-decoded characters,
// assuming each occupies its natural UTF-8 encoded width. Used by the
// cleanup pipeline to rebuild a Buffer after removing a prefix or splicing
// in characters (CRLF normalisation, BOM/shebang/frontmatter stripping).
func FromRunes(chars []rune) *Buffer {
	offsets := make([]int, len(chars)+1)
	pos := 0
	for i, r := range chars {
		offsets[i] = pos
		pos += utf8.RuneLen(r)
	}
	offsets[len(chars)] = pos
	return &Buffer{chars: chars, byteOffsets: offsets}
}

// Chars returns the buffer's decoded characters. The caller must not
// mutate the returned slice.
func (b *Buffer) Chars() []rune {
	return b.chars
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.chars)
}

// ByteLen returns the total UTF-8 byte length of the buffer's characters
// (for a Buffer from Decode, the length of the decoded input).
func (b *Buffer) ByteLen() int {
	return b.byteOffsets[len(b.byteOffsets)-1]
}

// ByteOffset returns the byte offset of the character at the given
// character index. An index equal to b.Len() returns the total byte
// length.
func (b *Buffer) ByteOffset(charIndex int) int {
	if charIndex < 0 {
		charIndex = 0
	}
	if charIndex > len(b.chars) {
		charIndex = len(b.chars)
	}
	return b.byteOffsets[charIndex]
}

// Cursor is a read-only, immutable-buffer-plus-offset position within a
// Buffer. Cursor values are cheap to copy; Advance returns a new value
// rather than mutating the receiver.
type Cursor struct {
	buf *Buffer
	pos int // character index
}

// NewCursor returns a Cursor at the start of buf.
func NewCursor(buf *Buffer) Cursor {
	return Cursor{buf: buf, pos: 0}
}

// Pos returns the current character index.
func (c Cursor) Pos() int {
	return c.pos
}

// ByteOffset returns the byte offset corresponding to the current
// character index.
func (c Cursor) ByteOffset() int {
	return c.buf.ByteOffset(c.pos)
}

// Peek returns the character n positions ahead of the cursor (n=0 is the
// character at the cursor) without advancing, and whether it exists.
func (c Cursor) Peek(n int) (rune, bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.buf.chars) {
		return 0, false
	}
	return c.buf.chars[i], true
}

// Advance returns a new Cursor moved forward by n characters. Precondition:
// n characters remain (n <= c.Remaining()); advancing past the end clamps
// to the end.
func (c Cursor) Advance(n int) Cursor {
	pos := c.pos + n
	if pos > len(c.buf.chars) {
		pos = len(c.buf.chars)
	}
	if pos < c.pos {
		pos = c.pos
	}
	return Cursor{buf: c.buf, pos: pos}
}

// Remaining returns the characters from the cursor to the end of the
// buffer. The caller must not mutate the returned slice.
func (c Cursor) Remaining() []rune {
	return c.buf.chars[c.pos:]
}

// RemainingLen returns the number of characters left before the end of the
// buffer.
func (c Cursor) RemainingLen() int {
	return len(c.buf.chars) - c.pos
}

// AtEnd reports whether the cursor has reached the end of the buffer.
func (c Cursor) AtEnd() bool {
	return c.pos >= len(c.buf.chars)
}

// Buffer returns the underlying Buffer.
func (c Cursor) Buffer() *Buffer {
	return c.buf
}
