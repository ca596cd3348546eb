package charstream

import "testing"

func TestDecodeASCII(t *testing.T) {
	buf, err := Decode([]byte("fn main"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", buf.Len())
	}
	if buf.ByteOffset(3) != 3 {
		t.Fatalf("ByteOffset(3) = %d, want 3", buf.ByteOffset(3))
	}
}

func TestDecodeMultibyte(t *testing.T) {
	// "ℝ" is U+211D, 3 bytes in UTF-8.
	buf, err := Decode([]byte("aℝb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", buf.Len())
	}
	if buf.ByteOffset(0) != 0 || buf.ByteOffset(1) != 1 || buf.ByteOffset(2) != 4 {
		t.Fatalf("unexpected byte offsets: %v", buf.byteOffsets)
	}
	if buf.ByteLen() != 5 {
		t.Fatalf("ByteLen() = %d, want 5", buf.ByteLen())
	}
}

func TestDecodeIllFormed(t *testing.T) {
	_, err := Decode([]byte{'a', 0xff, 'b'})
	if err == nil {
		t.Fatal("expected decode error")
	}
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("unexpected error type %T", err)
	}
	if de.ByteOffset != 1 {
		t.Errorf("ByteOffset = %d, want 1", de.ByteOffset)
	}
}

func TestCursorPeekAdvance(t *testing.T) {
	buf, _ := Decode([]byte("abc"))
	c := NewCursor(buf)
	r, ok := c.Peek(0)
	if !ok || r != 'a' {
		t.Fatalf("Peek(0) = %q, %v", r, ok)
	}
	r, ok = c.Peek(2)
	if !ok || r != 'c' {
		t.Fatalf("Peek(2) = %q, %v", r, ok)
	}
	_, ok = c.Peek(3)
	if ok {
		t.Fatal("Peek(3) should be out of range")
	}

	c2 := c.Advance(2)
	if c2.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c2.Pos())
	}
	if c.Pos() != 0 {
		t.Fatalf("Advance mutated receiver: Pos() = %d, want 0", c.Pos())
	}
	if string(c2.Remaining()) != "c" {
		t.Fatalf("Remaining() = %q, want %q", string(c2.Remaining()), "c")
	}
}

func TestFromRunes(t *testing.T) {
	buf := FromRunes([]rune{'a', 0x211D, 'b'})
	if buf.ByteOffset(0) != 0 || buf.ByteOffset(1) != 1 || buf.ByteOffset(2) != 4 || buf.ByteOffset(3) != 5 {
		t.Fatalf("unexpected byte offsets: %v", buf.byteOffsets)
	}
}
