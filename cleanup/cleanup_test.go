package cleanup

import (
	"testing"

	"github.com/rustlex/rustlex"
)

func runOK(t *testing.T, input string, opts rustlex.Options) string {
	buf, err := Run([]byte(input), opts)
	if err != nil {
		t.Fatalf("Run(%q): unexpected error: %v", input, err)
	}
	return string(buf.Chars())
}

func TestStripsBOM(t *testing.T) {
	got := runOK(t, "\uFEFFfn main", rustlex.Options{})
	if got != "fn main" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalisesCRLF(t *testing.T) {
	got := runOK(t, "a\r\nb\rc\r\r\n", rustlex.Options{})
	if got != "a\nb\rc\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStripsShebang(t *testing.T) {
	got := runOK(t, "#!/usr/bin/env rustc\nfn main() {}", rustlex.Options{Cleaning: rustlex.CleaningShebang})
	if got != "fn main() {}" {
		t.Fatalf("got %q", got)
	}
}

func TestShebangNotStrippedBeforeInnerAttribute(t *testing.T) {
	input := "#![allow(dead_code)]"
	got := runOK(t, input, rustlex.Options{Cleaning: rustlex.CleaningShebang})
	if got != input {
		t.Fatalf("got %q, want unchanged %q", got, input)
	}
}

func TestFrontmatterRemoved(t *testing.T) {
	input := "---\ntitle: x\n---\nfn main() {}"
	got := runOK(t, input, rustlex.Options{Cleaning: rustlex.CleaningShebangAndFrontmatter})
	if got != "fn main() {}" {
		t.Fatalf("got %q", got)
	}
}

func TestReservedFenceWithoutCloseRejected(t *testing.T) {
	_, err := Run([]byte("---\nno closing fence"), rustlex.Options{Cleaning: rustlex.CleaningShebangAndFrontmatter})
	if err == nil {
		t.Fatal("expected rejection for unterminated frontmatter fence")
	}
	var reason *rustlex.RejectionReason
	if r, ok := err.(*rustlex.RejectionReason); ok {
		reason = r
	}
	if reason == nil || reason.Tag != rustlex.FrontmatterMalformed {
		t.Fatalf("got %v, want FrontmatterMalformed", err)
	}
}

func TestBadUTF8Rejected(t *testing.T) {
	_, err := Run([]byte{'a', 0xff, 'b'}, rustlex.Options{})
	var reason *rustlex.RejectionReason
	if r, ok := err.(*rustlex.RejectionReason); ok {
		reason = r
	}
	if reason == nil || reason.Tag != rustlex.BadUTF8 {
		t.Fatalf("got %v, want BadUTF8", err)
	}
}
