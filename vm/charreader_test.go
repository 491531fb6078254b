package vm

import (
	"testing"
	"unicode/utf8"
)

func TestCharReaderASCII(t *testing.T) {
	cr := NewCharReader([]byte("ab"), ModeRunes, false)

	if _, ok := cr.Prev(); ok {
		t.Error("Prev at start should report none")
	}
	if c, ok := cr.Cur(); !ok || c != 'a' {
		t.Errorf("Cur = (%q, %v), want ('a', true)", c, ok)
	}

	if !cr.Advance() {
		t.Fatal("Advance from 'a' should succeed")
	}
	if p, ok := cr.Prev(); !ok || p != 'a' {
		t.Errorf("Prev = (%q, %v), want ('a', true)", p, ok)
	}
	if c, ok := cr.Cur(); !ok || c != 'b' {
		t.Errorf("Cur = (%q, %v), want ('b', true)", c, ok)
	}

	// Advancing past the last codepoint lands on the end position:
	// prev is 'b', cur is none.
	if !cr.Advance() {
		t.Fatal("Advance from 'b' should succeed")
	}
	if !cr.AtEnd() {
		t.Error("reader should be at end")
	}
	if p, ok := cr.Prev(); !ok || p != 'b' {
		t.Errorf("Prev at end = (%q, %v), want ('b', true)", p, ok)
	}
	if _, ok := cr.Cur(); ok {
		t.Error("Cur at end should report none")
	}

	// Already at end: Advance reports no movement.
	if cr.Advance() {
		t.Error("Advance at end should report false")
	}
}

func TestCharReaderMultibyte(t *testing.T) {
	cr := NewCharReader([]byte("aé中"), ModeRunes, false)

	if c, _ := cr.Cur(); c != 'a' || cr.Width() != 1 {
		t.Errorf("Cur = %q width %d, want 'a' width 1", c, cr.Width())
	}
	cr.Advance()
	if c, _ := cr.Cur(); c != 'é' || cr.Width() != 2 {
		t.Errorf("Cur = %q width %d, want 'é' width 2", c, cr.Width())
	}
	cr.Advance()
	if c, _ := cr.Cur(); c != '中' || cr.Width() != 3 {
		t.Errorf("Cur = %q width %d, want '中' width 3", c, cr.Width())
	}
	if p, _ := cr.Prev(); p != 'é' {
		t.Errorf("Prev = %q, want 'é'", p)
	}
	if cr.Pos() != 3 {
		t.Errorf("Pos = %d, want 3", cr.Pos())
	}
}

func TestCharReaderReset(t *testing.T) {
	cr := NewCharReader([]byte("aé中x"), ModeRunes, false)

	// Resetting mid-haystack recovers the previous codepoint from the
	// bytes, as if the position had been reached by advancing.
	cr.Reset(3)
	if p, ok := cr.Prev(); !ok || p != 'é' {
		t.Errorf("Prev after Reset(3) = (%q, %v), want ('é', true)", p, ok)
	}
	if c, ok := cr.Cur(); !ok || c != '中' {
		t.Errorf("Cur after Reset(3) = (%q, %v), want ('中', true)", c, ok)
	}

	cr.Reset(0)
	if _, ok := cr.Prev(); ok {
		t.Error("Prev after Reset(0) should report none")
	}

	// Past-the-end resets clamp to the end position.
	cr.Reset(100)
	if !cr.AtEnd() {
		t.Error("Reset past end should land at end")
	}
	if p, ok := cr.Prev(); !ok || p != 'x' {
		t.Errorf("Prev at clamped end = (%q, %v), want ('x', true)", p, ok)
	}
}

func TestCharReaderMalformed(t *testing.T) {
	// 0xFF can start no UTF-8 sequence: it decodes as U+FFFD of width 1
	// and matching stays total.
	cr := NewCharReader([]byte{'a', 0xFF, 'b'}, ModeRunes, false)
	cr.Advance()
	if c, _ := cr.Cur(); c != utf8.RuneError || cr.Width() != 1 {
		t.Errorf("Cur = %q width %d, want U+FFFD width 1", c, cr.Width())
	}
	if cr.Err() != nil {
		t.Errorf("non-strict reader reported %v", cr.Err())
	}
	cr.Advance()
	if c, _ := cr.Cur(); c != 'b' {
		t.Errorf("Cur = %q, want 'b'", c)
	}
}

func TestCharReaderStrict(t *testing.T) {
	cr := NewCharReader([]byte{0xFF}, ModeRunes, true)
	if cr.Err() != ErrInvalidUTF8 {
		t.Errorf("Err = %v, want ErrInvalidUTF8", cr.Err())
	}

	// A genuine encoded U+FFFD is valid UTF-8 and passes strict mode.
	cr = NewCharReader([]byte("�"), ModeRunes, true)
	if cr.Err() != nil {
		t.Errorf("encoded U+FFFD reported %v", cr.Err())
	}
	if c, _ := cr.Cur(); c != utf8.RuneError || cr.Width() != 3 {
		t.Errorf("Cur = %q width %d, want U+FFFD width 3", c, cr.Width())
	}
}

func TestCharReaderByteMode(t *testing.T) {
	cr := NewCharReader([]byte{0xC3, 0xA9}, ModeBytes, false)

	// Byte mode never decodes: each byte is one position.
	if c, _ := cr.Cur(); c != 0xC3 || cr.Width() != 1 {
		t.Errorf("Cur = %#x width %d, want 0xC3 width 1", c, cr.Width())
	}
	cr.Advance()
	if c, _ := cr.Cur(); c != 0xA9 {
		t.Errorf("Cur = %#x, want 0xA9", c)
	}
	if p, _ := cr.Prev(); p != 0xC3 {
		t.Errorf("Prev = %#x, want 0xC3", p)
	}
}

func TestCharReaderEmpty(t *testing.T) {
	cr := NewCharReader(nil, ModeRunes, false)
	if !cr.AtEnd() {
		t.Error("empty reader should start at end")
	}
	if _, ok := cr.Prev(); ok {
		t.Error("empty reader has no previous codepoint")
	}
	if cr.Advance() {
		t.Error("empty reader cannot advance")
	}
}
