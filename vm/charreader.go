package vm

import "unicode/utf8"

// CharReader maintains a one-codepoint lookback window over a haystack so
// assertion instructions can inspect the character on either side of the
// current position without re-scanning.
//
// The reader must stay in lockstep with the executor: Prev always reflects
// exactly the codepoint immediately before the position being tested, and
// Cur the codepoint at it. Reaching the end of input is a normal terminal
// condition (Cur reports no codepoint), not an error.
//
// In ModeRunes the haystack is decoded as UTF-8; malformed sequences
// decode as U+FFFD so matching stays total over arbitrary bytes, unless
// the reader is strict, in which case Err reports ErrInvalidUTF8. In
// ModeBytes no decoding happens: each byte is one position.
type CharReader struct {
	haystack []byte
	mode     Mode
	strict   bool

	pos     int  // byte offset of cur
	cur     rune // valid when hasCur
	width   int  // byte width of cur; 0 at end of input
	hasCur  bool
	prev    rune // valid when hasPrev
	hasPrev bool
	err     error
}

// NewCharReader creates a reader over haystack positioned at offset 0.
func NewCharReader(haystack []byte, mode Mode, strict bool) *CharReader {
	c := &CharReader{haystack: haystack, mode: mode, strict: strict}
	c.Reset(0)
	return c
}

// Reset re-seeds the window at the given byte offset. The previous
// codepoint is recovered from the haystack, so assertions behave
// identically whether the position was reached by advancing or by
// resetting. Offsets past the end are clamped.
func (c *CharReader) Reset(at int) {
	if at < 0 {
		at = 0
	}
	if at > len(c.haystack) {
		at = len(c.haystack)
	}
	c.pos = at
	c.err = nil

	c.hasPrev = at > 0
	if c.hasPrev {
		if c.mode == ModeBytes {
			c.prev = rune(c.haystack[at-1])
		} else {
			c.prev, _ = utf8.DecodeLastRune(c.haystack[:at])
		}
	}
	c.decode()
}

// Advance moves the window forward by one codepoint, shifting the current
// codepoint into the lookback slot. It reports whether the reader moved;
// false means it was already at the end of input.
func (c *CharReader) Advance() bool {
	if !c.hasCur {
		return false
	}
	c.prev = c.cur
	c.hasPrev = true
	c.pos += c.width
	c.decode()
	return true
}

// decode refreshes cur from the byte at pos.
func (c *CharReader) decode() {
	if c.pos >= len(c.haystack) {
		c.hasCur = false
		c.cur = 0
		c.width = 0
		return
	}
	c.hasCur = true
	if c.mode == ModeBytes {
		c.cur = rune(c.haystack[c.pos])
		c.width = 1
		return
	}
	r, w := utf8.DecodeRune(c.haystack[c.pos:])
	if r == utf8.RuneError && w == 1 && c.strict {
		c.err = ErrInvalidUTF8
	}
	c.cur = r
	c.width = w
}

// Cur returns the codepoint at the current position. The second result is
// false at the end of input.
func (c *CharReader) Cur() (rune, bool) { return c.cur, c.hasCur }

// Prev returns the codepoint immediately before the current position. The
// second result is false before the start of input.
func (c *CharReader) Prev() (rune, bool) { return c.prev, c.hasPrev }

// Pos returns the byte offset of the current position.
func (c *CharReader) Pos() int { return c.pos }

// Width returns the byte width of the current codepoint, or 0 at the end
// of input.
func (c *CharReader) Width() int { return c.width }

// AtEnd reports whether the reader is past the last codepoint.
func (c *CharReader) AtEnd() bool { return !c.hasCur }

// Err returns ErrInvalidUTF8 if a strict reader decoded a malformed
// sequence at the current position, and nil otherwise.
func (c *CharReader) Err() error { return c.err }
