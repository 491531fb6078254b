package vm

// assertHolds reports whether a zero-width assertion holds at the reader's
// current position. All assertions are decided from the one-codepoint
// window alone; the reader must be positioned exactly at the offset being
// tested.
func assertHolds(a Assert, cr *CharReader) bool {
	switch a {
	case AssertStartText:
		_, ok := cr.Prev()
		return !ok
	case AssertEndText:
		_, ok := cr.Cur()
		return !ok
	case AssertStartLine:
		p, ok := cr.Prev()
		return !ok || p == '\n'
	case AssertEndLine:
		c, ok := cr.Cur()
		return !ok || c == '\n'
	case AssertWordBoundary:
		return wordBefore(cr) != wordAfter(cr)
	case AssertNoWordBoundary:
		return wordBefore(cr) == wordAfter(cr)
	}
	return false
}

func wordBefore(cr *CharReader) bool {
	p, ok := cr.Prev()
	return ok && isWordRune(p)
}

func wordAfter(cr *CharReader) bool {
	c, ok := cr.Cur()
	return ok && isWordRune(c)
}

// isWordRune reports whether r is a word character in the ASCII sense
// ([0-9A-Za-z_]), the definition used for \b.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z')
}
