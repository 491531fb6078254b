package vm

import (
	"testing"

	"github.com/coregx/revm/prefilter"
)

func buildTestPrefilter(t *testing.T, lits ...string) prefilter.Prefilter {
	t.Helper()
	bs := make([][]byte, 0, len(lits))
	for _, l := range lits {
		bs = append(bs, []byte(l))
	}
	pf := prefilter.Build(bs)
	if pf == nil {
		t.Fatal("prefilter.Build returned nil")
	}
	return pf
}

// Shared hand-assembled programs used across the executor tests. Programs
// enter at PC 0; comments show the pattern each one is equivalent to.

// progLiteral compiles to the equivalent of the given literal string.
func progLiteral(lit string, anchored bool) *Program {
	b := NewBuilder()
	for _, r := range lit {
		b.Char(r)
	}
	b.Match()
	b.SetAnchoredStart(anchored)
	return b.MustBuild()
}

// progABStarC is equivalent to ab*c.
func progABStarC() *Program {
	b := NewBuilder()
	b.Char('a')       // 0
	b.Split(2, 4)     // 1: b* enter/exit (greedy)
	b.Char('b')       // 2
	b.Jmp(1)          // 3
	b.Char('c')       // 4
	b.Match()         // 5
	return b.MustBuild()
}

// progUpperClass is equivalent to [A-Z], optionally case-insensitive.
func progUpperClass(fold bool) *Program {
	b := NewBuilder()
	ranges := []RuneRange{{Lo: 'A', Hi: 'Z'}}
	if fold {
		b.ClassFold(ranges)
	} else {
		b.Class(ranges)
	}
	b.Match()
	return b.MustBuild()
}

// progNestedStar is equivalent to (a*)*b, the classic exponential
// backtracking pattern.
func progNestedStar() *Program {
	b := NewBuilder()
	b.Split(1, 5) // 0: outer enter/exit
	b.Split(2, 4) // 1: inner enter/exit
	b.Char('a')   // 2
	b.Jmp(1)      // 3
	b.Jmp(0)      // 4
	b.Char('b')   // 5
	b.Match()     // 6
	return b.MustBuild()
}

// progCaptureAB is equivalent to (a+)(b+) with full capture groups.
func progCaptureAB() *Program {
	b := NewBuilder()
	b.SetCaptureCount(3)
	b.Save(0)      // 0: whole match start
	b.Save(2)      // 1: group 1 start
	b.Char('a')    // 2
	b.Split(2, 4)  // 3: a+ repeat/exit
	b.Save(3)      // 4: group 1 end
	b.Save(4)      // 5: group 2 start
	b.Char('b')    // 6
	b.Split(6, 8)  // 7: b+ repeat/exit
	b.Save(5)      // 8: group 2 end
	b.Save(1)      // 9: whole match end
	b.Match()      // 10
	return b.MustBuild()
}

// progAltCatDog is equivalent to cat|dog, with the alternation's literals
// declared as required prefixes.
func progAltCatDog() *Program {
	b := NewBuilder()
	b.Split(1, 5) // 0
	b.Char('c')   // 1
	b.Char('a')   // 2
	b.Char('t')   // 3
	b.Jmp(8)      // 4
	b.Char('d')   // 5
	b.Char('o')   // 6
	b.Char('g')   // 7
	b.Match()     // 8
	b.SetPrefixes([][]byte{[]byte("cat"), []byte("dog")})
	return b.MustBuild()
}

// progWordFoo is equivalent to \bfoo\b.
func progWordFoo() *Program {
	b := NewBuilder()
	b.Assert(AssertWordBoundary) // 0
	b.Char('f')                  // 1
	b.Char('o')                  // 2
	b.Char('o')                  // 3
	b.Assert(AssertWordBoundary) // 4
	b.Match()                    // 5
	return b.MustBuild()
}
