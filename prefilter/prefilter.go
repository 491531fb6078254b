// Package prefilter accelerates regex scanning with literal prefix search.
//
// When a program declares that every match must begin with one of a known
// set of literals, the executor does not need to attempt a simulation start
// at every haystack position. A prefilter jumps the scan directly to the
// next position where one of the literals occurs; only those positions are
// handed to the full engine for verification.
//
// Strategy selection mirrors the literal count:
//   - a single literal uses Memmem (SWAR substring search)
//   - multiple literals use an Aho-Corasick automaton
//
// All prefilters return the leftmost candidate at or after the requested
// start, which is what leftmost-first match semantics require.
package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// Prefilter finds candidate match start positions in a haystack.
//
// A candidate is a position where one of the prefilter's literals occurs.
// It does not guarantee a full match; the executor verifies each candidate.
type Prefilter interface {
	// Find returns the leftmost candidate position at or after start,
	// or -1 if no candidate exists. start may be any value in
	// [0, len(haystack)].
	Find(haystack []byte, start int) int
}

// Build constructs a prefilter for the given literal set.
// It returns nil when the set is empty, when any literal is empty (an empty
// required prefix filters nothing), or when no automaton could be built;
// a nil prefilter means "scan every position".
func Build(literals [][]byte) Prefilter {
	if len(literals) == 0 {
		return nil
	}
	for _, lit := range literals {
		if len(lit) == 0 {
			return nil
		}
	}

	if len(literals) == 1 {
		needle := make([]byte, len(literals[0]))
		copy(needle, literals[0])
		return &memmemPrefilter{needle: needle}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto}
}

// memmemPrefilter searches for a single literal with Memmem.
type memmemPrefilter struct {
	needle []byte
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	i := Memmem(haystack[start:], p.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

// ahoCorasickPrefilter searches for any of several literals with an
// Aho-Corasick automaton. The automaton reports the leftmost occurrence
// across all patterns in a single O(n) pass.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}
