// Package vm executes compiled regex programs against byte or codepoint
// streams.
//
// A Program is an arena of instructions indexed by program counter,
// produced by a compiler front end (or by Builder directly) and immutable
// thereafter. Two interpretation strategies share the instruction
// semantics: PikeVM, a breadth-first simultaneous-thread simulation that
// never backtracks, and Backtracker, a depth-first interpreter with exact
// capture semantics and a step budget. Both consume input through
// CharReader and test case-insensitive classes through the casefold
// package.
package vm

import (
	"fmt"
	"strings"

	"github.com/coregx/revm/casefold"
)

// PC identifies an instruction by its index in the program arena.
type PC uint32

// InvalidPC is a sentinel for an unset program counter.
const InvalidPC PC = 0xFFFFFFFF

// Opcode identifies the kind of an instruction.
type Opcode uint8

const (
	// OpMatch is the terminal instruction: reaching it completes a match.
	OpMatch Opcode = iota

	// OpChar matches a single literal codepoint (or byte, in byte mode)
	// and falls through to the next instruction.
	OpChar

	// OpClass matches a codepoint against a set of inclusive ranges and
	// falls through to the next instruction.
	OpClass

	// OpAny matches any single codepoint and falls through.
	OpAny

	// OpSplit branches to two successor instructions. The first target
	// has priority; leftmost-first semantics prefer it.
	OpSplit

	// OpJmp continues at an explicit target instruction.
	OpJmp

	// OpSave writes the current input offset into a capture slot and
	// falls through.
	OpSave

	// OpAssert checks a zero-width condition and falls through when it
	// holds; otherwise the executing thread dies.
	OpAssert
)

// String returns a human-readable opcode name.
func (op Opcode) String() string {
	switch op {
	case OpMatch:
		return "match"
	case OpChar:
		return "char"
	case OpClass:
		return "class"
	case OpAny:
		return "any"
	case OpSplit:
		return "split"
	case OpJmp:
		return "jmp"
	case OpSave:
		return "save"
	case OpAssert:
		return "assert"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(op))
	}
}

// Assert identifies a zero-width assertion.
type Assert uint8

const (
	// AssertStartText holds at the start of the input.
	AssertStartText Assert = iota

	// AssertEndText holds at the end of the input.
	AssertEndText

	// AssertStartLine holds at the start of the input or after a newline.
	AssertStartLine

	// AssertEndLine holds at the end of the input or before a newline.
	AssertEndLine

	// AssertWordBoundary holds where exactly one side is a word character.
	AssertWordBoundary

	// AssertNoWordBoundary holds where AssertWordBoundary does not.
	AssertNoWordBoundary
)

// String returns the conventional regex notation for the assertion.
func (a Assert) String() string {
	switch a {
	case AssertStartText:
		return `\A`
	case AssertEndText:
		return `\z`
	case AssertStartLine:
		return "^"
	case AssertEndLine:
		return "$"
	case AssertWordBoundary:
		return `\b`
	case AssertNoWordBoundary:
		return `\B`
	default:
		return fmt.Sprintf("assert(%d)", uint8(a))
	}
}

// RuneRange is an inclusive codepoint range in a character class.
type RuneRange struct {
	Lo, Hi rune
}

// Mode selects how the input stream is decoded.
type Mode uint8

const (
	// ModeRunes decodes the haystack as UTF-8, one codepoint per step.
	// Malformed sequences decode as U+FFFD (or fail in strict mode).
	ModeRunes Mode = iota

	// ModeBytes treats the haystack as raw bytes, one byte per step.
	ModeBytes
)

// Inst is a single instruction. Its opcode determines which fields are
// meaningful. Consuming instructions (OpChar, OpClass, OpAny) and the
// zero-width OpSave/OpAssert fall through to pc+1; only OpSplit and OpJmp
// carry explicit targets.
type Inst struct {
	op       Opcode
	r        rune        // OpChar
	ranges   []RuneRange // OpClass
	foldcase bool        // OpChar, OpClass
	x, y     PC          // OpSplit targets; x also serves OpJmp
	slot     int         // OpSave
	assert   Assert      // OpAssert
}

// Op returns the instruction's opcode.
func (i *Inst) Op() Opcode { return i.op }

// Rune returns the literal codepoint of an OpChar instruction.
func (i *Inst) Rune() rune { return i.r }

// Ranges returns the codepoint ranges of an OpClass instruction.
func (i *Inst) Ranges() []RuneRange { return i.ranges }

// Foldcase reports whether the instruction matches case-insensitively.
func (i *Inst) Foldcase() bool { return i.foldcase }

// Split returns the two successor targets of an OpSplit instruction.
func (i *Inst) Split() (x, y PC) { return i.x, i.y }

// Jmp returns the target of an OpJmp instruction.
func (i *Inst) Jmp() PC { return i.x }

// Slot returns the capture slot index of an OpSave instruction.
func (i *Inst) Slot() int { return i.slot }

// Assert returns the assertion kind of an OpAssert instruction.
func (i *Inst) Assert() Assert { return i.assert }

// MatchesRune reports whether a consuming instruction accepts the given
// codepoint. Case-insensitive instructions accept a codepoint when its
// simple case-folding orbit intersects the declared set.
func (i *Inst) MatchesRune(r rune) bool {
	switch i.op {
	case OpAny:
		return true
	case OpChar:
		if r == i.r {
			return true
		}
		if !i.foldcase {
			return false
		}
		return casefold.Fold(r) == casefold.Fold(i.r)
	case OpClass:
		if i.containsRune(r) {
			return true
		}
		if !i.foldcase {
			return false
		}
		for _, f := range casefold.Equivalents(r) {
			if f != r && i.containsRune(f) {
				return true
			}
		}
	}
	return false
}

func (i *Inst) containsRune(r rune) bool {
	for _, rg := range i.ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return true
		}
	}
	return false
}

// String returns a human-readable representation of the instruction.
func (i *Inst) String() string {
	fold := ""
	if i.foldcase {
		fold = "/i"
	}
	switch i.op {
	case OpMatch:
		return "match"
	case OpChar:
		return fmt.Sprintf("char%s %q", fold, i.r)
	case OpClass:
		var b strings.Builder
		for _, rg := range i.ranges {
			if rg.Lo == rg.Hi {
				fmt.Fprintf(&b, "%q", rg.Lo)
			} else {
				fmt.Fprintf(&b, "%q-%q", rg.Lo, rg.Hi)
			}
		}
		return fmt.Sprintf("class%s [%s]", fold, b.String())
	case OpAny:
		return "any"
	case OpSplit:
		return fmt.Sprintf("split %d, %d", i.x, i.y)
	case OpJmp:
		return fmt.Sprintf("jmp %d", i.x)
	case OpSave:
		return fmt.Sprintf("save %d", i.slot)
	case OpAssert:
		return fmt.Sprintf("assert %s", i.assert)
	default:
		return i.op.String()
	}
}

// Program is an immutable compiled matching program. Execution always
// enters at PC 0. A Program may be shared by any number of concurrent
// match calls; all mutable search state lives in the executors.
type Program struct {
	insts         []Inst
	numCaps       int
	anchoredStart bool
	anchoredEnd   bool
	prefixes      [][]byte
	mode          Mode
}

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.insts) }

// Inst returns the instruction at the given program counter.
// The counter must be in range; programs are validated at build time.
func (p *Program) Inst(pc PC) *Inst { return &p.insts[pc] }

// NumCaps returns the number of capture groups (group 0 is the whole
// match). Each group occupies two slots: start and end offset.
func (p *Program) NumCaps() int { return p.numCaps }

// NumSlots returns the number of capture slots (2 per group).
func (p *Program) NumSlots() int { return p.numCaps * 2 }

// AnchoredStart reports whether matches may only begin at the scan start.
func (p *Program) AnchoredStart() bool { return p.anchoredStart }

// AnchoredEnd reports whether matches must extend to the end of input.
func (p *Program) AnchoredEnd() bool { return p.anchoredEnd }

// Prefixes returns the required literal prefixes, if any. Every match is
// known to begin with one of these literals, which lets a prefilter skip
// start positions wholesale.
func (p *Program) Prefixes() [][]byte { return p.prefixes }

// Mode returns the input decoding mode.
func (p *Program) Mode() Mode { return p.mode }

// String returns a disassembly listing of the program.
func (p *Program) String() string {
	var b strings.Builder
	for pc := range p.insts {
		fmt.Fprintf(&b, "%3d: %s\n", pc, p.insts[pc].String())
	}
	return b.String()
}
