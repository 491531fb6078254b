package vm

import (
	"fmt"

	"github.com/coregx/revm/internal/conv"
)

// Builder constructs Programs incrementally using a low-level API.
// It is the surface a compiler front end targets: each Add-style method
// appends one instruction and returns its PC, and forward references are
// resolved with PatchJmp/PatchSplit once the target exists.
//
// Build validates the finished program. Executors assume a well-formed
// Program, so validation happens exactly once, here.
type Builder struct {
	insts         []Inst
	numCaps       int
	anchoredStart bool
	anchoredEnd   bool
	prefixes      [][]byte
	mode          Mode
}

// NewBuilder creates an empty builder in codepoint mode.
func NewBuilder() *Builder {
	return &Builder{mode: ModeRunes}
}

// Char appends an instruction matching the literal codepoint r.
func (b *Builder) Char(r rune) PC {
	return b.push(Inst{op: OpChar, r: r})
}

// CharFold appends a case-insensitive literal instruction.
func (b *Builder) CharFold(r rune) PC {
	return b.push(Inst{op: OpChar, r: r, foldcase: true})
}

// Class appends an instruction matching any codepoint in ranges.
// The ranges are copied.
func (b *Builder) Class(ranges []RuneRange) PC {
	return b.push(Inst{op: OpClass, ranges: copyRanges(ranges)})
}

// ClassFold appends a case-insensitive class instruction.
func (b *Builder) ClassFold(ranges []RuneRange) PC {
	return b.push(Inst{op: OpClass, ranges: copyRanges(ranges), foldcase: true})
}

// Any appends an instruction matching any single codepoint.
func (b *Builder) Any() PC {
	return b.push(Inst{op: OpAny})
}

// Split appends a branch to two successors. x has priority over y.
// Use InvalidPC for targets that do not exist yet and patch them later.
func (b *Builder) Split(x, y PC) PC {
	return b.push(Inst{op: OpSplit, x: x, y: y})
}

// Jmp appends an unconditional jump.
func (b *Builder) Jmp(to PC) PC {
	return b.push(Inst{op: OpJmp, x: to})
}

// Save appends an instruction recording the current input offset into the
// given capture slot. Slot 2k is the start of group k, slot 2k+1 its end.
func (b *Builder) Save(slot int) PC {
	return b.push(Inst{op: OpSave, slot: slot})
}

// Assert appends a zero-width assertion.
func (b *Builder) Assert(a Assert) PC {
	return b.push(Inst{op: OpAssert, assert: a})
}

// Match appends the terminal match instruction.
func (b *Builder) Match() PC {
	return b.push(Inst{op: OpMatch})
}

// PatchJmp sets the target of a previously appended OpJmp.
// Patching any other opcode is a programmer error and panics.
func (b *Builder) PatchJmp(pc, to PC) {
	if b.insts[pc].op != OpJmp {
		panic(fmt.Sprintf("vm: PatchJmp on %s at pc %d", b.insts[pc].op, pc))
	}
	b.insts[pc].x = to
}

// PatchSplit sets the targets of a previously appended OpSplit.
// Patching any other opcode is a programmer error and panics.
func (b *Builder) PatchSplit(pc, x, y PC) {
	if b.insts[pc].op != OpSplit {
		panic(fmt.Sprintf("vm: PatchSplit on %s at pc %d", b.insts[pc].op, pc))
	}
	b.insts[pc].x = x
	b.insts[pc].y = y
}

// SetCaptureCount declares the number of capture groups, including the
// implicit group 0 for the whole match.
func (b *Builder) SetCaptureCount(n int) { b.numCaps = n }

// SetAnchoredStart declares whether matches may only begin at the scan
// start position.
func (b *Builder) SetAnchoredStart(anchored bool) { b.anchoredStart = anchored }

// SetAnchoredEnd declares whether matches must extend to the end of input.
func (b *Builder) SetAnchoredEnd(anchored bool) { b.anchoredEnd = anchored }

// SetPrefixes declares the required literal prefixes: every match begins
// with one of the given byte sequences. The literals are copied.
func (b *Builder) SetPrefixes(prefixes [][]byte) {
	b.prefixes = nil
	for _, p := range prefixes {
		cp := make([]byte, len(p))
		copy(cp, p)
		b.prefixes = append(b.prefixes, cp)
	}
}

// SetMode selects byte-wise or codepoint-wise input decoding.
func (b *Builder) SetMode(mode Mode) { b.mode = mode }

func (b *Builder) push(inst Inst) PC {
	pc := PC(conv.IntToUint32(len(b.insts)))
	b.insts = append(b.insts, inst)
	return pc
}

func copyRanges(ranges []RuneRange) []RuneRange {
	cp := make([]RuneRange, len(ranges))
	copy(cp, ranges)
	return cp
}

// Build validates the program and returns it. The builder may be reused
// afterwards; the returned Program does not alias builder state.
func (b *Builder) Build() (*Program, error) {
	if len(b.insts) == 0 {
		return nil, fmt.Errorf("vm: empty program")
	}

	last := PC(len(b.insts))
	hasMatch := false
	for pc, inst := range b.insts {
		switch inst.op {
		case OpMatch:
			hasMatch = true
		case OpSplit:
			if inst.x >= last || inst.y >= last {
				return nil, fmt.Errorf("vm: instruction %d: split target out of range (%d, %d)", pc, inst.x, inst.y)
			}
		case OpJmp:
			if inst.x >= last {
				return nil, fmt.Errorf("vm: instruction %d: jump target %d out of range", pc, inst.x)
			}
		case OpSave:
			if inst.slot < 0 || inst.slot >= b.numCaps*2 {
				return nil, fmt.Errorf("vm: instruction %d: capture slot %d out of range (have %d groups)", pc, inst.slot, b.numCaps)
			}
			fallthrough
		case OpChar, OpClass, OpAny, OpAssert:
			// These fall through to pc+1, which must exist.
			if PC(pc)+1 >= last {
				return nil, fmt.Errorf("vm: instruction %d: %s has no successor", pc, inst.op)
			}
		}
	}
	if !hasMatch {
		return nil, fmt.Errorf("vm: program has no match instruction")
	}

	insts := make([]Inst, len(b.insts))
	copy(insts, b.insts)
	return &Program{
		insts:         insts,
		numCaps:       b.numCaps,
		anchoredStart: b.anchoredStart,
		anchoredEnd:   b.anchoredEnd,
		prefixes:      b.prefixes,
		mode:          b.mode,
	}, nil
}

// MustBuild is like Build but panics on a malformed program.
// Intended for programs constructed from trusted, static descriptions.
func (b *Builder) MustBuild() *Program {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
