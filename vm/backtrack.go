package vm

import (
	"unicode/utf8"

	"github.com/coregx/revm/prefilter"
)

// DefaultMaxSteps is the default step budget for the backtracking
// strategy. One step is one executed instruction.
const DefaultMaxSteps = 1 << 20

// maxVisitedBits caps the memory spent on the visited bit vector
// (instructions x positions). Searches over larger products run on the
// step budget alone.
const maxVisitedBits = 256 * 1024 * 8

// Backtracker executes a Program by prioritized depth-first
// interpretation with an explicit continuation stack. It is the strategy
// of choice when exact, nested capture-group bounds are required: the
// capture slots it returns correspond to the single path the leftmost-first
// semantics select.
//
// Pathological patterns can make depth-first interpretation exponential, so
// every search is bounded by a step budget; exhausting it surfaces as
// ErrMatchLimitExceeded, never as a silent no-match. A visited bit vector
// over (instruction, position) pairs additionally prunes rework without
// changing which match is found: the first visit always belongs to the
// highest-priority path.
//
// Like PikeVM, a Backtracker is immutable after configuration and may
// serve concurrent searches; per-search state is allocated per call.
type Backtracker struct {
	prog     *Program
	pf       prefilter.Prefilter
	strict   bool
	maxSteps int
}

// NewBacktracker creates a backtracking executor with the default step
// budget.
func NewBacktracker(prog *Program) *Backtracker {
	return &Backtracker{prog: prog, maxSteps: DefaultMaxSteps}
}

// SetPrefilter installs a literal prefilter used to skip start positions.
func (b *Backtracker) SetPrefilter(pf prefilter.Prefilter) { b.pf = pf }

// SetStrict makes malformed UTF-8 a reported failure instead of decoding
// it as U+FFFD. The failure surfaces when a search examines the malformed
// position; a match completing before it is unaffected. Only meaningful
// in ModeRunes.
func (b *Backtracker) SetStrict(strict bool) { b.strict = strict }

// SetMaxSteps overrides the step budget. Values < 1 restore the default.
func (b *Backtracker) SetMaxSteps(n int) {
	if n < 1 {
		n = DefaultMaxSteps
	}
	b.maxSteps = n
}

// btFrame is one suspended continuation: resume interpretation at pc with
// the input at pos and the given capture snapshot.
type btFrame struct {
	pc   PC
	pos  int
	caps []int
}

// btState is the per-search mutable state.
type btState struct {
	cr      *CharReader
	stack   []btFrame
	visited []uint64 // nil when the haystack is too large to map
	stride  int      // positions per instruction row in visited
	steps   int
}

// Search returns the leftmost-first match at or after 'at', with exact
// capture slots when the program declares capture groups.
func (b *Backtracker) Search(haystack []byte, at int) (Result, error) {
	noMatch := Result{Start: -1, End: -1}
	if at < 0 || at > len(haystack) {
		return noMatch, nil
	}

	st := &btState{
		cr:     NewCharReader(haystack, b.prog.mode, b.strict),
		stride: len(haystack) + 1,
	}
	if bits := b.prog.Len() * st.stride; bits <= maxVisitedBits {
		st.visited = make([]uint64, (bits+63)/64)
	}

	// Anchored programs get exactly one start position. Unanchored scans
	// retry at successive positions, jumping over prefilter-rejected
	// spans. In rune mode retries advance a whole codepoint at a time so
	// attempts are seeded at the same positions the simulation visits,
	// never inside a multi-byte sequence.
	for start := at; start <= len(haystack); start = b.nextStart(haystack, start) {
		if !b.prog.anchoredStart && b.pf != nil {
			cand := b.pf.Find(haystack, start)
			if cand < 0 {
				return noMatch, nil
			}
			start = cand
		}

		res, err := b.tryAt(st, haystack, start)
		if err != nil {
			return noMatch, err
		}
		if res.Matched {
			return res, nil
		}
		if b.prog.anchoredStart {
			return noMatch, nil
		}

		// The visited vector is per start position: a (pc, pos) pair
		// that failed from one start may succeed from another.
		for i := range st.visited {
			st.visited[i] = 0
		}
	}
	return noMatch, nil
}

// nextStart returns the scan position following a failed attempt at
// start. Malformed sequences decode with width 1, so every byte of them
// is retried, matching the reader's own stepping.
func (b *Backtracker) nextStart(haystack []byte, start int) int {
	if b.prog.mode == ModeRunes && start < len(haystack) {
		_, w := utf8.DecodeRune(haystack[start:])
		return start + w
	}
	return start + 1
}

// tryAt runs the depth-first interpretation from one start position.
// Split pushes its low-priority branch as a continuation and follows the
// high-priority branch immediately, so the first completed path is the
// leftmost-first one.
func (b *Backtracker) tryAt(st *btState, haystack []byte, start int) (Result, error) {
	var caps []int
	if b.prog.NumSlots() > 0 {
		caps = newSlots(b.prog.NumSlots())
	}

	st.stack = append(st.stack[:0], btFrame{pc: 0, pos: start, caps: caps})

	for len(st.stack) > 0 {
		n := len(st.stack) - 1
		f := st.stack[n]
		st.stack = st.stack[:n]

		pc, pos, caps := f.pc, f.pos, f.caps
	path:
		for {
			st.steps++
			if st.steps > b.maxSteps {
				return Result{}, ErrMatchLimitExceeded
			}
			if !b.shouldVisit(st, pc, pos) {
				break path
			}

			inst := b.prog.Inst(pc)
			switch inst.op {
			case OpMatch:
				if b.prog.anchoredEnd && pos != len(haystack) {
					break path
				}
				return Result{Matched: true, Start: start, End: pos, Caps: caps}, nil

			case OpChar, OpClass, OpAny:
				st.cr.Reset(pos)
				if err := st.cr.Err(); err != nil {
					return Result{}, err
				}
				r, ok := st.cr.Cur()
				if stepInst(inst, r, ok) != StepContinue {
					break path
				}
				pos += st.cr.Width()
				pc++

			case OpJmp:
				pc = inst.Jmp()

			case OpSplit:
				x, y := inst.Split()
				st.stack = append(st.stack, btFrame{pc: y, pos: pos, caps: copySlots(caps)})
				pc = x

			case OpSave:
				if caps != nil {
					caps = copySlots(caps)
					caps[inst.Slot()] = pos
				}
				pc++

			case OpAssert:
				st.cr.Reset(pos)
				if err := st.cr.Err(); err != nil {
					return Result{}, err
				}
				if !assertHolds(inst.Assert(), st.cr) {
					break path
				}
				pc++
			}
		}
	}
	return Result{Start: -1, End: -1}, nil
}

// shouldVisit marks (pc, pos) visited and reports whether it was new.
// With the bit vector unavailable it always reports true and the step
// budget alone bounds the search.
func (b *Backtracker) shouldVisit(st *btState, pc PC, pos int) bool {
	if st.visited == nil {
		return true
	}
	idx := int(pc)*st.stride + pos
	word, bit := idx/64, uint64(1)<<(idx%64)
	if st.visited[word]&bit != 0 {
		return false
	}
	st.visited[word] |= bit
	return true
}
