package vm

import (
	"github.com/coregx/revm/internal/sparse"
	"github.com/coregx/revm/prefilter"
)

// Result describes the outcome of one search. A non-match has Matched
// false and -1 bounds. Caps, when requested and tracked, holds capture
// slot offsets ([start0, end0, start1, end1, ...], -1 = unset).
type Result struct {
	Matched    bool
	Start, End int
	Caps       []int
}

// PikeVM executes a Program by breadth-first simultaneous-thread
// simulation. At every input position it holds the set of live threads,
// merged by program counter, and advances them all over the current
// codepoint at once. It never backtracks: runtime is bounded by
// program length x input length regardless of the pattern, so it needs
// no step budget.
//
// Threads here are NFA states under simulation, not units of parallel
// execution. A PikeVM itself is immutable after configuration; every
// search call allocates its own mutable state, so one PikeVM may serve
// concurrent searches.
type PikeVM struct {
	prog   *Program
	pf     prefilter.Prefilter
	strict bool
}

// NewPikeVM creates a simulation executor for the given program.
func NewPikeVM(prog *Program) *PikeVM {
	return &PikeVM{prog: prog}
}

// SetPrefilter installs a literal prefilter used to skip scan start
// positions that cannot begin a match. A nil prefilter scans every
// position.
func (p *PikeVM) SetPrefilter(pf prefilter.Prefilter) { p.pf = pf }

// SetStrict makes malformed UTF-8 a reported failure instead of decoding
// it as U+FFFD. The failure surfaces when a search examines the malformed
// position; a match completing before it is unaffected. Only meaningful
// in ModeRunes.
func (p *PikeVM) SetStrict(strict bool) { p.strict = strict }

// IsMatch reports whether the program matches anywhere at or after 'at'.
// It stops at the first completing thread without computing bounds.
func (p *PikeVM) IsMatch(haystack []byte, at int) (bool, error) {
	r, err := p.run(haystack, at, true, false)
	return r.Matched, err
}

// Search returns the leftmost-first match bounds at or after 'at'.
func (p *PikeVM) Search(haystack []byte, at int) (Result, error) {
	return p.run(haystack, at, false, false)
}

// SearchWithCaptures is Search with capture slots tracked per thread.
// Slot contents follow the highest-priority completing thread; for exact
// nested-capture semantics under backtracking, use Backtracker.
func (p *PikeVM) SearchWithCaptures(haystack []byte, at int) (Result, error) {
	return p.run(haystack, at, false, true)
}

// pthread is one live execution position in the simulation: a program
// counter plus this thread's view of the capture slots.
type pthread struct {
	pc    PC
	start int
	caps  []int
}

// pikeState is the per-search mutable state: the closed thread list for
// the current position, the carried-over successors awaiting closure at
// the next position, the closure worklist, and the duplicate-PC filter.
type pikeState struct {
	queue       []pthread
	pending     []pthread
	nextPending []pthread
	stack       []pthread
	seen        *sparse.Set
}

func newPikeState(prog *Program) *pikeState {
	capacity := prog.Len()
	if capacity < 16 {
		capacity = 16
	}
	return &pikeState{
		queue:       make([]pthread, 0, capacity),
		pending:     make([]pthread, 0, capacity),
		nextPending: make([]pthread, 0, capacity),
		stack:       make([]pthread, 0, capacity),
		seen:        sparse.NewSet(uint32(prog.Len())),
	}
}

// addThread expands a thread through control-flow instructions at the
// reader's current position and appends the surviving consuming/match
// threads to the queue in priority order.
//
// The closure is loop-based with an explicit worklist: split pushes its
// low-priority branch and continues with the high-priority one, so the
// high-priority subtree is enumerated first. Threads landing on an
// already-seen program counter are merged away; the first arrival has the
// higher priority and wins.
//
// An assertion examines the codepoint window, so a strict reader with a
// malformed sequence at the current position fails the search here.
func (p *PikeVM) addThread(st *pikeState, t pthread, cr *CharReader) error {
	st.stack = append(st.stack[:0], t)
	for len(st.stack) > 0 {
		n := len(st.stack) - 1
		th := st.stack[n]
		st.stack = st.stack[:n]

		if !st.seen.Insert(uint32(th.pc)) {
			continue
		}

		inst := p.prog.Inst(th.pc)
		switch inst.op {
		case OpSplit:
			x, y := inst.Split()
			st.stack = append(st.stack,
				pthread{pc: y, start: th.start, caps: th.caps},
				pthread{pc: x, start: th.start, caps: th.caps})
		case OpJmp:
			st.stack = append(st.stack, pthread{pc: inst.Jmp(), start: th.start, caps: th.caps})
		case OpSave:
			caps := th.caps
			if caps != nil {
				caps = copySlots(caps)
				caps[inst.Slot()] = cr.Pos()
			}
			st.stack = append(st.stack, pthread{pc: th.pc + 1, start: th.start, caps: caps})
		case OpAssert:
			if err := cr.Err(); err != nil {
				return err
			}
			if assertHolds(inst.Assert(), cr) {
				st.stack = append(st.stack, pthread{pc: th.pc + 1, start: th.start, caps: th.caps})
			}
		default:
			st.queue = append(st.queue, th)
		}
	}
	return nil
}

// run drives the simulation. For each input position it closes over the
// carried threads, seeds a fresh start thread while no match is recorded,
// then steps every live thread over the current codepoint in priority
// order. A completing thread records the candidate and cuts all
// lower-priority threads at that position, which implements leftmost-first
// alternation semantics; higher-priority survivors may still extend or
// override the record at later positions.
func (p *PikeVM) run(haystack []byte, at int, exists, wantCaps bool) (Result, error) {
	noMatch := Result{Start: -1, End: -1}
	if at < 0 || at > len(haystack) {
		return noMatch, nil
	}

	anchored := p.prog.anchoredStart
	startAt := at
	if !anchored && p.pf != nil {
		cand := p.pf.Find(haystack, at)
		if cand < 0 {
			return noMatch, nil
		}
		startAt = cand
	}

	cr := NewCharReader(haystack, p.prog.mode, p.strict)
	cr.Reset(startAt)

	st := newPikeState(p.prog)
	best := noMatch
	matched := false

	for {
		pos := cr.Pos()

		st.seen.Clear()
		st.queue = st.queue[:0]
		for _, t := range st.pending {
			if err := p.addThread(st, t, cr); err != nil {
				return noMatch, err
			}
		}
		st.pending = st.pending[:0]
		if !matched && (!anchored || pos == startAt) {
			seed := pthread{pc: 0, start: pos}
			if wantCaps && p.prog.NumSlots() > 0 {
				seed.caps = newSlots(p.prog.NumSlots())
			}
			if err := p.addThread(st, seed, cr); err != nil {
				return noMatch, err
			}
		}

		// A strict decode error surfaces only when a thread examines the
		// malformed position: a consuming instruction stepped here fails
		// the search, while a completing thread (or none at all) never
		// touches the bytes and the error stays latent. The backtracker
		// examines positions the same way, so both strategies agree on
		// which searches fail.
		cur, haveChar := cr.Cur()
		posErr := cr.Err()
		for i := 0; i < len(st.queue); i++ {
			t := st.queue[i]
			inst := p.prog.Inst(t.pc)
			if posErr != nil && inst.op != OpMatch {
				return noMatch, posErr
			}
			switch stepInst(inst, cur, haveChar) {
			case StepMatched:
				if p.prog.anchoredEnd && !cr.AtEnd() {
					continue
				}
				best = Result{Matched: true, Start: t.start, End: pos, Caps: copySlots(t.caps)}
				matched = true
				if exists {
					return best, nil
				}
				// Everything after t in the queue has lower priority
				// and can no longer win.
				i = len(st.queue)
			case StepContinue:
				st.nextPending = append(st.nextPending, pthread{pc: t.pc + 1, start: t.start, caps: t.caps})
			}
		}

		if cr.AtEnd() {
			break
		}

		if len(st.nextPending) == 0 {
			// No live threads survive this position. Once a match is
			// recorded (or the program is anchored) there is nothing
			// left to do; otherwise skip the scan ahead to the next
			// prefilter candidate instead of reseeding everywhere.
			if matched || anchored {
				break
			}
			if p.pf != nil {
				next := pos + cr.Width()
				cand := p.pf.Find(haystack, next)
				if cand < 0 {
					break
				}
				if cand > next {
					cr.Reset(cand)
					continue
				}
			}
		}

		cr.Advance()
		st.pending, st.nextPending = st.nextPending, st.pending[:0]
	}

	return best, nil
}

// newSlots returns a capture slot array with every slot unset.
func newSlots(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = -1
	}
	return s
}

// copySlots returns an independent copy of a slot array, or nil for nil.
func copySlots(s []int) []int {
	if s == nil {
		return nil
	}
	cp := make([]int, len(s))
	copy(cp, s)
	return cp
}
