// Package revm is a regular-expression execution engine: it runs compiled
// matching programs against an input haystack and reports whether, where,
// and with which captured sub-ranges they match.
//
// revm is the back half of a regex implementation. Everything upstream
// (pattern parsing, AST-to-program compilation, literal optimization) is a
// separate collaborator that hands this engine a finished vm.Program; revm
// never sees pattern syntax.
//
// Two interpretation strategies share one instruction set:
//
//   - a breadth-first simultaneous-thread simulation (vm.PikeVM) with no
//     backtracking and guaranteed linear-time execution, used for
//     existence and bounds queries
//   - a depth-first backtracking interpreter (vm.Backtracker) with a step
//     budget, used when exact capture-group bounds are required
//
// The Engine selects between them per call based on the requested
// MatchKind. Both reuse the same CharReader, case-fold table, and literal
// prefilter collaborators, and conformance tests hold them to identical
// match boundaries.
//
// Basic usage:
//
//	b := vm.NewBuilder()
//	b.Char('a')
//	b.Match()
//	prog := b.MustBuild()
//
//	eng := revm.New(prog)
//	out, err := eng.Run([]byte("xyzabc"), 0, revm.MatchBounds)
//	// out.Matched == true, out.Start == 3, out.End == 4
package revm

import (
	"fmt"

	"github.com/coregx/revm/prefilter"
	"github.com/coregx/revm/vm"
)

// MatchKind selects how much work a match call performs. The engine never
// does more than the requested kind needs.
type MatchKind uint8

const (
	// MatchExists asks only whether a match exists; the search stops at
	// the first completing thread.
	MatchExists MatchKind = iota

	// MatchBounds asks for the leftmost-first match bounds.
	MatchBounds

	// MatchCaptures asks for leftmost-first bounds plus exact bounds of
	// every capture group.
	MatchCaptures
)

// String returns a human-readable name for the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchExists:
		return "exists"
	case MatchBounds:
		return "bounds"
	case MatchCaptures:
		return "captures"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Outcome is the result of one match call. A no-match is a normal outcome,
// not an error: Matched is false and the bounds are -1. For MatchExists
// the bounds carry no meaning beyond Matched. Captures is populated only
// for MatchCaptures, as [start0, end0, start1, end1, ...] with -1 for
// unset slots.
type Outcome struct {
	Matched    bool
	Start, End int
	Captures   []int
}

// Config carries engine-level options.
type Config struct {
	// Strict makes malformed UTF-8 in the haystack a reported failure
	// (vm.ErrInvalidUTF8) instead of decoding it as U+FFFD. The failure
	// surfaces when a search examines the malformed position; a match
	// completing before it is unaffected. Only meaningful for programs
	// in vm.ModeRunes.
	Strict bool

	// MaxSteps bounds the work of the backtracking strategy; exceeding
	// it surfaces as vm.ErrMatchLimitExceeded. Zero means
	// vm.DefaultMaxSteps. The simulation strategy has no unbounded-work
	// hazard and ignores it.
	MaxSteps int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{MaxSteps: vm.DefaultMaxSteps}
}

// Engine runs one compiled program. It owns both interpretation
// strategies, a literal prefilter built from the program's declared
// prefixes, and the configuration. An Engine is immutable after New and
// safe for concurrent Run calls: all per-search state lives inside each
// call.
type Engine struct {
	prog *vm.Program
	cfg  Config
	pike *vm.PikeVM
	back *vm.Backtracker
}

// New creates an engine with the default configuration.
func New(prog *vm.Program) *Engine {
	return NewWithConfig(prog, DefaultConfig())
}

// NewWithConfig creates an engine with the given configuration.
func NewWithConfig(prog *vm.Program, cfg Config) *Engine {
	pf := prefilter.Build(prog.Prefixes())

	pike := vm.NewPikeVM(prog)
	pike.SetPrefilter(pf)
	pike.SetStrict(cfg.Strict)

	back := vm.NewBacktracker(prog)
	back.SetPrefilter(pf)
	back.SetStrict(cfg.Strict)
	back.SetMaxSteps(cfg.MaxSteps)

	return &Engine{prog: prog, cfg: cfg, pike: pike, back: back}
}

// Program returns the engine's compiled program.
func (e *Engine) Program() *vm.Program { return e.prog }

// Run executes one match call against haystack starting at byte offset
// 'at'. The strategy is picked per call: MatchCaptures dispatches to the
// backtracking interpreter for exact capture semantics, everything else to
// the linear-time simulation.
//
// A no-match returns Outcome{Matched: false} and a nil error. A non-nil
// error (vm.ErrMatchLimitExceeded, vm.ErrInvalidUTF8 in strict mode) means
// the engine could not finish, which callers must distinguish from
// "definitely does not match".
func (e *Engine) Run(haystack []byte, at int, kind MatchKind) (Outcome, error) {
	switch kind {
	case MatchExists:
		ok, err := e.pike.IsMatch(haystack, at)
		if err != nil {
			return noMatch(), err
		}
		return Outcome{Matched: ok, Start: -1, End: -1}, nil

	case MatchCaptures:
		res, err := e.back.Search(haystack, at)
		if err != nil {
			return noMatch(), err
		}
		return fromResult(res), nil

	default:
		res, err := e.pike.Search(haystack, at)
		if err != nil {
			return noMatch(), err
		}
		return fromResult(res), nil
	}
}

// Run compiles no state beyond a throwaway Engine; it is a convenience for
// one-shot calls. Reuse an Engine when running the same program against
// many haystacks, so the prefilter is built once.
func Run(prog *vm.Program, haystack []byte, at int, kind MatchKind) (Outcome, error) {
	return New(prog).Run(haystack, at, kind)
}

func noMatch() Outcome {
	return Outcome{Start: -1, End: -1}
}

func fromResult(r vm.Result) Outcome {
	if !r.Matched {
		return noMatch()
	}
	return Outcome{Matched: true, Start: r.Start, End: r.End, Captures: r.Caps}
}
