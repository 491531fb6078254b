package vm

// StepState is the outcome of executing one non-control instruction for
// one simulated thread. Both interpretation strategies decode consuming
// instructions through stepInst, so their instruction semantics cannot
// diverge; they differ only in control-flow management.
type StepState uint8

const (
	// StepContinue means the instruction accepted the current codepoint;
	// the thread advances past it to the next instruction.
	StepContinue StepState = iota

	// StepDead means the instruction rejected; no match lies down this
	// path and the thread dies.
	StepDead

	// StepMatched means the terminal match instruction was reached; the
	// thread's position is a candidate match end.
	StepMatched
)

// String returns a human-readable name for the state.
func (s StepState) String() string {
	switch s {
	case StepContinue:
		return "continue"
	case StepDead:
		return "dead"
	case StepMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// stepInst decodes one non-control instruction against the current
// codepoint. haveChar is false at the end of input, where no consuming
// instruction can succeed. Control-flow instructions (split, jmp, save,
// assert) never reach here; they are expanded by each strategy's closure.
func stepInst(inst *Inst, r rune, haveChar bool) StepState {
	switch inst.op {
	case OpMatch:
		return StepMatched
	case OpChar, OpClass, OpAny:
		if haveChar && inst.MatchesRune(r) {
			return StepContinue
		}
		return StepDead
	}
	return StepDead
}
