// Package consts holds tuning constants shared across packages, mirroring
// the teacher's internal/consts (previously physical constants consumed by
// the analog device models; now the digital engine's timing and safety
// bounds consumed by pkg/engine and its callers).
package consts

const (
	// MaxWorklistPasses is the ping-pong worklist driver's iteration cap
	// (SPEC_FULL.md §4.4, §9 "Iteration cap's meaning").
	MaxWorklistPasses = 50

	// ResetHoldHalfCycles is how long the reset protocol holds RES low
	// before release (§4.6 step 4).
	ResetHoldHalfCycles = 16

	// MeasureMaxCycles bounds how many half-cycles the instruction
	// measurement harness runs before declaring an opcode crashed
	// (original_source/measure.c's MAX_CYCLES).
	MeasureMaxCycles = 100

	// BrokenTransistorTraceHalfCycles is the golden-trace length used by the
	// broken-transistor regression (original_source/broken_transistors.c's
	// MAX_CYCLES).
	BrokenTransistorTraceHalfCycles = 33000
)
