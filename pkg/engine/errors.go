package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned across the engine boundary. The engine never
// panics on bad input; setup-time problems are reported through these and
// are fatal to the caller, while ErrPropagationCapped is a diagnostic that
// the engine reports but swallows — the state remains usable.
var (
	// ErrBadNetlist is returned from New when a transistor record
	// references a node index outside [0, nNodes).
	ErrBadNetlist = errors.New("engine: transistor references out-of-range node")

	// ErrPropagationCapped is reported (never returned to the setup
	// caller) when the worklist driver hits its iteration cap without
	// reaching quiescence. It reaches callers only through a Sim's
	// Diagnostic hook, or its Logger when no hook is set, matching §7's "reported to diagnostic channel,
	// then swallowed" — Step/Stabilize/SetNode never return it.
	ErrPropagationCapped = errors.New("engine: worklist driver exceeded iteration cap")
)

// netlistError wraps ErrBadNetlist with the offending record for diagnosis.
type netlistError struct {
	transistor int
	field      string
	node       int32
	nNodes     int
}

func (e *netlistError) Error() string {
	return fmt.Sprintf("engine: transistor %d field %s references node %d but netlist has %d nodes",
		e.transistor, e.field, e.node, e.nNodes)
}

func (e *netlistError) Unwrap() error { return ErrBadNetlist }
