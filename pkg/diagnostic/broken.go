// Package diagnostic implements the broken-transistor regression scenario
// from SPEC_FULL.md §8 (S5), grounded on
// original_source/broken_transistors.c: capture a golden half-cycle trace
// from a known-good run, then replay the same program once per transistor
// with that single transistor forced off, reporting the first half-cycle
// where the bus trace diverges from golden.
package diagnostic

import (
	"fmt"

	"sim6502/internal/consts"
	"sim6502/pkg/engine"
	"sim6502/pkg/probe"
)

// Trace records one run's bus activity, one entry per half-cycle.
type Trace struct {
	RW   []bool
	Addr []uint16
	Data []byte
}

// DefaultTraceHalfCycles is the golden-trace length broken_transistors.c
// uses (consts.BrokenTransistorTraceHalfCycles), long enough to exercise a
// full BASIC warm-up under the real 6502 netlist. Callers running against
// the small synthetic fixtures in pkg/netlist/testdata should pass a much
// shorter length to Capture/Replay instead.
const DefaultTraceHalfCycles = consts.BrokenTransistorTraceHalfCycles

// Capture runs halfCycles steps from a freshly reset sim and records the
// bus trace, matching the run == -1 branch of broken_transistors.c's main
// loop.
func Capture(sim *engine.Sim, p *probe.Probe, halfCycles int) Trace {
	tr := Trace{
		RW:   make([]bool, halfCycles),
		Addr: make([]uint16, halfCycles),
		Data: make([]byte, halfCycles),
	}
	for c := 0; c < halfCycles; c++ {
		sim.Step()
		tr.RW[c] = p.ReadRW()
		tr.Addr[c] = p.ReadAddressBus()
		tr.Data[c] = p.ReadDataBus()
	}
	return tr
}

// Divergence describes where a replay run first departed from the golden
// trace.
type Divergence struct {
	HalfCycle int
	Field     string
	Got, Want fmt.Stringer
}

type hexWord uint16
type hexByte byte
type boolVal bool

func (v hexWord) String() string { return fmt.Sprintf("0x%04x", uint16(v)) }
func (v hexByte) String() string { return fmt.Sprintf("0x%02x", byte(v)) }
func (v boolVal) String() string { return fmt.Sprintf("%v", bool(v)) }

// Replay runs halfCycles steps from a freshly reset sim with brokenTransistor
// forced off (sim.BrokenTransistor) and compares every half-cycle's bus
// state against golden, returning the first divergence found, if any.
func Replay(sim *engine.Sim, p *probe.Probe, golden Trace, brokenTransistor int) (pass bool, div *Divergence) {
	sim.BrokenTransistor = brokenTransistor
	halfCycles := len(golden.RW)
	for c := 0; c < halfCycles; c++ {
		sim.Step()
		gotRW := p.ReadRW()
		if gotRW != golden.RW[c] {
			return false, &Divergence{HalfCycle: c, Field: "RW", Got: boolVal(gotRW), Want: boolVal(golden.RW[c])}
		}
		gotAddr := p.ReadAddressBus()
		if gotAddr != golden.Addr[c] {
			return false, &Divergence{HalfCycle: c, Field: "AB", Got: hexWord(gotAddr), Want: hexWord(golden.Addr[c])}
		}
		gotData := p.ReadDataBus()
		if gotData != golden.Data[c] {
			return false, &Divergence{HalfCycle: c, Field: "DB", Got: hexByte(gotData), Want: hexByte(golden.Data[c])}
		}
	}
	return true, nil
}

// Result is one transistor's pass/fail outcome from a full sweep.
type Result struct {
	Transistor int32
	Pass       bool
	Divergence *Divergence
}

// Sweep runs Replay once per transistor in the netlist (0..sim.NTrans()-1),
// rebuilding the chip fresh for each run via reset so that forcing one
// transistor off never contaminates the next run — matching
// broken_transistors.c's per-transistor resetChip() call. reset is called
// once first only to learn the transistor count, and then once per
// candidate transistor; golden comes from the caller's own unbroken Capture.
func Sweep(reset func() (*engine.Sim, *probe.Probe), golden Trace) []Result {
	var results []Result
	sim0, _ := reset()
	total := sim0.NTrans()
	sim0.Destroy()

	for t := int32(0); t < int32(total); t++ {
		sim, p := reset()
		pass, div := Replay(sim, p, golden, int(t))
		results = append(results, Result{Transistor: t, Pass: pass, Divergence: div})
		sim.Destroy()
	}
	return results
}
