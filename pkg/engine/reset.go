package engine

import "sim6502/internal/consts"

// resetHoldHalfCycles is the number of half-cycles the reset protocol holds
// RES low before release (§4.6 step 4).
const resetHoldHalfCycles = consts.ResetHoldHalfCycles

// InitAndReset builds runtime state from def and immediately runs the reset
// protocol (§4.6), returning a Sim ready for Step (§6 "initAndReset").
func InitAndReset(def Definition, bus BusConfig, mem MemoryBus) (*Sim, error) {
	s, err := New(def, bus, mem)
	if err != nil {
		return nil, err
	}
	s.Reset()
	return s, nil
}

// Reset runs the reset protocol (§4.6): clears all node and transistor
// state, forces the control lines to their reset polarities, stabilizes,
// holds RES low for resetHoldHalfCycles half-cycles, releases RES, and
// re-stabilizes.
func (s *Sim) Reset() {
	s.value.Clear()
	s.on.Clear()

	s.pullup.Set(int(s.bus.RES), false)
	s.pulldown.Set(int(s.bus.RES), true)

	// Open question (§9): different historical revisions initialize CLK0
	// to opposite polarities before the reset hold. This follows
	// original_source/perfect6502.c's initChip(), which drives it low.
	s.pullup.Set(int(s.bus.CLK0), false)
	s.pulldown.Set(int(s.bus.CLK0), true)

	s.setHigh(s.bus.RDY)
	s.setLow(s.bus.SO)
	s.setHigh(s.bus.IRQ)
	s.setHigh(s.bus.NMI)

	s.Stabilize()

	for i := 0; i < resetHoldHalfCycles; i++ {
		s.Step()
	}

	s.setHigh(s.bus.RES)
	s.Stabilize()

	s.cycle = 0
}

func (s *Sim) setHigh(n int32) {
	s.pullup.Set(int(n), true)
	s.pulldown.Set(int(n), false)
	s.drive(n)
}

func (s *Sim) setLow(n int32) {
	s.pullup.Set(int(n), false)
	s.pulldown.Set(int(n), true)
	s.drive(n)
}

// Step advances one half-cycle (§4.7): inverts CLK0, re-propagates to
// quiescence, and — only on the falling half — performs one memory read or
// write driven by the address bus and R/W probes.
func (s *Sim) Step() {
	clk0High := s.IsNodeHigh(s.bus.CLK0)
	s.SetNode(s.bus.CLK0, !clk0High)
	s.cycle++

	if clk0High {
		// falling edge: CLK0 was high, now low.
		s.doMemory()
	}
}

func (s *Sim) doMemory() {
	if s.memory == nil {
		return
	}
	addr := uint16(s.ReadNodes(s.bus.AddressBus))
	if s.IsNodeHigh(s.bus.RW) {
		v := s.memory.Read(addr)
		s.WriteNodes(s.bus.DataBus, uint32(v))
	} else {
		v := byte(s.ReadNodes(s.bus.DataBus))
		s.memory.Write(addr, v)
	}
}
