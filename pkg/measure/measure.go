// Package measure implements the per-opcode instruction-measurement harness
// named in SPEC_FULL.md §11, grounded on original_source/measure.c: for
// each of the 256 opcode values, install a small trampoline program, run
// the chip until it reaches a sentinel BRK vector, and derive the
// instruction's length, cycle count, and addressing mode from what the
// address bus did along the way.
package measure

import (
	"sim6502/internal/consts"
	"sim6502/pkg/engine"
	"sim6502/pkg/memory"
	"sim6502/pkg/probe"
)

// Trampoline addresses and sentinel operand values, unchanged from
// original_source/measure.c so the magic numbers below line up with the
// reference implementation's reasoning.
const (
	maxCycles       = consts.MeasureMaxCycles
	setupAddr       = 0xF400
	instructionAddr = 0xF800
	brkVector       = 0xFC00
	brkLength       = 2 // BRK pushes PC+2 onto the stack

	magic8  = 0xEA
	magic16 = 0xAB1E
)

// AddrMode enumerates the addressing modes measure.c distinguishes by
// watching which sentinel address the instruction touches.
type AddrMode int

const (
	ModeUnknown AddrMode = iota
	ModeZP
	ModeAbs
)

// Report is one opcode's measured profile.
type Report struct {
	Opcode byte
	Crash  bool
	Length int
	Cycles int
	Mode   AddrMode
	Reads  bool
	Writes bool
}

// Harness drives a fresh engine.Sim through the trampoline protocol.
type Harness struct {
	def   engine.Definition
	bus   engine.BusConfig
	nodes probe.NodeMap
}

// New builds a measurement harness over the given netlist definition, bus
// configuration, and register NodeMap; each Profile call allocates its own
// Sim and Memory so runs don't interfere with each other.
func New(def engine.Definition, bus engine.BusConfig, nodes probe.NodeMap) *Harness {
	return &Harness{def: def, bus: bus, nodes: nodes}
}

// setupMemory installs the trampoline program at setupAddr: set S, set P,
// set A, set X, set Y, then JMP instructionAddr where the opcode under test
// sits, with the BRK/IRQ vector pointed at brkVector so a crashed or
// completed instruction loops harmlessly there (original_source/measure.c
// setup_memory).
func setupMemory(mem *memory.Memory, opcode byte) {
	mem.SetResetVector(setupAddr)

	addr := uint16(setupAddr)
	put := func(b byte) {
		mem.Poke(addr, b)
		addr++
	}
	put(0xA2) // LDX #$7F
	put(0x7F)
	put(0x9A) // TXS
	put(0xA9) // LDA #$00
	put(0x00)
	put(0x48) // PHA
	put(0xA9) // LDA #$00
	put(0x00)
	put(0xA2) // LDX #$00
	put(0x00)
	put(0xA0) // LDY #$00
	put(0x00)
	put(0x28) // PLP
	put(0x4C) // JMP instructionAddr
	put(byte(instructionAddr & 0xFF))
	put(byte(instructionAddr >> 8))

	mem.Poke(instructionAddr+0, opcode)
	mem.Poke(instructionAddr+1, 0)
	mem.Poke(instructionAddr+2, 0)
	mem.Poke(instructionAddr+3, 0)

	mem.Poke(0xFFFE, byte(brkVector&0xFF))
	mem.Poke(0xFFFF, byte(brkVector>>8))
	mem.Poke(brkVector, 0x00)
}

// Profile runs the trampoline protocol for a single opcode and returns its
// measured length, cycle count, and addressing mode.
func (h *Harness) Profile(opcode byte) (Report, error) {
	report := Report{Opcode: opcode}

	mem := memory.New()
	setupMemory(mem, opcode)
	sim, p, err := h.bootAndRunToBRK(mem)
	if err != nil {
		return report, err
	}
	if sim == nil {
		report.Crash = true
		return report, nil
	}

	brkAddr := uint16(mem.Peek(0x0100+uint16(p.ReadSP())+2)) |
		uint16(mem.Peek(0x0100+uint16(p.ReadSP())+3))<<8
	report.Length = int(brkAddr) - instructionAddr - brkLength

	mem2 := memory.New()
	setupMemory(mem2, opcode)
	sim2, p2, err := h.bootAndMeasureCycles(mem2)
	if err != nil {
		return report, err
	}
	report.Cycles = sim2.Cycle() / 2
	_ = p2

	mem3 := memory.New()
	setupMemory(mem3, opcode)
	if report.Length == 2 {
		mem3.Poke(instructionAddr+1, magic8)
	} else if report.Length == 3 {
		mem3.Poke(instructionAddr+1, byte(magic16&0xFF))
		mem3.Poke(instructionAddr+2, byte(magic16>>8))
	}
	sim3, p3, err := h.bootChip(mem3)
	if err != nil {
		return report, err
	}
	for i := 0; i < report.Cycles*2+2; i++ {
		sim3.Step()
		onReadWriteHalf := sim3.Cycle()&1 == 1
		if onReadWriteHalf && p3.ReadRW() {
			addr := p3.ReadAddressBus()
			if addr == magic8 {
				report.Mode = ModeZP
				report.Reads = true
			} else if addr == magic16 {
				report.Mode = ModeAbs
				report.Reads = true
			}
		}
		if onReadWriteHalf && !p3.ReadRW() {
			addr := p3.ReadAddressBus()
			if addr == magic8 || addr == magic16 {
				report.Writes = true
			}
		}
	}

	return report, nil
}

// ProfileAll runs Profile across every opcode value, 0x00 through 0xFF.
func (h *Harness) ProfileAll() ([256]Report, error) {
	var reports [256]Report
	for op := 0; op <= 0xFF; op++ {
		r, err := h.Profile(byte(op))
		if err != nil {
			return reports, err
		}
		reports[op] = r
	}
	return reports, nil
}

func (h *Harness) bootChip(mem *memory.Memory) (*engine.Sim, *probe.Probe, error) {
	sim, err := engine.InitAndReset(h.def, h.bus, mem)
	if err != nil {
		return nil, nil, err
	}
	p := probe.New(sim, h.nodes)
	return sim, p, nil
}

func (h *Harness) bootAndRunToBRK(mem *memory.Memory) (*engine.Sim, *probe.Probe, error) {
	sim, p, err := h.bootChip(mem)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < maxCycles; i++ {
		sim.Step()
		if sim.Cycle()&1 == 1 && p.ReadRW() && p.ReadAddressBus() == brkVector {
			return sim, p, nil
		}
	}
	return nil, nil, nil
}

func (h *Harness) bootAndMeasureCycles(mem *memory.Memory) (*engine.Sim, *probe.Probe, error) {
	sim, p, err := h.bootChip(mem)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < maxCycles; i++ {
		sim.Step()
		if p.ReadIR() == 0x00 {
			break
		}
	}
	return sim, p, nil
}
