// Package hostio implements the host-side character-I/O and firmware-trap
// collaborators named in SPEC_FULL.md §11: KERNAL trap dispatch for the CBM
// BASIC host, and PIA-mapped character I/O for the Apple-I BASIC host.
// Both are "external collaborators" per §1 — the engine only knows about
// nodes and transistors; these packages intercept at the probe/memory layer
// the same way original_source/cbmbasic/runtime_init.c and
// original_source/apple1basic/apple1basic.c do.
package hostio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"sim6502/pkg/memory"
	"sim6502/pkg/probe"
)

// KERNAL jump-table geometry, grounded on
// original_source/cbmbasic/runtime_init.c::init_monitor: entries run from
// jumpTableBase to jumpTableBase+jumpTableEntries*3, one JMP trampoline
// entry of 3 bytes apiece.
const (
	jumpTableBase    = 0xFF90
	jumpTableEntries = 35
	trampolineAddr   = 0xF800
	benchmarkExitPC  = 0xFFCF

	opJMP = 0x4C
	opRTS = 0x60
)

// Routine is a single KERNAL call implementation: given the register probe
// and memory, it performs the call's effect (I/O, memory fixups) and
// reports the accumulator value (if any) to leave behind for the trampoline
// to restore.
type Routine func(p *probe.Probe, mem *memory.Memory) (a byte)

// CBM is the CBM BASIC host's KERNAL trap dispatcher.
type CBM struct {
	routines [jumpTableEntries]Routine
	Out      io.Writer
	In       *bufio.Reader

	// BenchmarkMode, when true, causes Dispatch to report an exit once PC
	// reaches benchmarkExitPC, mirroring the --benchmark CLI flag (§6, §12).
	BenchmarkMode bool
}

// NewCBM builds a CBM dispatcher with the default CHROUT/GETIN routines
// installed at the indices original_source/cbmbasic uses, writing to stdout
// and reading from stdin.
func NewCBM() *CBM {
	c := &CBM{Out: os.Stdout, In: bufio.NewReader(os.Stdin)}
	const chroutIndex = (0xFFD2 - jumpTableBase) / 3 // $FFD2
	const getinIndex = (0xFFE4 - jumpTableBase) / 3  // $FFE4
	c.routines[chroutIndex] = c.chrout
	c.routines[getinIndex] = c.getin
	return c
}

// InstallJumpTable writes the KERNAL jump-table trampolines into mem: each
// of jumpTableEntries slots holds "JMP trampolineAddr" so that an
// instruction fetch landing on a jump-table entry transfers control to the
// single shared trampoline, which Dispatch intercepts by PC (§11).
func (c *CBM) InstallJumpTable(mem *memory.Memory) {
	for i := 0; i < jumpTableEntries; i++ {
		addr := uint16(jumpTableBase + i*3)
		mem.Poke(addr, opJMP)
		mem.Poke(addr+1, byte(trampolineAddr&0xFF))
		mem.Poke(addr+2, byte(trampolineAddr>>8))
	}
	mem.Poke(trampolineAddr, opRTS)
}

// Dispatch is called once per instruction fetch by the host loop. If pc
// falls on a jump-table entry, it runs the corresponding routine and
// rewrites the trampoline at trampolineAddr as "LDA #a; RTS", so the CPU,
// after the entry's JMP, loads the routine's accumulator result and returns
// to the caller; no other register is restored. It
// reports (true, code) when the benchmark exit condition fires.
func (c *CBM) Dispatch(pc uint16, p *probe.Probe, mem *memory.Memory) (exit bool, code int) {
	if c.BenchmarkMode && pc == benchmarkExitPC {
		return true, 0
	}
	if pc < jumpTableBase || pc >= jumpTableBase+jumpTableEntries*3 {
		return false, 0
	}
	if (pc-jumpTableBase)%3 != 0 {
		return false, 0
	}
	idx := int(pc-jumpTableBase) / 3
	routine := c.routines[idx]
	if routine == nil {
		return false, 0
	}
	a := routine(p, mem)
	mem.Poke(trampolineAddr, 0xA9) // LDA #imm
	mem.Poke(trampolineAddr+1, a)
	mem.Poke(trampolineAddr+2, opRTS)
	return false, 0
}

func (c *CBM) chrout(p *probe.Probe, mem *memory.Memory) byte {
	fmt.Fprintf(c.Out, "%c", p.ReadA())
	return p.ReadA()
}

func (c *CBM) getin(p *probe.Probe, mem *memory.Memory) byte {
	b, err := c.In.ReadByte()
	if err != nil {
		return 0
	}
	return b
}
