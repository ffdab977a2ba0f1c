// Package probe implements the 6502-specific probe facade (SPEC_FULL.md
// §6), a thin layer of named node bundles built entirely on top of the
// engine's generic ReadNodes/WriteNodes/IsNodeHigh primitives. It holds no
// simulation state of its own; every call delegates straight to the
// *engine.Sim it was built from.
//
// Grounded on original_source/perfect6502.c's readA/readX/readY/readPC/
// readNOTIR/chipStatus functions, translated from fixed global node-number
// arrays into an explicit NodeMap so the facade works for any netlist
// layout, not just one hardcoded chip revision.
package probe

import (
	"fmt"

	"sim6502/pkg/engine"
)

// NodeMap names the node bundles the 6502 probe facade reads. Each slice is
// ordered LSB first, as required by engine.ReadNodes/WriteNodes.
type NodeMap struct {
	PC         []int32 // 16 nodes
	A, X, Y    []int32 // 8 nodes each
	SP, P      []int32 // 8 nodes each
	IR         []int32 // 8 nodes; this net is inverted on the die (see ReadIR)
}

// Probe is the 6502 probe facade over a running engine.Sim.
type Probe struct {
	sim   *engine.Sim
	nodes NodeMap
}

// New builds a Probe over sim using the given node bundle map.
func New(sim *engine.Sim, nodes NodeMap) *Probe {
	return &Probe{sim: sim, nodes: nodes}
}

func (p *Probe) ReadPC() uint16 { return uint16(p.sim.ReadNodes(p.nodes.PC)) }
func (p *Probe) ReadA() byte    { return byte(p.sim.ReadNodes(p.nodes.A)) }
func (p *Probe) ReadX() byte    { return byte(p.sim.ReadNodes(p.nodes.X)) }
func (p *Probe) ReadY() byte    { return byte(p.sim.ReadNodes(p.nodes.Y)) }
func (p *Probe) ReadSP() byte   { return byte(p.sim.ReadNodes(p.nodes.SP)) }
func (p *Probe) ReadP() byte    { return byte(p.sim.ReadNodes(p.nodes.P)) }

// ReadIR reads the instruction register probe. The net is inverted on the
// die, so the raw reading must be XORed with 0xFF (§6).
func (p *Probe) ReadIR() byte {
	return byte(p.sim.ReadNodes(p.nodes.IR)) ^ 0xFF
}

// ReadAddressBus, ReadDataBus, ReadRW, and WriteDataBus delegate to the bus
// line configuration the engine was built with (engine.BusConfig).
func (p *Probe) ReadAddressBus() uint16 {
	return uint16(p.sim.ReadNodes(p.sim.Bus().AddressBus))
}

func (p *Probe) ReadDataBus() byte {
	return byte(p.sim.ReadNodes(p.sim.Bus().DataBus))
}

func (p *Probe) ReadRW() bool {
	return p.sim.IsNodeHigh(p.sim.Bus().RW)
}

func (p *Probe) WriteDataBus(v byte) {
	p.sim.WriteNodes(p.sim.Bus().DataBus, uint32(v))
}

// ChipStatus renders a textual snapshot of the probeable registers and
// bus lines, grounded on perfect6502.c's chipStatus() dump and formatted in
// the teacher's fmt.Sprintf style (pkg/util/formatter.go).
func (p *Probe) ChipStatus() string {
	return fmt.Sprintf(
		"halfcycle %d: PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X IR=%02X AB=%04X DB=%02X RW=%v",
		p.sim.Cycle(), p.ReadPC(), p.ReadA(), p.ReadX(), p.ReadY(), p.ReadSP(), p.ReadP(), p.ReadIR(),
		p.ReadAddressBus(), p.ReadDataBus(), p.ReadRW(),
	)
}
