package engine

// BusConfig names the control and bus lines the reset protocol (§4.6) and
// clock loop (§4.7) operate on. These are 6502-specific node indices, but
// §4.6/§4.7 are part of the engine's own component design rather than the
// probe facade built on top of it (SPEC_FULL.md §2), so the engine accepts
// them as configuration at setup time, exactly as it accepts VSS/VCC.
type BusConfig struct {
	CLK0, RES, RDY, SO, IRQ, NMI int32
	AddressBus                   []int32 // 16 nodes, LSB first
	DataBus                      []int32 // 8 nodes, LSB first
	RW                           int32
}

// MemoryBus is the host-side memory back-end (§6 "Memory back-end"): a
// 65,536-byte address space the engine reads from or writes to once per
// full clock cycle, on the step that takes CLK0 low, driven by the address
// bus and R/W probes.
type MemoryBus interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}
