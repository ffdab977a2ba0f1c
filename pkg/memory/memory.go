// Package memory implements the host-side memory back-end (SPEC_FULL.md §6
// "Memory back-end"): a flat 65,536-byte address space the engine reads
// from and writes to once per full clock cycle via engine.MemoryBus, plus ROM loading
// and reset-vector installation grounded on
// original_source/cbmbasic/runtime_init.c and
// original_source/apple1basic/apple1basic.c's init_monitor functions.
package memory

import (
	"fmt"
	"os"
)

// Size is the address space width (§6: "A 65,536-byte byte array").
const Size = 1 << 16

// Memory is a flat byte array addressed by the full 16-bit address bus. It
// satisfies engine.MemoryBus.
type Memory struct {
	bytes [Size]byte
}

// New returns a zeroed Memory.
func New() *Memory { return &Memory{} }

func (m *Memory) Read(addr uint16) byte     { return m.bytes[addr] }
func (m *Memory) Write(addr uint16, v byte) { m.bytes[addr] = v }

// Poke writes a single byte directly, bypassing the bus — used by hosts
// preloading memory before initAndReset and by the KERNAL/PIA collaborators
// writing trampolines (§6).
func (m *Memory) Poke(addr uint16, v byte) { m.bytes[addr] = v }

// Peek reads a single byte directly, bypassing the bus.
func (m *Memory) Peek(addr uint16) byte { return m.bytes[addr] }

// SetResetVector installs the 6502 reset vector at $FFFC/$FFFD (S1).
func (m *Memory) SetResetVector(addr uint16) {
	m.bytes[0xFFFC] = byte(addr)
	m.bytes[0xFFFD] = byte(addr >> 8)
}

// LoadROM reads the file at path and copies it into memory starting at
// base, returning ErrImageLoad (§7 "ImageLoadFailure") when the file
// cannot be read (wrapping the underlying I/O error) or does not fit in
// memory above base. A file shorter than the space above base is loaded
// as is and is not an error.
func (m *Memory) LoadROM(path string, base uint16) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrImageLoad, path, err)
	}
	if int(base)+len(content) > Size {
		return fmt.Errorf("%w: %s (%d bytes) does not fit at base %#04x", ErrImageLoad, path, len(content), base)
	}
	copy(m.bytes[base:], content)
	return nil
}
