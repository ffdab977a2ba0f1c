package hostio

import (
	"bufio"
	"io"
	"os"

	"sim6502/pkg/memory"
)

// Apple-I PIA register addresses, grounded on
// original_source/apple1basic/apple1basic.c's handle_monitor/charout: the
// PIA is visible at every address that equals one of these three once
// address bits 5-7 are ignored, hence the &0xFF1F mask applied by
// Apple1.Read and Apple1.Write.
const (
	piaKbd      = 0xD010 // keyboard data, bit 7 forced high on read
	piaKbdCtl   = 0xD011 // keyboard status; bit 7 set means "byte waiting"
	piaDsp      = 0xD012 // display data/status; bit 7 set on read means "busy"
	piaAddrMask = 0xFF1F
)

// Apple1 decorates a *memory.Memory with the Apple-I's memory-mapped PIA
// character I/O, satisfying engine.MemoryBus so it can be handed to
// engine.New/InitAndReset directly in place of the bare memory back-end.
type Apple1 struct {
	mem *memory.Memory
	Out io.Writer
	In  *bufio.Reader

	pending byte
	hasByte bool
}

// NewApple1 wraps mem with PIA emulation, reading from stdin and writing to
// stdout by default.
func NewApple1(mem *memory.Memory) *Apple1 {
	return &Apple1{mem: mem, Out: os.Stdout, In: bufio.NewReader(os.Stdin)}
}

func (a *Apple1) Read(addr uint16) byte {
	switch addr & piaAddrMask {
	case piaKbd:
		a.fill()
		if !a.hasByte {
			return 0x00
		}
		b := a.pending
		a.hasByte = false
		return b | 0x80
	case piaKbdCtl:
		a.fill()
		if a.hasByte {
			return 0x80
		}
		return 0x00
	case piaDsp:
		return 0x00 // display is always ready; never "busy" (§11)
	default:
		return a.mem.Read(addr)
	}
}

func (a *Apple1) Write(addr uint16, v byte) {
	switch addr & piaAddrMask {
	case piaDsp:
		c := v & 0x7F
		if c == '\r' {
			c = '\n'
		}
		if c != 0 {
			io.WriteString(a.Out, string(rune(c)))
		}
	case piaKbd, piaKbdCtl:
		// host-only registers; writes from the CPU side are ignored, matching
		// the original monitor's read-only treatment of these two addresses.
	default:
		a.mem.Write(addr, v)
	}
}

// fill buffers one input byte from stdin if none is pending, translating a
// trailing LF to CR since the Apple-I keyboard sends CR for Return.
func (a *Apple1) fill() {
	if a.hasByte {
		return
	}
	b, err := a.In.ReadByte()
	if err != nil {
		return
	}
	if b == '\n' {
		b = '\r'
	}
	a.pending = b
	a.hasByte = true
}
