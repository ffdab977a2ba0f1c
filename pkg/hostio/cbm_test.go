package hostio

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"sim6502/pkg/engine"
	"sim6502/pkg/memory"
	"sim6502/pkg/probe"
)

func newCBMFixture(t *testing.T) (*engine.Sim, *probe.Probe, *memory.Memory) {
	t.Helper()
	const nNodes = 32
	def := engine.Definition{NNodes: nNodes, Pullups: make([]bool, nNodes), VSS: 0, VCC: 1}
	s, err := engine.New(def, engine.BusConfig{}, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	nodes := probe.NodeMap{A: []int32{2, 3, 4, 5, 6, 7, 8, 9}}
	p := probe.New(s, nodes)
	mem := memory.New()
	return s, p, mem
}

func TestInstallJumpTableWritesTrampolines(t *testing.T) {
	_, _, mem := newCBMFixture(t)
	c := NewCBM()
	c.InstallJumpTable(mem)

	if got := mem.Peek(jumpTableBase); got != opJMP {
		t.Errorf("jump table entry 0 opcode = %#02x, want JMP", got)
	}
	if got := mem.Peek(trampolineAddr); got != opRTS {
		t.Errorf("trampoline = %#02x, want RTS before any dispatch", got)
	}
}

func TestDispatchCHROUTWritesOutputAndTrampoline(t *testing.T) {
	s, p, mem := newCBMFixture(t)
	c := NewCBM()
	c.InstallJumpTable(mem)
	var out bytes.Buffer
	c.Out = &out

	s.WriteNodes(probe.NodeMap{A: []int32{2, 3, 4, 5, 6, 7, 8, 9}}.A, uint32('Q'))

	exit, _ := c.Dispatch(0xFFD2, p, mem)
	if exit {
		t.Fatalf("Dispatch reported exit unexpectedly")
	}
	if out.String() != "Q" {
		t.Errorf("CHROUT output = %q, want %q", out.String(), "Q")
	}
	if mem.Peek(trampolineAddr) != 0xA9 {
		t.Errorf("trampoline opcode = %#02x, want LDA #imm (0xA9)", mem.Peek(trampolineAddr))
	}
	if mem.Peek(trampolineAddr+2) != opRTS {
		t.Errorf("trampoline does not end in RTS")
	}
}

func TestDispatchGETINReadsInput(t *testing.T) {
	_, p, mem := newCBMFixture(t)
	c := NewCBM()
	c.InstallJumpTable(mem)
	c.In = bufio.NewReader(strings.NewReader("Z"))

	c.Dispatch(0xFFE4, p, mem)
	if mem.Peek(trampolineAddr+1) != 'Z' {
		t.Errorf("GETIN result staged = %#02x, want 'Z'", mem.Peek(trampolineAddr+1))
	}
}

func TestDispatchIgnoresNonJumpTablePC(t *testing.T) {
	_, p, mem := newCBMFixture(t)
	c := NewCBM()
	c.InstallJumpTable(mem)

	exit, _ := c.Dispatch(0x0200, p, mem)
	if exit {
		t.Errorf("Dispatch reported exit for an ordinary PC")
	}
}

func TestDispatchBenchmarkExit(t *testing.T) {
	_, p, mem := newCBMFixture(t)
	c := NewCBM()
	c.BenchmarkMode = true
	c.InstallJumpTable(mem)

	exit, code := c.Dispatch(benchmarkExitPC, p, mem)
	if !exit || code != 0 {
		t.Errorf("Dispatch at benchmark exit PC = (%v, %d), want (true, 0)", exit, code)
	}
}
