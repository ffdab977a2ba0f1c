package netlist

import "testing"

func TestParseInverterFixture(t *testing.T) {
	doc, err := LoadFile("testdata/nand_gate.net")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Definition.NNodes != 4 {
		t.Errorf("NNodes = %d, want 4", doc.Definition.NNodes)
	}
	if len(doc.Definition.Transistors) != 2 {
		t.Errorf("raw transistor count = %d, want 2 (dedup happens in engine.New, not the parser)", len(doc.Definition.Transistors))
	}
	if !doc.Definition.Pullups[3] {
		t.Errorf("node 3 pullup = false, want true")
	}
	if doc.Definition.VSS != 0 || doc.Definition.VCC != 1 {
		t.Errorf("VSS/VCC = %d/%d, want 0/1", doc.Definition.VSS, doc.Definition.VCC)
	}
}

func TestParseLatchFixture(t *testing.T) {
	doc, err := LoadFile("testdata/latch.net")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Definition.NNodes != 6 {
		t.Errorf("NNodes = %d, want 6", doc.Definition.NNodes)
	}
	if len(doc.Definition.Transistors) != 3 {
		t.Errorf("transistor count = %d, want 3", len(doc.Definition.Transistors))
	}
}

func TestParseBusDirectives(t *testing.T) {
	input := `
.nodes 8
.vss 0
.vcc 1
.bus.clk0 2
.bus.res 3
.bus.rdy 4
.bus.so 5
.bus.irq 6
.bus.nmi 7
.bus.rw 2
.bus.addr 3 4 5
.bus.data 6 7
`
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Bus.CLK0 != 2 || doc.Bus.RES != 3 || doc.Bus.RDY != 4 {
		t.Errorf("unexpected bus config: %+v", doc.Bus)
	}
	if len(doc.Bus.AddressBus) != 3 || len(doc.Bus.DataBus) != 2 {
		t.Errorf("unexpected bus widths: addr=%d data=%d", len(doc.Bus.AddressBus), len(doc.Bus.DataBus))
	}
}

func TestParseRegisterDirectives(t *testing.T) {
	input := `
.nodes 8
.vss 0
.vcc 1
.reg.pc 2 3
.reg.a 4 5
.reg.ir 6
`
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Registers.PC) != 2 || len(doc.Registers.A) != 2 || len(doc.Registers.IR) != 1 {
		t.Errorf("unexpected register widths: %+v", doc.Registers)
	}
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	if _, err := Parse(".nodes 2\n.bogus 1\n"); err == nil {
		t.Fatalf("Parse: want error for unknown directive, got nil")
	}
}

func TestParseRejectsOutOfRangePullup(t *testing.T) {
	if _, err := Parse(".nodes 2\n.pullup 5\n"); err == nil {
		t.Fatalf("Parse: want error for out-of-range .pullup, got nil")
	}
}

func TestParseRejectsMissingNodes(t *testing.T) {
	if _, err := Parse("trans 0 1 2\n"); err == nil {
		t.Fatalf("Parse: want error for missing .nodes, got nil")
	}
}
