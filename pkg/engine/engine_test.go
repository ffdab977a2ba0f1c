package engine

import "testing"

func TestNewDefaultsALoggerPerInstance(t *testing.T) {
	s1 := newInverter(t)
	s2 := newInverter(t)
	if s1.Logger == nil || s2.Logger == nil {
		t.Fatalf("New: Logger not defaulted")
	}
	if s1.Logger == s2.Logger {
		t.Errorf("Logger shared across Sim instances, want one per instance (§10)")
	}
}

func TestPassObserverReceivesPassCountOnOrdinaryDrive(t *testing.T) {
	s := newInverter(t)
	var got int
	hadCall := false
	s.PassObserver = func(passes int) { got = passes; hadCall = true }

	s.SetNode(2, true)
	if !hadCall {
		t.Fatalf("PassObserver was never called")
	}
	if got < 1 {
		t.Errorf("PassObserver reported %d passes, want >= 1", got)
	}
}

// inverterDef builds the same circuit as pkg/netlist/testdata/nand_gate.net
// directly against the engine package, so these tests do not depend on the
// netlist package. node 0 = VSS, 1 = VCC, 2 = IN, 3 = OUT (weak pull-up,
// pulled to VSS through a transistor gated by IN).
func inverterDef() Definition {
	return Definition{
		NNodes:      4,
		Pullups:     []bool{false, false, false, true},
		Transistors: []TransistorDef{{Gate: 2, C1: 3, C2: 0}},
		VSS:         0,
		VCC:         1,
	}
}

func newInverter(t *testing.T) *Sim {
	t.Helper()
	s, err := New(inverterDef(), BusConfig{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Stabilize()
	return s
}

func TestInverterTruthTable(t *testing.T) {
	s := newInverter(t)

	s.SetNode(2, false) // IN low -> transistor off -> OUT floats to its pull-up -> high
	if !s.IsNodeHigh(3) {
		t.Errorf("IN=low: OUT = low, want high")
	}

	s.SetNode(2, true) // IN high -> transistor on -> OUT pulled to VSS -> low
	if s.IsNodeHigh(3) {
		t.Errorf("IN=high: OUT = high, want low")
	}

	s.SetNode(2, false)
	if !s.IsNodeHigh(3) {
		t.Errorf("IN=low again: OUT = low, want high")
	}
}

func TestRailsAreFixed(t *testing.T) {
	s := newInverter(t)
	if !s.IsNodeHigh(s.VCC()) {
		t.Errorf("IsNodeHigh(VCC) = false, want true")
	}
	if s.IsNodeHigh(s.VSS()) {
		t.Errorf("IsNodeHigh(VSS) = true, want false")
	}
}

func TestSetNodeRoundTrip(t *testing.T) {
	s := newInverter(t)
	for _, b := range []bool{true, false, true} {
		s.SetNode(2, b)
		if got := s.IsNodeHigh(2); got != b {
			t.Errorf("SetNode(2, %v); IsNodeHigh(2) = %v", b, got)
		}
	}
}

func TestDedupRemovesDuplicateTransistor(t *testing.T) {
	def := inverterDef()
	// Same gate, same channel pair with endpoints swapped: a duplicate per
	// §3 invariant 5.
	def.Transistors = append(def.Transistors, TransistorDef{Gate: 2, C1: 0, C2: 3})

	s, err := New(def, BusConfig{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.NTrans() != 1 {
		t.Errorf("NTrans() = %d, want 1 (duplicate should be deduped)", s.NTrans())
	}
	if s.NTrans() > len(def.Transistors) {
		t.Errorf("post-dedup count %d exceeds raw count %d", s.NTrans(), len(def.Transistors))
	}
}

func TestBadNetlistOutOfRangeNode(t *testing.T) {
	def := inverterDef()
	def.Transistors = append(def.Transistors, TransistorDef{Gate: 99, C1: 0, C2: 1})
	if _, err := New(def, BusConfig{}, nil); err == nil {
		t.Fatalf("New: want error for out-of-range gate, got nil")
	}
}

// TestOnMatchesGateValue asserts §8 invariant 1: on(t) == value(gate(t))
// outside recalculation, for every transistor, after every operation.
func TestOnMatchesGateValue(t *testing.T) {
	s := newInverter(t)
	for _, b := range []bool{true, false, true, false} {
		s.SetNode(2, b)
		for tr := int32(0); tr < int32(s.NTrans()); tr++ {
			gate := s.GateOf(tr)
			want := s.IsNodeHigh(gate)
			if got := s.TransistorOn(tr); got != want {
				t.Errorf("transistor %d: on = %v, want %v (gate %d value)", tr, got, want, gate)
			}
		}
	}
}

func TestLatchPassGatePropagatesAcrossMultipleHops(t *testing.T) {
	// node 0=VSS 1=VCC 2=CLK 3=D 4=Q 5=QN, matching
	// pkg/netlist/testdata/latch.net.
	def := Definition{
		NNodes:      6,
		Pullups:     []bool{false, false, false, false, true, true},
		Transistors: []TransistorDef{{Gate: 2, C1: 3, C2: 4}, {Gate: 4, C1: 5, C2: 0}, {Gate: 5, C1: 4, C2: 0}},
		VSS:         0,
		VCC:         1,
	}
	s, err := New(def, BusConfig{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Stabilize()

	s.SetNode(2, true) // open the pass gate
	s.SetNode(3, true) // drive D high

	if !s.IsNodeHigh(4) {
		t.Errorf("Q = low, want high after D=high with CLK open")
	}
	if s.IsNodeHigh(5) {
		t.Errorf("QN = high, want low (inverse of Q)")
	}

	s.SetNode(3, false)
	if s.IsNodeHigh(4) {
		t.Errorf("Q = high, want low after D=low with CLK open")
	}
	if !s.IsNodeHigh(5) {
		t.Errorf("QN = low, want high (inverse of Q)")
	}
}
