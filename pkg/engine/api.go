package engine

import "sim6502/internal/consts"

// maxWorklistPasses is the worklist driver's iteration cap (§4.4, §9
// "Iteration cap's meaning"). original_source/netlist_sim.c uses 100 for
// the same safety net; this document's binding value is 50 (see
// SPEC_FULL.md §9), which is what is implemented here.
const maxWorklistPasses = consts.MaxWorklistPasses

// drive seeds the output worklist with seeds and runs the ping-pong
// worklist loop to quiescence (§4.4). The output worklist is cleared
// unconditionally before seeding so that a drive call never inherits stale
// entries left over from a previous call that stopped at the iteration cap.
func (s *Sim) drive(seeds ...int32) {
	s.out.clear()
	for _, seed := range seeds {
		s.out.push(seed)
	}

	pass := 0
	for ; pass < maxWorklistPasses; pass++ {
		s.in, s.out = s.out, s.in
		if s.in.empty() {
			break
		}
		s.out.clear()
		for _, n := range s.in.seq {
			s.recalcNode(n)
		}
	}

	if s.PassObserver != nil {
		s.PassObserver(pass)
	}
	if pass == maxWorklistPasses && !s.out.empty() {
		if s.Diagnostic != nil {
			s.Diagnostic(ErrPropagationCapped)
		} else if s.Logger != nil {
			s.Logger.Println(ErrPropagationCapped)
		}
	}
}

// SetNode forces node n's pulls to represent a hard external drive (high if
// b, low otherwise), then re-propagates to quiescence (§4.4 "Externally
// triggered entries").
func (s *Sim) SetNode(n int32, b bool) {
	s.pullup.Set(int(n), b)
	s.pulldown.Set(int(n), !b)
	s.drive(n)
}

// IsNodeHigh reports node n's current resolved value. The power rails
// always read their fixed polarity (§8 "Rails").
func (s *Sim) IsNodeHigh(n int32) bool {
	if n == s.vcc {
		return true
	}
	if n == s.vss {
		return false
	}
	return s.value.Get(int(n))
}

// ReadNodes packs the readings of the given nodes into an unsigned integer,
// LSB first (§6).
func (s *Sim) ReadNodes(nodes []int32) uint32 {
	var v uint32
	for i, n := range nodes {
		if s.IsNodeHigh(n) {
			v |= 1 << uint(i)
		}
	}
	return v
}

// WriteNodes forces a bit-bundle of nodes from v, LSB first (§6), driving
// each node individually through SetNode and re-propagating after each one
// — mirroring the host's ability to force bus lines one at a time.
func (s *Sim) WriteNodes(nodes []int32, v uint32) {
	for i, n := range nodes {
		s.SetNode(n, v&(1<<uint(i)) != 0)
	}
}

// Stabilize enqueues every node and runs the worklist driver once, used at
// power-on and after the reset hold (§4.4).
func (s *Sim) Stabilize() {
	seeds := make([]int32, s.nNodes)
	for i := range seeds {
		seeds[i] = int32(i)
	}
	s.drive(seeds...)
}

// Destroy releases engine resources. Go's garbage collector reclaims the
// backing slices once Sim is unreferenced; Destroy exists to match the
// language-neutral Engine API (§6) and to give callers an explicit point to
// drop the diagnostic callback and any broken-transistor hook.
func (s *Sim) Destroy() {
	s.Diagnostic = nil
	s.BrokenTransistor = -1
}

// Cycle reports the half-cycle counter (§4.7).
func (s *Sim) Cycle() int { return s.cycle }

// NNodes and NTrans report the (post-dedup) netlist sizes, used by callers
// asserting §8 invariant 3 (transistor_count_after_dedup <= raw count).
func (s *Sim) NNodes() int { return s.nNodes }
func (s *Sim) NTrans() int { return s.nTrans }

// TransistorOn reports whether transistor t currently conducts, honoring
// any BrokenTransistor override (§8 S5, §9).
func (s *Sim) TransistorOn(t int32) bool { return s.transistorOn(t) }

// GateOf reports the gate node of transistor t, used to assert §8 invariant
// 1 (on(t) == value(gate(t))) from outside the package.
func (s *Sim) GateOf(t int32) int32 { return s.gate[t] }

// VSS and VCC report the rail node indices this Sim was built with.
func (s *Sim) VSS() int32 { return s.vss }
func (s *Sim) VCC() int32 { return s.vcc }
