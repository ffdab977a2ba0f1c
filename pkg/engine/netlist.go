package engine

import (
	"log"
	"os"

	"sim6502/pkg/bitset"
)

// TransistorDef is a single raw transistor record as supplied by the host:
// gate, channel-1, channel-2 node indices (§6 "Netlist file format").
type TransistorDef struct {
	Gate, C1, C2 int32
}

// Definition is the immutable raw netlist input to New: a parallel array of
// transistor triples and per-node pull-up defaults, indexed by the node and
// transistor identifiers used throughout the engine (§3 "Lifecycles", §6).
type Definition struct {
	NNodes      int
	Transistors []TransistorDef
	Pullups     []bool // len must be NNodes
	VSS, VCC    int32
}

// Sim is the runtime engine state: node/transistor bitmaps, the packed CSR
// adjacency built by setup, worklist buffers, and the group-builder scratch
// space. Every public operation threads *Sim explicitly (§9 "Mutable global
// state") — there is no package-level mutable state anywhere in this
// package, so independent simulations never interfere (§5).
type Sim struct {
	nNodes int
	vss    int32
	vcc    int32

	pullup   *bitset.Set
	pulldown *bitset.Set
	value    *bitset.Set

	nTrans int
	gate   []int32
	c1     []int32
	c2     []int32
	on     *bitset.Set

	// gated-transistor CSR: node n gates gatedTrans[gatedOffset[n]:gatedOffset[n+1]]
	gatedOffset []int32
	gatedTrans  []int32

	// channel-neighbor CSR: node n has channel endpoints
	// (neighTrans[i], neighNode[i]) for i in [neighOffset[n], neighOffset[n+1])
	neighOffset []int32
	neighTrans  []int32
	neighNode   []int32

	// dependants / left-dependants share one packed backing block
	// (depBlock) with two independent per-node offset tables, per §9
	// "Shared ownership of packed arrays".
	depBlock     []int32
	depOffset    []int32
	leftOffset   []int32

	in, out *worklist

	// group builder scratch, reused across recalculations (§3 "Group").
	groupSeq    []int32
	groupMember *bitset.Set
	groupStack  []int32 // explicit stack, not recursion (§9)

	cycle      int // half-cycle counter, reset by the reset protocol
	Diagnostic func(error)

	// Logger is instance-local rather than the package-global logger, so
	// that multiple concurrently-running Sims (§5) never interleave
	// diagnostic output. Defaults to a new logger writing to stderr with the
	// prefix "sim6502: "; every default Logger uses that same prefix.
	Logger *log.Logger

	// PassObserver, if set, is called once per drive() call with the number
	// of worklist passes it took — a hook for callers wiring pkg/metrics,
	// kept optional so the engine itself never imports an observability
	// package (§10).
	PassObserver func(passes int)

	// BrokenTransistor, when >= 0, pins that transistor permanently off
	// regardless of its gate value — the hook used by the
	// broken-transistor regression (§8 S5), grounded on
	// original_source/broken_transistors.c's global broken_transistor.
	BrokenTransistor int

	bus    BusConfig
	memory MemoryBus
}

// Bus reports the control/bus line configuration this Sim was built with.
func (s *Sim) Bus() BusConfig { return s.bus }

// New builds runtime state from a raw netlist definition: allocates the
// node/transistor bitmaps, dedups transistor records, and constructs the
// CSR adjacency and dependant arrays (§4.5). It does not run the reset
// protocol — see InitAndReset, which is New followed by Reset.
func New(def Definition, bus BusConfig, mem MemoryBus) (*Sim, error) {
	if len(def.Pullups) != def.NNodes {
		return nil, &netlistError{field: "pullups", node: int32(len(def.Pullups)), nNodes: def.NNodes}
	}
	for i, t := range def.Transistors {
		if t.Gate < 0 || int(t.Gate) >= def.NNodes {
			return nil, &netlistError{transistor: i, field: "gate", node: t.Gate, nNodes: def.NNodes}
		}
		if t.C1 < 0 || int(t.C1) >= def.NNodes {
			return nil, &netlistError{transistor: i, field: "c1", node: t.C1, nNodes: def.NNodes}
		}
		if t.C2 < 0 || int(t.C2) >= def.NNodes {
			return nil, &netlistError{transistor: i, field: "c2", node: t.C2, nNodes: def.NNodes}
		}
	}

	trans := dedupTransistors(def.Transistors)

	s := &Sim{
		nNodes:           def.NNodes,
		vss:              def.VSS,
		vcc:              def.VCC,
		pullup:           bitset.New(def.NNodes),
		pulldown:         bitset.New(def.NNodes),
		value:            bitset.New(def.NNodes),
		nTrans:           len(trans),
		gate:             make([]int32, len(trans)),
		c1:               make([]int32, len(trans)),
		c2:               make([]int32, len(trans)),
		on:               bitset.New(len(trans)),
		in:               newWorklist(def.NNodes),
		out:              newWorklist(def.NNodes),
		groupMember:      bitset.New(def.NNodes),
		BrokenTransistor: -1,
		bus:              bus,
		memory:           mem,
		Logger:           log.New(os.Stderr, "sim6502: ", log.LstdFlags),
	}
	for i, t := range trans {
		s.gate[i] = t.Gate
		s.c1[i] = t.C1
		s.c2[i] = t.C2
	}
	for n, pu := range def.Pullups {
		s.pullup.Set(n, pu)
	}

	s.buildGatedCSR()
	s.buildNeighborCSR()
	s.buildDependants()

	return s, nil
}

// dedupTransistors removes later records whose gate and unordered channel
// pair match an earlier one, keeping the first occurrence (§3 invariant 5,
// §4.5 step 2).
func dedupTransistors(raw []TransistorDef) []TransistorDef {
	type key struct {
		gate, a, b int32
	}
	seen := make(map[key]struct{}, len(raw))
	out := make([]TransistorDef, 0, len(raw))
	for _, t := range raw {
		a, b := t.C1, t.C2
		if a > b {
			a, b = b, a
		}
		k := key{t.Gate, a, b}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// buildGatedCSR builds the node -> gated-transistor adjacency with the
// classic two-pass counting + prefix-sum + fill CSR construction (§4.5
// step 4), grounded on original_source/netlist_sim.c's block_gate pass.
func (s *Sim) buildGatedCSR() {
	counts := make([]int32, s.nNodes+1)
	for _, g := range s.gate {
		counts[g+1]++
	}
	for i := 0; i < s.nNodes; i++ {
		counts[i+1] += counts[i]
	}
	s.gatedOffset = counts

	fill := make([]int32, len(counts))
	copy(fill, counts)
	s.gatedTrans = make([]int32, s.nTrans)
	for t, g := range s.gate {
		s.gatedTrans[fill[g]] = int32(t)
		fill[g]++
	}
}

// buildNeighborCSR builds the node -> (transistor, other-node) channel
// adjacency, one entry per channel endpoint (§4.5 step 3).
func (s *Sim) buildNeighborCSR() {
	counts := make([]int32, s.nNodes+1)
	for i := 0; i < s.nTrans; i++ {
		counts[s.c1[i]+1]++
		counts[s.c2[i]+1]++
	}
	for i := 0; i < s.nNodes; i++ {
		counts[i+1] += counts[i]
	}
	s.neighOffset = counts

	fill := make([]int32, len(counts))
	copy(fill, counts)
	total := 2 * s.nTrans
	s.neighTrans = make([]int32, total)
	s.neighNode = make([]int32, total)
	for i := 0; i < s.nTrans; i++ {
		t := int32(i)
		n1, n2 := s.c1[i], s.c2[i]

		pos := fill[n1]
		s.neighTrans[pos] = t
		s.neighNode[pos] = n2
		fill[n1]++

		pos = fill[n2]
		s.neighTrans[pos] = t
		s.neighNode[pos] = n1
		fill[n2]++
	}
}

// buildDependants derives the dependants and left-dependants arrays (§4.5
// step 5, §3). For each node n, for every transistor t it gates,
// dependants(n) collects every non-rail channel endpoint of t, and
// left-dependants(n) collects one representative non-rail endpoint per
// gated transistor. Both arrays share one packed backing block with
// separate per-node offset tables (§9), and duplicates within a node's own
// list are suppressed.
func (s *Sim) buildDependants() {
	depLists := make([][]int32, s.nNodes)
	leftLists := make([][]int32, s.nNodes)

	for n := 0; n < s.nNodes; n++ {
		if int32(n) == s.vss || int32(n) == s.vcc {
			continue
		}
		depSeen := make(map[int32]struct{})
		leftSeen := make(map[int32]struct{})

		for gi := s.gatedOffset[n]; gi < s.gatedOffset[n+1]; gi++ {
			t := s.gatedTrans[gi]
			c1, c2 := s.c1[t], s.c2[t]

			addDep := func(m int32) {
				if m == s.vss || m == s.vcc {
					return
				}
				if _, ok := depSeen[m]; ok {
					return
				}
				depSeen[m] = struct{}{}
				depLists[n] = append(depLists[n], m)
			}
			addDep(c1)
			addDep(c2)

			// left-dependants: one representative endpoint per gated
			// transistor, preferring the non-rail endpoint.
			rep := c1
			if rep == s.vss || rep == s.vcc {
				rep = c2
			}
			if rep != s.vss && rep != s.vcc {
				if _, ok := leftSeen[rep]; !ok {
					leftSeen[rep] = struct{}{}
					leftLists[n] = append(leftLists[n], rep)
				}
			}
		}
	}

	s.depOffset = make([]int32, s.nNodes+1)
	s.leftOffset = make([]int32, s.nNodes+1)
	var total int32
	for n := 0; n < s.nNodes; n++ {
		s.depOffset[n] = total
		total += int32(len(depLists[n]))
		s.leftOffset[n] = total
		total += int32(len(leftLists[n]))
	}
	s.depOffset[s.nNodes] = total
	s.leftOffset[s.nNodes] = total

	s.depBlock = make([]int32, total)
	for n := 0; n < s.nNodes; n++ {
		copy(s.depBlock[s.depOffset[n]:], depLists[n])
		copy(s.depBlock[s.leftOffset[n]:], leftLists[n])
	}
}

// dependants returns node n's precomputed dependant set: the range recorded
// at depOffset[n]:depOffset[n]+len, where len is derived from the gap up to
// the start of n's own left-dependants range (they are adjacent within the
// shared block by construction).
func (s *Sim) dependants(n int32) []int32 {
	return s.depBlock[s.depOffset[n]:s.leftOffset[n]]
}

// leftDependants returns node n's precomputed left-dependant set: the range
// from the start of n's left-dependants block up to the start of the next
// node's dependants range.
func (s *Sim) leftDependants(n int32) []int32 {
	return s.depBlock[s.leftOffset[n]:s.depOffset[n+1]]
}
