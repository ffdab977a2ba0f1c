// Command sim6502 boots a BASIC host image on the gate-level 6502 engine,
// grounded on the teacher's cmd/main.go flag-parsing style and on
// original_source/cbmbasic/cbmbasic.c / apple1basic/apple1basic.c's main
// loops.
package main

import (
	"flag"
	"log"

	"sim6502/pkg/engine"
	"sim6502/pkg/hostio"
	"sim6502/pkg/memory"
	"sim6502/pkg/metrics"
	"sim6502/pkg/netlist"
	"sim6502/pkg/probe"
)

func main() {
	netlistPath := flag.String("netlist", "", "path to the netlist text file (.nodes/.vss/.vcc/trans directives)")
	romPath := flag.String("rom", "", "path to the ROM image to load")
	romBase := flag.Uint("rom-base", 0xA000, "address the ROM image is loaded at")
	host := flag.String("host", "cbm", "host BASIC environment: cbm or apple1")
	benchmark := flag.Bool("benchmark", false, "run until the benchmark exit trap fires, then exit")
	cycles := flag.Uint64("cycles", 0, "stop after this many half-cycles (0 = unbounded)")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	if *netlistPath == "" {
		log.Fatal("sim6502: -netlist is required")
	}

	if *metricsAddr != "" {
		metrics.Serve(*metricsAddr)
	}

	doc, err := netlist.LoadFile(*netlistPath)
	if err != nil {
		log.Fatalf("sim6502: loading netlist: %v", err)
	}

	mem := memory.New()
	if *romPath != "" {
		if err := mem.LoadROM(*romPath, uint16(*romBase)); err != nil {
			metrics.ObserveImageLoadFailure()
			log.Fatalf("sim6502: loading ROM: %v", err)
		}
	}

	var bus engine.MemoryBus = mem
	var cbm *hostio.CBM
	switch *host {
	case "cbm":
		cbm = hostio.NewCBM()
		cbm.BenchmarkMode = *benchmark
		cbm.InstallJumpTable(mem)
	case "apple1":
		bus = hostio.NewApple1(mem)
	default:
		log.Fatalf("sim6502: unknown -host %q, want cbm or apple1", *host)
	}

	sim, err := engine.InitAndReset(doc.Definition, doc.Bus, bus)
	if err != nil {
		log.Fatalf("sim6502: initializing engine: %v", err)
	}
	sim.PassObserver = metrics.ObserveWorklistPasses
	sim.Diagnostic = func(err error) {
		if err == engine.ErrPropagationCapped {
			metrics.ObservePropagationCapped()
		}
		sim.Logger.Println(err)
	}

	p := probe.New(sim, doc.Registers)

	run(sim, p, cbm, mem, *cycles)
}

// run drives the engine one half-cycle at a time, handling KERNAL trap
// dispatch when a CBM host is active and enforcing the -cycles bound when
// one is set, matching the teacher's procWithoutPrint "plain driver" shape.
func run(sim *engine.Sim, p *probe.Probe, cbm *hostio.CBM, mem *memory.Memory, maxCycles uint64) {
	var steps uint64
	for {
		sim.Step()
		metrics.ObserveStep()
		steps++

		if cbm != nil {
			exit, code := cbm.Dispatch(p.ReadPC(), p, mem)
			if exit {
				log.Printf("sim6502: benchmark exit, code %d, %d half-cycles", code, steps)
				return
			}
		}

		if maxCycles != 0 && steps >= maxCycles {
			return
		}
	}
}
