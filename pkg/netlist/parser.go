// Package netlist parses the text netlist format used by this module's
// engine: transistor triples, per-node pull-up defaults, and the bus/
// control-line configuration the reset protocol and clock loop need
// (SPEC_FULL.md §6 "Netlist file format", §12).
//
// The line-based scanner and directive dispatch are grounded on the
// teacher's pkg/netlist/parser.go (bufio.Scanner over strings.NewReader,
// per-line strconv parsing, fmt.Errorf wrapping with the offending line
// quoted).
package netlist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sim6502/pkg/engine"
	"sim6502/pkg/probe"
)

// Document is the parsed result: a netlist definition, the bus/control line
// configuration needed to run the reset protocol and clock loop, and the
// register node bundles the probe facade needs.
type Document struct {
	Definition engine.Definition
	Bus        engine.BusConfig
	Registers  probe.NodeMap
}

// LoadFile reads and parses the netlist file at path.
func LoadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: reading %s: %w", path, err)
	}
	doc, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("netlist: parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses the text netlist format. Recognized directives:
//
//	.nodes <n>                  total node count; must appear before .pullup/trans
//	.vss <idx>                  ground rail node index
//	.vcc <idx>                  supply rail node index
//	.pullup <idx>               mark node idx as pulled high by default
//	.bus.clk0 <idx>             clock control line
//	.bus.res <idx>              reset control line
//	.bus.rdy <idx>              ready control line
//	.bus.so <idx>               set-overflow control line
//	.bus.irq <idx>              interrupt-request control line
//	.bus.nmi <idx>              non-maskable-interrupt control line
//	.bus.rw <idx>               read/write probe
//	.bus.addr <idx...>          address bus nodes, LSB first
//	.bus.data <idx...>          data bus nodes, LSB first
//	.reg.pc <idx...>            program counter probe nodes, LSB first
//	.reg.a/.reg.x/.reg.y        accumulator/X/Y probe nodes, LSB first
//	.reg.sp/.reg.p              stack pointer/status probe nodes, LSB first
//	.reg.ir <idx...>            instruction register probe nodes (inverted on the die)
//	trans <gate> <c1> <c2>      one raw transistor record
//
// Blank lines and lines starting with # are ignored.
func Parse(input string) (*Document, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	doc := &Document{}

	var nNodes int
	var nodesSeen bool
	var pullups []bool
	var transistors []engine.TransistorDef

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		directive := fields[0]
		args := fields[1:]

		parseInt := func(s string) (int32, error) {
			v, err := strconv.Atoi(s)
			if err != nil {
				return 0, fmt.Errorf("netlist: line %d: %q is not an integer: %w", lineNo, s, err)
			}
			return int32(v), nil
		}
		parseInts := func(ss []string) ([]int32, error) {
			out := make([]int32, len(ss))
			for i, s := range ss {
				v, err := parseInt(s)
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		}
		want := func(n int) error {
			if len(args) != n {
				return fmt.Errorf("netlist: line %d: %s wants %d argument(s), got %d", lineNo, directive, n, len(args))
			}
			return nil
		}
		one := func() (int32, error) {
			if len(args) != 1 {
				return 0, fmt.Errorf("netlist: line %d: %s wants 1 argument, got %d", lineNo, directive, len(args))
			}
			return parseInt(args[0])
		}

		var err error
		switch directive {
		case ".nodes":
			if err = want(1); err != nil {
				return nil, err
			}
			n, perr := parseInt(args[0])
			if perr != nil {
				return nil, perr
			}
			nNodes = int(n)
			nodesSeen = true
			pullups = make([]bool, nNodes)

		case ".vss":
			if doc.Definition.VSS, err = one(); err != nil {
				return nil, err
			}

		case ".vcc":
			if doc.Definition.VCC, err = one(); err != nil {
				return nil, err
			}

		case ".pullup":
			if !nodesSeen {
				return nil, fmt.Errorf("netlist: line %d: .pullup before .nodes", lineNo)
			}
			idx, perr := one()
			if perr != nil {
				return nil, perr
			}
			if int(idx) < 0 || int(idx) >= nNodes {
				return nil, fmt.Errorf("netlist: line %d: .pullup node %d out of range [0,%d)", lineNo, idx, nNodes)
			}
			pullups[idx] = true

		case ".bus.clk0":
			if doc.Bus.CLK0, err = one(); err != nil {
				return nil, err
			}
		case ".bus.res":
			if doc.Bus.RES, err = one(); err != nil {
				return nil, err
			}
		case ".bus.rdy":
			if doc.Bus.RDY, err = one(); err != nil {
				return nil, err
			}
		case ".bus.so":
			if doc.Bus.SO, err = one(); err != nil {
				return nil, err
			}
		case ".bus.irq":
			if doc.Bus.IRQ, err = one(); err != nil {
				return nil, err
			}
		case ".bus.nmi":
			if doc.Bus.NMI, err = one(); err != nil {
				return nil, err
			}
		case ".bus.rw":
			if doc.Bus.RW, err = one(); err != nil {
				return nil, err
			}
		case ".bus.addr":
			if doc.Bus.AddressBus, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".bus.data":
			if doc.Bus.DataBus, err = parseInts(args); err != nil {
				return nil, err
			}

		case ".reg.pc":
			if doc.Registers.PC, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.a":
			if doc.Registers.A, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.x":
			if doc.Registers.X, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.y":
			if doc.Registers.Y, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.sp":
			if doc.Registers.SP, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.p":
			if doc.Registers.P, err = parseInts(args); err != nil {
				return nil, err
			}
		case ".reg.ir":
			if doc.Registers.IR, err = parseInts(args); err != nil {
				return nil, err
			}

		case "trans":
			if !nodesSeen {
				return nil, fmt.Errorf("netlist: line %d: trans before .nodes", lineNo)
			}
			if err = want(3); err != nil {
				return nil, err
			}
			vals, perr := parseInts(args)
			if perr != nil {
				return nil, perr
			}
			transistors = append(transistors, engine.TransistorDef{Gate: vals[0], C1: vals[1], C2: vals[2]})

		default:
			return nil, fmt.Errorf("netlist: line %d: unknown directive %q", lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netlist: scanning input: %w", err)
	}
	if !nodesSeen {
		return nil, fmt.Errorf("netlist: missing .nodes directive")
	}

	doc.Definition.NNodes = nNodes
	doc.Definition.Pullups = pullups
	doc.Definition.Transistors = transistors
	return doc, nil
}
