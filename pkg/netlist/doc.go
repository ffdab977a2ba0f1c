package netlist

// The full 6502 die netlist (~1,725 nodes, ~3,510 transistors) is produced
// by an external die-trace extraction step — the visual6502 project's
// published node/transistor arrays are the canonical source — and is not
// hand-authored in this repository. Converting that published data into
// this package's text format is a one-time, out-of-repository step:
//
//	go:generate go run ./tools/netlistconv -in visual6502_nodenames.js \
//	    -segdefs visual6502_segdefs.js -transdefs visual6502_transdefs.js \
//	    -out testdata/6502.net
//
// No such converter ships here (it has no Go dependency surface of its own
// and operates on a third-party data file this repository does not carry);
// testdata/nand_gate.net and testdata/latch.net are small, hand-traceable
// fixtures that exercise the same loader, dedup, CSR-construction, and
// group-resolution code paths the full chip netlist would.
