package engine

// recalcNode applies a single node's group resolution to every member of
// its group, toggling gated transistors and seeding the output worklist for
// the next pass (§4.3).
func (s *Sim) recalcNode(n int32) {
	tag := s.buildGroup(n)
	high := tag.high()

	for _, m := range s.groupSeq {
		if s.value.Get(int(m)) == high {
			continue
		}
		s.value.Set(int(m), high)

		for gi := s.gatedOffset[m]; gi < s.gatedOffset[m+1]; gi++ {
			s.on.Set(int(s.gatedTrans[gi]), high)
		}

		// Asymmetric enqueue (§4.3, §9 open question): a rising node only
		// needs its representative left-dependants re-examined, since one
		// endpoint per newly-closed transistor suffices to propagate the
		// change; a falling node must re-examine every non-rail channel
		// endpoint, since the transistor it gates has just opened.
		if high {
			for _, d := range s.leftDependants(m) {
				s.out.push(d)
			}
		} else {
			for _, d := range s.dependants(m) {
				s.out.push(d)
			}
		}
	}
}
