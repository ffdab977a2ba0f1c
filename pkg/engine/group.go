package engine

// buildGroup computes the transistor-connected component reachable from
// seed through currently-on transistors, and resolves its driven value
// (§4.2). It uses an explicit stack rather than recursion (§9 "Recursion in
// group building") to avoid bounding simulation correctness on host stack
// depth; the stack is scratch space reused across calls, like groupSeq and
// groupMember.
func (s *Sim) buildGroup(seed int32) groupTag {
	s.groupSeq = s.groupSeq[:0]
	s.groupMember.Clear()
	s.groupStack = append(s.groupStack[:0], seed)

	tag := tagNothing
	for len(s.groupStack) > 0 {
		n := s.groupStack[len(s.groupStack)-1]
		s.groupStack = s.groupStack[:len(s.groupStack)-1]

		if n == s.vss {
			// vss dominates everything, including a vcc seen earlier on
			// this traversal — tighten enforces that via the total order.
			tag = tighten(tag, tagVSS)
			continue
		}
		if n == s.vcc {
			tag = tighten(tag, tagVCC)
			continue
		}
		if s.groupMember.Get(int(n)) {
			continue
		}
		s.groupMember.Set(int(n), true)
		s.groupSeq = append(s.groupSeq, n)

		tag = tighten(tag, s.nodeTag(n))

		for i := s.neighOffset[n]; i < s.neighOffset[n+1]; i++ {
			t := s.neighTrans[i]
			if s.transistorOn(t) {
				s.groupStack = append(s.groupStack, s.neighNode[i])
			}
		}
	}
	return tag
}

// nodeTag maps a single node's pulls and current value to a group tag,
// ahead of the vcc/vss dominance handled specially in buildGroup.
func (s *Sim) nodeTag(n int32) groupTag {
	switch {
	case s.pulldown.Get(int(n)):
		return tagPulldown
	case s.pullup.Get(int(n)):
		return tagPullup
	case s.value.Get(int(n)):
		return tagHi
	default:
		return tagNothing
	}
}

// transistorOn reports whether transistor t currently conducts, honoring a
// pinned-off BrokenTransistor override used by the broken-transistor
// regression diagnostic (§8 S5).
func (s *Sim) transistorOn(t int32) bool {
	if int(t) == s.BrokenTransistor {
		return false
	}
	return s.on.Get(int(t))
}
