package engine

import "sim6502/pkg/bitset"

// worklist is an ordered sequence of distinct node indices plus a membership
// bitmap, so insertion enforces set semantics in O(1). Two worklists — input
// and output — ping-pong against each other across worklist-driver passes
// (§3 "Worklist", §4.4).
type worklist struct {
	seq    []int32
	member *bitset.Set
}

func newWorklist(nNodes int) *worklist {
	return &worklist{
		seq:    make([]int32, 0, nNodes),
		member: bitset.New(nNodes),
	}
}

func (w *worklist) clear() {
	w.seq = w.seq[:0]
	w.member.Clear()
}

func (w *worklist) push(n int32) {
	if w.member.Get(int(n)) {
		return
	}
	w.member.Set(int(n), true)
	w.seq = append(w.seq, n)
}

func (w *worklist) empty() bool { return len(w.seq) == 0 }
