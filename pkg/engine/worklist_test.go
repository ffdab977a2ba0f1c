package engine

import "testing"

func TestWorklistMembershipMatchesSequence(t *testing.T) {
	w := newWorklist(16)
	w.push(3)
	w.push(7)
	w.push(3) // duplicate, must not grow seq or break set semantics

	if len(w.seq) != 2 {
		t.Fatalf("len(seq) = %d, want 2 after pushing a duplicate", len(w.seq))
	}

	inSeq := make(map[int32]bool)
	for _, n := range w.seq {
		inSeq[n] = true
	}
	for i := 0; i < 16; i++ {
		want := inSeq[int32(i)]
		if got := w.member.Get(i); got != want {
			t.Errorf("member.Get(%d) = %v, want %v", i, got, want)
		}
	}

	w.clear()
	if !w.empty() {
		t.Errorf("worklist not empty after clear")
	}
	for i := 0; i < 16; i++ {
		if w.member.Get(i) {
			t.Errorf("member bit %d still set after clear", i)
		}
	}
}

func TestGroupTagPrecedence(t *testing.T) {
	order := []groupTag{tagNothing, tagHi, tagPullup, tagPulldown, tagVCC, tagVSS}
	for i := range order {
		for j := range order {
			got := tighten(order[i], order[j])
			want := order[i]
			if order[j] > order[i] {
				want = order[j]
			}
			if got != want {
				t.Errorf("tighten(%v, %v) = %v, want %v", order[i], order[j], got, want)
			}
		}
	}
}
