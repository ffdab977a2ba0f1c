package engine

// groupTag is the six-state value a node group resolves to while the group
// builder walks the transistor-connected component of a seed node. It is a
// distinct named type rather than a bare int so it can never be mixed with
// an unrelated integer at a call site — mirroring the teacher's
// device.SourceType / device.AnalysisMode pattern (pkg/device/device.go).
//
// The six constants form a total order, weakest to strongest:
// nothing < hi < pullup < pulldown < vcc < vss. tighten keeps the strongest
// candidate seen so far on a given traversal.
type groupTag uint8

const (
	tagNothing groupTag = iota
	tagHi
	tagPullup
	tagPulldown
	tagVCC
	tagVSS
)

// tighten returns the stronger of the two tags, per the precedence order
// above. It is the single place that order is allowed to matter, so any
// future reordering of the six states only needs to change the constant
// declarations, not the comparisons scattered through the group builder.
func tighten(running, candidate groupTag) groupTag {
	if candidate > running {
		return candidate
	}
	return running
}

// high reports the boolean value a resolved tag maps to (§4.2 step 4).
func (t groupTag) high() bool {
	return t == tagVCC || t == tagPullup || t == tagHi
}
