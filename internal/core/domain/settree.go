package domain

// SetMode selects how a node combines its members.
type SetMode int

// Combine modes.
const (
	// SetUnion keeps identifiers present in any member.
	SetUnion SetMode = iota

	// SetIntersection keeps identifiers present in every member.
	SetIntersection

	// SetMinus keeps identifiers of the first member absent from the second.
	// Valid for branches with exactly two children only.
	SetMinus
)

func (m SetMode) String() string {
	switch m {
	case SetUnion:
		return "union"
	case SetIntersection:
		return "intersection"
	case SetMinus:
		return "minus"
	default:
		return "unknown"
	}
}

// SetNode is one node of a combination tree.
//
// A node is either a leaf carrying named ID sets merged under Mode, or a
// branch combining the resolved sets of its children under Mode. Minus
// branches take exactly two children, ordered (minuend, subtrahend);
// violating that is a structural error surfaced at resolution time.
// Nodes are immutable after construction.
type SetNode struct {
	Mode     SetMode
	Leaves   map[string]IDSet
	Children []*SetNode
}

// NewLeaf builds a leaf node merging the named sets under mode.
func NewLeaf(mode SetMode, leaves map[string]IDSet) *SetNode {
	return &SetNode{Mode: mode, Leaves: leaves}
}

// NewBranch builds a branch node combining children under mode.
// A branch with no children resolves to the empty set for union and
// intersection alike.
func NewBranch(mode SetMode, children ...*SetNode) *SetNode {
	if children == nil {
		children = []*SetNode{}
	}
	return &SetNode{Mode: mode, Children: children}
}

// IsLeaf reports whether the node carries named sets rather than children.
func (n *SetNode) IsLeaf() bool {
	return n.Children == nil
}
