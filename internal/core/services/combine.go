package services

import (
	"fmt"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// Combiner resolves set combination trees into flat ID sets. Results
// are memoized per node pointer, so a subtree shared between the
// include and exclude sides of a request is computed once.
//
// The memo holds references to resolved sets for the combiner's
// lifetime; create one Combiner per pipeline run.
type Combiner struct {
	memo map[*domain.SetNode]domain.IDSet
}

// NewCombiner creates a new combiner with an empty memo.
func NewCombiner() *Combiner {
	return &Combiner{memo: make(map[*domain.SetNode]domain.IDSet)}
}

// Resolve computes the ID set the node denotes. A nil node denotes the
// empty set. Resolve never mutates the tree, and the returned set is
// shared with the memo: callers must not modify it.
func (c *Combiner) Resolve(node *domain.SetNode) (domain.IDSet, error) {
	if node == nil {
		return domain.NewIDSet(), nil
	}
	if cached, ok := c.memo[node]; ok {
		return cached, nil
	}

	var result domain.IDSet
	var err error
	if node.IsLeaf() {
		result, err = c.resolveLeaf(node)
	} else {
		result, err = c.resolveBranch(node)
	}
	if err != nil {
		return nil, err
	}

	c.memo[node] = result
	return result, nil
}

// resolveLeaf combines the leaf's named sets. Minus is rejected here:
// it needs ordered operands and a leaf's sets carry no order.
func (c *Combiner) resolveLeaf(node *domain.SetNode) (domain.IDSet, error) {
	if node.Mode == domain.SetMinus {
		return nil, fmt.Errorf("combine leaf: %w", domain.ErrLeafMode)
	}

	sets := make([]domain.IDSet, 0, len(node.Leaves))
	for _, ids := range node.Leaves {
		sets = append(sets, ids)
	}

	if node.Mode == domain.SetUnion {
		return domain.UnionOf(sets...), nil
	}
	return domain.IntersectionOf(sets...), nil
}

func (c *Combiner) resolveBranch(node *domain.SetNode) (domain.IDSet, error) {
	if node.Mode == domain.SetMinus && len(node.Children) != 2 {
		return nil, fmt.Errorf("combine: %d children: %w", len(node.Children), domain.ErrMinusArity)
	}

	children := make([]domain.IDSet, 0, len(node.Children))
	for _, child := range node.Children {
		resolved, err := c.Resolve(child)
		if err != nil {
			return nil, err
		}
		children = append(children, resolved)
	}

	switch node.Mode {
	case domain.SetUnion:
		return domain.UnionOf(children...), nil
	case domain.SetIntersection:
		return domain.IntersectionOf(children...), nil
	case domain.SetMinus:
		return children[0].Minus(children[1]), nil
	default:
		return nil, fmt.Errorf("combine: unknown set mode %d", int(node.Mode))
	}
}
