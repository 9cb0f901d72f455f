package btree

import (
	"fmt"
)

// InvariantError describes a structural defect found by CheckInvariants
type InvariantError struct {
	Node   NodeID
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("btree: %v at node %d: %s", ErrInvariantViolation, e.Node, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

// bound is an optional exclusive key bound
type bound[K any] struct {
	key K
	ok  bool
}

type checker[K, V any] struct {
	t         *BTree[K, V]
	seen      map[NodeID]struct{}
	leafDepth int
	entries   int
}

// CheckInvariants walks the whole tree and reports the first violated
// structural property: key order inside nodes and across subtrees, node
// occupancy bounds, child counts, equal leaf depth, single ownership of
// every node, and agreement of Len and the arena with what is reachable.
func (t *BTree[K, V]) CheckInvariants() error {
	c := &checker[K, V]{
		t:         t,
		seen:      make(map[NodeID]struct{}),
		leafDepth: -1,
	}

	if err := c.check(t.root, 0, bound[K]{}, bound[K]{}); err != nil {
		return err
	}

	if c.entries != t.size {
		return &InvariantError{Node: t.root, Reason: fmt.Sprintf("tree holds %d entries but Len is %d", c.entries, t.size)}
	}
	if live := t.pool.live(); live != len(c.seen) {
		return &InvariantError{Node: t.root, Reason: fmt.Sprintf("%d nodes reachable but %d live in the arena", len(c.seen), live)}
	}

	return nil
}

func (c *checker[K, V]) check(id NodeID, depth int, lo, hi bound[K]) error {
	t := c.t

	if _, ok := c.seen[id]; ok {
		return &InvariantError{Node: id, Reason: "node reachable more than once"}
	}
	n := t.pool.get(id)
	if n == nil {
		return &InvariantError{Node: id, Reason: "reference to a node that is not live"}
	}
	if n.id != id {
		return &InvariantError{Node: id, Reason: fmt.Sprintf("arena slot holds node %d", n.id)}
	}
	c.seen[id] = struct{}{}

	isRoot := id == t.root
	count := n.count()
	c.entries += count

	// Occupancy
	if count > t.maxItems() {
		return &InvariantError{Node: id, Reason: fmt.Sprintf("%d items exceeds maximum %d", count, t.maxItems())}
	}
	if !isRoot && count < t.minItems() {
		return &InvariantError{Node: id, Reason: fmt.Sprintf("%d items below minimum %d", count, t.minItems())}
	}
	if isRoot && !n.leaf && count == 0 {
		return &InvariantError{Node: id, Reason: "internal root without items"}
	}

	// Ordering inside the node and against the parent's separators
	for i, it := range n.items {
		if i > 0 && t.compare(n.items[i-1].key, it.key) >= 0 {
			return &InvariantError{Node: id, Reason: fmt.Sprintf("keys not strictly increasing at index %d", i)}
		}
		if lo.ok && t.compare(it.key, lo.key) <= 0 {
			return &InvariantError{Node: id, Reason: fmt.Sprintf("key at index %d not above the lower separator", i)}
		}
		if hi.ok && t.compare(it.key, hi.key) >= 0 {
			return &InvariantError{Node: id, Reason: fmt.Sprintf("key at index %d not below the upper separator", i)}
		}
	}

	if n.leaf {
		if len(n.children) != 0 {
			return &InvariantError{Node: id, Reason: fmt.Sprintf("leaf has %d children", len(n.children))}
		}
		if c.leafDepth < 0 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return &InvariantError{Node: id, Reason: fmt.Sprintf("leaf at depth %d, expected %d", depth, c.leafDepth)}
		}
		return nil
	}

	if len(n.children) != count+1 {
		return &InvariantError{Node: id, Reason: fmt.Sprintf("%d items but %d children", count, len(n.children))}
	}

	for i, childID := range n.children {
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = bound[K]{key: n.items[i-1].key, ok: true}
		}
		if i < count {
			childHi = bound[K]{key: n.items[i].key, ok: true}
		}
		if err := c.check(childID, depth+1, childLo, childHi); err != nil {
			return err
		}
	}

	return nil
}

// assertInvariants panics on a violated invariant in builds tagged
// btreedebug and compiles to nothing otherwise.
func (t *BTree[K, V]) assertInvariants() {
	if !debugInvariants {
		return
	}
	if err := t.CheckInvariants(); err != nil {
		panic(err)
	}
}
