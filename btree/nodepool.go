package btree

import (
	"fmt"
)

// preallocItems caps the item capacity reserved for a fresh node. Nodes of
// larger trees grow on demand.
const preallocItems = 64

// nodePool is the arena that owns every node of a tree. Nodes refer to
// their children by NodeID, so a node removed by a merge is dropped from the
// arena and any stale reference to it resolves to nil instead of a reused
// pointer.
type nodePool[K, V any] struct {
	slots       []*node[K, V] // slots[0] is reserved for the nil id
	freeNodeIDs []NodeID
	maxItems    int
}

// newNodePool creates an empty arena for nodes holding up to maxItems items
func newNodePool[K, V any](maxItems int) *nodePool[K, V] {
	return &nodePool[K, V]{
		slots:       make([]*node[K, V], 1),
		freeNodeIDs: make([]NodeID, 0),
		maxItems:    maxItems,
	}
}

// allocate creates a node and registers it in the arena
func (p *nodePool[K, V]) allocate(leaf bool) *node[K, V] {
	capacity := min(p.maxItems, preallocItems)
	n := &node[K, V]{
		leaf:  leaf,
		items: make([]item[K, V], 0, capacity),
	}
	if !leaf {
		n.children = make([]NodeID, 0, capacity+1)
	}

	// Reuse a free node ID if available
	if len(p.freeNodeIDs) > 0 {
		n.id = p.freeNodeIDs[len(p.freeNodeIDs)-1]
		p.freeNodeIDs = p.freeNodeIDs[:len(p.freeNodeIDs)-1]
		p.slots[n.id] = n
		return n
	}

	n.id = NodeID(len(p.slots))
	p.slots = append(p.slots, n)
	return n
}

// get resolves a node ID. It returns nil for the nil id, for released ids
// and for ids the arena never handed out.
func (p *nodePool[K, V]) get(id NodeID) *node[K, V] {
	if id == 0 || uint64(id) >= uint64(len(p.slots)) {
		return nil
	}
	return p.slots[id]
}

// release drops a node from the arena and recycles its id. Releasing an id
// that is not live means the tree lost track of ownership, so it panics.
func (p *nodePool[K, V]) release(id NodeID) {
	if p.get(id) == nil {
		panic(fmt.Sprintf("btree: release of node %d which is not live", id))
	}
	p.slots[id] = nil
	p.freeNodeIDs = append(p.freeNodeIDs, id)
}

// live returns the number of nodes currently owned by the arena
func (p *nodePool[K, V]) live() int {
	return len(p.slots) - 1 - len(p.freeNodeIDs)
}

// reset drops every node
func (p *nodePool[K, V]) reset() {
	clear(p.slots)
	p.slots = p.slots[:1]
	p.freeNodeIDs = p.freeNodeIDs[:0]
}

// stats returns the next fresh id and the number of recyclable ids
func (p *nodePool[K, V]) stats() (nextNodeID NodeID, freeNodeCount int) {
	return NodeID(len(p.slots)), len(p.freeNodeIDs)
}
