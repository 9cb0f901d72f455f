package btree

import (
	"slices"
)

// NodeID identifies a node inside a tree's arena
type NodeID uint64

// item is a key-value pair in a node
type item[K, V any] struct {
	key   K
	value V
}

// node is a B-tree node. Leaves have no children; an internal node with n
// items has exactly n+1 children.
type node[K, V any] struct {
	id       NodeID
	leaf     bool
	items    []item[K, V]
	children []NodeID // Only used for internal nodes
}

// count returns the number of items in the node
func (n *node[K, V]) count() int {
	return len(n.items)
}

// insertItemAt inserts an item at pos, shifting the tail right
func (n *node[K, V]) insertItemAt(pos int, it item[K, V]) {
	n.items = slices.Insert(n.items, pos, it)
}

// removeItemAt removes the item at pos, shifting the tail left
func (n *node[K, V]) removeItemAt(pos int) item[K, V] {
	it := n.items[pos]
	n.items = slices.Delete(n.items, pos, pos+1)
	return it
}

// insertChildAt inserts a child pointer at pos
func (n *node[K, V]) insertChildAt(pos int, child NodeID) {
	n.children = slices.Insert(n.children, pos, child)
}

// removeChildAt removes the child pointer at pos
func (n *node[K, V]) removeChildAt(pos int) NodeID {
	child := n.children[pos]
	n.children = slices.Delete(n.children, pos, pos+1)
	return child
}

// truncate keeps the first nItems items and, for internal nodes, the first
// nItems+1 children. The dropped tail is zeroed so moved values are not
// retained twice.
func (n *node[K, V]) truncate(nItems int) {
	clear(n.items[nItems:])
	n.items = n.items[:nItems]
	if !n.leaf {
		clear(n.children[nItems+1:])
		n.children = n.children[:nItems+1]
	}
}

// search returns the position of key in the node if present. Otherwise it
// returns the index of the first item greater than key, which is also the
// index of the child whose subtree would hold key.
func (n *node[K, V]) search(key K, compare CompareFunc[K]) (int, bool) {
	low, high := 0, len(n.items)
	for low < high {
		mid := int(uint(low+high) >> 1)
		switch c := compare(key, n.items[mid].key); {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}
