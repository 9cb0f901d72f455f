package btree

import (
	"cmp"
	"errors"
	"math"
)

// MaxDegree is the largest accepted minimum degree; 2*MaxDegree children
// still fit in an int.
const MaxDegree = math.MaxInt / 2

var (
	ErrInvalidDegree      = errors.New("minimum degree out of range")
	ErrNilCompare         = errors.New("compare function is nil")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvariantViolation = errors.New("invariant violation")
)

// CompareFunc orders keys. It returns a negative number when a < b, zero
// when a == b and a positive number when a > b, and must be a total order.
type CompareFunc[K any] func(a, b K) int

// BTree is an in-memory B-tree of minimum degree t. Every node other than
// the root holds between t-1 and 2t-1 items, and all leaves share one depth.
//
// A BTree is not safe for concurrent use.
type BTree[K, V any] struct {
	degree  int
	compare CompareFunc[K]
	pool    *nodePool[K, V]
	root    NodeID
	size    int
}

// Stats describes the shape of a tree
type Stats struct {
	Len       int
	Height    int
	Nodes     int
	FreeSlots int
}

// New creates an empty B-tree ordered by the natural order of K
func New[K cmp.Ordered, V any](degree int) (*BTree[K, V], error) {
	return NewWithCompare[K, V](degree, cmp.Compare[K])
}

// NewWithCompare creates an empty B-tree ordered by compare
func NewWithCompare[K, V any](degree int, compare CompareFunc[K]) (*BTree[K, V], error) {
	if degree < 2 || degree > MaxDegree {
		return nil, ErrInvalidDegree
	}
	if compare == nil {
		return nil, ErrNilCompare
	}

	t := &BTree[K, V]{
		degree:  degree,
		compare: compare,
		pool:    newNodePool[K, V](2*degree - 1),
	}
	t.root = t.pool.allocate(true).id

	return t, nil
}

// Degree returns the minimum degree t
func (t *BTree[K, V]) Degree() int {
	return t.degree
}

// Len returns the number of entries
func (t *BTree[K, V]) Len() int {
	return t.size
}

// Height returns the number of edges between the root and the leaves.
// A tree whose root is a leaf has height 0.
func (t *BTree[K, V]) Height() int {
	h := 0
	for n := t.rootNode(); !n.leaf; n = t.child(n, 0) {
		h++
	}
	return h
}

// Stats returns size and arena statistics
func (t *BTree[K, V]) Stats() Stats {
	_, free := t.pool.stats()
	return Stats{
		Len:       t.size,
		Height:    t.Height(),
		Nodes:     t.pool.live(),
		FreeSlots: free,
	}
}

func (t *BTree[K, V]) maxItems() int {
	return 2*t.degree - 1
}

func (t *BTree[K, V]) minItems() int {
	return t.degree - 1
}

func (t *BTree[K, V]) rootNode() *node[K, V] {
	return t.pool.get(t.root)
}

func (t *BTree[K, V]) child(n *node[K, V], i int) *node[K, V] {
	return t.pool.get(n.children[i])
}

// locate finds the node and position holding key
func (t *BTree[K, V]) locate(key K) (*node[K, V], int, bool) {
	n := t.rootNode()
	for {
		pos, found := n.search(key, t.compare)
		if found {
			return n, pos, true
		}
		if n.leaf {
			return nil, 0, false
		}
		n = t.child(n, pos)
	}
}

// Get returns the value stored under key
func (t *BTree[K, V]) Get(key K) (V, bool) {
	n, pos, found := t.locate(key)
	if !found {
		var zero V
		return zero, false
	}
	return n.items[pos].value, true
}

// Has reports whether key is present
func (t *BTree[K, V]) Has(key K) bool {
	_, _, found := t.locate(key)
	return found
}

// Min returns the smallest entry
func (t *BTree[K, V]) Min() (K, V, bool) {
	if t.size == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	it := t.first(t.rootNode())
	return it.key, it.value, true
}

// Max returns the largest entry
func (t *BTree[K, V]) Max() (K, V, bool) {
	if t.size == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	it := t.last(t.rootNode())
	return it.key, it.value, true
}

// first returns the leftmost item of the subtree rooted at n
func (t *BTree[K, V]) first(n *node[K, V]) item[K, V] {
	for !n.leaf {
		n = t.child(n, 0)
	}
	return n.items[0]
}

// last returns the rightmost item of the subtree rooted at n
func (t *BTree[K, V]) last(n *node[K, V]) item[K, V] {
	for !n.leaf {
		n = t.child(n, len(n.children)-1)
	}
	return n.items[len(n.items)-1]
}

// Ascend calls fn for every entry in key order until fn returns false
func (t *BTree[K, V]) Ascend(fn func(key K, value V) bool) {
	t.ascend(t.rootNode(), fn)
}

func (t *BTree[K, V]) ascend(n *node[K, V], fn func(K, V) bool) bool {
	for i, it := range n.items {
		if !n.leaf && !t.ascend(t.child(n, i), fn) {
			return false
		}
		if !fn(it.key, it.value) {
			return false
		}
	}
	if !n.leaf {
		return t.ascend(t.child(n, len(n.items)), fn)
	}
	return true
}

// Keys returns all keys in order
func (t *BTree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Ascend(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Clear removes every entry
func (t *BTree[K, V]) Clear() {
	t.pool.reset()
	t.root = t.pool.allocate(true).id
	t.size = 0
}
