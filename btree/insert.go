package btree

// Insert adds a new entry. If key is already present the tree is left
// untouched and ErrDuplicateKey is returned.
func (t *BTree[K, V]) Insert(key K, value V) error {
	// Reject before the descent below starts splitting nodes
	if t.Has(key) {
		return ErrDuplicateKey
	}

	// A full root is split first; this is the only way the tree grows taller
	if t.rootNode().count() == t.maxItems() {
		t.splitRoot()
	}

	t.insertNonFull(t.rootNode(), item[K, V]{key: key, value: value})
	t.size++

	t.assertInvariants()
	return nil
}

// Set stores value under key, overwriting an existing value in place.
// It reports whether an existing value was replaced.
func (t *BTree[K, V]) Set(key K, value V) bool {
	if n, pos, found := t.locate(key); found {
		n.items[pos].value = value
		return true
	}

	// The key is known to be absent, so Insert cannot fail
	_ = t.Insert(key, value)
	return false
}

// splitRoot creates a new root whose only child is the old root, then
// splits the old root under it.
func (t *BTree[K, V]) splitRoot() {
	newRoot := t.pool.allocate(false)
	newRoot.insertChildAt(0, t.root)
	t.splitChild(newRoot, 0)
	t.root = newRoot.id
}

// splitChild splits the full child at index i of parent. The child keeps the
// lower t-1 items, a new right sibling takes the upper t-1 items, and the
// median moves up into parent at index i with the sibling as child i+1.
func (t *BTree[K, V]) splitChild(parent *node[K, V], i int) {
	full := t.child(parent, i)
	sibling := t.pool.allocate(full.leaf)

	mid := t.degree - 1
	median := full.items[mid]

	// Move the upper half to the sibling
	sibling.items = append(sibling.items, full.items[mid+1:]...)
	if !full.leaf {
		sibling.children = append(sibling.children, full.children[mid+1:]...)
	}
	full.truncate(mid)

	// Link the median and the sibling into the parent
	parent.insertItemAt(i, median)
	parent.insertChildAt(i+1, sibling.id)
}

// insertNonFull descends from n, which must not be full, splitting any full
// child before entering it, and inserts it at the leaf.
func (t *BTree[K, V]) insertNonFull(n *node[K, V], it item[K, V]) {
	for {
		pos, _ := n.search(it.key, t.compare)
		if n.leaf {
			n.insertItemAt(pos, it)
			return
		}

		if t.child(n, pos).count() == t.maxItems() {
			t.splitChild(n, pos)
			// The promoted median now sits at pos; go right if the key is larger
			if t.compare(it.key, n.items[pos].key) > 0 {
				pos++
			}
		}
		n = t.child(n, pos)
	}
}
