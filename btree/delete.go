package btree

// Delete removes key from the tree and reports whether it was present.
// A missing key leaves the tree untouched.
func (t *BTree[K, V]) Delete(key K) bool {
	if !t.Has(key) {
		return false
	}

	t.delete(t.rootNode(), key)
	t.size--

	// A root left without keys hands over to its only child
	root := t.rootNode()
	if root.count() == 0 && !root.leaf {
		t.root = root.children[0]
		t.pool.release(root.id)
	}

	t.assertInvariants()
	return true
}

// delete removes key from the subtree rooted at n. Every node it enters,
// except the root, holds at least t items, so removing one item never
// leaves it short. Callers guarantee key is present in the subtree.
func (t *BTree[K, V]) delete(n *node[K, V], key K) {
	for {
		pos, found := n.search(key, t.compare)
		if found {
			if n.leaf {
				n.removeItemAt(pos)
				return
			}
			n, key = t.deleteInternal(n, pos)
			continue
		}

		// The key lives in the subtree at pos; make sure that child can give
		// up an item before going down
		if t.child(n, pos).count() == t.minItems() {
			pos = t.fill(n, pos)
		}
		n = t.child(n, pos)
	}
}

// deleteInternal handles a key found at pos of the internal node n. It
// returns the node and key the deletion continues with.
func (t *BTree[K, V]) deleteInternal(n *node[K, V], pos int) (*node[K, V], K) {
	left := t.child(n, pos)
	right := t.child(n, pos+1)

	// Replace with the predecessor and delete that from the left subtree
	if left.count() > t.minItems() {
		pred := t.last(left)
		n.items[pos] = pred
		return left, pred.key
	}

	// Replace with the successor and delete that from the right subtree
	if right.count() > t.minItems() {
		succ := t.first(right)
		n.items[pos] = succ
		return right, succ.key
	}

	// Both children are minimal: pull the key down into the merged node
	key := n.items[pos].key
	t.merge(n, pos)
	return left, key
}

// fill makes sure the child at pos of n has more than t-1 items by
// borrowing from a sibling or merging with one. It returns the index of the
// child holding the range that was at pos.
func (t *BTree[K, V]) fill(n *node[K, V], pos int) int {
	if pos > 0 && t.child(n, pos-1).count() > t.minItems() {
		t.borrowFromLeft(n, pos)
		return pos
	}

	if pos < n.count() && t.child(n, pos+1).count() > t.minItems() {
		t.borrowFromRight(n, pos)
		return pos
	}

	// No sibling can spare an item
	if pos < n.count() {
		t.merge(n, pos)
		return pos
	}
	t.merge(n, pos-1)
	return pos - 1
}

// borrowFromLeft rotates the last item of the left sibling up into the
// parent and the parent's separator down to the front of the child at pos.
func (t *BTree[K, V]) borrowFromLeft(parent *node[K, V], pos int) {
	child := t.child(parent, pos)
	sibling := t.child(parent, pos-1)

	// Move the parent's separator down to the child
	child.insertItemAt(0, parent.items[pos-1])

	// Move the sibling's rightmost item up to the parent
	parent.items[pos-1] = sibling.removeItemAt(sibling.count() - 1)

	// Move the sibling's rightmost child over
	if !child.leaf {
		child.insertChildAt(0, sibling.removeChildAt(len(sibling.children)-1))
	}
}

// borrowFromRight rotates the first item of the right sibling up into the
// parent and the parent's separator down to the end of the child at pos.
func (t *BTree[K, V]) borrowFromRight(parent *node[K, V], pos int) {
	child := t.child(parent, pos)
	sibling := t.child(parent, pos+1)

	// Move the parent's separator down to the child
	child.items = append(child.items, parent.items[pos])

	// Move the sibling's leftmost item up to the parent
	parent.items[pos] = sibling.removeItemAt(0)

	// Move the sibling's leftmost child over
	if !child.leaf {
		child.children = append(child.children, sibling.removeChildAt(0))
	}
}

// merge folds the separator at pos of parent and the child at pos+1 into
// the child at pos, then releases the absorbed node.
func (t *BTree[K, V]) merge(parent *node[K, V], pos int) {
	left := t.child(parent, pos)
	right := t.child(parent, pos+1)

	left.items = append(left.items, parent.removeItemAt(pos))
	left.items = append(left.items, right.items...)
	if !left.leaf {
		left.children = append(left.children, right.children...)
	}

	parent.removeChildAt(pos + 1)
	t.pool.release(right.id)
}
