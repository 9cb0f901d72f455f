package btree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireViolation asserts that CheckInvariants fails at node id with reason
func requireViolation(t *testing.T, tr *BTree[int, string], id NodeID, reason string) {
	t.Helper()

	err := tr.CheckInvariants()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvariantViolation)

	var ierr *InvariantError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, id, ierr.Node)
	assert.Contains(t, ierr.Reason, reason)
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tr *BTree[int, string]) NodeID
		reason  string
	}{
		{
			name: "unsorted keys",
			corrupt: func(tr *BTree[int, string]) NodeID {
				leaf := tr.child(tr.rootNode(), 0)
				leaf.items[0], leaf.items[2] = leaf.items[2], leaf.items[0]
				return leaf.id
			},
			reason: "not strictly increasing",
		},
		{
			name: "key outside separators",
			corrupt: func(tr *BTree[int, string]) NodeID {
				leaf := tr.child(tr.rootNode(), 1)
				leaf.items[0].key = 5
				return leaf.id
			},
			reason: "lower separator",
		},
		{
			name: "underflow",
			corrupt: func(tr *BTree[int, string]) NodeID {
				leaf := tr.child(tr.rootNode(), 2)
				leaf.removeItemAt(0)
				return leaf.id
			},
			reason: "below minimum",
		},
		{
			name: "overflow",
			corrupt: func(tr *BTree[int, string]) NodeID {
				leaf := tr.child(tr.rootNode(), 0)
				leaf.items = append(leaf.items, item[int, string]{key: 8}, item[int, string]{key: 9})
				return leaf.id
			},
			reason: "exceeds maximum",
		},
		{
			name: "missing child",
			corrupt: func(tr *BTree[int, string]) NodeID {
				root := tr.rootNode()
				root.children = root.children[:2]
				return root.id
			},
			reason: "2 items but 2 children",
		},
		{
			name: "uneven leaves",
			corrupt: func(tr *BTree[int, string]) NodeID {
				leaf := tr.child(tr.rootNode(), 2)
				a := tr.pool.allocate(true)
				a.items = append(a.items, item[int, string]{key: 25})
				b := tr.pool.allocate(true)
				b.items = append(b.items, item[int, string]{key: 35})
				leaf.leaf = false
				leaf.children = []NodeID{a.id, b.id}
				return a.id
			},
			reason: "leaf at depth 2, expected 1",
		},
		{
			name: "shared child",
			corrupt: func(tr *BTree[int, string]) NodeID {
				root := tr.rootNode()
				root.children[2] = root.children[1]
				return root.children[1]
			},
			reason: "more than once",
		},
		{
			name: "dangling child",
			corrupt: func(tr *BTree[int, string]) NodeID {
				root := tr.rootNode()
				tr.pool.release(root.children[2])
				return root.children[2]
			},
			reason: "not live",
		},
		{
			name: "leaked node",
			corrupt: func(tr *BTree[int, string]) NodeID {
				tr.pool.allocate(true)
				return tr.root
			},
			reason: "4 nodes reachable but 5 live",
		},
		{
			name: "wrong size",
			corrupt: func(tr *BTree[int, string]) NodeID {
				tr.size++
				return tr.root
			},
			reason: "holds 8 entries but Len is 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := scenarioTree(t)
			id := tt.corrupt(tr)
			requireViolation(t, tr, id, tt.reason)
		})
	}
}

func TestCheckInvariantsEmptyInternalRoot(t *testing.T) {
	tr := scenarioTree(t)

	root := tr.rootNode()
	left := tr.child(root, 0)
	tr.merge(root, 0)
	tr.merge(root, 0)

	requireViolation(t, tr, root.id, "internal root without items")
	assert.Equal(t, 8, left.count())
}

func TestInvariantErrorMessage(t *testing.T) {
	err := &InvariantError{Node: 4, Reason: "boom"}
	assert.Equal(t, "btree: invariant violation at node 4: boom", err.Error())
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}
