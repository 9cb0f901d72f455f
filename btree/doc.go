// Package btree implements an in-memory B-tree of configurable minimum
// degree.
//
// # Overview
//
// A tree of minimum degree t keeps between t-1 and 2t-1 items in every node
// except the root, and keeps all leaves at the same depth. Keys are ordered
// by a CompareFunc, or by their natural order when the tree is built with
// New.
//
//   - Insert splits full nodes on the way down, so it never backtracks.
//   - Delete refills minimal nodes on the way down by borrowing from a
//     sibling or merging with one, so it never backtracks either.
//   - CheckInvariants validates the whole structure and is meant for tests
//     and diagnostics.
//
// # Nodes
//
// Nodes live in an arena owned by the tree and refer to their children by
// NodeID. A node is created by a split (or as a new root) and released to
// the arena by a merge (or when the root collapses).
//
// # Usage
//
//	tree, err := btree.New[int, string](3)
//
//	err = tree.Insert(10, "ten")   // ErrDuplicateKey if 10 exists
//	tree.Set(10, "TEN")            // overwrite
//	v, ok := tree.Get(10)
//	deleted := tree.Delete(10)
//
// # Debug builds
//
// Building with -tags btreedebug runs CheckInvariants after every mutation
// and panics on the first violation.
package btree
