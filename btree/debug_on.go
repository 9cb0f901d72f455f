//go:build btreedebug

package btree

// debugInvariants makes every mutation verify the tree afterwards
const debugInvariants = true
