//go:build !btreedebug

package btree

const debugInvariants = false
