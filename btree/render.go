package btree

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// Render writes the tree level by level, one line per depth, each node
// shown as its bracketed key list:
//
//	L0: [10]
//	L1: [5 7] [12 17 20 30]
//
// With colorize set, level labels and keys are highlighted with ANSI colors
// regardless of whether w is a terminal.
func (t *BTree[K, V]) Render(w io.Writer, colorize bool) error {
	levelColor := color.New(color.FgYellow)
	keyColor := color.New(color.FgCyan, color.Bold)
	if colorize {
		levelColor.EnableColor()
		keyColor.EnableColor()
	} else {
		levelColor.DisableColor()
		keyColor.DisableColor()
	}

	level := []NodeID{t.root}
	for depth := 0; len(level) > 0; depth++ {
		var b strings.Builder
		b.WriteString(levelColor.Sprintf("L%d:", depth))

		var next []NodeID
		for _, id := range level {
			n := t.pool.get(id)
			b.WriteString(" [")
			for i, it := range n.items {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(keyColor.Sprint(it.key))
			}
			b.WriteByte(']')
			next = append(next, n.children...)
		}
		b.WriteByte('\n')

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		level = next
	}

	return nil
}
