package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/conure-db/conure-btree/db"
)

// REPL executes shell commands against a database and writes the replies
// to out.
type REPL struct {
	db    *db.DB
	out   io.Writer
	color bool
}

func NewREPL(database *db.DB, out io.Writer, colorize bool) *REPL {
	return &REPL{db: database, out: out, color: colorize}
}

// Execute runs one command line and reports whether the shell should exit.
func (r *REPL) Execute(line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch cmd := parts[0]; cmd {
	case "help":
		r.printHelp()
	case "get":
		if len(parts) != 2 {
			r.println("Usage: get <key>")
			return false
		}
		value, err := r.db.Get(parts[1])
		if err != nil {
			r.printError(err)
			return false
		}
		r.printf("%s\n", value)
	case "put", "insert":
		if len(parts) < 3 {
			r.printf("Usage: %s <key> <value>\n", cmd)
			return false
		}
		value := []byte(strings.Join(parts[2:], " "))
		var err error
		if cmd == "put" {
			err = r.db.Put(parts[1], value)
		} else {
			err = r.db.Insert(parts[1], value)
		}
		if err != nil {
			r.printError(err)
			return false
		}
		r.println("OK")
	case "delete":
		if len(parts) != 2 {
			r.println("Usage: delete <key>")
			return false
		}
		deleted, err := r.db.Delete(parts[1])
		if err != nil {
			r.printError(err)
			return false
		}
		if !deleted {
			r.printError(db.ErrKeyNotFound)
			return false
		}
		r.println("OK")
	case "len":
		n, err := r.db.Len()
		if err != nil {
			r.printError(err)
			return false
		}
		r.printf("%d\n", n)
	case "height":
		h, err := r.db.Height()
		if err != nil {
			r.printError(err)
			return false
		}
		r.printf("%d\n", h)
	case "stats":
		s, err := r.db.Stats()
		if err != nil {
			r.printError(err)
			return false
		}
		r.printf("len=%d height=%d nodes=%d free=%d\n", s.Len, s.Height, s.Nodes, s.FreeSlots)
	case "check":
		if err := r.db.Check(); err != nil {
			r.printError(err)
			return false
		}
		r.println("OK")
	case "keys":
		keys, err := r.db.Keys()
		if err != nil {
			r.printError(err)
			return false
		}
		for _, k := range keys {
			r.println(k)
		}
	case "dump":
		if err := r.db.Render(r.out, r.color); err != nil {
			r.printError(err)
		}
	case "seed":
		if len(parts) != 2 {
			r.println("Usage: seed <n>")
			return false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 {
			r.println("Usage: seed <n>")
			return false
		}
		added, err := seedDB(r.db, n)
		if err != nil {
			r.printError(err)
			return false
		}
		r.printf("Seeded %d entries\n", added)
	case "exit", "quit":
		r.println("Goodbye!")
		return true
	default:
		r.printf("Unknown command: %s\n", cmd)
		r.printHelp()
	}
	return false
}

func (r *REPL) printHelp() {
	r.println("Available commands:")
	r.println("  get <key>              - Get a value")
	r.println("  put <key> <value>      - Put a key-value pair, replacing any existing value")
	r.println("  insert <key> <value>   - Insert a new key-value pair")
	r.println("  delete <key>           - Delete a key")
	r.println("  len                    - Show the number of keys")
	r.println("  height                 - Show the tree height")
	r.println("  stats                  - Show tree statistics")
	r.println("  check                  - Validate the tree structure")
	r.println("  keys                   - List all keys in order")
	r.println("  dump                   - Print the tree level by level")
	r.println("  seed <n>               - Insert n generated entries")
	r.println("  help                   - Show this help message")
	r.println("  exit, quit             - Exit the program")
}

func (r *REPL) println(s string) { fmt.Fprintln(r.out, s) }

func (r *REPL) printf(format string, args ...any) { fmt.Fprintf(r.out, format, args...) }

func (r *REPL) printError(err error) { r.printf("Error: %v\n", err) }

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("get"),
		readline.PcItem("put"),
		readline.PcItem("insert"),
		readline.PcItem("delete"),
		readline.PcItem("len"),
		readline.PcItem("height"),
		readline.PcItem("stats"),
		readline.PcItem("check"),
		readline.PcItem("keys"),
		readline.PcItem("dump"),
		readline.PcItem("seed"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

// runREPL reads lines from the terminal until exit or EOF.
func runREPL(r *REPL, prompt, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if r.Execute(line) {
			return nil
		}
	}
}
