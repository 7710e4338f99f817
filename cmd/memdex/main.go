// Command memdex is an interactive shell around a single in-memory B-tree:
// add, delete, and probe integer keys and watch the structure rebalance.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"memdex"
)

var depthColors = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgMagenta),
	color.New(color.FgBlue),
}

func main() {
	degree := 3
	if len(os.Args) > 1 {
		d, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "usage: memdex [min-degree]\n")
			os.Exit(2)
		}
		degree = d
	}

	tree, err := memdex.New(memdex.WithMinDegree(degree))
	if err != nil {
		fmt.Fprintf(os.Stderr, "memdex: %v\n", err)
		os.Exit(2)
	}
	defer tree.Close()

	if err := run(bufio.NewScanner(os.Stdin), os.Stdout, tree); err != nil {
		fmt.Fprintf(os.Stderr, "memdex: %v\n", err)
		os.Exit(1)
	}
}

func run(sc *bufio.Scanner, w io.Writer, tree *memdex.Tree) error {
	printHelp(w)
	fmt.Fprint(w, "> ")
	for sc.Scan() {
		if quit := process(w, tree, sc.Text()); quit {
			return sc.Err()
		}
		fmt.Fprint(w, "> ")
	}
	return sc.Err()
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
memdex B-tree shell

Available commands:
  ADD <key>    Insert a key
  DEL <key>    Delete a key
  FIND <key>   Test whether a key is present
  PRINT        Dump the tree, indented by depth
  STATS        Show tree counters
  EXIT         Quit
`)
}

// process handles one input line and reports whether the session should end.
func process(w io.Writer, tree *memdex.Tree, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "add":
		key, err := parseKey(fields[1:])
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		if err := tree.Insert(key); err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		fmt.Fprintf(w, "ADDED %d\n", key)
		render(w, tree)
	case "del":
		key, err := parseKey(fields[1:])
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		removed, err := tree.Delete(key)
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		if removed {
			fmt.Fprintf(w, "DELETED %d\n", key)
			render(w, tree)
		} else {
			fmt.Fprintf(w, "%d NOT IN TREE\n", key)
		}
	case "find":
		key, err := parseKey(fields[1:])
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		found, err := tree.Contains(key)
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}
		if found {
			fmt.Fprintf(w, "%d FOUND\n", key)
		} else {
			fmt.Fprintf(w, "%d NOT IN TREE\n", key)
		}
	case "print":
		render(w, tree)
	case "stats":
		s := tree.Stats()
		fmt.Fprintf(w, "keys=%d height=%d nodes=%d allocated=%d freed=%d\n",
			s.Keys, s.Height, s.Nodes, s.NodesAllocated, s.NodesFreed)
	case "exit", "quit":
		return true
	default:
		fmt.Fprintf(w, "unknown command %q\n", fields[0])
	}
	return false
}

// parseKey validates a key argument into [0, 2^31-1) before it ever reaches
// the tree.
func parseKey(args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one key argument")
	}
	v, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || v >= uint64(memdex.KeyLimit) {
		return 0, fmt.Errorf("key must be an integer in [0, %d)", memdex.KeyLimit)
	}
	return uint32(v), nil
}

// render dumps the tree in-order, one key per line, indented and colored by
// depth.
func render(w io.Writer, tree *memdex.Tree) {
	if tree.Len() == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	for key, depth := range tree.All() {
		c := depthColors[depth%len(depthColors)]
		fmt.Fprint(w, strings.Repeat("\t", depth))
		c.Fprintln(w, key)
	}
}
