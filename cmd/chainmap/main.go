package main

import (
	"fmt"
	"os"

	"github.com/graph-guard/chainmap/pkg/cli"
)

func main() {
	w := os.Stdout
	ok := true
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandLoad:
		ok = load(w, c)
	case cli.CommandFill:
		ok = fill(w, c)
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
	if !ok {
		os.Exit(1)
	}
}
