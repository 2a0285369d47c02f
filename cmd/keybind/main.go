// Package main is the entry point for the keybind command.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/keybind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
