// Package main is the entry point for the frakt-worker CLI.
package main

import (
	"fmt"
	"os"

	"frakt-worker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
