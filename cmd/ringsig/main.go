// Command ringsig creates keys, and signs and verifies linkable ring
// signatures from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ringsig: %v\n", err)
		os.Exit(1)
	}
}
