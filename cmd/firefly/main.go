// Command firefly projects retirement savings, runs Monte Carlo simulations
// and compares what-if scenarios for a single financial profile.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
