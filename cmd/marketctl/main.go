// ABOUTME: marketctl is a command-line consumer of the marketplace catalog client
// ABOUTME: Wires config, transport, cache and favorites together for inspection from a shell

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
