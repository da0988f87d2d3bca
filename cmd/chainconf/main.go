// Package main provides the chainconf CLI for inspecting the per-chain
// deployment configuration handed to an EVM toolchain.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
