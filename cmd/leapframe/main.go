// Package main provides the CLI for LeapFrame.
package main

import (
	"os"

	"github.com/leapstack-labs/leapframe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
