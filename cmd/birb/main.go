// Package main is the entry point for the birb CLI.
package main

import (
	"os"

	"github.com/birb-build/birb/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
