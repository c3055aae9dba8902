// Package main is the entry point for the kaikei CLI.
package main

import (
	"os"

	"github.com/Morisan51/chonaikai-kaikei/cmd/kaikei/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
