// nullpick - colour conversion, harmony and contrast tool
//
// nullpick converts colours between notations, generates harmonic palettes,
// checks WCAG contrast and samples colours from snapshot images.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/nullpick/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
