// Package main is the entry point for tcg-price-tracker.
package main

import (
	"os"

	"github.com/tcgtrack/tcg-price-tracker/cmd/tcg-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
