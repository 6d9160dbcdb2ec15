// Command buhcalc computes Irkutsk region payroll and taxes from the command
// line or serves the same calculators over HTTP.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
