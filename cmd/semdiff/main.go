package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "semdiff",
	Short: "Structural diff for JSON, YAML, TOML, INI, XML and CSV",
	Long: `semdiff compares semi-structured documents by meaning rather than by
line, reporting added, removed, modified and type-changed values as a
path-addressed list that is stable across formatting and key-order
differences.`,
}

// errTreesDiffer is the sentinel for the classic diff exit convention:
// 0 identical, 1 differences found, 2 trouble.
var errTreesDiffer = errors.New("trees differ")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errTreesDiffer) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
