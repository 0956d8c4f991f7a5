package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/semdiff/pkg/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a document and print its canonical form as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		format := parser.Format(parseFormat)
		if parseFormat == "" {
			detected, err := parser.Detect(path)
			if err != nil {
				return err
			}
			format = detected
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		v, err := parser.Parse(format, string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling output: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
	SilenceUsage: true,
}

var parseFormat string

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "input-format", "", "Input format: json, yaml, toml, ini, xml, csv (default: detect by extension)")
	rootCmd.AddCommand(parseCmd)
}
