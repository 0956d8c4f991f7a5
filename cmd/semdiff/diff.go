package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/semdiff/pkg/differ"
	"github.com/wonderfulspam/semdiff/pkg/parser"
	"github.com/wonderfulspam/semdiff/pkg/renderer"
	"github.com/wonderfulspam/semdiff/pkg/value"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-file> <new-file>",
	Short: "Compare two documents structurally",
	Long: `Compare two documents and report their structural differences.
Input formats are detected from file extensions (.json, .yaml/.yml,
.toml, .ini/.cfg, .xml, .csv) unless --input-format is given. Exits 0
when the documents are structurally identical, 1 when they differ and 2
on error.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runDiff,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var diffFlags struct {
	inputFormat      string
	output           string
	epsilon          float64
	arrayIDKey       string
	ignoreKeysRegex  string
	pathFilter       string
	ignoreWhitespace bool
	ignoreCase       bool
	brief            bool
	quiet            bool
	maxDepth         int
}

func init() {
	f := diffCmd.Flags()
	f.StringVar(&diffFlags.inputFormat, "input-format", "", "Input format for both files: json, yaml, toml, ini, xml, csv (default: detect by extension)")
	f.StringVarP(&diffFlags.output, "output", "o", "native", "Output format: native, json, yaml")
	f.Float64Var(&diffFlags.epsilon, "epsilon", 0, "Tolerance for numeric comparison (default: exact match)")
	f.StringVar(&diffFlags.arrayIDKey, "array-id-key", "", "Object key used to match array elements by identity instead of position")
	f.StringVar(&diffFlags.ignoreKeysRegex, "ignore-keys-regex", "", "Regex of object keys to exclude from comparison")
	f.StringVar(&diffFlags.pathFilter, "path-filter", "", "Only report entries whose path contains this substring")
	f.BoolVar(&diffFlags.ignoreWhitespace, "ignore-whitespace", false, "Ignore whitespace differences in strings")
	f.BoolVar(&diffFlags.ignoreCase, "ignore-case", false, "Ignore case differences in strings")
	f.BoolVar(&diffFlags.brief, "brief", false, "Report only whether the documents differ")
	f.BoolVarP(&diffFlags.quiet, "quiet", "q", false, "Suppress output; communicate via exit status only")
	f.IntVar(&diffFlags.maxDepth, "max-depth", 0, "Maximum traversal depth (default 512)")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldVal, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	newVal, err := loadDocument(args[1])
	if err != nil {
		return err
	}

	opts := differ.Options{
		Epsilon:          diffFlags.epsilon,
		ArrayIDKey:       diffFlags.arrayIDKey,
		IgnoreKeysRegex:  diffFlags.ignoreKeysRegex,
		PathFilter:       diffFlags.pathFilter,
		OutputFormat:     diffFlags.output,
		IgnoreWhitespace: diffFlags.ignoreWhitespace,
		IgnoreCase:       diffFlags.ignoreCase,
		BriefMode:        diffFlags.brief,
		QuietMode:        diffFlags.quiet,
		MaxDepth:         diffFlags.maxDepth,
	}

	result, err := differ.Compare(oldVal, newVal, &opts)
	if err != nil {
		return err
	}

	if !result.HasChanges {
		return nil
	}

	switch {
	case diffFlags.quiet:
		// exit status only
	case diffFlags.brief:
		fmt.Fprintf(cmd.OutOrStdout(), "Files %s and %s differ\n", args[0], args[1])
	default:
		out, err := renderer.Format(result.Entries, diffFlags.output)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}

	cmd.SilenceErrors = true
	return errTreesDiffer
}

func loadDocument(path string) (*value.Value, error) {
	format := parser.Format(diffFlags.inputFormat)
	if diffFlags.inputFormat == "" {
		detected, err := parser.Detect(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	v, err := parser.Parse(format, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
