package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/policy/parser"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate rule files",
	Long: `Validate policy rule files for syntax, structural and semantic errors.

The lint command parses rule files and reports every violation found in a
single pass:
  - YAML or DSL syntax errors
  - Missing or duplicate fields (name, priority, match, action)
  - Unparsable port sets, comparators, wildcards and state names
  - Conflicting actions

Examples:
  # Lint a single file
  netpolicyd lint --file policies.yaml

  # Lint a directory
  netpolicyd lint --dir policies/

  # JSON output for CI
  netpolicyd lint --file policies.yaml --output json`,
	RunE: lintRules,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "rule file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of rule files")
	lintCmd.Flags().StringVar(&lintFlags.format, "output", "text", "output format: text, json")
}

// lintResult is the per-file outcome reported by lint.
type lintResult struct {
	File      string   `json:"file"`
	Valid     bool     `json:"valid"`
	RuleCount int      `json:"rule_count"`
	Errors    []string `json:"errors,omitempty"`
}

func lintRules(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml", "*.rules"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list rule files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no rule files found")
	}

	results := make([]lintResult, 0, len(files))
	failed := false

	for _, file := range files {
		result := lintFile(file)
		if !result.Valid {
			failed = true
		}
		results = append(results, result)
	}

	if lintFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			if result.Valid {
				fmt.Printf("%s: ok (%d rules)\n", result.File, result.RuleCount)
				continue
			}
			fmt.Printf("%s: %d error(s)\n", result.File, len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e)
			}
		}
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// lintFile loads one rule file and collects its violations.
func lintFile(path string) lintResult {
	result := lintResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	rs, err := engine.Load(data, path, parser.FormatForPath(path))
	if err != nil {
		if el := engine.AsErrorList(err); el != nil {
			for _, e := range el.Errors {
				result.Errors = append(result.Errors, e.Error())
			}
		} else {
			result.Errors = append(result.Errors, err.Error())
		}
		return result
	}

	result.Valid = true
	result.RuleCount = rs.Len()
	return result
}
