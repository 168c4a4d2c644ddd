package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samkit-io/samkit/internal/validation"
)

func newLintCmd() *cobra.Command {
	var (
		dirFlag      string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Run cfn-lint rules against the template",
		Long: `Lint the project's template with the full cfn-lint rule set. Warnings
are acceptable; errors fail the run.

Examples:
    samkit lint
    samkit lint --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(dirFlag, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runLint(dir, format string) error {
	path, err := templatePath(dir)
	if err != nil {
		return err
	}
	result, err := validation.RunCfnLint(path)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	return outputLintResult(result, format)
}

func outputLintResult(result *validation.CfnLintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.TotalIssues() == 0 {
			fmt.Println("No issues found.")
			return nil
		}

		for _, msg := range result.Errors {
			fmt.Printf("error: %s\n", msg)
		}
		for _, msg := range result.Warnings {
			fmt.Printf("warning: %s\n", msg)
		}
		for _, msg := range result.Informational {
			fmt.Printf("info: %s\n", msg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Passed {
		os.Exit(2) // Exit code 2 for issues found
	}

	return nil
}
