package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samkit-io/samkit/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		dirFlag      string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the template",
		Long: `Validate the project's template: structural checks first (parse,
schema, references, function properties, endpoint bindings), then the
cfn-lint rule set when the structure holds.

Examples:
    samkit validate
    samkit validate --format json
    samkit validate --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(dirFlag, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, or yaml")

	return cmd
}

func runValidate(dir, format string) error {
	path, err := templatePath(dir)
	if err != nil {
		return err
	}
	result, err := validation.ValidateTemplate(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return outputValidationResult(result, format)
}

func outputValidationResult(result *validation.ValidationResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

	case "text":
		if result.Check.Passed {
			fmt.Println("Structural checks: passed")
		} else {
			fmt.Println("Structural checks: failed")
			for _, issue := range result.Check.Issues {
				fmt.Printf("  %s\n", issue)
			}
		}

		if result.CfnLint.Passed {
			fmt.Println("cfn-lint: passed")
		} else {
			fmt.Println("cfn-lint: failed")
			for _, msg := range result.CfnLint.Errors {
				fmt.Printf("  error: %s\n", msg)
			}
		}
		for _, msg := range result.CfnLint.Warnings {
			fmt.Printf("  warning: %s\n", msg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Check.Passed || !result.CfnLint.Passed {
		os.Exit(2)
	}

	return nil
}
