package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	samkit "github.com/samkit-io/samkit"
)

func newListCmd() *cobra.Command {
	var (
		dirFlag    string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List template resources and endpoints",
		Long: `List the template's resources in document order, followed by the
endpoint index.

Examples:
    samkit list
    samkit list --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(dirFlag, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(dir, format string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	ctx := context.Background()

	doc, err := ed.Load(ctx)
	if err != nil {
		return err
	}
	index, err := ed.Endpoints(ctx)
	if err != nil {
		return err
	}

	result := samkit.ListResult{
		Resources: make([]samkit.ListResource, 0, len(doc.ResourceNames())),
		Endpoints: index,
	}
	for _, name := range doc.ResourceNames() {
		result.Resources = append(result.Resources, samkit.ListResource{
			Name: name,
			Type: doc.ResourceType(name),
		})
	}

	return outputListResult(result, format)
}

func outputListResult(result samkit.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Println("No resources found.")
			return nil
		}

		fmt.Printf("Resources (%d):\n\n", len(result.Resources))
		for _, res := range result.Resources {
			fmt.Printf("  %s: %s\n", res.Name, res.Type)
		}

		gateways := result.Endpoints.Gateways()
		if len(gateways) == 0 {
			return nil
		}
		sort.Strings(gateways)
		fmt.Println()
		fmt.Println("Endpoints:")
		for _, gateway := range gateways {
			fmt.Printf("\n  %s:\n", gateway)
			lambdas := make([]string, 0, len(result.Endpoints[gateway]))
			for lambda := range result.Endpoints[gateway] {
				lambdas = append(lambdas, lambda)
			}
			sort.Strings(lambdas)
			for _, lambda := range lambdas {
				for _, b := range result.Endpoints[gateway][lambda] {
					fmt.Printf("    %s %s -> %s\n", strings.ToUpper(b.Method), b.Path, lambda)
				}
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
