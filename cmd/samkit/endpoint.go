package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/scaffold"
)

func newEndpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage HTTP endpoints",
		Long: `Manage the HTTP endpoints wired between gateways and Lambda functions.
An endpoint is an Api event on a Function resource; add, update, and
delete rewrite those events in place.

Examples:
  samkit endpoint add --lambda orders --method post --path /orders
  samkit endpoint update --lambda orders --method post --path /orders --new-path /v2/orders
  samkit endpoint delete --lambda orders --method post --path /orders
  samkit endpoint list --format json`,
	}

	cmd.AddCommand(newEndpointAddCmd())
	cmd.AddCommand(newEndpointUpdateCmd())
	cmd.AddCommand(newEndpointDeleteCmd())
	cmd.AddCommand(newEndpointListCmd())

	return cmd
}

func newEndpointAddCmd() *cobra.Command {
	var (
		dirFlag     string
		gatewayFlag string
		lambdaFlag  string
		methodFlag  string
		pathFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an endpoint to a Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpointAdd(dirFlag, gatewayFlag, methodFlag, pathFlag, lambdaFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", scaffold.DefaultGateway, "Gateway resource name")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&methodFlag, "method", "", "HTTP method (required)")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Endpoint path (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runEndpointAdd(dir, gateway, method, path, lambda string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddEndpoint(context.Background(), gateway, method, path, lambda); err != nil {
		return err
	}
	fmt.Printf("Added %s %s on %s -> %s\n", strings.ToUpper(method), path, gateway, lambda)
	return nil
}

func newEndpointUpdateCmd() *cobra.Command {
	var (
		dirFlag       string
		gatewayFlag   string
		methodFlag    string
		pathFlag      string
		newLambdaFlag string
		newMethodFlag string
		newPathFlag   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an endpoint in place",
		Long: `Update an endpoint in place. The endpoint is addressed by its gateway,
method, and path; --new-method, --new-path, and --new-lambda set the
fields that change. Omitted fields keep their value.

Examples:
  samkit endpoint update --method get --path /hello --new-path /greeting
  samkit endpoint update --method get --path /hello --new-lambda orders`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpointUpdate(dirFlag, gatewayFlag, methodFlag, pathFlag,
				newMethodFlag, newPathFlag, newLambdaFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", scaffold.DefaultGateway, "Gateway resource name")
	cmd.Flags().StringVar(&methodFlag, "method", "", "Current HTTP method (required)")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Current endpoint path (required)")
	cmd.Flags().StringVar(&newLambdaFlag, "new-lambda", "", "New Lambda name")
	cmd.Flags().StringVar(&newMethodFlag, "new-method", "", "New HTTP method")
	cmd.Flags().StringVar(&newPathFlag, "new-path", "", "New endpoint path")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runEndpointUpdate(dir, gateway, method, path, newMethod, newPath, newLambda string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if newMethod == "" && newPath == "" && newLambda == "" {
		return fmt.Errorf("nothing to update: set --new-method, --new-path, or --new-lambda")
	}
	err = ed.UpdateEndpoint(context.Background(), gateway, method, path, newMethod, newPath, newLambda)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s %s on %s\n", strings.ToUpper(method), path, gateway)
	return nil
}

func newEndpointDeleteCmd() *cobra.Command {
	var (
		dirFlag    string
		lambdaFlag string
		methodFlag string
		pathFlag   string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpointDelete(dirFlag, methodFlag, pathFlag, lambdaFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&methodFlag, "method", "", "HTTP method (required)")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Endpoint path (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runEndpointDelete(dir, method, path, lambda string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DeleteEndpoint(context.Background(), method, path, lambda); err != nil {
		return err
	}
	fmt.Printf("Deleted %s %s from %s\n", strings.ToUpper(method), path, lambda)
	return nil
}

func newEndpointListCmd() *cobra.Command {
	var (
		dirFlag    string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List endpoints by gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpointList(dirFlag, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runEndpointList(dir, format string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	index, err := ed.Endpoints(context.Background())
	if err != nil {
		return err
	}
	return outputEndpoints(index, format)
}

func outputEndpoints(index samkit.EndpointIndex, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(index, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling endpoints: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		gateways := index.Gateways()
		sort.Strings(gateways)
		if len(gateways) == 0 {
			fmt.Println("No endpoints")
			return nil
		}
		for _, gateway := range gateways {
			fmt.Printf("%s:\n", gateway)
			lambdas := make([]string, 0, len(index[gateway]))
			for lambda := range index[gateway] {
				lambdas = append(lambdas, lambda)
			}
			sort.Strings(lambdas)
			for _, lambda := range lambdas {
				for _, b := range index[gateway][lambda] {
					fmt.Printf("  %s %s -> %s\n", strings.ToUpper(b.Method), b.Path, lambda)
				}
			}
		}
	default:
		return fmt.Errorf("unknown format: %s (use text or json)", format)
	}
	return nil
}
