// Command samkit scaffolds AWS SAM projects and edits them in place.
//
// Usage:
//
//	samkit new myapp                  Create new project
//	samkit function add orders        Add a Lambda function
//	samkit endpoint add ...           Wire an HTTP endpoint
//	samkit validate                   Check the template
//	samkit version                    Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "samkit",
		Short: "Scaffold and edit AWS SAM projects",
		Long: `samkit scaffolds AWS SAM projects and edits them in place.

A project is a template.yaml plus TypeScript Lambda sources. Every command
rewrites the template and keeps the source tree in step with it:

    samkit new myapp
    cd myapp
    samkit function add orders --env TABLE_REGION
    samkit endpoint add --gateway ApiGateway --method post --path /orders --lambda orders`,
	}

	rootCmd.AddCommand(
		newNewCmd(),
		newFunctionCmd(),
		newEndpointCmd(),
		newGatewayCmd(),
		newLayerCmd(),
		newTableCmd(),
		newAuthCmd(),
		newEnvCmd(),
		newListCmd(),
		newGraphCmd(),
		newLintCmd(),
		newValidateCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("samkit %s\n", getVersion())
		},
	}
}
