package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newFunctionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "function",
		Short: "Manage Lambda functions",
		Long: `Manage the Lambda functions of a project. Adding a function creates
the Function resource, its log group and the handler source pair.
Deleting removes all three.

Examples:
  samkit function add orders
  samkit function add orders --timeout 60 --env TABLE_REGION
  samkit function delete orders --yes`,
	}

	cmd.AddCommand(newFunctionAddCmd())
	cmd.AddCommand(newFunctionDeleteCmd())

	return cmd
}

func newFunctionAddCmd() *cobra.Command {
	var (
		dirFlag     string
		timeoutFlag int
		envFlags    []string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a Lambda function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctionAdd(args[0], dirFlag, timeoutFlag, envFlags)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().IntVar(&timeoutFlag, "timeout", 30, "Lambda timeout in seconds")
	cmd.Flags().StringArrayVar(&envFlags, "env", nil, "Environment variable name from .env (repeatable)")

	return cmd
}

func runFunctionAdd(name, dir string, timeout int, envVars []string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddFunction(context.Background(), name, timeout, envVars); err != nil {
		return err
	}
	fmt.Printf("Added function %s\n", name)
	return nil
}

func newFunctionDeleteCmd() *cobra.Command {
	var (
		dirFlag string
		yesFlag bool
	)

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a Lambda function and its sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctionDelete(args[0], dirFlag, yesFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runFunctionDelete(name, dir string, yes bool) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	confirm := stdinConfirm(yes)
	if !confirm(fmt.Sprintf("Delete function %s and its sources", name)) {
		fmt.Println("Aborted")
		return nil
	}
	if err := ed.DeleteFunction(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Deleted function %s\n", name)
	return nil
}
