package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage DynamoDB tables",
		Long: `Manage DynamoDB tables and their attachments. Adding a table creates
the Table resource, an IAM policy scoped to it, and a TypeScript query
helper under src/utils. Attaching grants a Lambda the policy and
injects the helper import into its handler.

Examples:
  samkit table add users --key userId
  samkit table add orders --key customerId#orderId
  samkit table attach --lambda orders --table orders
  samkit table detach --lambda orders --table orders
  samkit table delete orders`,
	}

	cmd.AddCommand(newTableAddCmd())
	cmd.AddCommand(newTableDeleteCmd())
	cmd.AddCommand(newTableAttachCmd())
	cmd.AddCommand(newTableDetachCmd())

	return cmd
}

func newTableAddCmd() *cobra.Command {
	var (
		dirFlag string
		keyFlag string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a DynamoDB table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableAdd(args[0], dirFlag, keyFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&keyFlag, "key", "", "Key path: pk or pk#sk (required)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func runTableAdd(name, dir, keyPath string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddTable(context.Background(), name, keyPath); err != nil {
		return err
	}
	fmt.Printf("Added table %s\n", name)
	return nil
}

func newTableDeleteCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a table, its policy, and its helpers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableDelete(args[0], dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")

	return cmd
}

func runTableDelete(name, dir string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DeleteTable(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Deleted table %s\n", name)
	return nil
}

func newTableAttachCmd() *cobra.Command {
	var (
		dirFlag    string
		lambdaFlag string
		tableFlag  string
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a table to a Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableAttach(dirFlag, lambdaFlag, tableFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&tableFlag, "table", "", "Table resource name (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runTableAttach(dir, lambda, table string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AttachTable(context.Background(), lambda, table); err != nil {
		return err
	}
	fmt.Printf("Attached %s to %s\n", table, lambda)
	return nil
}

func newTableDetachCmd() *cobra.Command {
	var (
		dirFlag    string
		lambdaFlag string
		tableFlag  string
	)

	cmd := &cobra.Command{
		Use:   "detach",
		Short: "Detach a table from a Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableDetach(dirFlag, lambdaFlag, tableFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&tableFlag, "table", "", "Table resource name (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runTableDetach(dir, lambda, table string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DetachTable(context.Background(), lambda, table); err != nil {
		return err
	}
	fmt.Printf("Detached %s from %s\n", table, lambda)
	return nil
}
