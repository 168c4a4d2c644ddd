package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Manage API gateways",
		Long: `Manage the Api resources of a project. Deleting a gateway cascades:
every endpoint bound to it and every output referencing it is removed
with it.

Examples:
  samkit gateway add AdminGateway
  samkit gateway delete AdminGateway`,
	}

	cmd.AddCommand(newGatewayAddCmd())
	cmd.AddCommand(newGatewayDeleteCmd())

	return cmd
}

func newGatewayAddCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGatewayAdd(args[0], dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")

	return cmd
}

func runGatewayAdd(name, dir string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddGateway(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Added gateway %s\n", name)
	return nil
}

func newGatewayDeleteCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a gateway and its endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGatewayDelete(args[0], dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")

	return cmd
}

func runGatewayDelete(name, dir string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DeleteGateway(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Deleted gateway %s\n", name)
	return nil
}
