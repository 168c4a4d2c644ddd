package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samkit-io/samkit/internal/scaffold"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage gateway authorization",
		Long: `Manage gateway authorization. Basic auth wires a shared Lambda
authorizer that reads the Authorization header; it is created on first
use and removed with its sources when the last gateway drops it.
Cognito auth creates a dedicated user pool and client per gateway.

Examples:
  samkit auth basic add --gateway ApiGateway
  samkit auth basic remove --gateway ApiGateway
  samkit auth cognito add --gateway ApiGateway --pool main`,
	}

	cmd.AddCommand(newAuthBasicCmd())
	cmd.AddCommand(newAuthCognitoCmd())

	return cmd
}

func newAuthBasicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basic",
		Short: "Manage basic auth",
	}

	cmd.AddCommand(newAuthBasicAddCmd())
	cmd.AddCommand(newAuthBasicRemoveCmd())

	return cmd
}

func newAuthBasicAddCmd() *cobra.Command {
	var (
		dirFlag     string
		gatewayFlag string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Protect a gateway with the shared Lambda authorizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthBasicAdd(dirFlag, gatewayFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", scaffold.DefaultGateway, "Gateway resource name")

	return cmd
}

func runAuthBasicAdd(dir, gateway string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddBasicAuth(context.Background(), gateway); err != nil {
		return err
	}
	fmt.Printf("Added basic auth to %s\n", gateway)
	return nil
}

func newAuthBasicRemoveCmd() *cobra.Command {
	var (
		dirFlag     string
		gatewayFlag string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove basic auth from a gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthBasicRemove(dirFlag, gatewayFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", scaffold.DefaultGateway, "Gateway resource name")

	return cmd
}

func runAuthBasicRemove(dir, gateway string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.RemoveBasicAuth(context.Background(), gateway); err != nil {
		return err
	}
	fmt.Printf("Removed basic auth from %s\n", gateway)
	return nil
}

func newAuthCognitoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cognito",
		Short: "Manage Cognito auth",
	}

	cmd.AddCommand(newAuthCognitoAddCmd())

	return cmd
}

func newAuthCognitoAddCmd() *cobra.Command {
	var (
		dirFlag     string
		gatewayFlag string
		poolFlag    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Protect a gateway with a new Cognito user pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthCognitoAdd(dirFlag, gatewayFlag, poolFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&gatewayFlag, "gateway", scaffold.DefaultGateway, "Gateway resource name")
	cmd.Flags().StringVar(&poolFlag, "pool", "", "Pool name prefix (required)")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

func runAuthCognitoAdd(dir, gateway, pool string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddCognitoAuth(context.Background(), gateway, pool); err != nil {
		return err
	}
	fmt.Printf("Added cognito auth to %s with pool %s\n", gateway, pool)
	return nil
}
