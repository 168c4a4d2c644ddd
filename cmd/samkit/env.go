package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	samkit "github.com/samkit-io/samkit"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Reconcile .env with the template",
		Long: `Reconcile the project's .env file with the template's Env parameters
and SSM resources. Plan shows the pending diff; sync applies it.
Removals only happen with --prune, and each one is confirmed unless
--yes is set.

Examples:
  samkit env plan
  samkit env sync
  samkit env sync --prune --yes`,
	}

	cmd.AddCommand(newEnvPlanCmd())
	cmd.AddCommand(newEnvSyncCmd())

	return cmd
}

func newEnvPlanCmd() *cobra.Command {
	var (
		dirFlag    string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the pending env diff without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvPlan(dirFlag, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runEnvPlan(dir, format string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	plan, err := ed.PlanEnv(context.Background())
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling plan: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		if plan.IsEmpty() {
			fmt.Println("Everything in sync")
			return nil
		}
		if len(plan.Added) > 0 {
			fmt.Println("To add:")
			for _, v := range plan.Added {
				fmt.Printf("  %s=%s\n", v.Name, v.Value)
			}
		}
		if len(plan.Changed) > 0 {
			fmt.Println("To change:")
			for _, v := range plan.Changed {
				fmt.Printf("  %s=%s\n", v.Name, v.Value)
			}
		}
		if len(plan.Removed) > 0 {
			fmt.Println("To remove (needs --prune):")
			for _, name := range plan.Removed {
				fmt.Printf("  %s\n", name)
			}
		}
	default:
		return fmt.Errorf("unknown format: %s (use text or json)", format)
	}
	return nil
}

func newEnvSyncCmd() *cobra.Command {
	var (
		dirFlag   string
		pruneFlag bool
		yesFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Apply the env diff to the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSync(dirFlag, pruneFlag, yesFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().BoolVar(&pruneFlag, "prune", false, "Remove variables that left .env")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip removal confirmation prompts")

	return cmd
}

func runEnvSync(dir string, prune, yes bool) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}

	confirm := samkit.ConfirmFunc(func(string) bool { return false })
	if prune {
		confirm = stdinConfirm(yes)
	}

	result, err := ed.SyncEnv(context.Background(), confirm)
	if err != nil {
		return err
	}
	printSyncResult(result)
	return nil
}

func printSyncResult(result samkit.SyncResult) {
	if len(result.Added)+len(result.Changed)+len(result.Removed)+len(result.Skipped) == 0 {
		fmt.Println("Everything in sync")
		return
	}
	printNames := func(header string, names []string) {
		if len(names) == 0 {
			return
		}
		fmt.Printf("%s:\n", header)
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	printNames("Added", result.Added)
	printNames("Changed", result.Changed)
	printNames("Removed", result.Removed)
	printNames("Skipped", result.Skipped)
}
