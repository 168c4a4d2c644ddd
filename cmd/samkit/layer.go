package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layer",
		Short: "Manage Lambda layers",
		Long: `Manage LayerVersion resources and their attachments. A layer cannot
be deleted while a function still lists it.

Examples:
  samkit layer add common
  samkit layer attach --lambda orders --layer common
  samkit layer detach --lambda orders --layer common
  samkit layer delete common`,
	}

	cmd.AddCommand(newLayerAddCmd())
	cmd.AddCommand(newLayerDeleteCmd())
	cmd.AddCommand(newLayerAttachCmd())
	cmd.AddCommand(newLayerDetachCmd())

	return cmd
}

func newLayerAddCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayerAdd(args[0], dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")

	return cmd
}

func runLayerAdd(name, dir string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AddLayer(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Added layer %s\n", name)
	return nil
}

func newLayerDeleteCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a layer and its sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayerDelete(args[0], dirFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")

	return cmd
}

func runLayerDelete(name, dir string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DeleteLayer(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("Deleted layer %s\n", name)
	return nil
}

func newLayerAttachCmd() *cobra.Command {
	var (
		dirFlag    string
		lambdaFlag string
		layerFlag  string
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a layer to a Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayerAttach(dirFlag, lambdaFlag, layerFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&layerFlag, "layer", "", "Layer resource name (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("layer")

	return cmd
}

func runLayerAttach(dir, lambda, layer string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.AttachLayer(context.Background(), lambda, layer); err != nil {
		return err
	}
	fmt.Printf("Attached %s to %s\n", layer, lambda)
	return nil
}

func newLayerDetachCmd() *cobra.Command {
	var (
		dirFlag    string
		lambdaFlag string
		layerFlag  string
	)

	cmd := &cobra.Command{
		Use:   "detach",
		Short: "Detach a layer from a Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayerDetach(dirFlag, lambdaFlag, layerFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVar(&lambdaFlag, "lambda", "", "Lambda name (required)")
	cmd.Flags().StringVar(&layerFlag, "layer", "", "Layer resource name (required)")
	_ = cmd.MarkFlagRequired("lambda")
	_ = cmd.MarkFlagRequired("layer")

	return cmd
}

func runLayerDetach(dir, lambda, layer string) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	if err := ed.DetachLayer(context.Background(), lambda, layer); err != nil {
		return err
	}
	fmt.Printf("Detached %s from %s\n", layer, lambda)
	return nil
}
