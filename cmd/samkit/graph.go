package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/samkit-io/samkit/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		dirFlag           string
		outputFormat      string
		outputFile        string
		includeParameters bool
		clusterByType     bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a dependency graph of the template",
		Long: `Generate a DOT or Mermaid graph of the template's reference edges.

The output can be rendered with Graphviz:
    samkit graph | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    samkit graph -f mermaid

Examples:
    samkit graph
    samkit graph -p              # include parameters
    samkit graph -c              # cluster by service
    samkit graph -f mermaid      # mermaid format
    samkit graph -o deps.dot     # write to a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(dirFlag, outputFormat, outputFile, includeParameters, clusterByType)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVarP(&includeParameters, "params", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service type")

	return cmd
}

func runGraph(dir, format, outputFile string, includeParams, cluster bool) error {
	ed, err := newProjectEditor(dir)
	if err != nil {
		return err
	}
	doc, err := ed.Load(context.Background())
	if err != nil {
		return err
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:            graphFormat,
		IncludeParameters: includeParams,
		ClusterByType:     cluster,
	}

	var out io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputFile, err)
		}
		defer f.Close()
		out = f
	}

	return gen.Generate(doc, out)
}
