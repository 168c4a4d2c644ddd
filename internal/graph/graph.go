// Package graph renders a template's reference edges as DOT or Mermaid
// dependency graphs.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/samkit-io/samkit/internal/template"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders dependency graphs from a parsed template.
type Generator struct {
	// IncludeParameters includes parameter references in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate renders the document's dependency graph and writes it to w.
func (g *Generator) Generate(doc *template.Document, w io.Writer) error {
	graph := g.buildGraph(doc)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(doc *template.Document) (string, error) {
	var sb strings.Builder
	if err := g.Generate(doc, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the document.
func (g *Generator) buildGraph(doc *template.Document) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	// Set default node style
	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	// Set default edge style
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByType {
		g.addClusteredNodes(graph, doc)
	} else {
		g.addNodes(graph, doc)
	}

	parameters := map[string]bool{}
	for _, name := range doc.ParameterNames() {
		parameters[name] = true
	}

	// Add parameter nodes if requested
	if g.IncludeParameters {
		for _, name := range doc.ParameterNames() {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
		}
	}

	resources := map[string]bool{}
	for _, name := range doc.ResourceNames() {
		resources[name] = true
	}

	// Collapse repeated references into one edge per pair; a pair with at
	// least one GetAtt reference keeps the attribute styling.
	refs := template.References(doc)
	getAttRefs := map[string]bool{}
	for _, ref := range refs {
		if ref.Kind == template.RefGetAtt {
			getAttRefs[ref.From+"->"+ref.To] = true
		}
	}

	seen := map[string]bool{}
	for _, ref := range refs {
		// Skip if the target is a parameter and we're not including parameters
		if parameters[ref.To] && !g.IncludeParameters {
			continue
		}
		// Skip if the target doesn't exist as resource or parameter
		if !resources[ref.To] && !parameters[ref.To] {
			continue
		}
		key := ref.From + "->" + ref.To
		if seen[key] {
			continue
		}
		seen[key] = true

		from := graph.Node(ref.From)
		to := graph.Node(ref.To)
		e := graph.Edge(from, to)

		if getAttRefs[key] {
			e.Attr("color", "blue")
		}
	}

	return graph
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, doc *template.Document) {
	for _, name := range doc.ResourceNames() {
		n := graph.Node(name)
		n.Label(name + "\\n[" + doc.ResourceType(name) + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, doc *template.Document) {
	// Group resources by service, keeping document order
	serviceResources := map[string][]string{}
	var services []string
	for _, name := range doc.ResourceNames() {
		service := extractService(doc.ResourceType(name))
		if _, ok := serviceResources[service]; !ok {
			services = append(services, service)
		}
		serviceResources[service] = append(serviceResources[service], name)
	}

	// Create clusters for each service with multiple resources
	for _, service := range services {
		names := serviceResources[service]
		if len(names) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range names {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + doc.ResourceType(name) + "]")
			}
		} else {
			// Single resource, no cluster needed
			for _, name := range names {
				n := graph.Node(name)
				n.Label(name + "\\n[" + doc.ResourceType(name) + "]")
			}
		}
	}
}

// extractService extracts the service segment from a CloudFormation type.
// e.g., "AWS::DynamoDB::Table" -> "DynamoDB"
func extractService(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
