// Package editor implements the template mutation operations: functions,
// endpoints, gateways, layers, tables, auth, and environment variable
// reconciliation.
//
// Every operation is one read-modify-write transaction. It re-reads
// template.yaml, validates against the parsed tree, applies the change in
// memory, writes the template back, and only then mirrors the change into
// the source tree. A failed validation therefore never writes anything,
// and a failed source-tree step leaves at worst an orphaned folder, never
// a half-written template.
package editor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/sourcetree"
	"github.com/samkit-io/samkit/internal/template"
)

// TemplateFile is the template's name inside a project.
const TemplateFile = "template.yaml"

// EnvFile is the environment file's name inside a project.
const EnvFile = ".env"

// Editor applies mutations to the project at a fixed root URL.
type Editor struct {
	fs   afs.Service
	tree *sourcetree.Synchronizer
	root string
}

// New returns an Editor over the project at projectURL.
func New(fs afs.Service, projectURL string) *Editor {
	return &Editor{fs: fs, tree: sourcetree.New(fs, projectURL), root: projectURL}
}

// Tree returns the project's source-tree synchronizer.
func (e *Editor) Tree() *sourcetree.Synchronizer {
	return e.tree
}

// TemplateURL returns the absolute URL of the project's template file.
func (e *Editor) TemplateURL() string {
	return url.Join(e.root, TemplateFile)
}

// Load reads and parses template.yaml.
func (e *Editor) Load(ctx context.Context) (*template.Document, error) {
	data, err := e.fs.DownloadWithURL(ctx, e.TemplateURL())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", TemplateFile, err)
	}
	doc, err := template.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", TemplateFile, err)
	}
	return doc, nil
}

// save writes the document back. Operations call it exactly once, after
// all validations have passed.
func (e *Editor) save(ctx context.Context, doc *template.Document) error {
	if err := e.fs.Upload(ctx, e.TemplateURL(), file.DefaultFileOsMode, bytes.NewReader(doc.Bytes())); err != nil {
		return fmt.Errorf("writing %s: %w", TemplateFile, err)
	}
	return nil
}

// function resolves a lambda name to its Function resource.
func (e *Editor) function(doc *template.Document, name string) (*template.Node, error) {
	res := samkit.FunctionResource(name)
	if doc.ResourceType(res) != samkit.TypeFunction {
		return nil, samkit.NotFound("function", name)
	}
	return doc.Resource(res), nil
}

// gateway resolves a gateway name to its Api resource.
func (e *Editor) gateway(doc *template.Document, name string) (*template.Node, error) {
	if doc.ResourceType(name) != samkit.TypeAPI {
		return nil, samkit.NotFound("gateway", name)
	}
	return doc.Resource(name), nil
}

// eventsOf returns a function's Events block, or nil.
func eventsOf(fn *template.Node) *template.Node {
	props := template.Properties(fn)
	if props == nil {
		return nil
	}
	return props.Child("Events")
}

// dropEmptyEvents removes the Events wrapper once its last entry is gone.
func dropEmptyEvents(fn *template.Node) {
	events := eventsOf(fn)
	if events != nil && events.Len() == 0 {
		template.Properties(fn).Delete("Events")
	}
}

// userFunctions lists the project's Function resources, excluding the
// shared Basic auth authorizer.
func userFunctions(doc *template.Document) []string {
	var names []string
	for _, name := range doc.ResourcesOfType(samkit.TypeFunction) {
		if name != samkit.BasicAuthorizerName {
			names = append(names, name)
		}
	}
	return names
}
