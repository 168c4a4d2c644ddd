// Package scaffold generates a fresh SAM project: the template, the
// project files, the .env file, and the first Lambda's sources.
package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/boilerplate"
	"github.com/samkit-io/samkit/internal/editor"
	"github.com/samkit-io/samkit/internal/envfile"
	"github.com/samkit-io/samkit/internal/sourcetree"
	"github.com/samkit-io/samkit/internal/template"
)

// DefaultGateway is the gateway every new project starts with.
const DefaultGateway = "ApiGateway"

// defaultTimeout applies to the first lambda when none is given.
const defaultTimeout = 30

// Options configures a new project. Name doubles as the first lambda's
// name; it serves GET /hello on the default gateway.
type Options struct {
	Name    string
	Stage   string
	EnvVars []samkit.EnvVar
	Timeout int
}

// Generate writes a complete project under projectURL. The template goes
// first; source files follow, so a failed file write never leaves a
// project without its template.
func Generate(ctx context.Context, fs afs.Service, projectURL string, opts Options) error {
	if !samkit.ValidLogicalName(opts.Name) {
		return fmt.Errorf("invalid project name %q: letters and digits only, starting with a letter", opts.Name)
	}
	for _, v := range opts.EnvVars {
		if !samkit.ValidLogicalName(v.Name) {
			return fmt.Errorf("invalid environment variable name %q: letters and digits only, starting with a letter", v.Name)
		}
	}
	if opts.Stage == "" {
		opts.Stage = envfile.DefaultStage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	tree := sourcetree.New(fs, projectURL)
	exists, err := tree.Exists(ctx, editor.TemplateFile)
	if err != nil {
		return err
	}
	if exists {
		return samkit.Conflictf("project already has a %s", editor.TemplateFile)
	}

	doc := newProjectTemplate(opts)
	if err := tree.WriteFile(ctx, editor.TemplateFile, string(doc.Bytes())); err != nil {
		return err
	}
	if err := tree.WriteFiles(ctx, boilerplate.Project(opts.Name, opts.Stage)); err != nil {
		return err
	}
	if err := tree.WriteFiles(ctx, boilerplate.Utils()); err != nil {
		return err
	}
	if err := tree.WriteFile(ctx, editor.EnvFile, envContent(opts.Stage, opts.EnvVars)); err != nil {
		return err
	}
	return tree.EnsureFunction(ctx, opts.Name)
}

// newProjectTemplate assembles the initial document: the Stage parameter,
// one Env parameter and SSM resource per variable, the first lambda with
// its log group and a GET /hello binding, the default gateway, and its
// invoke-URL output.
func newProjectTemplate(opts Options) *template.Document {
	doc := template.New(opts.Name)

	doc.AddParameter("Stage", editor.StageParameterNode(opts.Stage))
	var wired []string
	for _, v := range opts.EnvVars {
		doc.AddParameter(samkit.EnvParameter(v.Name), editor.EnvParameterNode(v.Value))
		wired = append(wired, v.Name)
	}

	fn := editor.FunctionNode(opts.Name, opts.Timeout, wired)
	events := template.NewMap()
	events.Set("event1", editor.EventNode(DefaultGateway, "get", "/hello"))
	template.SetProperty(fn, "Events", events)

	fnRes := samkit.FunctionResource(opts.Name)
	doc.AddResource(fnRes, fn)
	doc.AddResource(samkit.LogGroupResource(opts.Name), editor.LogGroupNode(fnRes))
	doc.AddResource(DefaultGateway, editor.GatewayNode(DefaultGateway))
	for _, v := range opts.EnvVars {
		doc.AddResource(samkit.SSMResource(v.Name), editor.SSMParameterNode(v.Name))
	}
	doc.AddOutput(samkit.GatewayURLOutput(DefaultGateway), editor.GatewayURLOutputNode(DefaultGateway))
	return doc
}

// envContent renders the .env file: the reserved stage key first, then
// the variables in their given order.
func envContent(stage string, vars []samkit.EnvVar) string {
	var b strings.Builder
	b.WriteString(envfile.StageKey + "=" + stage + "\n")
	for _, v := range vars {
		b.WriteString(v.Name + "=" + v.Value + "\n")
	}
	return b.String()
}
