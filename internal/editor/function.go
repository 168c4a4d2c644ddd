package editor

import (
	"context"
	"fmt"
	"strings"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/boilerplate"
	"github.com/samkit-io/samkit/internal/template"
)

// AddFunction inserts a Function resource plus its LogGroup and writes the
// handler source pair. Requested environment variables must already exist
// as Env parameters or be present in .env, in which case their parameter
// and SSM resource are wired on the spot.
func (e *Editor) AddFunction(ctx context.Context, name string, timeout int, envVars []string) error {
	if !samkit.ValidLogicalName(name) {
		return fmt.Errorf("invalid function name %q: letters and digits only, starting with a letter", name)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", timeout)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	resName := samkit.FunctionResource(name)
	if doc.HasResource(resName) {
		return samkit.Conflictf("function %q already exists", name)
	}
	exists, err := e.tree.FunctionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return samkit.Conflictf("source folder %s already exists", boilerplate.LambdaDir(name))
	}

	missing := missingEnvParameters(doc, envVars)
	if len(missing) > 0 {
		env, err := e.loadEnv(ctx)
		if err != nil {
			return err
		}
		for _, v := range missing {
			value, ok := env.Lookup(v)
			if !ok {
				return samkit.NotFound("environment variable", v)
			}
			doc.AddParameter(samkit.EnvParameter(v), EnvParameterNode(value))
			doc.AddResource(samkit.SSMResource(v), SSMParameterNode(v))
		}
	}

	doc.AddResource(resName, FunctionNode(name, timeout, envVars))
	doc.AddResource(samkit.LogGroupResource(name), LogGroupNode(resName))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.EnsureFunction(ctx, name)
}

// DeleteFunction removes a Function and its LogGroup, then deletes the
// source folder. The last remaining function cannot be deleted, and the
// shared authorizer is owned by the auth operations.
func (e *Editor) DeleteFunction(ctx context.Context, name string) error {
	resName := samkit.FunctionResource(name)
	if resName == samkit.BasicAuthorizerName {
		return samkit.Conflictf("%s is managed by the auth commands", samkit.BasicAuthorizerName)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.ResourceType(resName) != samkit.TypeFunction {
		return samkit.NotFound("function", name)
	}
	if len(userFunctions(doc)) == 1 {
		return samkit.Conflictf("cannot delete %q: a project keeps at least one function", name)
	}
	doc.RemoveResource(resName)
	doc.RemoveResource(samkit.LogGroupResource(name))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.RemoveFunction(ctx, name)
}

// Functions returns the lambda names in document order, authorizer excluded.
func (e *Editor) Functions(ctx context.Context) ([]string, error) {
	doc, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}
	resources := userFunctions(doc)
	names := make([]string, 0, len(resources))
	for _, res := range resources {
		names = append(names, lambdaName(res))
	}
	return names, nil
}

// lambdaName strips the Function suffix from a resource name.
func lambdaName(functionResource string) string {
	if name, ok := strings.CutSuffix(functionResource, "Function"); ok && name != "" {
		return name
	}
	return functionResource
}

// missingEnvParameters returns the requested env vars with no Env
// parameter in the template yet.
func missingEnvParameters(doc *template.Document, envVars []string) []string {
	var missing []string
	for _, v := range envVars {
		if doc.Parameter(samkit.EnvParameter(v)) == nil {
			missing = append(missing, v)
		}
	}
	return missing
}
