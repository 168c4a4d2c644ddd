package editor

import (
	"context"
	"fmt"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/envfile"
	"github.com/samkit-io/samkit/internal/template"
)

// loadEnv reads and parses the project's .env file.
func (e *Editor) loadEnv(ctx context.Context) (*envfile.File, error) {
	content, err := e.tree.ReadFile(ctx, EnvFile)
	if err != nil {
		return nil, err
	}
	return envfile.Parse([]byte(content))
}

// PlanEnv computes the reconciliation diff between .env and the
// template's Env parameters without mutating anything.
func (e *Editor) PlanEnv(ctx context.Context) (samkit.SyncPlan, error) {
	env, err := e.loadEnv(ctx)
	if err != nil {
		return samkit.SyncPlan{}, err
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return samkit.SyncPlan{}, err
	}
	return planSync(doc, env), nil
}

// SyncEnv reconciles the template with .env in three independent passes:
// new variables gain a parameter and an SSM resource, changed variables
// get their default replaced in place, and removed variables lose their
// parameter, SSM resource, and every function's reference, each removal
// gated by confirm. Running it again with an unchanged .env writes
// nothing.
func (e *Editor) SyncEnv(ctx context.Context, confirm samkit.ConfirmFunc) (samkit.SyncResult, error) {
	var result samkit.SyncResult
	if confirm == nil {
		confirm = samkit.ConfirmAll
	}
	env, err := e.loadEnv(ctx)
	if err != nil {
		return result, err
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return result, err
	}
	for _, v := range env.Vars {
		if !samkit.ValidLogicalName(v.Name) {
			result.Skipped = append(result.Skipped, v.Name)
		}
	}
	plan := planSync(doc, env)

	for _, v := range plan.Added {
		doc.AddParameter(samkit.EnvParameter(v.Name), EnvParameterNode(v.Value))
		doc.AddResource(samkit.SSMResource(v.Name), SSMParameterNode(v.Name))
		result.Added = append(result.Added, v.Name)
	}
	for _, v := range plan.Changed {
		doc.Parameter(samkit.EnvParameter(v.Name)).Set("Default", template.Scalar(v.Value))
		result.Changed = append(result.Changed, v.Name)
	}
	for _, name := range plan.Removed {
		if !confirm(fmt.Sprintf("remove environment variable %s from the template?", name)) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		doc.RemoveParameter(samkit.EnvParameter(name))
		doc.RemoveResource(samkit.SSMResource(name))
		stripEnvVariable(doc, name)
		result.Removed = append(result.Removed, name)
	}

	if len(result.Added)+len(result.Changed)+len(result.Removed) == 0 {
		return result, nil
	}
	return result, e.save(ctx, doc)
}

// planSync diffs .env against the template's Env parameters. Variables
// whose names cannot serve as logical IDs are left out entirely.
func planSync(doc *template.Document, env *envfile.File) samkit.SyncPlan {
	var plan samkit.SyncPlan
	existing := map[string]string{}
	for _, param := range doc.ParameterNames() {
		if name, ok := samkit.EnvParameterVar(param); ok {
			existing[name] = parameterDefault(doc.Parameter(param))
		}
	}
	inFile := map[string]bool{}
	for _, v := range env.Vars {
		if !samkit.ValidLogicalName(v.Name) {
			continue
		}
		inFile[v.Name] = true
		current, ok := existing[v.Name]
		switch {
		case !ok:
			plan.Added = append(plan.Added, v)
		case current != v.Value:
			plan.Changed = append(plan.Changed, v)
		}
	}
	for _, param := range doc.ParameterNames() {
		if name, ok := samkit.EnvParameterVar(param); ok && !inFile[name] {
			plan.Removed = append(plan.Removed, name)
		}
	}
	return plan
}

// parameterDefault returns a parameter's Default value, or "".
func parameterDefault(param *template.Node) string {
	if param == nil {
		return ""
	}
	if def := param.Child("Default"); def != nil {
		return def.Value()
	}
	return ""
}

// stripEnvVariable deletes one variable from every function's
// Environment.Variables block, unwinding emptied wrappers.
func stripEnvVariable(doc *template.Document, name string) {
	for _, fnName := range doc.ResourcesOfType(samkit.TypeFunction) {
		props := template.Properties(doc.Resource(fnName))
		if props == nil {
			continue
		}
		env := props.Child("Environment")
		if env == nil {
			continue
		}
		vars := env.Child("Variables")
		if vars == nil {
			continue
		}
		vars.Delete(name)
		if vars.Len() == 0 {
			env.Delete("Variables")
		}
		if env.Len() == 0 {
			props.Delete("Environment")
		}
	}
}
