// Package validation checks a project template two ways:
//   - structural checks: the engine's own parser, the CloudFormation schema
//     parser, reference resolution, and event binding consistency
//   - cfn-lint-go: CloudFormation correctness (library dependency)
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	cfschema "github.com/lex00/cloudformation-schema-go/template"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// CheckResult contains the result of the structural checks.
type CheckResult struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// CfnLintResult contains the result of running cfn-lint.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// ValidationResult contains all validation results for a template.
type ValidationResult struct {
	Check   *CheckResult   `json:"check"`
	CfnLint *CfnLintResult `json:"cfn_lint"`
}

// Check runs the structural checks on template content: both parsers must
// accept it, every reference must resolve, functions must carry their
// required properties, and event bindings must point at real gateways.
func Check(content []byte) *CheckResult {
	result := &CheckResult{Issues: []string{}}

	doc, err := template.Parse(content)
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("parse: %v", err))
		return result
	}
	if _, err := cfschema.ParseTemplateContent(content, "template.yaml"); err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("schema: %v", err))
	}

	result.Issues = append(result.Issues, checkReferences(doc)...)
	result.Issues = append(result.Issues, checkFunctions(doc)...)
	result.Issues = append(result.Issues, checkBindings(doc)...)

	result.Passed = len(result.Issues) == 0
	return result
}

// checkReferences flags references to names that are neither resources nor
// parameters.
func checkReferences(doc *template.Document) []string {
	var issues []string
	known := map[string]bool{}
	for _, name := range doc.ResourceNames() {
		known[name] = true
	}
	for _, name := range doc.ParameterNames() {
		known[name] = true
	}
	for _, ref := range template.References(doc) {
		if !known[ref.To] {
			issues = append(issues, fmt.Sprintf("%s: reference to unknown %q", ref.From, ref.To))
		}
	}
	for _, ref := range template.OutputReferences(doc) {
		if !known[ref.To] {
			issues = append(issues, fmt.Sprintf("output %s: reference to unknown %q", ref.From, ref.To))
		}
	}
	return issues
}

var requiredFunctionProps = []string{"Handler", "Runtime", "CodeUri"}

// checkFunctions flags functions missing required properties.
func checkFunctions(doc *template.Document) []string {
	var issues []string
	for _, name := range doc.ResourcesOfType(samkit.TypeFunction) {
		props := template.Properties(doc.Resource(name))
		for _, key := range requiredFunctionProps {
			if props == nil || !props.Has(key) {
				issues = append(issues, fmt.Sprintf("%s: missing %s", name, key))
			}
		}
	}
	return issues
}

// checkBindings flags malformed Api event bindings: bindings to resources
// that are not gateways, invalid methods or paths, and duplicated
// (gateway, method, path) entries on one lambda.
func checkBindings(doc *template.Document) []string {
	var issues []string
	apis := map[string]bool{}
	for _, name := range doc.ResourcesOfType(samkit.TypeAPI) {
		apis[name] = true
	}
	seen := map[string]string{}
	for _, fn := range doc.ResourcesOfType(samkit.TypeFunction) {
		props := template.Properties(doc.Resource(fn))
		if props == nil {
			continue
		}
		events := props.Child("Events")
		if events == nil || events.Kind() != template.KindMap {
			continue
		}
		for _, eventName := range events.Keys() {
			event := events.Child(eventName)
			if event == nil || event.Kind() != template.KindMap {
				continue
			}
			if typ := event.Child("Type"); typ == nil || typ.Value() != "Api" {
				continue
			}
			eprops := event.Child("Properties")
			if eprops == nil {
				issues = append(issues, fmt.Sprintf("%s: event %s has no properties", fn, eventName))
				continue
			}
			rest := eprops.Child("RestApiId")
			if rest == nil {
				issues = append(issues, fmt.Sprintf("%s: event %s is missing RestApiId", fn, eventName))
				continue
			}
			if rest.Tag() == "!Ref" && doc.HasResource(rest.Value()) && !apis[rest.Value()] {
				issues = append(issues, fmt.Sprintf("%s: event %s binds %s, which is not an Api", fn, eventName, rest.Value()))
			}

			var method, path string
			if m := eprops.Child("Method"); m != nil {
				method = m.Value()
			}
			if p := eprops.Child("Path"); p != nil {
				path = p.Value()
			}
			if normalized, ok := samkit.NormalizeMethod(method); !ok {
				issues = append(issues, fmt.Sprintf("%s: event %s has invalid method %q", fn, eventName, method))
			} else {
				method = normalized
			}
			if !samkit.ValidPath(path) {
				issues = append(issues, fmt.Sprintf("%s: event %s has invalid path %q", fn, eventName, path))
			}

			key := rest.Value() + " " + method + " " + path
			if prev, dup := seen[key+" "+fn]; dup {
				issues = append(issues, fmt.Sprintf("%s: events %s and %s duplicate %s %s", fn, prev, eventName, strings.ToUpper(method), path))
			} else {
				seen[key+" "+fn] = eventName
			}
		}
	}
	return issues
}

// RunCfnLint runs cfn-lint-go on the given template file.
// This uses cfn-lint-go as a library dependency for guaranteed version control.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	// Check if file exists
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	// Create linter and run
	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Linter error: %v", err)},
		}, nil
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	// No issues found
	if len(matches) == 0 {
		result.Passed = true
		return result, nil
	}

	// Categorize issues by level
	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Passed if no errors (warnings are acceptable)
	result.Passed = len(result.Errors) == 0

	return result, nil
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	// Format path if available
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}

// ValidateTemplate runs the full pipeline on a template file: structural
// checks first, then cfn-lint when the structure holds.
func ValidateTemplate(templatePath string) (*ValidationResult, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", templatePath, err)
	}

	result := &ValidationResult{Check: Check(content)}

	// Run cfn-lint only on structurally sound templates
	if !result.Check.Passed {
		result.CfnLint = &CfnLintResult{
			Passed: false,
			Errors: []string{"structural checks failed - cfn-lint skipped"},
		}
		return result, nil
	}

	cfn, err := RunCfnLint(templatePath)
	if err != nil {
		return nil, fmt.Errorf("running cfn-lint: %w", err)
	}
	result.CfnLint = cfn
	return result, nil
}
