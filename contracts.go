// Package samkit provides the shared types for the samkit CLI.
//
// samkit scaffolds AWS SAM projects and incrementally edits them: it
// generates a CloudFormation-style template plus TypeScript Lambda sources,
// then rewrites both in place as functions, endpoints, layers, tables, and
// auth configuration are added or removed.
//
// The types here are the contract between the template engine
// (internal/template), the mutation operations (internal/editor), and the
// CLI commands.
package samkit

import "strings"

// CloudFormation resource types written and recognized by the engine.
const (
	TypeFunction       = "AWS::Serverless::Function"
	TypeAPI            = "AWS::Serverless::Api"
	TypeLayerVersion   = "AWS::Serverless::LayerVersion"
	TypeTable          = "AWS::DynamoDB::Table"
	TypeLogGroup       = "AWS::Logs::LogGroup"
	TypeSSMParameter   = "AWS::SSM::Parameter"
	TypeManagedPolicy  = "AWS::IAM::ManagedPolicy"
	TypeUserPool       = "AWS::Cognito::UserPool"
	TypeUserPoolClient = "AWS::Cognito::UserPoolClient"
)

// BasicAuthorizerName is the logical name of the shared Lambda authorizer
// resource created by basic auth. One instance is reused by every gateway
// and removed only when the last gateway stops referencing it.
const BasicAuthorizerName = "BasicAuthorizerFunction"

// EventBinding is one HTTP endpoint wired to a Lambda: an entry under a
// Function's Events block with Type Api.
type EventBinding struct {
	// Event is the binding's name inside the Events block (event1, event2, ...).
	Event string `json:"event"`
	// Method is the HTTP method, normalized to lowercase.
	Method string `json:"method"`
	// Path is the gateway path, always starting with "/".
	Path string `json:"path"`
}

// EndpointIndex maps gateway name -> lambda name -> event bindings.
// Built in a single pass over the template; only bindings whose RestApiId
// is a plain !Ref to a known gateway are indexed.
type EndpointIndex map[string]map[string][]EventBinding

// HasRoute reports whether any lambda on the given gateway already serves
// (method, path). This is the uniqueness scope of the update flow.
func (idx EndpointIndex) HasRoute(gateway, method, path string) bool {
	method = strings.ToLower(method)
	for _, bindings := range idx[gateway] {
		for _, b := range bindings {
			if b.Method == method && b.Path == path {
				return true
			}
		}
	}
	return false
}

// HasBinding reports whether (method, path, lambda) exists on any gateway.
// This is the uniqueness scope of the create flow; it is wider than
// HasRoute and the two must not be conflated.
func (idx EndpointIndex) HasBinding(method, path, lambda string) bool {
	method = strings.ToLower(method)
	for _, byLambda := range idx {
		for _, b := range byLambda[lambda] {
			if b.Method == method && b.Path == path {
				return true
			}
		}
	}
	return false
}

// Gateways returns the indexed gateway names in no particular order.
func (idx EndpointIndex) Gateways() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	return names
}

// EnvVar is one key/value pair from the project's .env file.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SyncPlan is the diff between the .env file and the template's Env
// parameters: three disjoint sets computed before any mutation.
type SyncPlan struct {
	// Added are variables present in .env but absent from the template.
	Added []EnvVar `json:"added,omitempty"`
	// Changed are variables present in both with a different default value.
	Changed []EnvVar `json:"changed,omitempty"`
	// Removed are variable names present in the template but gone from .env.
	Removed []string `json:"removed,omitempty"`
}

// IsEmpty reports whether applying the plan would be a no-op.
func (p SyncPlan) IsEmpty() bool {
	return len(p.Added) == 0 && len(p.Changed) == 0 && len(p.Removed) == 0
}

// SyncResult reports what an env reconciliation actually did. Removed
// variables the confirmer declined end up in Skipped.
type SyncResult struct {
	Added   []string `json:"added,omitempty"`
	Changed []string `json:"changed,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

// ListResource is one template resource in a list result.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListResult is the list command's view of a project: resources in
// document order plus the endpoint index.
type ListResult struct {
	Resources []ListResource `json:"resources"`
	Endpoints EndpointIndex  `json:"endpoints,omitempty"`
}

// ConfirmFunc answers yes/no questions on behalf of the user. The CLI
// wires it to stdin; tests and --yes wire it to a constant.
type ConfirmFunc func(prompt string) bool

// ConfirmAll approves every prompt.
func ConfirmAll(string) bool { return true }

var httpMethods = map[string]bool{
	"get":     true,
	"post":    true,
	"put":     true,
	"delete":  true,
	"patch":   true,
	"head":    true,
	"options": true,
	"any":     true,
}

// NormalizeMethod lowercases an HTTP method and reports whether it is one
// the engine accepts.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	return m, httpMethods[m]
}

// ValidLogicalName reports whether name can serve as a CloudFormation
// logical ID (and therefore as a lambda/gateway/layer/table/pool name).
func ValidLogicalName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ValidPath reports whether p is usable as a gateway path: it must start
// with "/" and contain no whitespace.
func ValidPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	return !strings.ContainsAny(p, " \t\n")
}
