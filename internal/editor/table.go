package editor

import (
	"context"
	"fmt"
	"strings"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// splitKeyPath parses a "#"-separated key-path string into partition and
// sort key names. "userId" is a simple key, "customerId#orderId" a
// composite one.
func splitKeyPath(keyPath string) (partitionKey, sortKey string, err error) {
	parts := strings.Split(keyPath, "#")
	if len(parts) > 2 {
		return "", "", fmt.Errorf("invalid key path %q: want pk or pk#sk", keyPath)
	}
	partitionKey = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		sortKey = strings.TrimSpace(parts[1])
		if sortKey == "" {
			return "", "", fmt.Errorf("invalid key path %q: empty sort key", keyPath)
		}
	}
	if partitionKey == "" {
		return "", "", fmt.Errorf("invalid key path %q: empty partition key", keyPath)
	}
	return partitionKey, sortKey, nil
}

// AddTable inserts a DynamoDB table and its paired ManagedPolicy, then
// writes the query helper source pair under src/utils.
func (e *Editor) AddTable(ctx context.Context, name, keyPath string) error {
	if !samkit.ValidLogicalName(name) {
		return fmt.Errorf("invalid table name %q: letters and digits only, starting with a letter", name)
	}
	partitionKey, sortKey, err := splitKeyPath(keyPath)
	if err != nil {
		return err
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.HasResource(name) {
		return samkit.Conflictf("resource %q already exists", name)
	}
	policyName := samkit.PolicyResource(name)
	if doc.HasResource(policyName) {
		return samkit.Conflictf("resource %q already exists", policyName)
	}
	doc.AddResource(name, TableNode(name, partitionKey, sortKey))
	doc.AddResource(policyName, TablePolicyNode(name))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.EnsureTableHandler(ctx, name, partitionKey, sortKey)
}

// DeleteTable removes a table, its policy, and its query helpers. It
// refuses while any function still lists the table's policy.
func (e *Editor) DeleteTable(ctx context.Context, name string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.ResourceType(name) != samkit.TypeTable {
		return samkit.NotFound("table", name)
	}
	if attached := functionsListing(doc, "Policies", samkit.PolicyResource(name)); len(attached) > 0 {
		return samkit.Conflictf("table %q is attached to: %s", name, strings.Join(attached, ", "))
	}
	doc.RemoveResource(name)
	doc.RemoveResource(samkit.PolicyResource(name))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.RemoveTableHandler(ctx, name)
}

// AttachTable grants a lambda access to a table by listing the table's
// policy, and injects the query helper import into the handler source.
func (e *Editor) AttachTable(ctx context.Context, lambda, table string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	if doc.ResourceType(table) != samkit.TypeTable {
		return samkit.NotFound("table", table)
	}
	policyName := samkit.PolicyResource(table)
	policies := template.Properties(fn).Child("Policies")
	if policies != nil && policies.ContainsScalar("!Ref", policyName) {
		return samkit.Conflictf("table %q is already attached to %q", table, lambda)
	}
	if policies == nil {
		policies = template.NewSequence()
		template.SetProperty(fn, "Policies", policies)
	}
	policies.Append(template.Ref(policyName))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.InjectTableImport(ctx, lambda, table)
}

// DetachTable removes the table's policy from a lambda and strips the
// helper import from the handler source.
func (e *Editor) DetachTable(ctx context.Context, lambda, table string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	props := template.Properties(fn)
	policies := props.Child("Policies")
	if policies == nil || !policies.RemoveScalar("!Ref", samkit.PolicyResource(table)) {
		return samkit.NotFound("table attachment", table)
	}
	if policies.Len() == 0 {
		props.Delete("Policies")
	}
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.RemoveTableImport(ctx, lambda, table)
}
