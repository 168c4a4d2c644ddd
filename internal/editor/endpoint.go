package editor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

var eventNumber = regexp.MustCompile(`^event(\d+)$`)

// nextEventName picks the next binding name as highest existing number
// plus one, so names stay unique over a function's lifetime even after
// deletions.
func nextEventName(events *template.Node) string {
	highest := 0
	if events != nil {
		for _, key := range events.Keys() {
			m := eventNumber.FindStringSubmatch(key)
			if m == nil {
				continue
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
				highest = n
			}
		}
	}
	return "event" + strconv.Itoa(highest+1)
}

// ensureEvents returns a function's Events block, creating it in its
// ranked position on first use.
func ensureEvents(fn *template.Node) *template.Node {
	if events := eventsOf(fn); events != nil {
		return events
	}
	events := template.NewMap()
	template.SetProperty(fn, "Events", events)
	return events
}

// AddEndpoint wires (method, path) on a gateway to a lambda. The same
// (method, path, lambda) triple is rejected no matter which gateway
// currently serves it.
func (e *Editor) AddEndpoint(ctx context.Context, gateway, method, path, lambda string) error {
	method, ok := samkit.NormalizeMethod(method)
	if !ok {
		return fmt.Errorf("unsupported HTTP method %q", method)
	}
	if !samkit.ValidPath(path) {
		return fmt.Errorf("invalid path %q: must start with / and contain no whitespace", path)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if _, err := e.gateway(doc, gateway); err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	if template.Index(doc).HasBinding(method, path, samkit.FunctionResource(lambda)) {
		return samkit.Conflictf("endpoint %s %s already exists on function %q",
			strings.ToUpper(method), path, lambda)
	}
	events := ensureEvents(fn)
	events.Set(nextEventName(events), EventNode(gateway, method, path))
	return e.save(ctx, doc)
}

// DeleteEndpoint removes the binding for (method, path) from a lambda,
// and the Events wrapper with it when the last binding goes.
func (e *Editor) DeleteEndpoint(ctx context.Context, method, path, lambda string) error {
	method, ok := samkit.NormalizeMethod(method)
	if !ok {
		return fmt.Errorf("unsupported HTTP method %q", method)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	events := eventsOf(fn)
	name := findEvent(events, method, path)
	if name == "" {
		return samkit.NotFound("endpoint", strings.ToUpper(method)+" "+path)
	}
	events.Delete(name)
	dropEmptyEvents(fn)
	return e.save(ctx, doc)
}

// UpdateEndpoint rewrites the binding currently serving (method, path) on
// a gateway. Empty newMethod, newPath, or newLambda keep the old value.
// Moving the binding to another lambda is a delete-then-add; changing only
// method or path rewrites the binding in place. The new route must be free
// on this gateway.
func (e *Editor) UpdateEndpoint(ctx context.Context, gateway, method, path, newMethod, newPath, newLambda string) error {
	method, ok := samkit.NormalizeMethod(method)
	if !ok {
		return fmt.Errorf("unsupported HTTP method %q", method)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if _, err := e.gateway(doc, gateway); err != nil {
		return err
	}

	idx := template.Index(doc)
	owner, eventName := findRoute(idx, gateway, method, path)
	if owner == "" {
		return samkit.NotFound("endpoint", fmt.Sprintf("%s %s on %s", strings.ToUpper(method), path, gateway))
	}

	if newMethod == "" {
		newMethod = method
	}
	newMethod, ok = samkit.NormalizeMethod(newMethod)
	if !ok {
		return fmt.Errorf("unsupported HTTP method %q", newMethod)
	}
	if newPath == "" {
		newPath = path
	}
	if !samkit.ValidPath(newPath) {
		return fmt.Errorf("invalid path %q: must start with / and contain no whitespace", newPath)
	}
	target := owner
	if newLambda != "" {
		if _, err := e.function(doc, newLambda); err != nil {
			return err
		}
		target = samkit.FunctionResource(newLambda)
	}

	routeChanged := newMethod != method || newPath != path
	if routeChanged && idx.HasRoute(gateway, newMethod, newPath) {
		return samkit.Conflictf("endpoint %s %s already exists on gateway %q",
			strings.ToUpper(newMethod), newPath, gateway)
	}

	if target != owner {
		from := doc.Resource(owner)
		eventsOf(from).Delete(eventName)
		dropEmptyEvents(from)
		to := doc.Resource(target)
		events := ensureEvents(to)
		events.Set(nextEventName(events), EventNode(gateway, newMethod, newPath))
		return e.save(ctx, doc)
	}

	props := eventsOf(doc.Resource(owner)).Child(eventName).Child("Properties")
	props.Set("Method", template.Scalar(newMethod))
	props.Set("Path", template.Scalar(newPath))
	return e.save(ctx, doc)
}

// Endpoints returns the gateway -> lambda -> bindings index.
func (e *Editor) Endpoints(ctx context.Context) (samkit.EndpointIndex, error) {
	doc, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}
	return template.Index(doc), nil
}

// findEvent returns the name of the binding matching (method, path) in an
// Events block, or "".
func findEvent(events *template.Node, method, path string) string {
	if events == nil {
		return ""
	}
	for _, name := range events.Keys() {
		event := events.Child(name)
		if event == nil || event.Kind() != template.KindMap {
			continue
		}
		props := event.Child("Properties")
		if props == nil {
			continue
		}
		m, p := props.Child("Method"), props.Child("Path")
		if m == nil || p == nil {
			continue
		}
		if strings.EqualFold(m.Value(), method) && p.Value() == path {
			return name
		}
	}
	return ""
}

// findRoute locates the lambda resource and event name serving
// (method, path) on a gateway.
func findRoute(idx samkit.EndpointIndex, gateway, method, path string) (owner, eventName string) {
	for lambdaRes, bindings := range idx[gateway] {
		for _, b := range bindings {
			if b.Method == method && b.Path == path {
				return lambdaRes, b.Event
			}
		}
	}
	return "", ""
}
