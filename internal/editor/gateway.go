package editor

import (
	"context"
	"fmt"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// AddGateway inserts an Api resource and its paired invoke-URL output.
func (e *Editor) AddGateway(ctx context.Context, name string) error {
	if !samkit.ValidLogicalName(name) {
		return fmt.Errorf("invalid gateway name %q: letters and digits only, starting with a letter", name)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.HasResource(name) {
		return samkit.Conflictf("resource %q already exists", name)
	}
	doc.AddResource(name, GatewayNode(name))
	doc.AddOutput(samkit.GatewayURLOutput(name), GatewayURLOutputNode(name))
	return e.save(ctx, doc)
}

// DeleteGateway removes a gateway and cascades: every event binding whose
// RestApiId references it goes first (with its Events wrapper when
// emptied), then the resource, then every output referencing it. An
// emptied Outputs section is dropped entirely.
func (e *Editor) DeleteGateway(ctx context.Context, name string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if _, err := e.gateway(doc, name); err != nil {
		return err
	}

	for _, fnName := range doc.ResourcesOfType(samkit.TypeFunction) {
		fn := doc.Resource(fnName)
		events := eventsOf(fn)
		if events == nil {
			continue
		}
		for _, key := range events.Keys() {
			if bindsGateway(events.Child(key), name) {
				events.Delete(key)
			}
		}
		dropEmptyEvents(fn)
	}

	doc.RemoveResource(name)
	for _, out := range template.OutputsReferencing(doc, name) {
		doc.RemoveOutput(out)
	}
	return e.save(ctx, doc)
}

// Gateways returns the gateway names in document order.
func (e *Editor) Gateways(ctx context.Context) ([]string, error) {
	doc, err := e.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ResourcesOfType(samkit.TypeAPI), nil
}

// bindsGateway reports whether an event binding's RestApiId is a plain
// !Ref to the gateway.
func bindsGateway(event *template.Node, gateway string) bool {
	if event == nil || event.Kind() != template.KindMap {
		return false
	}
	props := event.Child("Properties")
	if props == nil {
		return false
	}
	rest := props.Child("RestApiId")
	return rest != nil && rest.Tag() == "!Ref" && rest.Value() == gateway
}
