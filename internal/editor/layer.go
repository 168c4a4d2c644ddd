package editor

import (
	"context"
	"fmt"
	"strings"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// AddLayer inserts a LayerVersion resource and writes the layer sources.
func (e *Editor) AddLayer(ctx context.Context, name string) error {
	if !samkit.ValidLogicalName(name) {
		return fmt.Errorf("invalid layer name %q: letters and digits only, starting with a letter", name)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.HasResource(name) {
		return samkit.Conflictf("resource %q already exists", name)
	}
	doc.AddResource(name, LayerNode(name))
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.EnsureLayer(ctx, name)
}

// DeleteLayer removes a layer and its sources. It refuses while any
// function still lists the layer, naming every one of them.
func (e *Editor) DeleteLayer(ctx context.Context, name string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	if doc.ResourceType(name) != samkit.TypeLayerVersion {
		return samkit.NotFound("layer", name)
	}
	if attached := functionsListing(doc, "Layers", name); len(attached) > 0 {
		return samkit.Conflictf("layer %q is attached to: %s", name, strings.Join(attached, ", "))
	}
	doc.RemoveResource(name)
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	return e.tree.RemoveLayer(ctx, name)
}

// AttachLayer adds the layer to a lambda's Layers list, creating the list
// in its ranked position on first attach.
func (e *Editor) AttachLayer(ctx context.Context, lambda, layer string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	if doc.ResourceType(layer) != samkit.TypeLayerVersion {
		return samkit.NotFound("layer", layer)
	}
	layers := template.Properties(fn).Child("Layers")
	if layers != nil && layers.ContainsScalar("!Ref", layer) {
		return samkit.Conflictf("layer %q is already attached to %q", layer, lambda)
	}
	if layers == nil {
		layers = template.NewSequence()
		template.SetProperty(fn, "Layers", layers)
	}
	layers.Append(template.Ref(layer))
	return e.save(ctx, doc)
}

// DetachLayer removes the layer from a lambda's Layers list and drops the
// list once it empties.
func (e *Editor) DetachLayer(ctx context.Context, lambda, layer string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	fn, err := e.function(doc, lambda)
	if err != nil {
		return err
	}
	props := template.Properties(fn)
	layers := props.Child("Layers")
	if layers == nil || !layers.RemoveScalar("!Ref", layer) {
		return samkit.NotFound("layer attachment", layer)
	}
	if layers.Len() == 0 {
		props.Delete("Layers")
	}
	return e.save(ctx, doc)
}

// functionsListing returns the functions whose named list property holds a
// !Ref to target, in document order.
func functionsListing(doc *template.Document, property, target string) []string {
	var names []string
	for _, fnName := range doc.ResourcesOfType(samkit.TypeFunction) {
		props := template.Properties(doc.Resource(fnName))
		if props == nil {
			continue
		}
		if list := props.Child(property); list != nil && list.ContainsScalar("!Ref", target) {
			names = append(names, fnName)
		}
	}
	return names
}
