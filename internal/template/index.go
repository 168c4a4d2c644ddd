package template

import (
	"strings"

	samkit "github.com/samkit-io/samkit"
)

// Index walks the Resources section once and maps every gateway to the
// lambdas serving it and their event bindings.
//
// Only bindings with Type Api and a RestApiId that is a plain !Ref to a
// known gateway are indexed; any other reference form is left out. Methods
// are normalized to lowercase.
func Index(d *Document) samkit.EndpointIndex {
	idx := make(samkit.EndpointIndex)
	for _, api := range d.ResourcesOfType(samkit.TypeAPI) {
		idx[api] = make(map[string][]samkit.EventBinding)
	}

	for _, fn := range d.ResourcesOfType(samkit.TypeFunction) {
		events := functionEvents(d.Resource(fn))
		if events == nil {
			continue
		}
		for _, eventName := range events.Keys() {
			api, binding, ok := apiBinding(events.Child(eventName), eventName)
			if !ok {
				continue
			}
			byLambda, known := idx[api]
			if !known {
				continue
			}
			byLambda[fn] = append(byLambda[fn], binding)
		}
	}
	return idx
}

// functionEvents returns a function resource's Events block, or nil.
func functionEvents(res *Node) *Node {
	props := Properties(res)
	if props == nil {
		return nil
	}
	events := props.Child("Events")
	if events == nil || events.Kind() != KindMap {
		return nil
	}
	return events
}

// apiBinding extracts (gateway, binding) from one Events entry.
func apiBinding(event *Node, eventName string) (string, samkit.EventBinding, bool) {
	var none samkit.EventBinding
	if event == nil || event.Kind() != KindMap {
		return "", none, false
	}
	typ := event.Child("Type")
	if typ == nil || typ.Value() != "Api" {
		return "", none, false
	}
	props := event.Child("Properties")
	if props == nil {
		return "", none, false
	}
	restAPI := props.Child("RestApiId")
	if restAPI == nil || restAPI.Tag() != "!Ref" {
		return "", none, false
	}
	var method, path string
	if m := props.Child("Method"); m != nil {
		method = strings.ToLower(m.Value())
	}
	if p := props.Child("Path"); p != nil {
		path = p.Value()
	}
	return restAPI.Value(), samkit.EventBinding{Event: eventName, Method: method, Path: path}, true
}
