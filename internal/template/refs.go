package template

import (
	"regexp"
	"strings"
)

// RefKind says how one entity points at another.
type RefKind string

const (
	// RefPlain is a !Ref.
	RefPlain RefKind = "Ref"
	// RefGetAtt is a !GetAtt attribute reference.
	RefGetAtt RefKind = "GetAtt"
	// RefSub is a ${...} substitution inside a !Sub expression.
	RefSub RefKind = "Sub"
)

// Reference is one cross-reference edge: From names a resource or output,
// To names the referenced resource or parameter.
type Reference struct {
	From string
	To   string
	Kind RefKind
}

var subVar = regexp.MustCompile(`\$\{([^}]+)\}`)

// References extracts every edge from the Resources section, in document
// order. Cascade deletes and deletion guards traverse these instead of
// rescanning text per reference kind.
func References(d *Document) []Reference {
	var refs []Reference
	for _, name := range d.ResourceNames() {
		walkRefs(d.Resource(name), func(to string, kind RefKind) {
			refs = append(refs, Reference{From: name, To: to, Kind: kind})
		})
	}
	return refs
}

// OutputReferences extracts the edges leaving each Outputs entry.
func OutputReferences(d *Document) []Reference {
	var refs []Reference
	for _, name := range d.OutputNames() {
		walkRefs(d.Output(name), func(to string, kind RefKind) {
			refs = append(refs, Reference{From: name, To: to, Kind: kind})
		})
	}
	return refs
}

// ResourcesReferencing returns the names of resources holding at least one
// edge to target, in document order.
func ResourcesReferencing(d *Document, target string) []string {
	var names []string
	for _, name := range d.ResourceNames() {
		if name == target {
			continue
		}
		found := false
		walkRefs(d.Resource(name), func(to string, _ RefKind) {
			if to == target {
				found = true
			}
		})
		if found {
			names = append(names, name)
		}
	}
	return names
}

// OutputsReferencing returns the names of Outputs entries holding at least
// one edge to target.
func OutputsReferencing(d *Document, target string) []string {
	var names []string
	for _, name := range d.OutputNames() {
		found := false
		walkRefs(d.Output(name), func(to string, _ RefKind) {
			if to == target {
				found = true
			}
		})
		if found {
			names = append(names, name)
		}
	}
	return names
}

// NodeReferences reports whether any edge inside the subtree under n
// resolves to target. Used to decide whether a gateway's Auth block still
// points at the shared authorizer.
func NodeReferences(n *Node, target string) bool {
	found := false
	walkRefs(n, func(to string, _ RefKind) {
		if to == target {
			found = true
		}
	})
	return found
}

func walkRefs(n *Node, emit func(to string, kind RefKind)) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case KindScalar:
		switch n.Tag() {
		case "!Ref":
			if !pseudoParam(n.Value()) {
				emit(n.Value(), RefPlain)
			}
		case "!GetAtt":
			name, _, _ := strings.Cut(n.Value(), ".")
			if name != "" && !pseudoParam(name) {
				emit(name, RefGetAtt)
			}
		case "!Sub":
			for _, m := range subVar.FindAllStringSubmatch(n.Value(), -1) {
				name, _, _ := strings.Cut(m[1], ".")
				if name != "" && !pseudoParam(name) {
					emit(name, RefSub)
				}
			}
		}
	case KindMap:
		for _, k := range n.Keys() {
			walkRefs(n.Child(k), emit)
		}
	case KindSequence:
		for _, item := range n.Items() {
			walkRefs(item, emit)
		}
	}
}

func pseudoParam(name string) bool {
	return strings.HasPrefix(name, "AWS::")
}
