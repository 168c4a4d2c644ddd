// Package template holds the typed in-memory model of a SAM template.
//
// A template is parsed once per operation into an ordered tree of nodes,
// mutated through tree operations, and re-serialized with stable key
// ordering and fixed 2-space indentation. The parser and serializer cover
// exactly the CloudFormation/SAM subset this tool writes; they are not a
// general YAML engine.
package template

import "fmt"

// Kind discriminates the three node shapes.
type Kind int

const (
	// KindScalar is a leaf value, optionally carrying an intrinsic tag.
	KindScalar Kind = iota
	// KindMap is an ordered mapping of string keys to nodes.
	KindMap
	// KindSequence is an ordered list of nodes.
	KindSequence
)

// Node is one value in the template tree.
type Node struct {
	kind Kind

	value  string
	tag    string
	quoted bool

	keys     []string
	children map[string]*Node

	items []*Node
}

// Scalar returns a plain scalar node.
func Scalar(value string) *Node {
	return &Node{kind: KindScalar, value: value}
}

// QuotedScalar returns a scalar that always serializes single-quoted.
// Used for values that YAML would otherwise reinterpret, like the IAM
// policy version date.
func QuotedScalar(value string) *Node {
	return &Node{kind: KindScalar, value: value, quoted: true}
}

// Tagged returns a scalar carrying an intrinsic tag such as "!Ref".
func Tagged(tag, value string) *Node {
	return &Node{kind: KindScalar, value: value, tag: tag}
}

// Ref returns a !Ref scalar.
func Ref(name string) *Node { return Tagged("!Ref", name) }

// GetAtt returns a !GetAtt scalar, e.g. GetAtt("UsersTable.Arn").
func GetAtt(target string) *Node { return Tagged("!GetAtt", target) }

// Sub returns a !Sub scalar.
func Sub(expr string) *Node { return Tagged("!Sub", expr) }

// NewMap returns an empty ordered map node.
func NewMap() *Node {
	return &Node{kind: KindMap, children: make(map[string]*Node)}
}

// NewSequence returns an empty sequence node.
func NewSequence() *Node {
	return &Node{kind: KindSequence}
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the scalar value; empty for containers.
func (n *Node) Value() string { return n.value }

// Tag returns the intrinsic tag ("!Ref", "!GetAtt", "!Sub") or "".
func (n *Node) Tag() string { return n.tag }

// SetValue replaces a scalar's value in place.
func (n *Node) SetValue(value string) {
	n.mustBe(KindScalar, "SetValue")
	n.value = value
}

// Keys returns the map keys in document order.
func (n *Node) Keys() []string {
	if n.kind != KindMap {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of entries or items.
func (n *Node) Len() int {
	switch n.kind {
	case KindMap:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Child returns the map entry for key, or nil.
func (n *Node) Child(key string) *Node {
	if n.kind != KindMap {
		return nil
	}
	return n.children[key]
}

// Has reports whether the map contains key.
func (n *Node) Has(key string) bool {
	return n.Child(key) != nil
}

// Set appends a new entry or replaces an existing one in place.
func (n *Node) Set(key string, child *Node) {
	n.mustBe(KindMap, "Set")
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// SetRanked inserts a new entry before the first existing key with a
// higher rank; existing keys are replaced in place. This is how property
// ordering rules (Layers after Architectures, before Events) are applied.
func (n *Node) SetRanked(key string, child *Node, rank func(string) int) {
	n.mustBe(KindMap, "SetRanked")
	if _, ok := n.children[key]; ok {
		n.children[key] = child
		return
	}
	r := rank(key)
	at := len(n.keys)
	for i, existing := range n.keys {
		if rank(existing) > r {
			at = i
			break
		}
	}
	n.keys = append(n.keys, "")
	copy(n.keys[at+1:], n.keys[at:])
	n.keys[at] = key
	n.children[key] = child
}

// Delete removes a map entry, reporting whether it existed.
func (n *Node) Delete(key string) bool {
	if n.kind != KindMap {
		return false
	}
	if _, ok := n.children[key]; !ok {
		return false
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	return true
}

// Items returns the sequence items in order.
func (n *Node) Items() []*Node {
	if n.kind != KindSequence {
		return nil
	}
	return n.items
}

// Append adds an item to the end of a sequence.
func (n *Node) Append(item *Node) {
	n.mustBe(KindSequence, "Append")
	n.items = append(n.items, item)
}

// ContainsScalar reports whether the sequence holds a scalar item with the
// given tag and value.
func (n *Node) ContainsScalar(tag, value string) bool {
	if n.kind != KindSequence {
		return false
	}
	for _, item := range n.items {
		if item.kind == KindScalar && item.tag == tag && item.value == value {
			return true
		}
	}
	return false
}

// RemoveScalar removes the first scalar item matching tag and value,
// reporting whether one was found.
func (n *Node) RemoveScalar(tag, value string) bool {
	if n.kind != KindSequence {
		return false
	}
	for i, item := range n.items {
		if item.kind == KindScalar && item.tag == tag && item.value == value {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Node) mustBe(k Kind, op string) {
	if n.kind != k {
		panic(fmt.Sprintf("template: %s on %v node", op, n.kind))
	}
}

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}
