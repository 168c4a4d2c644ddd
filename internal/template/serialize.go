package template

import "strings"

// ResourceSpan is the [Start,End) line range a resource occupies in the
// serialized text. Spans are a serializer byproduct: the tree is the source
// of truth, spans exist for display and for checking block disjointness.
type ResourceSpan struct {
	Name  string
	Start int
	End   int
}

type writer struct {
	b    strings.Builder
	line int
}

func (w *writer) writeLine(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
	w.line++
}

// Bytes serializes the document deterministically: identical trees produce
// byte-identical text. No blank lines are emitted.
func (d *Document) Bytes() []byte {
	text, _ := d.serialize()
	return []byte(text)
}

// ResourceSpans serializes the document and reports each resource's line
// range. Ranges are disjoint and ordered; a resource ends where the next
// resource, the Outputs header, or EOF begins.
func (d *Document) ResourceSpans() []ResourceSpan {
	_, spans := d.serialize()
	return spans
}

func (d *Document) serialize() (string, []ResourceSpan) {
	w := &writer{}
	var spans []ResourceSpan

	for _, section := range d.root.Keys() {
		node := d.root.Child(section)
		if section != sectionResources {
			writeEntry(w, section, node, 0)
			continue
		}
		w.writeLine(sectionResources + ":")
		for _, name := range node.Keys() {
			start := w.line
			writeEntry(w, name, node.Child(name), 1)
			spans = append(spans, ResourceSpan{Name: name, Start: start, End: w.line})
		}
	}
	return w.b.String(), spans
}

// writeEntry emits one "key: ..." map entry at the given depth.
func writeEntry(w *writer, key string, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n.kind {
	case KindScalar:
		w.writeLine(pad + key + ": " + renderScalar(n))
	case KindMap:
		if n.Len() == 0 {
			w.writeLine(pad + key + ":")
			return
		}
		w.writeLine(pad + key + ":")
		for _, k := range n.keys {
			writeEntry(w, k, n.children[k], depth+1)
		}
	case KindSequence:
		w.writeLine(pad + key + ":")
		writeSequence(w, n, depth+1)
	}
}

func writeSequence(w *writer, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, item := range n.items {
		switch item.kind {
		case KindScalar:
			w.writeLine(pad + "- " + renderScalar(item))
		case KindMap:
			first := true
			for _, k := range item.keys {
				child := item.children[k]
				if first {
					first = false
					if child.kind == KindScalar {
						w.writeLine(pad + "- " + k + ": " + renderScalar(child))
					} else {
						w.writeLine(pad + "- " + k + ":")
						writeChild(w, child, depth+2)
					}
					continue
				}
				writeEntry(w, k, child, depth+1)
			}
		case KindSequence:
			// Not produced by this tool's generator.
			w.writeLine(pad + "-")
			writeSequence(w, item, depth+1)
		}
	}
}

func writeChild(w *writer, n *Node, depth int) {
	switch n.kind {
	case KindMap:
		for _, k := range n.keys {
			writeEntry(w, k, n.children[k], depth)
		}
	case KindSequence:
		writeSequence(w, n, depth)
	}
}

func renderScalar(n *Node) string {
	v := n.value
	if n.quoted || needsQuote(v) {
		v = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	if n.tag != "" {
		return n.tag + " " + v
	}
	return v
}

// needsQuote reports whether a plain rendering of v would change its
// meaning. Booleans and numbers are deliberately left plain so that parsed
// text round-trips byte for byte; values that must stay strings are built
// with QuotedScalar.
func needsQuote(v string) bool {
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, " ") || strings.HasSuffix(v, " ") {
		return true
	}
	if strings.ContainsAny(v, "\n\t") {
		return true
	}
	if strings.Contains(v, ": ") || strings.Contains(v, " #") {
		return true
	}
	if strings.HasSuffix(v, ":") {
		return true
	}
	return strings.ContainsAny(v[:1], "!&*?|>%@`\"'#,[]{}")
}
