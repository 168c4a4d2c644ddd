package template

import (
	"fmt"
	"strings"
)

// record is one lexed content line. Blank lines and full-line comments are
// dropped during lexing, so record indices are dense.
type record struct {
	num      int // 1-based source line
	indent   int
	dash     bool
	key      string
	hasKey   bool
	value    string
	hasValue bool
}

// Parse reads template text into a Document. The input must use 2-space
// indentation and stay within the subset this tool's serializer emits.
func Parse(data []byte) (*Document, error) {
	recs, err := lex(data)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return &Document{root: NewMap()}, nil
	}
	if recs[0].indent != 0 {
		return nil, fmt.Errorf("line %d: document must start at column 0", recs[0].num)
	}
	root, next, err := parseMap(recs, 0, 0)
	if err != nil {
		return nil, err
	}
	if next != len(recs) {
		return nil, fmt.Errorf("line %d: unexpected indentation", recs[next].num)
	}
	return &Document{root: root}, nil
}

func lex(data []byte) ([]record, error) {
	var recs []record
	for i, raw := range strings.Split(string(data), "\n") {
		num := i + 1
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Contains(line, "\t") {
			return nil, fmt.Errorf("line %d: tabs are not allowed", num)
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent%2 != 0 {
			return nil, fmt.Errorf("line %d: indentation must be a multiple of 2", num)
		}

		rec := record{num: num, indent: indent}
		rest := line[indent:]
		if rest == "-" {
			return nil, fmt.Errorf("line %d: bare sequence dash is not supported", num)
		}
		if strings.HasPrefix(rest, "- ") {
			rec.dash = true
			rest = rest[2:]
		}

		if key, value, ok := splitKey(rest); ok {
			rec.key = key
			rec.hasKey = true
			if value != "" {
				rec.value = value
				rec.hasValue = true
			}
		} else {
			if !rec.dash {
				return nil, fmt.Errorf("line %d: expected a key", num)
			}
			rec.value = rest
			rec.hasValue = true
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// splitKey detects a "key:" or "key: value" form. The split point is the
// first colon followed by a space or end of line whose left side looks like
// a plain key; anything else is a bare value.
func splitKey(s string) (key, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 < len(s) && s[i+1] != ' ' {
			continue
		}
		k := s[:i]
		if !keyLike(k) {
			return "", "", false
		}
		return k, strings.TrimLeft(s[i+1:], " "), true
	}
	return "", "", false
}

func keyLike(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "!") || strings.HasPrefix(s, "'") || strings.HasPrefix(s, "\"") {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}

func parseMap(recs []record, i, indent int) (*Node, int, error) {
	m := NewMap()
	next, err := parseMapInto(m, recs, i, indent)
	return m, next, err
}

// parseMapInto consumes entries at exactly the given indent until a dedent.
// It is shared by plain maps and the continuation lines of sequence items
// that open with an inline key.
func parseMapInto(m *Node, recs []record, i, indent int) (int, error) {
	for i < len(recs) {
		rec := recs[i]
		if rec.indent < indent {
			return i, nil
		}
		if rec.indent > indent {
			return 0, fmt.Errorf("line %d: unexpected indentation", rec.num)
		}
		if rec.dash {
			return i, nil
		}
		if !rec.hasKey {
			return 0, fmt.Errorf("line %d: expected a key", rec.num)
		}
		if m.Has(rec.key) {
			return 0, fmt.Errorf("line %d: duplicate key %q", rec.num, rec.key)
		}

		if rec.hasValue {
			v, err := parseValue(rec.value, rec.num)
			if err != nil {
				return 0, err
			}
			m.Set(rec.key, v)
			i++
			continue
		}

		child, next, err := parseBlock(recs, i+1, indent+2)
		if err != nil {
			return 0, err
		}
		m.Set(rec.key, child)
		i = next
	}
	return i, nil
}

// parseBlock parses whatever sits below an opened key: a nested map, a
// sequence, or nothing (an empty map).
func parseBlock(recs []record, i, indent int) (*Node, int, error) {
	if i >= len(recs) || recs[i].indent < indent {
		return NewMap(), i, nil
	}
	if recs[i].indent > indent {
		return nil, 0, fmt.Errorf("line %d: unexpected indentation", recs[i].num)
	}
	if recs[i].dash {
		return parseSequence(recs, i, indent)
	}
	return parseMap(recs, i, indent)
}

func parseSequence(recs []record, i, indent int) (*Node, int, error) {
	s := NewSequence()
	for i < len(recs) {
		rec := recs[i]
		if rec.indent < indent || !rec.dash {
			return s, i, nil
		}
		if rec.indent > indent {
			return nil, 0, fmt.Errorf("line %d: unexpected indentation", rec.num)
		}

		if !rec.hasKey {
			v, err := parseValue(rec.value, rec.num)
			if err != nil {
				return nil, 0, err
			}
			s.Append(v)
			i++
			continue
		}

		// Map item: the dash line carries the first pair, continuation
		// lines follow two spaces deeper.
		item := NewMap()
		if rec.hasValue {
			v, err := parseValue(rec.value, rec.num)
			if err != nil {
				return nil, 0, err
			}
			item.Set(rec.key, v)
			i++
		} else {
			child, next, err := parseBlock(recs, i+1, indent+4)
			if err != nil {
				return nil, 0, err
			}
			item.Set(rec.key, child)
			i = next
		}
		next, err := parseMapInto(item, recs, i, indent+2)
		if err != nil {
			return nil, 0, err
		}
		i = next
		s.Append(item)
	}
	return s, i, nil
}

func parseValue(raw string, num int) (*Node, error) {
	if strings.HasPrefix(raw, "!") {
		tag, rest, ok := strings.Cut(raw, " ")
		if !ok || strings.TrimSpace(rest) == "" {
			return nil, fmt.Errorf("line %d: tag %s needs a value", num, raw)
		}
		value, _, err := unquote(strings.TrimSpace(rest), num)
		if err != nil {
			return nil, err
		}
		return Tagged(tag, value), nil
	}
	value, quoted, err := unquote(raw, num)
	if err != nil {
		return nil, err
	}
	n := Scalar(value)
	n.quoted = quoted
	return n, nil
}

func unquote(s string, num int) (value string, quoted bool, err error) {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true, nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `\\`, `\`)
		return inner, true, nil
	}
	if strings.HasPrefix(s, "'") || strings.HasPrefix(s, "\"") {
		return "", false, fmt.Errorf("line %d: unterminated quote", num)
	}
	return s, false, nil
}
