package tree

import "sort"

// Kind identifies which variant a [Node] holds.
type Kind uint8

const (
	Absent Kind = iota
	Scalar
	Mapping
	List
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Mapping:
		return "mapping"
	case List:
		return "list"
	default:
		return "absent"
	}
}

// TextKey is the mapping key holding the character data of an element that
// also has attributes or child elements.
const TextKey = "#text"

// Node is an immutable tree value. The zero Node is Absent.
type Node struct {
	kind   Kind
	text   string
	fields map[string]Node
	items  []Node
}

// NewScalar returns a Scalar node holding s.
func NewScalar(s string) Node {
	return Node{kind: Scalar, text: s}
}

// NewMapping returns a Mapping node over fields. The map is copied.
func NewMapping(fields map[string]Node) Node {
	m := make(map[string]Node, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Node{kind: Mapping, fields: m}
}

// NewList returns a List node holding items in order.
func NewList(items ...Node) Node {
	return Node{kind: List, items: append([]Node(nil), items...)}
}

// Kind reports the variant held by n.
func (n Node) Kind() Kind { return n.kind }

// IsAbsent reports whether n holds nothing.
func (n Node) IsAbsent() bool { return n.kind == Absent }

// Scalar returns the text of a Scalar node.
func (n Node) Scalar() (string, bool) {
	if n.kind != Scalar {
		return "", false
	}
	return n.text, true
}

// Field returns the child stored under key when n is a Mapping.
func (n Node) Field(key string) (Node, bool) {
	if n.kind != Mapping {
		return Node{}, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Keys returns the sorted keys of a Mapping node, or nil.
func (n Node) Keys() []string {
	if n.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(n.fields))
	for k := range n.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of children of a Mapping or List, and 0 otherwise.
func (n Node) Len() int {
	switch n.kind {
	case Mapping:
		return len(n.fields)
	case List:
		return len(n.items)
	}
	return 0
}
