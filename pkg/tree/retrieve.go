package tree

import "strings"

// Retrieve walks keys from n and returns the node at the end of the path.
//
// It returns an Absent node if no keys are given, if any step lands on a node
// that is not a Mapping, or if a key is missing. The node found at the end of a
// complete path is returned as is and may itself be Absent.
func Retrieve(n Node, keys ...string) Node {
	if len(keys) == 0 {
		return Node{}
	}
	cur := n
	for _, k := range keys {
		next, ok := cur.Field(k)
		if !ok {
			return Node{}
		}
		cur = next
	}
	return cur
}

// Text returns the character data of n. Scalars yield their text; mappings
// yield the scalar stored under [TextKey]. Blank text counts as missing.
func Text(n Node) (string, bool) {
	if n.kind == Mapping {
		n = n.fields[TextKey]
	}
	s, ok := n.Scalar()
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Items returns the elements of n viewed as a sequence: a List yields its
// items, Absent yields nil and any other node yields a one-element slice.
// Decoders collapse a single repeated element into a plain node, so callers
// reading "one or many" children should always go through Items.
func Items(n Node) []Node {
	switch n.kind {
	case Absent:
		return nil
	case List:
		return append([]Node(nil), n.items...)
	}
	return []Node{n}
}
