// Package tree provides a tagged-union document tree and total path lookup.
//
// # Overview
//
// A [Node] is exactly one of four kinds:
//
//   - [Absent]: nothing is there (the zero Node)
//   - [Scalar]: a text value
//   - [Mapping]: named children
//   - [List]: an ordered sequence of nodes
//
// Decoders such as [github.com/matzehuels/awis/pkg/xmldoc] build trees from raw
// documents; consumers read them with [Retrieve]:
//
//	rank := tree.Retrieve(doc, "TrafficData", "Rank")
//	if s, ok := tree.Text(rank); ok {
//	    // use s
//	}
//
// # Totality
//
// [Retrieve] never panics and never returns an error. A missing key, a step
// through a non-mapping, or an empty key path all yield an Absent node. This
// lets callers extract many unrelated optional fields from one document without
// any single missing subtree affecting the others.
package tree
