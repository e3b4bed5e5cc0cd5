// Package xmldoc decodes XML documents into [tree.Node] values.
//
// # Mapping Rules
//
// The decoder follows the conventions of "simple" XML-to-hash converters so
// that documents can be navigated with [tree.Retrieve]:
//
//   - The result is a Mapping holding the root element under its local name.
//   - Namespace prefixes are dropped: <aws:Rank> is stored as "Rank".
//   - Attributes become mapping keys (namespace declarations are skipped).
//   - Repeated sibling elements with the same name become a List.
//   - An element with only text becomes a Scalar.
//   - Text of an element that also has attributes or children is stored
//     under [tree.TextKey].
//   - An element with no attributes, no children and only whitespace is Absent.
//
// When an attribute and a child element share a name, the child wins.
//
// # Encodings
//
// Documents declaring a non-UTF-8 encoding (for example ISO-8859-1) are
// transcoded with golang.org/x/net/html/charset before decoding.
package xmldoc
