package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/matzehuels/awis/pkg/tree"
)

var (
	// ErrEmpty is returned when the input holds no root element.
	ErrEmpty = errors.New("xmldoc: document has no root element")

	// ErrSyntax wraps every decoding failure of malformed input.
	ErrSyntax = errors.New("xmldoc: malformed document")
)

// element accumulates one open element while its end tag is pending.
type element struct {
	name     string
	attrs    []xml.Attr
	order    []string
	children map[string][]tree.Node
	text     strings.Builder
}

func (e *element) add(name string, n tree.Node) {
	if e.children == nil {
		e.children = make(map[string][]tree.Node)
	}
	if _, ok := e.children[name]; !ok {
		e.order = append(e.order, name)
	}
	e.children[name] = append(e.children[name], n)
}

func (e *element) node() tree.Node {
	fields := make(map[string]tree.Node)
	for _, a := range e.attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		fields[a.Name.Local] = tree.NewScalar(a.Value)
	}
	for _, name := range e.order {
		kids := e.children[name]
		if len(kids) == 1 {
			fields[name] = kids[0]
		} else {
			fields[name] = tree.NewList(kids...)
		}
	}

	text := e.text.String()
	blank := strings.TrimSpace(text) == ""
	if len(fields) == 0 {
		if blank {
			return tree.Node{}
		}
		return tree.NewScalar(text)
	}
	if !blank {
		fields[tree.TextKey] = tree.NewScalar(text)
	}
	return tree.NewMapping(fields)
}

// Parse decodes body into a tree rooted at a Mapping that holds the document
// element under its local name.
//
// Malformed input yields an error wrapping [ErrSyntax]; input without any
// element yields [ErrEmpty].
func Parse(body []byte) (tree.Node, error) {
	return Decode(bytes.NewReader(body))
}

// Decode is like [Parse] but reads the document from r.
func Decode(r io.Reader) (tree.Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		stack []*element
		root  *element
		doc   tree.Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return tree.Node{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return tree.Node{}, fmt.Errorf("%w: second root element <%s>", ErrSyntax, t.Name.Local)
			}
			el := &element{name: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := el.node()
			if len(stack) == 0 {
				doc = tree.NewMapping(map[string]tree.Node{el.name: n})
				continue
			}
			stack[len(stack)-1].add(el.name, n)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return tree.Node{}, ErrEmpty
	}
	if len(stack) > 0 {
		return tree.Node{}, fmt.Errorf("%w: unclosed element <%s>", ErrSyntax, stack[len(stack)-1].name)
	}
	return doc, nil
}
