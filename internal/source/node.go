package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Document is a parsed H2K source tree.
type Document struct {
	root *Node
}

// Node is an opaque handle into the parsed source tree.
// Nodes are immutable after Parse.
type Node struct {
	name     string
	attrs    map[string]string
	text     string
	children []*Node
	parent   *Node
}

// Parse reads an H2K document from r.
// The tree is fully materialized; r is consumed to EOF.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var cur *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{
				Code:    ErrCodeMalformedXML,
				Path:    "/",
				Message: fmt.Sprintf("malformed XML: %v", err),
			}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				name:   t.Name.Local,
				attrs:  make(map[string]string, len(t.Attr)),
				parent: cur,
			}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			if cur == nil {
				if root != nil {
					return nil, &ParseError{
						Code:    ErrCodeMalformedXML,
						Path:    "/",
						Message: "multiple root elements",
					}
				}
				root = n
			} else {
				cur.children = append(cur.children, n)
			}
			cur = n
		case xml.EndElement:
			cur = cur.parent
		case xml.CharData:
			if cur != nil {
				cur.text += string(t)
			}
		}
	}
	if root == nil {
		return nil, &ParseError{
			Code:    ErrCodeMalformedXML,
			Path:    "/",
			Message: "document has no root element",
		}
	}
	return &Document{root: root}, nil
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// Name returns the element name.
func (n *Node) Name() string {
	return n.name
}

// Text returns the element's character data with surrounding space trimmed.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text)
}

// Attr returns the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Path returns the full slash-separated path from the document root.
// Used in error messages so a failed read always names its location.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name
	}
	return n.parent.Path() + "/" + n.name
}

// Lookup resolves a slash-separated element path relative to n.
// Each segment matches the first child with that name. Returns false
// when any segment is absent. A trailing "@attr" segment is not allowed
// here; attribute reads go through the typed accessors.
func (n *Node) Lookup(path string) (*Node, bool) {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		next := cur.child(seg)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// All returns every child matching the final segment of path, with the
// leading segments resolved like Lookup. Returns nil when the parent
// path is absent. Used to iterate repeated components (walls, windows).
func (n *Node) All(path string) []*Node {
	segs := strings.Split(path, "/")
	cur := n
	for _, seg := range segs[:len(segs)-1] {
		if seg == "" {
			continue
		}
		next := cur.child(seg)
		if next == nil {
			return nil
		}
		cur = next
	}
	last := segs[len(segs)-1]
	var out []*Node
	for _, c := range cur.children {
		if c.name == last {
			out = append(out, c)
		}
	}
	return out
}

// Children returns the node's direct children in document order.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// splitAttrPath splits a path into its element part and an optional
// trailing attribute segment ("Label/@code" -> "Label", "code").
func splitAttrPath(path string) (elemPath, attr string) {
	idx := strings.LastIndex(path, "@")
	if idx < 0 {
		return path, ""
	}
	elemPath = strings.TrimSuffix(path[:idx], "/")
	return elemPath, path[idx+1:]
}
