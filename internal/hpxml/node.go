package hpxml

import (
	"fmt"
	"strings"
)

// Namespace and schema version of the emitted document.
const (
	Namespace     = "http://hpxmlonline.com/2023/09"
	SchemaVersion = "4.0"
)

// Attr is one XML attribute. Attribute order is preserved so repeated
// translations of the same source serialize identically.
type Attr struct {
	Name  string
	Value string
}

// Node is a node of the target document under construction.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Elem creates a node with the given children.
func Elem(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// TextElem creates a leaf node with character data.
func TextElem(name, text string) *Node {
	return &Node{Name: name, Text: text}
}

// FloatElem creates a leaf node with a formatted numeric value.
// %g keeps output stable and free of trailing zeros.
func FloatElem(name string, v float64) *Node {
	return &Node{Name: name, Text: fmt.Sprintf("%g", v)}
}

// IntElem creates a leaf node with an integer value.
func IntElem(name string, v int) *Node {
	return &Node{Name: name, Text: fmt.Sprintf("%d", v)}
}

// BoolElem creates a leaf node with an xs:boolean value.
func BoolElem(name string, v bool) *Node {
	if v {
		return &Node{Name: name, Text: "true"}
	}
	return &Node{Name: name, Text: "false"}
}

// SystemIdentifier creates the identifier child every addressable
// entity carries.
func SystemIdentifier(id string) *Node {
	return &Node{Name: "SystemIdentifier", Attrs: []Attr{{Name: "id", Value: id}}}
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// AttrValue returns the named attribute value, or "".
func (n *Node) AttrValue(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Find returns the first descendant at the slash-separated path.
func (n *Node) Find(path string) (*Node, bool) {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		var next *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Ensure returns the descendant at path, creating missing segments.
// Stages use it to share section containers (Enclosure/Walls and the
// like) without caring which stage created them first.
func (n *Node) Ensure(path string) *Node {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		var next *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			next = Elem(seg)
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}
	return cur
}

// Document is the target document under construction.
type Document struct {
	root *Node
}

// NewDocument creates a document with the fixed HPXML root element and
// schema-version attribute.
func NewDocument() *Document {
	root := Elem("HPXML")
	root.SetAttr("xmlns", Namespace)
	root.SetAttr("schemaVersion", SchemaVersion)
	return &Document{root: root}
}

// Root returns the document root.
func (d *Document) Root() *Node {
	return d.root
}

// Ensure resolves a path under the root, creating missing segments.
func (d *Document) Ensure(path string) *Node {
	return d.root.Ensure(path)
}
