package hpxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// CheckStructure performs the defensive pre-serialization checks:
// every SystemIdentifier carries a non-empty, pattern-conformant,
// document-unique id, and no idref is left empty. The validator checks
// the same properties on the serialized text; duplicating them here puts
// the failure next to its cause instead of one stage later.
func (d *Document) CheckStructure() error {
	seen := make(map[string]bool)
	return d.root.checkStructure("HPXML", seen)
}

func (n *Node) checkStructure(path string, seen map[string]bool) error {
	if n.Name == "SystemIdentifier" {
		id := n.AttrValue("id")
		if id == "" {
			return &RefError{
				Code:    ErrCodeMissingIdentifier,
				Node:    path,
				Message: "entity node has no identifier",
			}
		}
		if !IDPattern.MatchString(id) {
			return &RefError{
				Code:    ErrCodeMissingIdentifier,
				Node:    path,
				Message: fmt.Sprintf("identifier %q does not match letters-then-digits", id),
			}
		}
		if seen[id] {
			return &RefError{
				Code:    ErrCodeDuplicateIdentifier,
				Node:    path,
				Message: fmt.Sprintf("identifier %q already used", id),
			}
		}
		seen[id] = true
	}
	for _, a := range n.Attrs {
		if a.Name == "idref" && a.Value == "" {
			return &RefError{
				Code:    ErrCodeUnresolvedRole,
				Node:    path,
				Message: "idref left unresolved",
			}
		}
	}
	for _, c := range n.Children {
		if err := c.checkStructure(path+"/"+c.Name, seen); err != nil {
			return err
		}
	}
	return nil
}

// Serialize renders the document as indented UTF-8 XML with the standard
// declaration. Node and attribute order is preserved, so the same tree
// always serializes to the same bytes.
func (d *Document) Serialize() ([]byte, error) {
	if err := d.CheckStructure(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := writeNode(&buf, d.root, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Name)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		if err := xml.EscapeText(buf, []byte(a.Value)); err != nil {
			return err
		}
		buf.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		buf.WriteString("/>\n")
		return nil
	}
	buf.WriteByte('>')
	if len(n.Children) == 0 {
		if err := xml.EscapeText(buf, []byte(n.Text)); err != nil {
			return err
		}
		buf.WriteString("</")
		buf.WriteString(n.Name)
		buf.WriteString(">\n")
		return nil
	}
	buf.WriteByte('\n')
	for _, c := range n.Children {
		if err := writeNode(buf, c, depth+1); err != nil {
			return err
		}
	}
	buf.WriteString(indent)
	buf.WriteString("</")
	buf.WriteString(n.Name)
	buf.WriteString(">\n")
	return nil
}
