package source

import (
	"strconv"
	"strings"
)

// raw resolves path relative to n and returns the raw text value.
// A path ending in "/@name" reads an attribute; anything else reads
// element character data. ok reports whether the path is present at all
// (an empty value is still present).
func (n *Node) raw(path string) (value string, ok bool) {
	elemPath, attr := splitAttrPath(path)
	target := n
	if elemPath != "" {
		t, found := n.Lookup(elemPath)
		if !found {
			return "", false
		}
		target = t
	}
	if attr != "" {
		return target.Attr(attr)
	}
	return target.Text(), true
}

// fullPath renders the absolute path for an error message.
func (n *Node) fullPath(path string) string {
	if path == "" {
		return n.Path()
	}
	return n.Path() + "/" + path
}

// Str returns the string at path; a missing path is a *ParseError.
func (n *Node) Str(path string) (string, error) {
	v, ok := n.raw(path)
	if !ok {
		return "", n.missing(path)
	}
	return v, nil
}

// StrOr returns the string at path, or def when the path is absent.
func (n *Node) StrOr(path, def string) string {
	v, ok := n.raw(path)
	if !ok {
		return def
	}
	return v
}

// Float returns the float at path; a missing path is a *ParseError.
// Coercion follows H2K quirks: present-but-empty reads as 0 and a comma
// decimal separator is accepted. Non-numeric text is a *ParseError.
func (n *Node) Float(path string) (float64, error) {
	v, ok := n.raw(path)
	if !ok {
		return 0, n.missing(path)
	}
	return n.coerceFloat(path, v)
}

// FloatOr returns the float at path, or def when the path is absent.
// Present text still goes through coercion and may fail.
func (n *Node) FloatOr(path string, def float64) (float64, error) {
	v, ok := n.raw(path)
	if !ok {
		return def, nil
	}
	return n.coerceFloat(path, v)
}

// Int returns the integer at path; a missing path is a *ParseError.
func (n *Node) Int(path string) (int, error) {
	v, ok := n.raw(path)
	if !ok {
		return 0, n.missing(path)
	}
	return n.coerceInt(path, v)
}

// IntOr returns the integer at path, or def when the path is absent.
func (n *Node) IntOr(path string, def int) (int, error) {
	v, ok := n.raw(path)
	if !ok {
		return def, nil
	}
	return n.coerceInt(path, v)
}

// Bool returns the boolean at path; a missing path is a *ParseError.
// Accepts true/false and the 1/0 forms H2K emits.
func (n *Node) Bool(path string) (bool, error) {
	v, ok := n.raw(path)
	if !ok {
		return false, n.missing(path)
	}
	return n.coerceBool(path, v)
}

// BoolOr returns the boolean at path, or def when the path is absent.
func (n *Node) BoolOr(path string, def bool) (bool, error) {
	v, ok := n.raw(path)
	if !ok {
		return def, nil
	}
	return n.coerceBool(path, v)
}

// Code returns the enumeration code at path. H2K writes coded enums as
// <X code="N">label</X>; Code reads the attribute and falls back to the
// element text for the handful of fields written without one. A missing
// path or an empty code is a *ParseError: coded fields are mandatory
// wherever a processor maps them through a closed table.
func (n *Node) Code(path string) (string, error) {
	target, found := n.Lookup(path)
	if !found {
		return "", n.missing(path)
	}
	if v, ok := target.Attr("code"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if v := target.Text(); v != "" {
		return v, nil
	}
	return "", &ParseError{
		Code:    ErrCodeMissingMandatory,
		Path:    n.fullPath(path),
		Message: "coded field has no code attribute and no text",
	}
}

// CodeOr returns the enumeration code at path, or def when absent.
func (n *Node) CodeOr(path, def string) string {
	c, err := n.Code(path)
	if err != nil {
		return def
	}
	return c
}

func (n *Node) missing(path string) *ParseError {
	return &ParseError{
		Code:    ErrCodeMissingMandatory,
		Path:    n.fullPath(path),
		Message: "mandatory field is missing",
	}
}

func (n *Node) coerceFloat(path, v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil // empty-means-zero
	}
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{
			Code:    ErrCodeBadNumber,
			Path:    n.fullPath(path),
			Value:   v,
			Message: "not a number",
		}
	}
	return f, nil
}

func (n *Node) coerceInt(path, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil // empty-means-zero
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		// H2K occasionally writes integral counts as "2.0".
		f, ferr := n.coerceFloat(path, v)
		if ferr != nil || f != float64(int(f)) {
			return 0, &ParseError{
				Code:    ErrCodeBadNumber,
				Path:    n.fullPath(path),
				Value:   v,
				Message: "not an integer",
			}
		}
		return int(f), nil
	}
	return i, nil
}

func (n *Node) coerceBool(path, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ParseError{
		Code:    ErrCodeBadBool,
		Path:    n.fullPath(path),
		Value:   v,
		Message: "unrecognized boolean literal",
	}
}
