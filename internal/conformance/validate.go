package conformance

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/h2hpxml/internal/hpxml"
)

// Issue is one conformance failure, located by line and element path.
type Issue struct {
	Line    int    `json:"line"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Path, i.Message)
}

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool
	Errors []Issue
}

// frame is one open element during the streaming walk.
type frame struct {
	name     string
	path     string
	line     int
	text     strings.Builder
	children bool
	hasIdent bool
}

// pendingRef is an idref awaiting closure against the id set.
type pendingRef struct {
	value string
	line  int
	path  string
}

// Validate checks a serialized document against the fixed schema subset:
// root element and version, required structure, enumerated values,
// numeric ranges, identifier pattern and uniqueness, and reference
// closure. It never mutates its input and holds no state between calls,
// so it is safe to run concurrently and on externally produced files.
func Validate(doc []byte) Result {
	rs := rules()
	lines := newLineIndex(doc)
	d := xml.NewDecoder(bytes.NewReader(doc))

	var (
		issues  []Issue
		stack   []*frame
		present = make(map[string]bool)
		ids     = make(map[string]int) // id -> first line seen
		refs    []pendingRef
		sawRoot bool
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var syn *xml.SyntaxError
			line := lines.at(d.InputOffset())
			if errors.As(err, &syn) {
				line = syn.Line
			}
			issues = append(issues, Issue{
				Line:    line,
				Path:    currentPath(stack),
				Message: fmt.Sprintf("malformed document: %v", err),
			})
			return Result{Valid: false, Errors: issues}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line := lines.at(d.InputOffset())
			f := &frame{name: t.Name.Local, line: line}
			if len(stack) == 0 {
				f.path = t.Name.Local
				if !sawRoot {
					sawRoot = true
					if t.Name.Local != "HPXML" {
						// Not the target format at all; everything past
						// this point would be noise.
						return Result{Valid: false, Errors: []Issue{{
							Line:    line,
							Path:    t.Name.Local,
							Message: fmt.Sprintf("root element is %s, want HPXML", t.Name.Local),
						}}}
					}
					issues = append(issues, checkRoot(t, rs, line)...)
				}
			} else {
				parent := stack[len(stack)-1]
				parent.children = true
				f.path = parent.path + "/" + t.Name.Local
				present[strings.TrimPrefix(f.path, stack[0].path+"/")] = true
			}
			stack = append(stack, f)

			if t.Name.Local == "SystemIdentifier" {
				if len(stack) > 1 {
					stack[len(stack)-2].hasIdent = true
				}
				issues = append(issues, checkIdentifier(t, rs, ids, f.path, line)...)
			}
			for _, a := range t.Attr {
				if a.Name.Local != "idref" {
					continue
				}
				if a.Value == "" {
					issues = append(issues, Issue{
						Line:    line,
						Path:    f.path,
						Message: "empty idref",
					})
					continue
				}
				refs = append(refs, pendingRef{value: a.Value, line: line, path: f.path})
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !f.children {
				issues = append(issues, checkLeaf(f, rs)...)
			}
			if rs.Entities[f.name] && !f.hasIdent {
				issues = append(issues, Issue{
					Line:    f.line,
					Path:    f.path,
					Message: "entity has no SystemIdentifier",
				})
			}
		}
	}

	if !sawRoot {
		return Result{Valid: false, Errors: []Issue{{Line: 1, Message: "document has no root element"}}}
	}

	for _, p := range rs.Required {
		if !present[p] {
			issues = append(issues, Issue{
				Line:    1,
				Path:    "HPXML/" + p,
				Message: "required element is missing",
			})
		}
	}

	for _, r := range refs {
		if _, ok := ids[r.value]; !ok {
			issues = append(issues, Issue{
				Line:    r.line,
				Path:    r.path,
				Message: fmt.Sprintf("idref %q does not resolve to any SystemIdentifier", r.value),
			})
		}
	}

	return Result{Valid: len(issues) == 0, Errors: issues}
}

// checkRoot verifies the document's outermost element: name, namespace,
// and schema version.
func checkRoot(t xml.StartElement, rs *ruleSet, line int) []Issue {
	var issues []Issue
	if t.Name.Space != hpxml.Namespace {
		issues = append(issues, Issue{
			Line:    line,
			Path:    "HPXML",
			Message: fmt.Sprintf("root namespace is %q, want %q", t.Name.Space, hpxml.Namespace),
		})
	}
	version := ""
	for _, a := range t.Attr {
		if a.Name.Local == "schemaVersion" {
			version = a.Value
		}
	}
	if version != rs.SchemaVersion {
		issues = append(issues, Issue{
			Line:    line,
			Path:    "HPXML",
			Message: fmt.Sprintf("schemaVersion is %q, want %q", version, rs.SchemaVersion),
		})
	}
	return issues
}

func checkIdentifier(t xml.StartElement, rs *ruleSet, ids map[string]int, path string, line int) []Issue {
	id := ""
	for _, a := range t.Attr {
		if a.Name.Local == "id" {
			id = a.Value
		}
	}
	if id == "" {
		return []Issue{{Line: line, Path: path, Message: "SystemIdentifier has no id"}}
	}
	if !rs.IDPattern.MatchString(id) {
		return []Issue{{
			Line:    line,
			Path:    path,
			Message: fmt.Sprintf("id %q does not match %s", id, rs.IDPattern),
		}}
	}
	if first, dup := ids[id]; dup {
		return []Issue{{
			Line:    line,
			Path:    path,
			Message: fmt.Sprintf("id %q already used on line %d", id, first),
		}}
	}
	ids[id] = line
	return nil
}

// checkLeaf applies enum and range rules to a childless element's text.
func checkLeaf(f *frame, rs *ruleSet) []Issue {
	text := strings.TrimSpace(f.text.String())

	if set, ok := rs.Enums[f.name]; ok && !set[text] {
		return []Issue{{
			Line:    f.line,
			Path:    f.path,
			Message: fmt.Sprintf("%q is not an allowed %s value", text, f.name),
		}}
	}

	if rule, ok := rs.Ranges[f.name]; ok {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return []Issue{{
				Line:    f.line,
				Path:    f.path,
				Message: fmt.Sprintf("%q is not numeric", text),
			}}
		}
		if v < rule.Min || (rule.ExclusiveMin && v == rule.Min) {
			bound := ">="
			if rule.ExclusiveMin {
				bound = ">"
			}
			return []Issue{{
				Line:    f.line,
				Path:    f.path,
				Message: fmt.Sprintf("%v out of range, want %s %v", v, bound, rule.Min),
			}}
		}
		if rule.HasMax && v > rule.Max {
			return []Issue{{
				Line:    f.line,
				Path:    f.path,
				Message: fmt.Sprintf("%v out of range, want <= %v", v, rule.Max),
			}}
		}
	}
	return nil
}

func currentPath(stack []*frame) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1].path
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int64 // offset of each line's first byte
}

func newLineIndex(data []byte) *lineIndex {
	idx := &lineIndex{starts: []int64{0}}
	for i, b := range data {
		if b == '\n' {
			idx.starts = append(idx.starts, int64(i)+1)
		}
	}
	return idx
}

func (idx *lineIndex) at(off int64) int {
	lo, hi := 0, len(idx.starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if idx.starts[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
