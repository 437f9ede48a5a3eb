package hpxml

import (
	"fmt"
	"regexp"

	"github.com/roach88/h2hpxml/internal/model"
)

// IDPattern is the lexical pattern every SystemIdentifier must match:
// letters followed by digits.
var IDPattern = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

var classLabelPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// pendingRef is a reference to an entity that may not exist yet.
// The idref attribute stays empty until ResolveAll rewrites it.
type pendingRef struct {
	owner *Node  // node carrying the idref attribute
	path  string // owner location, for error messages
	role  model.Role
}

// Registry allocates unique, pattern-conformant identifiers and resolves
// forward references between target entities. It draws counters from the
// run's semantic model, so identifier sequences reset with each run.
type Registry struct {
	m       *model.Model
	seen    map[string]bool
	pending []pendingRef
}

// NewRegistry creates a registry backed by the run's model.
func NewRegistry(m *model.Model) *Registry {
	return &Registry{m: m, seen: make(map[string]bool)}
}

// AllocateID returns the next identifier for the entity class, e.g.
// AllocateID("Wall") -> "Wall1", "Wall2", ... The class label must be
// purely alphabetic so the result matches IDPattern; a bad label is a
// programming error and panics.
func (r *Registry) AllocateID(class string) string {
	if !classLabelPattern.MatchString(class) {
		panic((&RefError{
			Code:    ErrCodeBadClassLabel,
			Node:    class,
			Message: "entity class label must be purely alphabetic",
		}).Error())
	}
	id := fmt.Sprintf("%s%d", class, r.m.Increment(class))
	r.seen[id] = true
	return id
}

// NewEntity allocates an identifier for class and returns a node of the
// given element name carrying its SystemIdentifier.
func (r *Registry) NewEntity(elem, class string) (*Node, string) {
	id := r.AllocateID(class)
	return Elem(elem, SystemIdentifier(id)), id
}

// RecordReference appends a `<refElem idref=""/>` child to owner and
// schedules it for resolution against role. ownerPath is the owner's
// location, carried into any resolution error.
func (r *Registry) RecordReference(owner *Node, ownerPath, refElem string, role model.Role) {
	ref := Elem(refElem)
	ref.SetAttr("idref", "")
	owner.Add(ref)
	r.pending = append(r.pending, pendingRef{owner: ref, path: ownerPath, role: role})
}

// ResolveAll rewrites every pending reference to the identifier bound to
// its role. A role never bound is a *RefError naming the recording node
// and the role.
func (r *Registry) ResolveAll() error {
	for _, p := range r.pending {
		id, ok := r.m.SystemID(p.role)
		if !ok {
			return &RefError{
				Code:    ErrCodeUnresolvedRole,
				Node:    p.path,
				Role:    string(p.role),
				Message: "reference to a role that was never registered",
			}
		}
		p.owner.SetAttr("idref", id)
	}
	r.pending = nil
	return nil
}

// Pending returns the number of unresolved references. Zero after a
// successful ResolveAll.
func (r *Registry) Pending() int {
	return len(r.pending)
}
