package store

import (
	"fmt"

	"github.com/rribeiro/folio/internal/api"
)

// Registry is the composition root for the resource stores: it owns the
// one instance per resource and hands them out by name, so nothing else
// needs ambient singletons.
type Registry struct {
	Projects       *Projects
	Skills         *Skills
	Certifications *Certifications
	Courses        *Courses
	Contacts       *Contacts

	byName map[string]Resource
	order  []string
}

// NewRegistry wires every store against the one shared API client. When
// public is set the stores read the public list endpoints instead of the
// admin ones (contacts are admin-only either way).
func NewRegistry(client *api.Client, public bool) *Registry {
	r := &Registry{
		Projects:       NewProjects(client, public),
		Skills:         NewSkills(client, public),
		Certifications: NewCertifications(client, public),
		Courses:        NewCourses(client, public),
		Contacts:       NewContacts(client),
	}
	r.byName = map[string]Resource{}
	for _, res := range []Resource{r.Projects, r.Skills, r.Certifications, r.Courses, r.Contacts} {
		r.byName[res.Name()] = res
		r.order = append(r.order, res.Name())
	}
	return r
}

// Get returns a store by its resource name.
func (r *Registry) Get(name string) (Resource, error) {
	res, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (one of: %v)", name, r.order)
	}
	return res, nil
}

// Names returns the resource names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns every store in registration order.
func (r *Registry) All() []Resource {
	out := make([]Resource, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// ClearAll resets every store to the never-fetched state. Used on logout.
func (r *Registry) ClearAll() {
	for _, res := range r.All() {
		res.ClearCache()
	}
}
