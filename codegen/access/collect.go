package access

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/bexxmodd/theleague/codegen"
)

// Tuple is a single resolved permission: one verb on one resource of an API group.
// Resource is the plural resource name, with "/<subresource>" appended for subresources.
// Name is empty unless the access is restricted to one named object.
type Tuple struct {
	Group    string
	Resource string
	Verb     Verb
	Name     string
	Scope    codegen.Scope
}

// CompareTuples orders tuples by group, resource, scope, verb (canonical order) and name.
func CompareTuples(a, b Tuple) int {
	if c := strings.Compare(a.Group, b.Group); c != 0 {
		return c
	}
	if c := strings.Compare(a.Resource, b.Resource); c != 0 {
		return c
	}
	if c := strings.Compare(string(a.Scope), string(b.Scope)); c != 0 {
		return c
	}
	if c := CompareVerbs(a.Verb, b.Verb); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// TupleSet is a set of Tuples. Adding a tuple twice keeps one copy and records both sources.
type TupleSet struct {
	sources map[Tuple][]string
}

// NewTupleSet returns a TupleSet holding the given tuples.
func NewTupleSet(tuples ...Tuple) *TupleSet {
	s := &TupleSet{sources: make(map[Tuple][]string)}
	for _, t := range tuples {
		s.Add(t, "")
	}
	return s
}

// Add inserts a tuple declared by source.
func (s *TupleSet) Add(t Tuple, source string) {
	existing := s.sources[t]
	if source != "" {
		for _, src := range existing {
			if src == source {
				return
			}
		}
		existing = append(existing, source)
	}
	s.sources[t] = existing
}

// Has reports whether the set contains t.
func (s *TupleSet) Has(t Tuple) bool {
	_, ok := s.sources[t]
	return ok
}

// Len returns the number of distinct tuples.
func (s *TupleSet) Len() int {
	return len(s.sources)
}

// Sources returns the declaration sources of t.
func (s *TupleSet) Sources(t Tuple) []string {
	return append([]string(nil), s.sources[t]...)
}

// List returns the tuples sorted with CompareTuples.
func (s *TupleSet) List() []Tuple {
	list := make([]Tuple, 0, len(s.sources))
	for t := range s.sources {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return CompareTuples(list[i], list[j]) < 0
	})
	return list
}

// Collect resolves declared client access against the registry into a TupleSet.
// Every declaration problem is reported: unknown verbs as InvalidVerbError, kinds without a
// CRD or built-in definition as MissingDeclarationError, and a pinned scope that contradicts
// the registered one as ConflictingScopeError.
func Collect(decls *Declarations, registry *Registry) (*TupleSet, error) {
	set := NewTupleSet()
	var errs error
	for _, client := range decls.Clients() {
		tuples, err := resolve(client, registry)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, t := range tuples {
			set.Add(t, client.Source)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return set, nil
}

func resolve(client ClientDeclaration, registry *Registry) ([]Tuple, error) {
	var errs error
	check := func(verbs []Verb) {
		for _, v := range verbs {
			if !v.Valid() {
				errs = multierror.Append(errs, &codegen.InvalidVerbError{
					Source: client.Source,
					Group:  client.Group,
					Kind:   client.Kind,
					Verb:   string(v),
				})
			}
		}
	}
	check(client.verbs)
	for _, sub := range client.subresources {
		check(sub.verbs)
	}
	if errs != nil {
		return nil, errs
	}

	mapping, found, err := registry.Lookup(client.Group, client.Kind)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &codegen.MissingDeclarationError{Source: client.Source, Group: client.Group, Kind: client.Kind}
	}
	scope := mapping.Scope
	if client.scope != "" && client.scope != mapping.Scope {
		return nil, &codegen.ConflictingScopeError{
			Group:    mapping.Group,
			Resource: mapping.Resource,
			Scopes:   []codegen.Scope{mapping.Scope, client.scope},
			Sources:  []string{"registry", client.Source},
		}
	}

	names := client.names
	if len(names) == 0 {
		names = []string{""}
	}
	tuples := make([]Tuple, 0)
	add := func(resource string, verbs []Verb) {
		for _, v := range verbs {
			for _, n := range names {
				tuples = append(tuples, Tuple{Group: mapping.Group, Resource: resource, Verb: v, Name: n, Scope: scope})
			}
		}
	}
	add(mapping.Resource, client.verbs)
	for _, sub := range client.subresources {
		add(mapping.Resource+"/"+sub.name, sub.verbs)
	}
	return tuples, nil
}
