package access

import (
	"github.com/bexxmodd/theleague/codegen"
)

// Declarations is the registration point for the API access of a controller.
// Every client the controller builds declares the verbs it needs here, so the RBAC
// manifests can be derived without running the controller.
type Declarations struct {
	clients []*ClientDeclaration
}

// NewDeclarations returns an empty Declarations.
func NewDeclarations() *Declarations {
	return &Declarations{
		clients: make([]*ClientDeclaration, 0),
	}
}

// Client declares a client for the given group and kind. Source identifies the declaring
// code in error messages, e.g. "controller/league".
func (d *Declarations) Client(source, group, kind string) *ClientDeclaration {
	c := &ClientDeclaration{
		Source:       source,
		Group:        group,
		Kind:         kind,
		verbs:        make([]Verb, 0),
		subresources: make([]subresourceAccess, 0),
	}
	d.clients = append(d.clients, c)
	return c
}

// Merge appends the client declarations of others to d.
func (d *Declarations) Merge(others ...*Declarations) *Declarations {
	for _, o := range others {
		d.clients = append(d.clients, o.clients...)
	}
	return d
}

// Clients returns a copy of the declared clients in registration order.
func (d *Declarations) Clients() []ClientDeclaration {
	clients := make([]ClientDeclaration, len(d.clients))
	for i, c := range d.clients {
		clients[i] = *c
	}
	return clients
}

// ClientDeclaration is the declared access of one client.
type ClientDeclaration struct {
	Source string
	Group  string
	Kind   string

	verbs        []Verb
	subresources []subresourceAccess
	names        []string
	scope        codegen.Scope
}

type subresourceAccess struct {
	name  string
	verbs []Verb
}

// Can declares verbs on the resource itself.
func (c *ClientDeclaration) Can(verbs ...Verb) *ClientDeclaration {
	c.verbs = append(c.verbs, verbs...)
	return c
}

// Subresource declares verbs on a subresource such as "status" or "scale".
func (c *ClientDeclaration) Subresource(name string, verbs ...Verb) *ClientDeclaration {
	c.subresources = append(c.subresources, subresourceAccess{name: name, verbs: verbs})
	return c
}

// Named restricts the declared access to objects with the given names.
func (c *ClientDeclaration) Named(names ...string) *ClientDeclaration {
	c.names = append(c.names, names...)
	return c
}

// Scope pins the scope the client expects the resource to have. When unset, the
// registered scope of the resource is used.
func (c *ClientDeclaration) Scope(scope codegen.Scope) *ClientDeclaration {
	c.scope = scope
	return c
}

// Verbs returns the verbs declared on the resource itself.
func (c ClientDeclaration) Verbs() []Verb {
	return append([]Verb(nil), c.verbs...)
}

// Names returns the declared resource names.
func (c ClientDeclaration) Names() []string {
	return append([]string(nil), c.names...)
}
