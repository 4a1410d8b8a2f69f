// Package namespace keeps the alias to URI bindings of one document.
package namespace

// Binding associates a namespace alias (prefix) with a URI. The zero
// Binding means "unqualified".
type Binding struct {
	Alias string
	URI   string
}

// IsZero reports whether b is the unqualified binding.
func (b Binding) IsZero() bool {
	return b.Alias == "" && b.URI == ""
}

// Qualify returns "alias:name", or name when the binding has no alias.
func (b Binding) Qualify(name string) string {
	if b.Alias == "" {
		return name
	}

	return b.Alias + ":" + name
}

// Registry is a per-document alias<->URI table. It only grows; registering
// an alias again with a different URI replaces the earlier URI.
//
// The zero value is an empty registry. A Registry is owned by a single
// document pass and is not safe for concurrent use.
type Registry struct {
	uris    map[string]string
	aliases map[string]string
	order   []string
}

// NewRegistry creates a registry pre-populated with bindings.
func NewRegistry(bindings ...Binding) *Registry {
	r := &Registry{
		uris:    make(map[string]string),
		aliases: make(map[string]string),
	}
	r.Seed(bindings)

	return r
}

// Resolve returns the URI bound to alias.
func (r *Registry) Resolve(alias string) (string, bool) {
	uri, ok := r.uris[alias]
	return uri, ok
}

// ReverseLookup returns the first alias registered for uri.
func (r *Registry) ReverseLookup(uri string) (string, bool) {
	alias, ok := r.aliases[uri]
	return alias, ok
}

// Register binds alias to uri. Registering an identical pair is a no-op.
func (r *Registry) Register(alias, uri string) {
	prev, exists := r.uris[alias]
	if exists && prev == uri {
		return
	}

	if r.uris == nil {
		r.uris = make(map[string]string)
		r.aliases = make(map[string]string)
	}

	if !exists {
		r.order = append(r.order, alias)
	}

	r.uris[alias] = uri

	if _, taken := r.aliases[uri]; !taken {
		r.aliases[uri] = alias
	}
}

// Seed registers every binding that has both an alias and a URI. Default
// namespace declarations (empty alias) are skipped.
func (r *Registry) Seed(bindings []Binding) {
	for _, b := range bindings {
		if b.Alias == "" || b.URI == "" {
			continue
		}

		r.Register(b.Alias, b.URI)
	}
}

// Binding returns the binding for alias. An unknown alias yields a binding
// without URI, so callers can still match on the literal prefix.
func (r *Registry) Binding(alias string) (Binding, bool) {
	if alias == "" {
		return Binding{}, true
	}

	uri, ok := r.uris[alias]

	return Binding{Alias: alias, URI: uri}, ok
}

// Bindings returns all bindings in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.order))
	for _, alias := range r.order {
		out = append(out, Binding{Alias: alias, URI: r.uris[alias]})
	}

	return out
}

// Len returns the number of registered aliases.
func (r *Registry) Len() int {
	return len(r.order)
}
