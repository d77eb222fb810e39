package toolbar

// Qualify returns the fully-qualified identifier of a helper item.
func Qualify(h Helper, name string) string {
	return name + h.NamespaceExtension()
}

// Resolver maps fully-qualified identifiers back to their helper and item name.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(r *Registry) *Resolver {
	return &Resolver{registry: r}
}

// Qualify returns the fully-qualified identifier of a helper item.
func (r *Resolver) Qualify(h Helper, name string) string {
	return Qualify(h, name)
}

// Unqualify returns the helper owning id and the item name without the
// namespace extension. ok is false for identifiers no helper owns, which
// callers treat as built-in items.
func (r *Resolver) Unqualify(id string) (h Helper, name string, ok bool) {
	if r == nil || r.registry == nil {
		return nil, "", false
	}
	h, ok = r.registry.Owner(id)
	if !ok {
		return nil, "", false
	}
	return h, id[:len(id)-len(h.NamespaceExtension())], true
}
