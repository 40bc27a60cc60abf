package xmlns

import (
	"maps"
	"slices"

	"github.com/jacoelho/xmlns/internal/native"
)

// Namespace describes a namespace to register. DefaultPrefix is optional.
type Namespace struct {
	URI           string
	DefaultPrefix string
}

// NamespaceEntry is a namespace registered with a Config. Its fields never
// change once registered.
type NamespaceEntry struct {
	URI *Token
	// DefaultPrefix is nil when the namespace has none.
	DefaultPrefix *Token
	Base          Namespace
	ID            NamespaceID
}

func (e *NamespaceEntry) registration() native.Registration {
	return native.Registration{URI: e.Base.URI, DefaultPrefix: e.Base.DefaultPrefix}
}

// NamespaceRef is the input of Config.BindNamespace: either a description
// that is registered on demand or an entry that is already registered.
type NamespaceRef struct {
	entry *NamespaceEntry
	raw   Namespace
}

// RawNamespace refers to ns by description.
func RawNamespace(ns Namespace) NamespaceRef {
	return NamespaceRef{raw: ns}
}

// RegisteredNamespace refers to an entry returned by a Config.
func RegisteredNamespace(entry *NamespaceEntry) NamespaceRef {
	return NamespaceRef{entry: entry}
}

// namespaceRegistry holds the namespace list, indexed by namespace id, and
// the URI table. Configurations sharing state point at the same registry.
type namespaceRegistry struct {
	table map[string]*NamespaceEntry
	list  []*NamespaceEntry
}

func newNamespaceRegistry() *namespaceRegistry {
	return &namespaceRegistry{table: make(map[string]*NamespaceEntry)}
}

// clone copies the containers. Entries are shared.
func (r *namespaceRegistry) clone() *namespaceRegistry {
	return &namespaceRegistry{
		table: maps.Clone(r.table),
		list:  slices.Clone(r.list),
	}
}

func (r *namespaceRegistry) lookup(uri string) (*NamespaceEntry, bool) {
	e, ok := r.table[uri]
	return e, ok
}

func (r *namespaceRegistry) byID(id NamespaceID) (*NamespaceEntry, bool) {
	if int(id) >= len(r.list) || r.list[id] == nil {
		return nil, false
	}
	return r.list[id], true
}

func (r *namespaceRegistry) add(e *NamespaceEntry) {
	if n := int(e.ID) + 1; n > len(r.list) {
		r.list = append(r.list, make([]*NamespaceEntry, n-len(r.list))...)
	}
	r.list[e.ID] = e
	r.table[e.Base.URI] = e
}

func (r *namespaceRegistry) entries() []*NamespaceEntry {
	out := make([]*NamespaceEntry, 0, len(r.table))
	for _, e := range r.list {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
