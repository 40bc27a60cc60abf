// Package native is the low-level parsing engine the configuration layer
// drives. It only sees ids and trie blobs: prefixes and URIs found in a
// document are matched against the pushed tries, and prefix and namespace
// bindings are kept as id tables.
package native

import (
	"maps"
	"slices"

	"github.com/jacoelho/xmlns/internal/token"
)

// NamespaceID identifies a namespace registered with a Config.
type NamespaceID uint32

// NoNamespace marks names that resolved to no registered namespace.
const NoNamespace NamespaceID = ^NamespaceID(0)

// Registration describes a namespace handed to AddNamespace.
type Registration struct {
	URI           string
	DefaultPrefix string
}

// Config holds the lookup state a Parser resolves names with.
type Config struct {
	uriTrie    token.Trie
	prefixTrie token.Trie
	// uriNamespace maps a URI token id to its namespace, NoNamespace when unmapped.
	uriNamespace []NamespaceID
	prefixURI    map[token.ID]token.ID
	namespaces   []Registration
	xmlnsPrefix  token.ID
}

// NewConfig creates an empty Config. xmlnsPrefix is the prefix token id of
// the namespace declaration prefix.
func NewConfig(xmlnsPrefix token.ID) *Config {
	return &Config{
		prefixURI:   make(map[token.ID]token.ID),
		xmlnsPrefix: xmlnsPrefix,
	}
}

// XMLNSPrefix returns the declaration prefix id the Config was created with.
func (c *Config) XMLNSPrefix() token.ID { return c.xmlnsPrefix }

// SetURITrie replaces the URI lookup trie.
func (c *Config) SetURITrie(t token.Trie) { c.uriTrie = t }

// SetPrefixTrie replaces the prefix lookup trie.
func (c *Config) SetPrefixTrie(t token.Trie) { c.prefixTrie = t }

// AddNamespace registers a namespace and returns its id.
func (c *Config) AddNamespace(r Registration) NamespaceID {
	id := NamespaceID(len(c.namespaces))
	c.namespaces = append(c.namespaces, r)
	return id
}

// AddURI maps a URI token id to a namespace.
func (c *Config) AddURI(uriID token.ID, ns NamespaceID) {
	for int(uriID) >= len(c.uriNamespace) {
		c.uriNamespace = append(c.uriNamespace, NoNamespace)
	}
	c.uriNamespace[uriID] = ns
}

// BindPrefix makes prefixID resolve to uriID when a document does not
// declare the prefix itself.
func (c *Config) BindPrefix(prefixID, uriID token.ID) {
	c.prefixURI[prefixID] = uriID
}

// Namespace returns the registration for id.
func (c *Config) Namespace(id NamespaceID) (Registration, bool) {
	if int(id) >= len(c.namespaces) {
		return Registration{}, false
	}
	return c.namespaces[id], true
}

// NamespaceCount reports the number of registered namespaces.
func (c *Config) NamespaceCount() int { return len(c.namespaces) }

// BoundURI returns the URI id bound to prefixID.
func (c *Config) BoundURI(prefixID token.ID) (token.ID, bool) {
	id, ok := c.prefixURI[prefixID]
	return id, ok
}

// resolveURI maps a URI string to its namespace through the URI trie.
func (c *Config) resolveURI(uri string) NamespaceID {
	id, ok := c.uriTrie.LookupString(uri)
	if !ok {
		return NoNamespace
	}
	return c.namespaceOf(id)
}

func (c *Config) namespaceOf(uriID token.ID) NamespaceID {
	if int(uriID) >= len(c.uriNamespace) {
		return NoNamespace
	}
	return c.uriNamespace[uriID]
}

// isDeclPrefix reports whether name is the namespace declaration prefix.
func (c *Config) isDeclPrefix(name []byte) bool {
	id, ok := c.prefixTrie.Lookup(name)
	return ok && id == c.xmlnsPrefix
}

// clone copies the id tables. Tries are immutable and shared.
func (c *Config) clone() *Config {
	out := &Config{
		uriTrie:      c.uriTrie,
		prefixTrie:   c.prefixTrie,
		uriNamespace: slices.Clone(c.uriNamespace),
		prefixURI:    make(map[token.ID]token.ID, len(c.prefixURI)),
		namespaces:   slices.Clone(c.namespaces),
		xmlnsPrefix:  c.xmlnsPrefix,
	}
	maps.Copy(out.prefixURI, c.prefixURI)
	return out
}
