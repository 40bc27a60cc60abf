package xmlns

// AddNamespace registers ns unless its URI is already registered. The
// namespace id comes from the native engine; the URI and default prefix are
// interned and pushed with AddURI and AddPrefix.
func (c *Config) AddNamespace(ns Namespace) {
	if _, ok := c.namespaces.lookup(ns.URI); ok {
		return
	}
	c.ensureMutable()

	entry := &NamespaceEntry{Base: ns}
	entry.ID = c.native.AddNamespace(entry.registration())
	entry.URI = c.AddURI(ns.URI, entry)
	if ns.DefaultPrefix != "" {
		entry.DefaultPrefix = c.AddPrefix(ns.DefaultPrefix)
	}
	c.namespaces.add(entry)
	c.logger.Debug("namespace added", "uri", ns.URI, "id", entry.ID, "prefix", ns.DefaultPrefix)
}

// BindNamespace binds the default prefix of the referenced namespace to its
// URI in the native engine, registering a raw description first if needed.
func (c *Config) BindNamespace(ref NamespaceRef) {
	entry := ref.entry
	if entry == nil {
		var ok bool
		if entry, ok = c.namespaces.lookup(ref.raw.URI); !ok {
			c.AddNamespace(ref.raw)
			entry, _ = c.namespaces.lookup(ref.raw.URI)
		}
	}
	if entry.DefaultPrefix != nil {
		c.native.BindPrefix(entry.DefaultPrefix.ID(), entry.URI.ID())
	}
}

// BindPrefix binds prefix to uri in the native engine.
func (c *Config) BindPrefix(prefix, uri *Token) {
	c.native.BindPrefix(prefix.ID(), uri.ID())
}

// AddURI interns uri, pushes the re-encoded URI trie and maps the URI to
// the namespace of entry.
func (c *Config) AddURI(uri string, entry *NamespaceEntry) *Token {
	c.ensureMutable()

	tok := c.uriSet.CreateToken(uri)
	c.native.SetURITrie(c.uriSet.EncodeTrie())
	c.native.AddURI(tok.ID(), entry.ID)
	return tok
}

// AddPrefix interns prefix and pushes the re-encoded prefix trie.
func (c *Config) AddPrefix(prefix string) *Token {
	c.ensureMutable()

	tok := c.prefixSet.CreateToken(prefix)
	c.native.SetPrefixTrie(c.prefixSet.EncodeTrie())
	return tok
}

// AddElement interns an element name.
func (c *Config) AddElement(name string) *Token {
	if tok, ok := c.elementSpace.Lookup(name); ok {
		return tok
	}
	c.ensureMutable()
	return c.elementSpace.CreateToken(name)
}

// AddAttribute interns an attribute name.
func (c *Config) AddAttribute(name string) *Token {
	if tok, ok := c.attributeSpace.Lookup(name); ok {
		return tok
	}
	c.ensureMutable()
	return c.attributeSpace.CreateToken(name)
}
