package xmlns

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/jacoelho/xmlns/internal/debug"
	"github.com/jacoelho/xmlns/internal/token"
)

// Options configures a root Config.
type Options struct {
	// Logger receives debug records. Defaults to the process debug logger.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return debug.Logger()
}

// Config is the namespace and token state parsers are created from.
//
// A Config either shares all of its spaces, sets and namespace registry
// with the Config it was derived from, or owns chained copies of them. A
// shared Config switches to owned state the first time it is mutated, so
// mutations never reach the parent or sibling configurations.
//
// Config is not safe for concurrent use, and neither are configurations
// derived from a common ancestor.
type Config struct {
	native nativeConfig
	engine engine
	logger *slog.Logger

	uriSpace       *token.Space
	prefixSpace    *token.Space
	elementSpace   *token.Space
	attributeSpace *token.Space

	uriSet    *token.Set
	prefixSet *token.Set

	namespaces  *namespaceRegistry
	xmlnsPrefix *Token
	independent bool
	// shared is set once a parser Config aliases c's state.
	shared bool
}

// NewConfig creates a root Config with default options.
func NewConfig() *Config {
	return NewConfigWithOptions(Options{})
}

// NewConfigWithOptions creates a root Config.
func NewConfigWithOptions(opts Options) *Config {
	return newRootConfig(defaultEngine{}, opts.logger())
}

func newRootConfig(eng engine, logger *slog.Logger) *Config {
	c := &Config{
		engine:         eng,
		logger:         logger,
		uriSpace:       token.NewSpace(token.KindURI, nil),
		prefixSpace:    token.NewSpace(token.KindPrefix, nil),
		elementSpace:   token.NewSpace(token.KindElement, nil),
		attributeSpace: token.NewSpace(token.KindAttribute, nil),
		namespaces:     newNamespaceRegistry(),
		independent:    true,
	}
	c.uriSet = token.NewSet(c.uriSpace, nil)
	c.prefixSet = token.NewSet(c.prefixSpace, nil)
	c.xmlnsPrefix = c.prefixSet.CreateToken(DeclarationPrefix)
	c.native = eng.newConfig(c.xmlnsPrefix.ID())
	c.native.SetPrefixTrie(c.prefixSet.EncodeTrie())
	return c
}

// newDerivedConfig aliases every structure of parent. native is the handle
// the engine derived for the new Config.
func newDerivedConfig(parent *Config, native nativeConfig) *Config {
	return &Config{
		native:         native,
		engine:         parent.engine,
		logger:         parent.logger,
		uriSpace:       parent.uriSpace,
		prefixSpace:    parent.prefixSpace,
		elementSpace:   parent.elementSpace,
		attributeSpace: parent.attributeSpace,
		uriSet:         parent.uriSet,
		prefixSet:      parent.prefixSet,
		namespaces:     parent.namespaces,
		xmlnsPrefix:    parent.xmlnsPrefix,
	}
}

// MakeIndependent gives c its own chained spaces and sets and a copy of the
// namespace registry. It does nothing when c already owns its state.
func (c *Config) MakeIndependent() {
	if c.independent {
		return
	}
	c.independent = true
	c.chain()
	c.logger.Debug("config promoted", "namespaces", len(c.namespaces.table))
}

// ensureMutable runs before every mutation. It promotes a shared Config and
// moves an owning Config off the state its parsers alias.
func (c *Config) ensureMutable() {
	if !c.independent {
		c.MakeIndependent()
		return
	}
	if c.shared {
		c.chain()
		c.logger.Debug("config detached from parsers", "namespaces", len(c.namespaces.table))
	}
}

func (c *Config) chain() {
	c.shared = false

	c.uriSpace = token.NewSpace(token.KindURI, c.uriSpace)
	c.prefixSpace = token.NewSpace(token.KindPrefix, c.prefixSpace)
	c.elementSpace = token.NewSpace(token.KindElement, c.elementSpace)
	c.attributeSpace = token.NewSpace(token.KindAttribute, c.attributeSpace)

	c.uriSet = token.NewSet(c.uriSpace, c.uriSet)
	c.prefixSet = token.NewSet(c.prefixSpace, c.prefixSet)

	c.namespaces = c.namespaces.clone()
}

// CreateParser returns a parser whose Config is derived from c. The parser
// sees every namespace and token c has at this point and shares them until
// either Config is next mutated. Later changes to c are not seen by it.
func (c *Config) CreateParser() *Parser {
	np, nc := c.engine.newParser(c.native)
	c.shared = true
	id := uuid.New()
	cfg := newDerivedConfig(c, nc)
	cfg.logger = c.logger.With("parser", id.String())
	c.logger.Debug("parser created", "parser", id.String(), "namespaces", len(c.namespaces.table))
	return &Parser{id: id, config: cfg, native: np}
}

// IsIndependent reports whether c owns its state.
func (c *Config) IsIndependent() bool { return c.independent }

// XMLNSPrefix returns the token of the namespace declaration prefix.
func (c *Config) XMLNSPrefix() *Token { return c.xmlnsPrefix }

// Namespace returns the entry registered for uri.
func (c *Config) Namespace(uri string) (*NamespaceEntry, bool) {
	return c.namespaces.lookup(uri)
}

// NamespaceByID returns the entry registered under id.
func (c *Config) NamespaceByID(id NamespaceID) (*NamespaceEntry, bool) {
	return c.namespaces.byID(id)
}

// Namespaces returns every registered entry in id order.
func (c *Config) Namespaces() []*NamespaceEntry {
	return c.namespaces.entries()
}

// URISpace returns the space URIs are interned in.
func (c *Config) URISpace() *TokenSpace { return c.uriSpace }

// PrefixSpace returns the space prefixes are interned in.
func (c *Config) PrefixSpace() *TokenSpace { return c.prefixSpace }

// ElementSpace returns the space element names are interned in.
func (c *Config) ElementSpace() *TokenSpace { return c.elementSpace }

// AttributeSpace returns the space attribute names are interned in.
func (c *Config) AttributeSpace() *TokenSpace { return c.attributeSpace }

// URISet returns the URI token set.
func (c *Config) URISet() *TokenSet { return c.uriSet }

// PrefixSet returns the prefix token set.
func (c *Config) PrefixSet() *TokenSet { return c.prefixSet }
