package xmlns

import (
	"io"

	"github.com/google/uuid"

	"github.com/jacoelho/xmlns/internal/native"
)

// Name is a resolved element or attribute name.
type Name struct {
	// Namespace is nil when the name is in no registered namespace.
	Namespace *NamespaceEntry
	// Token is the element or attribute token of Local.
	Token  *Token
	URI    string
	Prefix string
	Local  string
}

// Attr is an attribute of a start tag. Value is passed through undecoded.
type Attr struct {
	Name  Name
	Value string
}

// NamespaceDecl is a namespace declaration on a start tag. Prefix is empty
// for a default namespace declaration.
type NamespaceDecl struct {
	Prefix string
	URI    string
}

// Element is a start tag.
type Element struct {
	Name  Name
	Attrs []Attr
	Decls []NamespaceDecl
}

// Handler consumes parse events. An error returned by a method stops the
// parse and is returned from Parser.Parse. The Element and the Text data
// are reused and only valid during the call.
type Handler interface {
	StartElement(el *Element) error
	EndElement(name Name) error
	Text(data []byte) error
}

// Parser pairs a native parser with the Config it resolves names through.
type Parser struct {
	config *Config
	native nativeParser
	id     uuid.UUID
}

// ID identifies the parser in log records.
func (p *Parser) ID() uuid.UUID { return p.id }

// Config returns the parser's own Config. Mutating it never affects the
// Config the parser was created from.
func (p *Parser) Config() *Config { return p.config }

// Parse reads one document from r and reports its events to h. Parsers are
// reusable: names interned while parsing one document stay in the parser's
// Config for the next.
func (p *Parser) Parse(r io.Reader, h Handler) error {
	p.config.logger.Debug("parse started")
	if err := p.native.Parse(r, &eventAdapter{config: p.config, handler: h}); err != nil {
		p.config.logger.Debug("parse failed", "error", err)
		return err
	}
	p.config.logger.Debug("parse finished")
	return nil
}

// eventAdapter maps native ids back to registry entries and interns names
// in the parser's Config.
type eventAdapter struct {
	config  *Config
	handler Handler
	el      Element
}

func (a *eventAdapter) StartElement(el *native.Element) error {
	a.el.Name = a.name(el.Name, a.config.AddElement)
	a.el.Attrs = a.el.Attrs[:0]
	for _, attr := range el.Attrs {
		a.el.Attrs = append(a.el.Attrs, Attr{Name: a.name(attr.Name, a.config.AddAttribute), Value: attr.Value})
	}
	a.el.Decls = a.el.Decls[:0]
	for _, d := range el.Decls {
		a.el.Decls = append(a.el.Decls, NamespaceDecl(d))
	}
	return a.handler.StartElement(&a.el)
}

func (a *eventAdapter) EndElement(name native.Name) error {
	return a.handler.EndElement(a.name(name, a.config.AddElement))
}

func (a *eventAdapter) Text(data []byte) error {
	return a.handler.Text(data)
}

func (a *eventAdapter) name(n native.Name, intern func(string) *Token) Name {
	out := Name{
		Token:  intern(n.Local),
		URI:    n.URI,
		Prefix: n.Prefix,
		Local:  n.Local,
	}
	if n.Namespace != native.NoNamespace {
		out.Namespace, _ = a.config.NamespaceByID(n.Namespace)
	}
	return out
}
