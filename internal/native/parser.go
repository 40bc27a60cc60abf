package native

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/muktihari/xmltokenizer"

	nserrors "github.com/jacoelho/xmlns/errors"
	"github.com/jacoelho/xmlns/internal/xmlnames"
)

// Name is a resolved element or attribute name.
type Name struct {
	URI       string
	Prefix    string
	Local     string
	Namespace NamespaceID
}

// Attr is a resolved attribute. Value is passed through undecoded.
type Attr struct {
	Name  Name
	Value string
}

// Decl is a namespace declaration found on an element. Prefix is empty for
// a default namespace declaration.
type Decl struct {
	Prefix string
	URI    string
}

// Element is a start tag with its names resolved.
type Element struct {
	Name  Name
	Attrs []Attr
	Decls []Decl
}

// Handler receives the events of one Parse call. An error returned by any
// method stops parsing. Text data is only valid during the call.
type Handler interface {
	StartElement(el *Element) error
	EndElement(name Name) error
	Text(data []byte) error
}

// Parser turns a byte stream into resolved events. It owns its Config.
type Parser struct {
	cfg    *Config
	scopes scopeStack
}

var cdataPrefix = []byte("![CDATA[")

// NewParser creates a parser with its own copy of cfg.
func NewParser(cfg *Config) *Parser {
	return &Parser{cfg: cfg.clone()}
}

// Config returns the handle the parser resolves names with. Changes made
// through it are seen by the next Parse call.
func (p *Parser) Config() *Config { return p.cfg }

// Parse reads one document from r. A Parser may parse any number of
// documents in sequence; the scope stack is reset at the start of each.
func (p *Parser) Parse(r io.Reader, h Handler) error {
	if r == nil {
		return nserrors.DiagnosticList{nserrors.NewDiagnostic(nserrors.ErrXMLSyntax, "nil reader", "")}
	}
	p.scopes.reset()
	tok := xmltokenizer.New(r)
	sawRoot := false
	for {
		t, err := tok.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nserrors.DiagnosticList{nserrors.NewDiagnostic(nserrors.ErrXMLSyntax, err.Error(), p.scopes.path())}
		}
		full := t.Name.Full
		switch {
		case len(full) == 0:
			if err := p.text(t.CharData, h); err != nil {
				return err
			}
		case full[0] == '?':
		case full[0] == '!':
			if bytes.HasPrefix(full, cdataPrefix) {
				if err := p.text(t.CharData, h); err != nil {
					return err
				}
			}
		case t.IsEndElement():
			if err := p.endElement(full[1:], h); err != nil {
				return err
			}
			if err := p.text(t.CharData, h); err != nil {
				return err
			}
		default:
			if sawRoot && p.scopes.depth() == 0 {
				return nserrors.DiagnosticList{nserrors.NewDiagnosticf(nserrors.ErrXMLSyntax, "/", "second root element %s", full)}
			}
			sawRoot = true
			if err := p.startElement(&t, h); err != nil {
				return err
			}
			if t.SelfClosing {
				if err := p.endElement(full, h); err != nil {
					return err
				}
			}
			if err := p.text(t.CharData, h); err != nil {
				return err
			}
		}
	}
	if p.scopes.depth() > 0 {
		open, _ := p.scopes.peek()
		return nserrors.DiagnosticList{nserrors.NewDiagnosticf(nserrors.ErrUnclosedElement, p.scopes.path(), "element %s is not closed", open.name)}
	}
	if !sawRoot {
		return nserrors.DiagnosticList{nserrors.NewDiagnostic(nserrors.ErrNoRoot, "document has no root element", "")}
	}
	return nil
}

func (p *Parser) text(data []byte, h Handler) error {
	if len(data) == 0 || p.scopes.depth() == 0 {
		return nil
	}
	if err := h.Text(data); err != nil {
		return fmt.Errorf("text at %s: %w", p.scopes.path(), err)
	}
	return nil
}

func (p *Parser) startElement(t *xmltokenizer.Token, h Handler) error {
	sc := scope{name: string(t.Name.Full)}
	el := &Element{}
	for _, attr := range t.Attrs {
		prefix, local, hasPrefix, err := p.split(attr.Name.Full)
		if err != nil {
			return err
		}
		switch {
		case !hasPrefix && p.cfg.isDeclPrefix(local):
			if err := xmlnames.ValidateDefaultDeclaration(attr.Value); err != nil {
				return p.reserved(err)
			}
			uri := string(attr.Value)
			sc.def = p.bind(uri)
			sc.defaultSet = true
			el.Decls = append(el.Decls, Decl{URI: uri})
		case hasPrefix && p.cfg.isDeclPrefix(prefix):
			name := string(local)
			if err := xmlnames.ValidatePrefixDeclaration(name, attr.Value, p.cfg.isDeclPrefix(local)); err != nil {
				return p.reserved(err)
			}
			if xmlnames.IsXMLPrefix(local) {
				continue
			}
			uri := string(attr.Value)
			if sc.prefixes == nil {
				sc.prefixes = make(map[string]binding, 1)
			}
			sc.prefixes[name] = p.bind(uri)
			el.Decls = append(el.Decls, Decl{Prefix: name, URI: uri})
		}
	}
	p.scopes.push(sc)

	name, err := p.resolve(t.Name.Full, true)
	if err != nil {
		return err
	}
	el.Name = name
	for _, attr := range t.Attrs {
		prefix, local, hasPrefix, _ := xmlnames.SplitQName(attr.Name.Full)
		if (hasPrefix && p.cfg.isDeclPrefix(prefix)) || (!hasPrefix && p.cfg.isDeclPrefix(local)) {
			continue
		}
		an, err := p.resolve(attr.Name.Full, false)
		if err != nil {
			return err
		}
		el.Attrs = append(el.Attrs, Attr{Name: an, Value: string(attr.Value)})
	}
	if err := h.StartElement(el); err != nil {
		return fmt.Errorf("start element %s: %w", p.scopes.path(), err)
	}
	return nil
}

func (p *Parser) endElement(full []byte, h Handler) error {
	open, ok := p.scopes.peek()
	if !ok {
		return nserrors.DiagnosticList{nserrors.NewDiagnosticf(nserrors.ErrMismatchedEnd, "/", "end tag %s without open element", full)}
	}
	if open.name != string(full) {
		d := nserrors.NewDiagnostic(nserrors.ErrMismatchedEnd, "end tag does not match open element", p.scopes.path())
		d.Expected = []string{open.name}
		d.Actual = string(full)
		return nserrors.DiagnosticList{d}
	}
	name, err := p.resolve(full, true)
	if err != nil {
		return err
	}
	path := p.scopes.path()
	p.scopes.pop()
	if err := h.EndElement(name); err != nil {
		return fmt.Errorf("end element %s: %w", path, err)
	}
	return nil
}

// resolve maps a qualified name to its namespace. Unprefixed attributes are
// in no namespace; unprefixed elements take the nearest default declaration.
func (p *Parser) resolve(full []byte, element bool) (Name, error) {
	prefix, local, hasPrefix, err := p.split(full)
	if err != nil {
		return Name{}, err
	}
	if !hasPrefix {
		name := Name{Local: string(local), Namespace: NoNamespace}
		if element {
			if b, ok := p.scopes.lookupDefault(); ok {
				name.URI = b.uri
				name.Namespace = b.ns
			}
		}
		return name, nil
	}
	b, ok := p.lookupPrefix(prefix)
	if !ok {
		return Name{}, nserrors.DiagnosticList{nserrors.NewDiagnosticf(nserrors.ErrUnboundPrefix, p.scopes.path(), "prefix %s is not bound", prefix)}
	}
	return Name{URI: b.uri, Prefix: string(prefix), Local: string(local), Namespace: b.ns}, nil
}

// lookupPrefix checks, in order, declarations in the document, the built in
// xml prefix, and prefixes bound through the Config.
func (p *Parser) lookupPrefix(prefix []byte) (binding, bool) {
	if b, ok := p.scopes.lookupPrefix(string(prefix)); ok {
		if b.uri == "" {
			return binding{}, false
		}
		return b, true
	}
	if xmlnames.IsXMLPrefix(prefix) {
		return p.bind(xmlnames.XMLNamespace), true
	}
	prefixID, ok := p.cfg.prefixTrie.Lookup(prefix)
	if !ok {
		return binding{}, false
	}
	uriID, ok := p.cfg.prefixURI[prefixID]
	if !ok {
		return binding{}, false
	}
	b := binding{ns: p.cfg.namespaceOf(uriID)}
	if reg, ok := p.cfg.Namespace(b.ns); ok {
		b.uri = reg.URI
	}
	return b, true
}

func (p *Parser) bind(uri string) binding {
	return binding{uri: uri, ns: p.cfg.resolveURI(uri)}
}

func (p *Parser) split(name []byte) (prefix, local []byte, hasPrefix bool, err error) {
	prefix, local, hasPrefix, err = xmlnames.SplitQName(name)
	if err != nil {
		return nil, nil, false, nserrors.DiagnosticList{nserrors.NewDiagnostic(nserrors.ErrInvalidQName, err.Error(), p.scopes.path())}
	}
	return prefix, local, hasPrefix, nil
}

func (p *Parser) reserved(err error) error {
	return nserrors.DiagnosticList{nserrors.NewDiagnostic(nserrors.ErrReservedBinding, err.Error(), p.scopes.path())}
}
