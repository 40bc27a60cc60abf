package native

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	nserrors "github.com/jacoelho/xmlns/errors"
	"github.com/jacoelho/xmlns/internal/token"
	"github.com/jacoelho/xmlns/internal/xmlnames"
)

type recorder struct {
	events []string
	failOn string
}

var errStop = errors.New("stop")

func nameString(n Name) string {
	if n.Namespace == NoNamespace {
		return fmt.Sprintf("{%s}%s", n.URI, n.Local)
	}
	return fmt.Sprintf("{%s|%d}%s", n.URI, n.Namespace, n.Local)
}

func (r *recorder) StartElement(el *Element) error {
	var b strings.Builder
	b.WriteString("start " + nameString(el.Name))
	for _, a := range el.Attrs {
		b.WriteString(" @" + nameString(a.Name) + "=" + a.Value)
	}
	for _, d := range el.Decls {
		b.WriteString(" xmlns:" + d.Prefix + "=" + d.URI)
	}
	r.events = append(r.events, b.String())
	if el.Name.Local == r.failOn {
		return errStop
	}
	return nil
}

func (r *recorder) EndElement(n Name) error {
	r.events = append(r.events, "end "+nameString(n))
	return nil
}

func (r *recorder) Text(data []byte) error {
	r.events = append(r.events, "text "+string(data))
	return nil
}

// newTestConfig registers urn:a with default prefix a, the way the
// configuration layer pushes it.
func newTestConfig(t *testing.T) *Config {
	t.Helper()
	prefixes := token.NewSet(token.NewSpace(token.KindPrefix, nil), nil)
	uris := token.NewSet(token.NewSpace(token.KindURI, nil), nil)
	xmlns := prefixes.CreateToken("xmlns")
	cfg := NewConfig(xmlns.ID())

	ns := cfg.AddNamespace(Registration{URI: "urn:a", DefaultPrefix: "a"})
	uri := uris.CreateToken("urn:a")
	cfg.SetURITrie(uris.EncodeTrie())
	cfg.AddURI(uri.ID(), ns)
	prefix := prefixes.CreateToken("a")
	cfg.SetPrefixTrie(prefixes.EncodeTrie())
	cfg.BindPrefix(prefix.ID(), uri.ID())
	return cfg
}

func mustParse(t *testing.T, p *Parser, doc string) []string {
	t.Helper()
	var r recorder
	if err := p.Parse(strings.NewReader(doc), &r); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return r.events
}

func TestParseResolvesBoundAndDeclaredPrefixes(t *testing.T) {
	p := NewParser(newTestConfig(t))
	doc := `<a:root xmlns:b="urn:b" a:attr="1" plain="2"><b:child/><x xmlns="urn:a">text</x></a:root>`

	got := mustParse(t, p, doc)
	want := []string{
		"start {urn:a|0}root @{urn:a|0}attr=1 @{}plain=2 xmlns:b=urn:b",
		"start {urn:b}child",
		"end {urn:b}child",
		"start {urn:a|0}x xmlns:=urn:a",
		"text text",
		"end {urn:a|0}x",
		"end {urn:a|0}root",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentDeclarationShadowsBoundPrefix(t *testing.T) {
	p := NewParser(newTestConfig(t))
	got := mustParse(t, p, `<a:root xmlns:a="urn:other"><a:x xml:lang="en"/></a:root>`)
	want := []string{
		"start {urn:other}root xmlns:a=urn:other",
		"start {urn:other}x @{" + xmlnames.XMLNamespace + "}lang=en",
		"end {urn:other}x",
		"end {urn:other}root",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code nserrors.ErrorCode
	}{
		{name: "unbound prefix", doc: `<c:root/>`, code: nserrors.ErrUnboundPrefix},
		{name: "unbound attribute prefix", doc: `<root c:x="1"/>`, code: nserrors.ErrUnboundPrefix},
		{name: "mismatched end", doc: `<a><b></a></b>`, code: nserrors.ErrMismatchedEnd},
		{name: "unclosed", doc: `<a><b></b>`, code: nserrors.ErrUnclosedElement},
		{name: "no root", doc: ``, code: nserrors.ErrNoRoot},
		{name: "empty prefix", doc: `<:root/>`, code: nserrors.ErrInvalidQName},
		{name: "rebound xml", doc: `<root xmlns:xml="urn:a"/>`, code: nserrors.ErrReservedBinding},
		{name: "declared xmlns", doc: `<root xmlns:xmlns="urn:a"/>`, code: nserrors.ErrReservedBinding},
		{name: "undeclared prefix", doc: `<root xmlns:p=""/>`, code: nserrors.ErrReservedBinding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(newTestConfig(t))
			err := p.Parse(strings.NewReader(tt.doc), &recorder{})
			if !nserrors.HasCode(err, tt.code) {
				t.Fatalf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseStopsOnHandlerError(t *testing.T) {
	p := NewParser(newTestConfig(t))
	r := &recorder{failOn: "child"}
	err := p.Parse(strings.NewReader(`<root><child/><after/></root>`), r)
	if !errors.Is(err, errStop) {
		t.Fatalf("Parse() error = %v, want %v", err, errStop)
	}
	if len(r.events) != 2 {
		t.Fatalf("events = %v, want parsing to stop at child", r.events)
	}
}

func TestNewParserOwnsItsConfig(t *testing.T) {
	base := newTestConfig(t)
	p := NewParser(base)
	if p.Config() == base {
		t.Fatalf("parser shares the creator's config handle")
	}

	id := p.Config().AddNamespace(Registration{URI: "urn:b"})
	p.Config().BindPrefix(7, 1)
	if id != 1 {
		t.Fatalf("AddNamespace() = %d, want 1", id)
	}
	if base.NamespaceCount() != 1 {
		t.Fatalf("base NamespaceCount() = %d, want 1", base.NamespaceCount())
	}
	if _, ok := base.BoundURI(7); ok {
		t.Fatalf("binding leaked into the creator's config")
	}
	if reg, ok := base.Namespace(0); !ok || reg.URI != "urn:a" {
		t.Fatalf("Namespace(0) = %+v, %v", reg, ok)
	}
}
