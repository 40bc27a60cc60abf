package xmlns

import (
	"fmt"
	"io"

	"github.com/jacoelho/xmlns/internal/vocab"
)

// LoadConfig builds a root Config from a YAML vocabulary: every namespace is
// registered and its default prefix bound, then element and attribute names
// are interned.
func LoadConfig(r io.Reader, opts Options) (*Config, error) {
	v, err := vocab.Load(r)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return configFromVocabulary(v, opts), nil
}

// LoadConfigFile is LoadConfig reading from path.
func LoadConfigFile(path string, opts Options) (*Config, error) {
	v, err := vocab.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return configFromVocabulary(v, opts), nil
}

func configFromVocabulary(v *vocab.Vocabulary, opts Options) *Config {
	c := NewConfigWithOptions(opts)
	for _, ns := range v.Namespaces {
		c.BindNamespace(RawNamespace(Namespace{URI: ns.URI, DefaultPrefix: ns.Prefix}))
	}
	for _, name := range v.Elements {
		c.AddElement(name)
	}
	for _, name := range v.Attributes {
		c.AddAttribute(name)
	}
	return c
}

// WriteVocabulary writes the namespaces and names visible to c as a YAML
// vocabulary LoadConfig accepts.
func (c *Config) WriteVocabulary(w io.Writer) error {
	v := &vocab.Vocabulary{}
	for _, e := range c.Namespaces() {
		v.Namespaces = append(v.Namespaces, vocab.Namespace{URI: e.Base.URI, Prefix: e.Base.DefaultPrefix})
	}
	for _, tok := range c.elementSpace.Tokens() {
		v.Elements = append(v.Elements, tok.Text())
	}
	for _, tok := range c.attributeSpace.Tokens() {
		v.Attributes = append(v.Attributes, tok.Text())
	}
	data, err := v.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}
