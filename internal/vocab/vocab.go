// Package vocab reads namespace vocabulary files.
//
// A vocabulary lists the namespaces a root parser configuration starts
// with, plus element and attribute names to pre-intern:
//
//	namespaces:
//	  - uri: http://www.w3.org/2001/XMLSchema
//	    prefix: xs
//	elements: [schema, element]
//	attributes: [name, type]
package vocab

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Namespace is one namespace entry. Prefix is optional.
type Namespace struct {
	URI    string `yaml:"uri"`
	Prefix string `yaml:"prefix,omitempty"`
}

// Vocabulary is the decoded file.
type Vocabulary struct {
	Namespaces []Namespace `yaml:"namespaces"`
	Elements   []string    `yaml:"elements,omitempty"`
	Attributes []string    `yaml:"attributes,omitempty"`
}

// Load decodes and validates a vocabulary.
func Load(r io.Reader) (*Vocabulary, error) {
	if r == nil {
		return nil, fmt.Errorf("vocabulary: nil reader")
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var v Vocabulary
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("vocabulary: decode: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadFile reads a vocabulary from path.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	v, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Validate rejects namespaces without a URI and URIs listed twice with
// different prefixes.
func (v *Vocabulary) Validate() error {
	seen := make(map[string]string, len(v.Namespaces))
	for i, ns := range v.Namespaces {
		if ns.URI == "" {
			return fmt.Errorf("vocabulary: namespaces[%d]: uri is required", i)
		}
		if prev, ok := seen[ns.URI]; ok && prev != ns.Prefix {
			return fmt.Errorf("vocabulary: namespaces[%d]: %s listed with prefixes %q and %q", i, ns.URI, prev, ns.Prefix)
		}
		seen[ns.URI] = ns.Prefix
	}
	return nil
}

// Marshal encodes v as YAML.
func (v *Vocabulary) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("vocabulary: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("vocabulary: encode: %w", err)
	}
	return buf.Bytes(), nil
}
