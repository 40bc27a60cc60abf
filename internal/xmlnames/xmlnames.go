// Package xmlnames holds the reserved names of XML namespaces and the
// lexical checks on qualified names.
package xmlnames

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the XMLNS namespace URI.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

var (
	xmlPrefixBytes    = []byte(XMLPrefix)
	xmlNamespaceBytes = []byte(XMLNamespace)
	xmlnsNSBytes      = []byte(XMLNSNamespace)
)

// IsXMLPrefix reports whether prefix is the reserved xml prefix.
func IsXMLPrefix(prefix []byte) bool {
	return bytes.Equal(prefix, xmlPrefixBytes)
}

// SplitQName splits name at its colon. A name with an empty prefix, an
// empty local part or more than one colon is rejected.
func SplitQName(name []byte) (prefix, local []byte, hasPrefix bool, err error) {
	if len(name) == 0 {
		return nil, nil, false, errors.New("empty name")
	}
	i := bytes.IndexByte(name, ':')
	if i < 0 {
		return nil, name, false, nil
	}
	prefix, local = name[:i], name[i+1:]
	if len(prefix) == 0 || len(local) == 0 || bytes.IndexByte(local, ':') >= 0 {
		return nil, nil, false, fmt.Errorf("invalid qualified name %q", name)
	}
	return prefix, local, true, nil
}

// ValidatePrefixDeclaration checks a prefixed declaration against the
// reserved bindings: xml may only name the XML namespace, the xmlns prefix
// cannot be declared, neither reserved URI may be bound to another prefix,
// and a prefix cannot be undeclared.
func ValidatePrefixDeclaration(prefix string, uri []byte, declPrefix bool) error {
	switch {
	case declPrefix:
		return fmt.Errorf("prefix %s must not be declared", prefix)
	case prefix == XMLPrefix:
		if !bytes.Equal(uri, xmlNamespaceBytes) {
			return fmt.Errorf("prefix %s must be bound to %s", XMLPrefix, XMLNamespace)
		}
	case bytes.Equal(uri, xmlNamespaceBytes), bytes.Equal(uri, xmlnsNSBytes):
		return fmt.Errorf("namespace %s cannot be bound to prefix %s", uri, prefix)
	case len(uri) == 0:
		return fmt.Errorf("prefix %s cannot be undeclared", prefix)
	}
	return nil
}

// ValidateDefaultDeclaration checks a default namespace declaration.
func ValidateDefaultDeclaration(uri []byte) error {
	if bytes.Equal(uri, xmlNamespaceBytes) || bytes.Equal(uri, xmlnsNSBytes) {
		return fmt.Errorf("namespace %s cannot be the default namespace", uri)
	}
	return nil
}
