// Package token interns namespace vocabulary strings into dense integer ids.
//
// A Space hands out ids for one Kind of string. Spaces chain: a child space
// continues numbering from its parent's high water mark and never writes to
// the parent. A Set adds a flat trie encoding over everything its space can see.
package token

import "fmt"

// ID is a dense token identifier, unique within a space chain.
type ID uint32

// Kind groups tokens by what they name.
type Kind uint8

const (
	KindURI Kind = iota
	KindPrefix
	KindElement
	KindAttribute
)

func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindPrefix:
		return "prefix"
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "uri":
		return KindURI, nil
	case "prefix":
		return KindPrefix, nil
	case "element":
		return KindElement, nil
	case "attribute":
		return KindAttribute, nil
	default:
		return 0, fmt.Errorf("unknown token kind %q", name)
	}
}

// Token is an interned string. Tokens are immutable.
type Token struct {
	text string
	id   ID
	kind Kind
}

// Kind reports the space kind the token was interned in.
func (t *Token) Kind() Kind { return t.kind }

// ID returns the token id.
func (t *Token) ID() ID { return t.id }

// Text returns the interned string.
func (t *Token) Text() string { return t.text }

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d(%q)", t.kind, t.id, t.text)
}
