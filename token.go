package xmlns

import (
	"github.com/jacoelho/xmlns/internal/native"
	"github.com/jacoelho/xmlns/internal/token"
)

// Token types re-exported from the interning layer.
type (
	Token      = token.Token
	TokenID    = token.ID
	TokenKind  = token.Kind
	TokenSpace = token.Space
	TokenSet   = token.Set
	Trie       = token.Trie
)

// Token kinds.
const (
	KindURI       = token.KindURI
	KindPrefix    = token.KindPrefix
	KindElement   = token.KindElement
	KindAttribute = token.KindAttribute
)

// NamespaceID is the id the native engine assigns to a registered namespace.
type NamespaceID = native.NamespaceID

// NoNamespace is the NamespaceID of names outside every registered namespace.
const NoNamespace = native.NoNamespace

// DeclarationPrefix is the prefix of namespace declaration attributes. It is
// always prefix id 0 in a root Config.
const DeclarationPrefix = "xmlns"
