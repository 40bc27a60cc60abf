package xmlns

import (
	"fmt"
	"io"

	"github.com/jacoelho/xmlns/internal/native"
	"github.com/jacoelho/xmlns/internal/token"
)

// nativeConfig is the engine state a Config pushes its token bindings into.
type nativeConfig interface {
	SetURITrie(t token.Trie)
	SetPrefixTrie(t token.Trie)
	AddURI(uriID token.ID, ns native.NamespaceID)
	AddNamespace(r native.Registration) native.NamespaceID
	BindPrefix(prefixID, uriID token.ID)
}

type nativeParser interface {
	Parse(r io.Reader, h native.Handler) error
}

// engine creates native handles. newParser returns the parser together with
// the configuration handle derived for it.
type engine interface {
	newConfig(xmlnsPrefix token.ID) nativeConfig
	newParser(cfg nativeConfig) (nativeParser, nativeConfig)
}

type defaultEngine struct{}

func (defaultEngine) newConfig(xmlnsPrefix token.ID) nativeConfig {
	return native.NewConfig(xmlnsPrefix)
}

func (defaultEngine) newParser(cfg nativeConfig) (nativeParser, nativeConfig) {
	nc, ok := cfg.(*native.Config)
	if !ok {
		panic(fmt.Sprintf("xmlns: native config %T was not created by the default engine", cfg))
	}
	p := native.NewParser(nc)
	return p, p.Config()
}
