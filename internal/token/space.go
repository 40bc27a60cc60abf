package token

// Space allocates ids for one kind of token.
//
// The parent is only read. A child's ids start at base, the parent's count
// when the child was created, and ancestor tokens at or above base are not
// visible to the child even if the ancestor kept growing.
type Space struct {
	parent *Space
	index  map[string]*Token
	tokens []*Token
	base   ID
	kind   Kind
}

// NewSpace creates a space for kind chained to parent, which may be nil.
func NewSpace(kind Kind, parent *Space) *Space {
	s := &Space{
		parent: parent,
		index:  make(map[string]*Token),
		kind:   kind,
	}
	if parent != nil {
		s.base = ID(parent.Len())
	}
	return s
}

// Kind reports the kind of tokens this space allocates.
func (s *Space) Kind() Kind { return s.kind }

// Parent returns the space this one was chained to, or nil.
func (s *Space) Parent() *Space { return s.parent }

// Len reports the number of ids visible through the chain, which is also
// the next id CreateToken allocates.
func (s *Space) Len() int {
	return int(s.base) + len(s.tokens)
}

// LocalLen reports the number of ids allocated by this space itself.
func (s *Space) LocalLen() int {
	return len(s.tokens)
}

// CreateToken returns the token for text, allocating the next id when no
// space in the chain has interned it yet.
func (s *Space) CreateToken(text string) *Token {
	if tok, ok := s.Lookup(text); ok {
		return tok
	}
	tok := &Token{text: text, id: ID(s.Len()), kind: s.kind}
	s.tokens = append(s.tokens, tok)
	s.index[text] = tok
	return tok
}

// Lookup finds text in this space or the visible part of its ancestors.
func (s *Space) Lookup(text string) (*Token, bool) {
	if tok, ok := s.index[text]; ok {
		return tok, true
	}
	limit := s.base
	for p := s.parent; p != nil; p = p.parent {
		if tok, ok := p.index[text]; ok && tok.id < limit {
			return tok, true
		}
		limit = p.base
	}
	return nil, false
}

// Token returns the token with the given id.
func (s *Space) Token(id ID) (*Token, bool) {
	limit := ID(s.Len())
	for cur := s; cur != nil; cur = cur.parent {
		if id >= limit {
			return nil, false
		}
		if id >= cur.base {
			return cur.tokens[id-cur.base], true
		}
		limit = cur.base
	}
	return nil, false
}

// Tokens returns every visible token ordered by id.
func (s *Space) Tokens() []*Token {
	out := make([]*Token, s.Len())
	limit := s.Len()
	for cur := s; cur != nil; cur = cur.parent {
		for i, tok := range cur.tokens {
			at := int(cur.base) + i
			if at >= limit {
				break
			}
			out[at] = tok
		}
		limit = int(cur.base)
	}
	return out
}
