package token

// Set pairs a Space with a trie encoding of every token the space can see.
type Set struct {
	space  *Space
	parent *Set
	trie   Trie
	// encoded is the visible token count trie was built for, -1 before the first build.
	encoded int
}

// NewSet wraps space. parent is the set space's parent was wrapped by, or nil.
func NewSet(space *Space, parent *Set) *Set {
	return &Set{space: space, parent: parent, encoded: -1}
}

// Space returns the wrapped space.
func (s *Set) Space() *Space { return s.space }

// Parent returns the set this one was chained to, or nil.
func (s *Set) Parent() *Set { return s.parent }

// CreateToken interns text in the wrapped space.
func (s *Set) CreateToken(text string) *Token {
	return s.space.CreateToken(text)
}

// EncodeTrie returns a trie over every visible token, inherited ones included.
// Callers re-encode and push the result after each insertion the native
// matcher must see.
func (s *Set) EncodeTrie() Trie {
	n := s.space.Len()
	if s.encoded == n {
		return s.trie
	}
	if s.space.LocalLen() == 0 && s.parent != nil && s.parent.space == s.space.parent && s.parent.space.Len() == n {
		s.trie = s.parent.EncodeTrie()
	} else {
		s.trie = buildTrie(s.space.Tokens())
	}
	s.encoded = n
	return s.trie
}
