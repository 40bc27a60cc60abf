package native

import "strings"

// binding is what a prefix resolves to.
type binding struct {
	uri string
	ns  NamespaceID
}

// scope holds the declarations made on one open element.
type scope struct {
	prefixes   map[string]binding
	name       string
	def        binding
	defaultSet bool
}

// scopeStack is the LIFO of open elements.
type scopeStack struct {
	items []scope
}

func (s *scopeStack) push(sc scope) {
	s.items = append(s.items, sc)
}

func (s *scopeStack) pop() (scope, bool) {
	if len(s.items) == 0 {
		return scope{}, false
	}
	last := len(s.items) - 1
	sc := s.items[last]
	s.items = s.items[:last]
	return sc, true
}

func (s *scopeStack) peek() (scope, bool) {
	if len(s.items) == 0 {
		return scope{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s *scopeStack) depth() int { return len(s.items) }

// reset clears the stack while retaining capacity.
func (s *scopeStack) reset() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *scopeStack) lookupPrefix(prefix string) (binding, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if b, ok := s.items[i].prefixes[prefix]; ok {
			return b, true
		}
	}
	return binding{}, false
}

func (s *scopeStack) lookupDefault() (binding, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].defaultSet {
			return s.items[i].def, true
		}
	}
	return binding{}, false
}

// path renders the open element names as /a/b/c.
func (s *scopeStack) path() string {
	if len(s.items) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, sc := range s.items {
		b.WriteByte('/')
		b.WriteString(sc.name)
	}
	return b.String()
}
