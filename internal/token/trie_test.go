package token

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeTrieResolvesInheritedTokens(t *testing.T) {
	rootSpace := NewSpace(KindURI, nil)
	rootSet := NewSet(rootSpace, nil)
	rootSet.CreateToken("urn:a")
	rootSet.CreateToken("urn:ab")
	rootSet.CreateToken("")

	childSpace := NewSpace(KindURI, rootSpace)
	childSet := NewSet(childSpace, rootSet)
	childSet.CreateToken("urn:b")
	childSet.CreateToken("http://www.w3.org/XML/1998/namespace")

	trie := childSet.EncodeTrie()
	if trie.Len() != childSpace.Len() {
		t.Fatalf("Len() = %d, want %d", trie.Len(), childSpace.Len())
	}
	for _, tok := range childSpace.Tokens() {
		id, ok := trie.LookupString(tok.Text())
		if !ok || id != tok.ID() {
			t.Fatalf("LookupString(%q) = %d, %v, want %d", tok.Text(), id, ok, tok.ID())
		}
		id, ok = trie.Lookup([]byte(tok.Text()))
		if !ok || id != tok.ID() {
			t.Fatalf("Lookup(%q) = %d, %v, want %d", tok.Text(), id, ok, tok.ID())
		}
	}
	for _, missing := range []string{"urn", "urn:", "urn:abc", "urn:c"} {
		if id, ok := trie.LookupString(missing); ok {
			t.Fatalf("LookupString(%q) = %d, want miss", missing, id)
		}
	}

	parentTrie := rootSet.EncodeTrie()
	if _, ok := parentTrie.LookupString("urn:b"); ok {
		t.Fatalf("parent trie contains child token")
	}
}

func TestEmptyTrie(t *testing.T) {
	var zero Trie
	if _, ok := zero.LookupString(""); ok {
		t.Fatalf("zero trie lookup succeeded")
	}
	trie := NewSet(NewSpace(KindPrefix, nil), nil).EncodeTrie()
	if trie.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", trie.Len())
	}
	if _, ok := trie.LookupString("xmlns"); ok {
		t.Fatalf("empty trie lookup succeeded")
	}
}

func TestEncodeTrieReencodesAfterInsert(t *testing.T) {
	set := NewSet(NewSpace(KindPrefix, nil), nil)
	set.CreateToken("xmlns")
	first := set.EncodeTrie()
	if _, ok := first.LookupString("xs"); ok {
		t.Fatalf("trie contains token before insertion")
	}
	xs := set.CreateToken("xs")
	second := set.EncodeTrie()
	if id, ok := second.LookupString("xs"); !ok || id != xs.ID() {
		t.Fatalf("LookupString(xs) = %d, %v, want %d", id, ok, xs.ID())
	}
	if _, ok := first.LookupString("xs"); ok {
		t.Fatalf("earlier encoding changed after insertion")
	}
}

func TestChainedSetReusesParentEncoding(t *testing.T) {
	parentSpace := NewSpace(KindPrefix, nil)
	parent := NewSet(parentSpace, nil)
	parent.CreateToken("a")
	parent.CreateToken("b")
	want := parent.EncodeTrie()

	child := NewSet(NewSpace(KindPrefix, parentSpace), parent)
	got := child.EncodeTrie()
	if diff := cmp.Diff(want.Nodes(), got.Nodes()); diff != "" {
		t.Fatalf("child encoding mismatch (-want +got):\n%s", diff)
	}

	parent.CreateToken("late")
	got = NewSet(NewSpace(KindPrefix, parentSpace), parent).EncodeTrie()
	if _, ok := got.LookupString("late"); !ok {
		t.Fatalf("set derived after growth misses parent token")
	}
}

func TestTrieBinaryRoundTrip(t *testing.T) {
	set := NewSet(NewSpace(KindURI, nil), nil)
	for _, uri := range []string{"urn:a", "urn:b", "http://example.com/ns"} {
		set.CreateToken(uri)
	}
	trie := set.EncodeTrie()
	blob, err := trie.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	decoded, err := UnmarshalTrie(blob)
	if err != nil {
		t.Fatalf("UnmarshalTrie() error = %v", err)
	}
	if decoded.Len() != trie.Len() {
		t.Fatalf("Len() = %d, want %d", decoded.Len(), trie.Len())
	}
	if diff := cmp.Diff(trie.Nodes(), decoded.Nodes()); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTrieRejectsCorruptBlobs(t *testing.T) {
	set := NewSet(NewSpace(KindURI, nil), nil)
	set.CreateToken("urn:a")
	blob, err := set.EncodeTrie().MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: append([]byte("XXXX"), blob[4:]...)},
		{name: "truncated", data: blob[:len(blob)-4]},
		{name: "bad edge", data: corruptFirstEdge(blob)},
		{name: "edge into node tail", data: rawTrie(1, 0, 1, 'a', 3)},
		{name: "edge into edge list", data: rawTrie(1, 0, 2, 'a', 3, 'b', 6, 1, 0, 1, 0)},
		{name: "oversized edge count", data: rawTrie(1, 0, 0xffffffff)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalTrie(tt.data); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

// rawTrie encodes a blob with the given key count and node words.
func rawTrie(count uint32, nodes ...uint32) []byte {
	out := append([]byte(nil), trieMagic...)
	out = binary.LittleEndian.AppendUint32(out, count)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(nodes)))
	for _, v := range nodes {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

// corruptFirstEdge points the root's first edge back at the root.
func corruptFirstEdge(blob []byte) []byte {
	out := append([]byte(nil), blob...)
	at := trieHeaderSize + 3*4
	out[at], out[at+1], out[at+2], out[at+3] = 0, 0, 0, 0
	return out
}
