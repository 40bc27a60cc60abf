package token

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// Trie is a flat, immutable byte trie mapping token text to ids.
//
// The node at offset o is laid out as:
//   - nodes[o]: id+1 of the token ending here, 0 when none
//   - nodes[o+1]: edge count n
//   - n pairs of (label byte, child node offset), sorted by label
//
// The root node sits at offset 0.
type Trie struct {
	nodes []uint32
	count int
}

const (
	trieMagic      = "XNT1"
	trieHeaderSize = len(trieMagic) + 8
)

// Len reports the number of keys in the trie.
func (t Trie) Len() int { return t.count }

// Nodes returns the encoded node array. The slice must not be modified.
func (t Trie) Nodes() []uint32 { return t.nodes }

// Lookup returns the id stored for key.
func (t Trie) Lookup(key []byte) (ID, bool) {
	if len(t.nodes) == 0 {
		return 0, false
	}
	at := 0
	for _, c := range key {
		next, ok := t.child(at, c)
		if !ok {
			return 0, false
		}
		at = next
	}
	v := t.nodes[at]
	if v == 0 {
		return 0, false
	}
	return ID(v - 1), true
}

// LookupString is Lookup for string keys.
func (t Trie) LookupString(key string) (ID, bool) {
	if len(t.nodes) == 0 {
		return 0, false
	}
	at := 0
	for i := 0; i < len(key); i++ {
		next, ok := t.child(at, key[i])
		if !ok {
			return 0, false
		}
		at = next
	}
	v := t.nodes[at]
	if v == 0 {
		return 0, false
	}
	return ID(v - 1), true
}

func (t Trie) child(at int, c byte) (int, bool) {
	n := int(t.nodes[at+1])
	edges := t.nodes[at+2 : at+2+2*n]
	lo, hi := 0, n
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if edges[2*m] < uint32(c) {
			lo = m + 1
		} else {
			hi = m
		}
	}
	if lo == n || edges[2*lo] != uint32(c) {
		return 0, false
	}
	return int(edges[2*lo+1]), true
}

// MarshalBinary encodes the trie as a little-endian blob.
func (t Trie) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, trieHeaderSize+4*len(t.nodes))
	out = append(out, trieMagic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(t.count))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(t.nodes)))
	for _, v := range t.nodes {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out, nil
}

// UnmarshalTrie decodes a blob produced by Trie.MarshalBinary.
func UnmarshalTrie(data []byte) (Trie, error) {
	if len(data) < trieHeaderSize || string(data[:len(trieMagic)]) != trieMagic {
		return Trie{}, fmt.Errorf("trie: invalid header")
	}
	count := binary.LittleEndian.Uint32(data[4:])
	size := binary.LittleEndian.Uint32(data[8:])
	body := data[trieHeaderSize:]
	if uint64(len(body)) != uint64(size)*4 {
		return Trie{}, fmt.Errorf("trie: body is %d bytes, header declares %d nodes", len(body), size)
	}
	nodes := make([]uint32, size)
	for i := range nodes {
		nodes[i] = binary.LittleEndian.Uint32(body[4*i:])
	}
	t := Trie{nodes: nodes, count: int(count)}
	if err := t.check(); err != nil {
		return Trie{}, err
	}
	return t, nil
}

// check verifies the node array parses as a sequence of nodes and that
// every edge points forward at the start of one of them.
func (t Trie) check() error {
	if len(t.nodes) == 0 {
		return nil
	}
	starts := make(map[uint32]struct{})
	at := 0
	for at < len(t.nodes) {
		if at+2 > len(t.nodes) {
			return fmt.Errorf("trie: truncated node at %d", at)
		}
		n := int(t.nodes[at+1])
		end := at + 2 + 2*n
		if n < 0 || n > len(t.nodes) || end > len(t.nodes) {
			return fmt.Errorf("trie: edges of node %d out of bounds", at)
		}
		starts[uint32(at)] = struct{}{}
		at = end
	}
	for start := range starts {
		at := int(start)
		n := int(t.nodes[at+1])
		for i := 0; i < n; i++ {
			if t.nodes[at+2+2*i] > 0xff {
				return fmt.Errorf("trie: node %d has invalid label", at)
			}
			off := t.nodes[at+3+2*i]
			if _, ok := starts[off]; !ok || int(off) <= at {
				return fmt.Errorf("trie: node %d has edge to %d", at, off)
			}
		}
	}
	return nil
}

type trieNode struct {
	labels   []byte
	children []*trieNode
	value    uint32
}

func (n *trieNode) insert(key string, value uint32) {
	cur := n
	for i := 0; i < len(key); i++ {
		c := key[i]
		j, found := slices.BinarySearch(cur.labels, c)
		if !found {
			cur.labels = slices.Insert(cur.labels, j, c)
			cur.children = slices.Insert(cur.children, j, &trieNode{})
		}
		cur = cur.children[j]
	}
	cur.value = value
}

func (n *trieNode) encode(out []uint32) []uint32 {
	at := len(out)
	out = append(out, n.value, uint32(len(n.children)))
	for _, c := range n.labels {
		out = append(out, uint32(c), 0)
	}
	for i, child := range n.children {
		out[at+3+2*i] = uint32(len(out))
		out = child.encode(out)
	}
	return out
}

func buildTrie(tokens []*Token) Trie {
	sorted := slices.Clone(tokens)
	slices.SortFunc(sorted, func(a, b *Token) int {
		return strings.Compare(a.text, b.text)
	})
	root := &trieNode{}
	for _, tok := range sorted {
		root.insert(tok.text, uint32(tok.id)+1)
	}
	return Trie{nodes: root.encode(nil), count: len(tokens)}
}
