// Package hamt implements the hash-array-mapped trie directory sharding
// of §4.8: 32-way branching, 5-bit indexing per level, a keyed-hash
// bitmap index, lazily-loaded child nodes addressed by content hash, and
// cursor-encoded pagination over the full entry set.
package hamt

import (
	"context"
	"math/bits"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/dirv1"
)

// BitsPerLevel is the number of bits of the keyed hash consumed per
// trie level (5 bits -> 32-way branching).
const BitsPerLevel = 5

// Branching is the number of slots in a node's bitmap.
const Branching = 1 << BitsPerLevel

// BlobStore is the narrow content-addressed storage capability the HAMT
// needs to lazily load and persist child nodes. network.Network
// satisfies this interface.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (cid.Hash, error)
	Get(ctx context.Context, hash cid.Hash) ([]byte, error)
}

// Config tunes the trie's sharding threshold and hash function selector.
type Config struct {
	// MaxInlineEntries is the largest a leaf may grow before it splits
	// one level deeper (default 1000; see DESIGN.md's Open Question
	// decision on why 1000 rather than the "testing" value of 8).
	MaxInlineEntries int
	// HashFunc selects the keyed hash used to compute a name's bitmap
	// index at every depth.
	HashFunc HashFunc
	// HashKey seeds the keyed hash; all nodes of one directory share the
	// same key so lookups are reproducible across loads.
	HashKey [32]byte
}

// DefaultConfig returns the canonical sharding configuration (§9 Open
// Question decision): 1000 max inline entries, default xxhash64 hashing.
func DefaultConfig() Config {
	return Config{MaxInlineEntries: 1000, HashFunc: HashXXHash64}
}

// LeafEntry is one (name, directory entry) pair inside a leaf.
type LeafEntry struct {
	Name  string      `cbor:"name"`
	Value dirv1.Entry `cbor:"value"`
}

// Child is the tagged variant of §9: either a small inline Leaf or a Ref
// pointing at a serialised child Node by its tagged content hash.
// Exactly one of Leaf or Ref is populated.
type Child struct {
	Leaf []LeafEntry `cbor:"leaf,omitempty"`
	Ref  []byte      `cbor:"ref,omitempty"`
}

// Node is one level of the trie: a 32-bit occupancy bitmap, a sparse
// ordered array of children (ordered by ascending slot index), the
// total entry count reachable under this node, and its depth.
type Node struct {
	Bitmap   uint32  `cbor:"bitmap"`
	Children []Child `cbor:"children"`
	Count    uint64  `cbor:"count"`
	Depth    int     `cbor:"depth"`
}

func hasBit(bitmap uint32, slot int) bool {
	return bitmap&(1<<uint(slot)) != 0
}

func childIndex(bitmap uint32, slot int) int {
	return bits.OnesCount32(bitmap & ((1 << uint(slot)) - 1))
}

func insertChildAt(node *Node, slot, idx int, child Child) {
	node.Bitmap |= 1 << uint(slot)
	children := make([]Child, len(node.Children)+1)
	copy(children, node.Children[:idx])
	children[idx] = child
	copy(children[idx+1:], node.Children[idx:])
	node.Children = children
}

func removeChildAt(node *Node, slot, idx int) {
	node.Bitmap &^= 1 << uint(slot)
	children := make([]Child, len(node.Children)-1)
	copy(children, node.Children[:idx])
	copy(children[idx:], node.Children[idx+1:])
	node.Children = children
}

// Insert adds or overwrites the (name, value) entry into root, returning
// the new root. A nil root is treated as an empty trie.
func Insert(ctx context.Context, store BlobStore, cfg Config, root *Node, name string, value dirv1.Entry) (*Node, error) {
	if root == nil {
		root = &Node{Depth: 0}
	}
	return insertInto(ctx, store, cfg, root, name, value)
}

func insertInto(ctx context.Context, store BlobStore, cfg Config, node *Node, name string, value dirv1.Entry) (*Node, error) {
	h := hashName(cfg.HashFunc, cfg.HashKey, name)
	slot := slotAt(h, node.Depth)

	if !hasBit(node.Bitmap, slot) {
		idx := childIndex(node.Bitmap, slot)
		insertChildAt(node, slot, idx, Child{Leaf: []LeafEntry{{Name: name, Value: value}}})
		node.Count++
		return node, nil
	}

	idx := childIndex(node.Bitmap, slot)
	child := node.Children[idx]

	if child.Leaf != nil {
		leaf := child.Leaf
		replaced := false
		for i, e := range leaf {
			if e.Name == name {
				leaf[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			leaf = append(leaf, LeafEntry{Name: name, Value: value})
			node.Count++
		}
		if len(leaf) > cfg.MaxInlineEntries {
			childHash, err := splitLeaf(ctx, store, cfg, node.Depth+1, leaf)
			if err != nil {
				return nil, err
			}
			node.Children[idx] = Child{Ref: childHash[:]}
		} else {
			node.Children[idx] = Child{Leaf: leaf}
		}
		return node, nil
	}

	childHash, err := cid.ParseHash(child.Ref)
	if err != nil {
		return nil, err
	}
	childBytes, err := store.Get(ctx, childHash)
	if err != nil {
		return nil, err
	}
	childNode, err := Decode(childBytes)
	if err != nil {
		return nil, err
	}

	prevCount := childNode.Count
	updatedChild, err := insertInto(ctx, store, cfg, &childNode, name, value)
	if err != nil {
		return nil, err
	}
	if updatedChild.Count != prevCount {
		node.Count++
	}

	encoded, err := Encode(*updatedChild)
	if err != nil {
		return nil, err
	}
	newHash, err := store.Put(ctx, encoded)
	if err != nil {
		return nil, err
	}
	node.Children[idx] = Child{Ref: newHash[:]}
	return node, nil
}

// splitLeaf redistributes an overfull leaf's entries one level deeper,
// stores the freshly built node, and returns its content hash.
func splitLeaf(ctx context.Context, store BlobStore, cfg Config, depth int, entries []LeafEntry) (cid.Hash, error) {
	node := &Node{Depth: depth}
	var err error
	for _, e := range entries {
		node, err = insertInto(ctx, store, cfg, node, e.Name, e.Value)
		if err != nil {
			return cid.Hash{}, err
		}
	}
	encoded, err := Encode(*node)
	if err != nil {
		return cid.Hash{}, err
	}
	return store.Put(ctx, encoded)
}

// Lookup returns the value stored under name, if any.
func Lookup(ctx context.Context, store BlobStore, cfg Config, root *Node, name string) (dirv1.Entry, bool, error) {
	if root == nil {
		return dirv1.Entry{}, false, nil
	}
	h := hashName(cfg.HashFunc, cfg.HashKey, name)
	node := root
	for {
		slot := slotAt(h, node.Depth)
		if !hasBit(node.Bitmap, slot) {
			return dirv1.Entry{}, false, nil
		}
		idx := childIndex(node.Bitmap, slot)
		child := node.Children[idx]
		if child.Leaf != nil {
			for _, e := range child.Leaf {
				if e.Name == name {
					return e.Value, true, nil
				}
			}
			return dirv1.Entry{}, false, nil
		}
		hash, err := cid.ParseHash(child.Ref)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		data, err := store.Get(ctx, hash)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		childNode, err := Decode(data)
		if err != nil {
			return dirv1.Entry{}, false, err
		}
		node = &childNode
	}
}

// Delete removes name from root, reporting whether it was present. A
// root whose Count falls to zero should be treated by the caller as the
// "empty HAMT" reset state (§4.8).
func Delete(ctx context.Context, store BlobStore, cfg Config, root *Node, name string) (*Node, bool, error) {
	if root == nil {
		return nil, false, nil
	}
	h := hashName(cfg.HashFunc, cfg.HashKey, name)
	return deleteFrom(ctx, store, cfg, root, h, name)
}

func deleteFrom(ctx context.Context, store BlobStore, cfg Config, node *Node, h uint64, name string) (*Node, bool, error) {
	slot := slotAt(h, node.Depth)
	if !hasBit(node.Bitmap, slot) {
		return node, false, nil
	}
	idx := childIndex(node.Bitmap, slot)
	child := node.Children[idx]

	if child.Leaf != nil {
		leaf := child.Leaf
		pos := -1
		for i, e := range leaf {
			if e.Name == name {
				pos = i
				break
			}
		}
		if pos == -1 {
			return node, false, nil
		}
		leaf = append(leaf[:pos], leaf[pos+1:]...)
		node.Count--
		if len(leaf) == 0 {
			removeChildAt(node, slot, idx)
		} else {
			node.Children[idx] = Child{Leaf: leaf}
		}
		return node, true, nil
	}

	hash, err := cid.ParseHash(child.Ref)
	if err != nil {
		return nil, false, err
	}
	data, err := store.Get(ctx, hash)
	if err != nil {
		return nil, false, err
	}
	childNode, err := Decode(data)
	if err != nil {
		return nil, false, err
	}

	updatedChild, deleted, err := deleteFrom(ctx, store, cfg, &childNode, h, name)
	if err != nil {
		return nil, false, err
	}
	if !deleted {
		return node, false, nil
	}
	node.Count--

	if updatedChild.Count == 0 {
		removeChildAt(node, slot, idx)
	} else {
		encoded, err := Encode(*updatedChild)
		if err != nil {
			return nil, false, err
		}
		newHash, err := store.Put(ctx, encoded)
		if err != nil {
			return nil, false, err
		}
		node.Children[idx] = Child{Ref: newHash[:]}
	}
	return node, true, nil
}

// Depth reports the trie's maximum descent depth for n entries, used by
// callers that want to sanity-check O(log32 N) behaviour.
func Depth(n uint64) int {
	depth := 0
	for n > 1 {
		n /= Branching
		depth++
	}
	return depth
}
