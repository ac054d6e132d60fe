package hamt

import (
	"context"
	"encoding/base64"
	"sort"
	"strconv"
	"strings"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/errs"
)

// Cursor locates a position inside a full DFS listing: the path of
// child-indices from the root down to, and including, the last-yielded
// entry's intra-leaf index (§3.1, §4.8).
type Cursor struct {
	Path []int
}

// EncodeCursor renders c as the opaque base64url token clients exchange.
func EncodeCursor(c Cursor) string {
	parts := make([]string, len(c.Path))
	for i, p := range c.Path {
		parts[i] = strconv.Itoa(p)
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(strings.Join(parts, ",")))
}

// DecodeCursor parses a token EncodeCursor produced.
func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(s)
	if err != nil {
		return Cursor{}, errs.Wrap(errs.InvalidCursor, "hamt.DecodeCursor", "bad base64url", err)
	}
	if len(raw) == 0 {
		return Cursor{}, errs.New(errs.InvalidCursor, "hamt.DecodeCursor", "empty cursor")
	}
	fields := strings.Split(string(raw), ",")
	path := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Cursor{}, errs.Wrap(errs.InvalidCursor, "hamt.DecodeCursor", "bad path component", err)
		}
		path[i] = v
	}
	return Cursor{Path: path}, nil
}

func comparePath(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

type pathedEntry struct {
	Path  []int
	Entry LeafEntry
}

// collectAll walks the trie depth-first, child-index ascending, tagging
// each yielded entry with its full path. Leaves are sorted by name so
// iteration order is stable across independent loads of the same node.
func collectAll(ctx context.Context, store BlobStore, node *Node, prefix []int) ([]pathedEntry, error) {
	var out []pathedEntry
	for i, child := range node.Children {
		path := append(append([]int{}, prefix...), i)
		if child.Leaf != nil {
			leaf := append([]LeafEntry{}, child.Leaf...)
			sort.Slice(leaf, func(a, b int) bool { return leaf[a].Name < leaf[b].Name })
			for li, e := range leaf {
				out = append(out, pathedEntry{Path: append(append([]int{}, path...), li), Entry: e})
			}
			continue
		}
		hash, err := cid.ParseHash(child.Ref)
		if err != nil {
			return nil, err
		}
		data, err := store.Get(ctx, hash)
		if err != nil {
			return nil, err
		}
		childNode, err := Decode(data)
		if err != nil {
			return nil, err
		}
		sub, err := collectAll(ctx, store, &childNode, path)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// Iterate returns up to limit entries starting strictly after the
// position after encodes (or from the beginning if after is nil), along
// with the cursor to resume from. Traversal order is deterministic for a
// given trie. The cursor records child and leaf positions, not names: an
// insert that adds a child ahead of the cursor's branch, adds a name
// ahead of it in the same leaf, or splits a leaf on its path shifts those
// positions, so resuming after such an edit can repeat or skip entries.
func Iterate(ctx context.Context, store BlobStore, root *Node, after *Cursor, limit int) ([]LeafEntry, *Cursor, error) {
	if root == nil {
		return nil, nil, nil
	}
	all, err := collectAll(ctx, store, root, nil)
	if err != nil {
		return nil, nil, err
	}

	start := 0
	if after != nil {
		for i, pe := range all {
			if comparePath(pe.Path, after.Path) > 0 {
				start = i
				break
			}
			start = i + 1
		}
	}

	end := len(all)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	result := make([]LeafEntry, 0, end-start)
	var next *Cursor
	for i := start; i < end; i++ {
		result = append(result, all[i].Entry)
		next = &Cursor{Path: all[i].Path}
	}
	return result, next, nil
}
