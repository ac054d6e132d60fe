package client

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/dirv1"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/filechunk"
	"github.com/s5-go/s5/hamt"
	"github.com/s5-go/s5/metrics"
	"github.com/s5-go/s5/resolver"
	"github.com/s5-go/s5/telemetry"
)

// EntryType distinguishes a listing or metadata result's kind.
type EntryType string

const (
	EntryTypeFile      EntryType = "file"
	EntryTypeDirectory EntryType = "directory"
)

// Metadata is getMetadata's result (§4.10): a file's size/mediaType/
// timestamp, or a directory's file/directory counts.
type Metadata struct {
	Type           EntryType
	Name           string
	Size           uint64
	MediaType      string
	Timestamp      uint64
	FileCount      uint64
	DirectoryCount uint64
}

// ListEntry is one name/type pair returned by List.
type ListEntry struct {
	Name string
	Type EntryType
}

// ListOptions tunes a List call's page size and resume position.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListPage is one page of List's forward-only pagination. NextCursor is
// empty once the listing is exhausted.
type ListPage struct {
	Entries    []ListEntry
	NextCursor string
}

// putOptions tunes how Put encodes and stores a single value.
type putOptions struct {
	mediaType string
	timestamp uint64
	encrypt   bool
}

func defaultPutOptions() putOptions {
	return putOptions{encrypt: true}
}

// PutOption configures one Put call.
type PutOption func(*putOptions)

// WithMediaType records a MIME-style media type alongside the stored file.
func WithMediaType(mediaType string) PutOption {
	return func(o *putOptions) { o.mediaType = mediaType }
}

// WithTimestamp overrides the file's recorded timestamp (unix seconds);
// Put stamps the current time when this is not given.
func WithTimestamp(unixSeconds uint64) PutOption {
	return func(o *putOptions) { o.timestamp = unixSeconds }
}

// WithoutEncryption stores the value's bytes on the network unencrypted
// (§4.6 describes encryption as the default, not mandatory, behaviour).
func WithoutEncryption() PutOption {
	return func(o *putOptions) { o.encrypt = false }
}

// Put writes value at path, creating any missing intermediate
// directories along the way and converting a directory to a HAMT once
// it grows past cfg.HAMTThreshold (§4.10).
func (c *Client) Put(ctx context.Context, path string, value any, opts ...PutOption) error {
	ctx, span := telemetry.TracePathOperation(ctx, "put", path)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues("put").Observe(time.Since(start).Seconds())
	}()
	metrics.OperationsTotal.WithLabelValues("put").Inc()

	segs, err := validatePath(path)
	if err != nil {
		return c.recordErr("put", err)
	}
	if len(segs) < 2 {
		return c.recordErr("put", errs.New(errs.RootImmutable, "client.Put", "cannot write directly to a reserved root"))
	}

	po := defaultPutOptions()
	for _, o := range opts {
		o(&po)
	}

	plaintext, err := encodeValue(value)
	if err != nil {
		return c.recordErr("put", err)
	}

	fileRef, err := c.buildFileRef(ctx, plaintext, po)
	if err != nil {
		return c.recordErr("put", err)
	}

	currentKS, _, ok := c.rootKeySet(segs[0])
	if !ok {
		return c.recordErr("put", errs.New(errs.PathInvalid, "client.Put", "unknown root "+segs[0]))
	}
	currentSeed := c.rootSeeds[segs[0]]

	dirSegs := segs[1 : len(segs)-1]
	name := segs[len(segs)-1]

	for _, seg := range dirSegs {
		entry, ok, err := c.resolver.Lookup(ctx, currentKS, seg)
		if err != nil {
			return c.recordErr("put", err)
		}
		if ok {
			if entry.Dir == nil {
				return c.recordErr("put", errs.New(errs.IsFile, "client.Put", seg+" is a file, not a directory"))
			}
			childKS, err := c.resolver.ChildKeySet(currentKS, entry.Dir)
			if err != nil {
				return c.recordErr("put", err)
			}
			currentKS = childKS
			if currentKS.WriteSeed != nil {
				currentSeed = *currentKS.WriteSeed
			}
			continue
		}

		childKS, childSeed, err := c.createChildDirectory(ctx, currentKS, currentSeed, seg)
		if err != nil {
			return c.recordErr("put", err)
		}
		currentKS, currentSeed = childKS, childSeed
	}

	err = c.publishWithRetry(ctx, currentKS, currentSeed, func(d *dirv1.Directory) error {
		return c.insertEntry(ctx, d, name, dirv1.Entry{File: fileRef})
	})
	if err != nil {
		return c.recordErr("put", err)
	}
	return nil
}

// buildFileRef uploads value's bytes (encrypted under a fresh key unless
// po.encrypt is false) and builds the FileRef a directory entry stores.
// Size always records the logical plaintext length, never the (larger,
// tag-padded) ciphertext length.
func (c *Client) buildFileRef(ctx context.Context, plaintext []byte, po putOptions) (*dirv1.FileRef, error) {
	timestamp := po.timestamp
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}

	if !po.encrypt {
		hash, err := c.net.Put(ctx, plaintext)
		if err != nil {
			return nil, err
		}
		return &dirv1.FileRef{
			Hash:      hash[:],
			Size:      uint64(len(plaintext)),
			MediaType: po.mediaType,
			Timestamp: timestamp,
		}, nil
	}

	keyBytes, err := c.suite.Random(crypto.KeySize)
	if err != nil {
		return nil, err
	}
	var key [crypto.KeySize]byte
	copy(key[:], keyBytes)
	nonceBase := filechunk.DeriveNonceBase(c.suite, key)

	ciphertext, err := filechunk.Encrypt(c.suite, key, nonceBase, c.cfg.ChunkSize, plaintext)
	if err != nil {
		return nil, err
	}
	hash, err := c.net.Put(ctx, ciphertext)
	if err != nil {
		return nil, err
	}
	plaintextHash := c.suite.Blake3(plaintext)

	return &dirv1.FileRef{
		Hash:      hash[:],
		Size:      uint64(len(plaintext)),
		MediaType: po.mediaType,
		Timestamp: timestamp,
		Encryption: &dirv1.EncryptionDescriptor{
			Algorithm:     filechunk.AlgorithmXChaCha20Poly1305,
			Key:           key[:],
			PlaintextHash: plaintextHash[:],
			ChunkSize:     uint64(c.cfg.ChunkSize),
		},
	}, nil
}

// Get resolves path and returns its decoded value. ok is false if
// nothing exists at path.
func (c *Client) Get(ctx context.Context, path string) (value any, ok bool, err error) {
	ctx, span := telemetry.TracePathOperation(ctx, "get", path)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	}()
	metrics.OperationsTotal.WithLabelValues("get").Inc()

	segs, verr := validatePath(path)
	if verr != nil {
		return nil, false, c.recordErr("get", verr)
	}
	if len(segs) == 1 {
		return nil, false, c.recordErr("get", errs.New(errs.IsDirectory, "client.Get", path+" is a directory"))
	}

	parentKS, rerr := c.resolvePath(ctx, segs[:len(segs)-1])
	if rerr != nil {
		if errs.Is(rerr, errs.NotFound) {
			return nil, false, nil
		}
		return nil, false, c.recordErr("get", rerr)
	}

	name := segs[len(segs)-1]
	entry, found, lerr := c.resolver.Lookup(ctx, parentKS, name)
	if lerr != nil {
		return nil, false, c.recordErr("get", lerr)
	}
	if !found {
		return nil, false, nil
	}
	if entry.File == nil {
		return nil, false, c.recordErr("get", errs.New(errs.IsDirectory, "client.Get", path+" is a directory"))
	}

	hash, herr := cid.ParseHash(entry.File.Hash)
	if herr != nil {
		return nil, false, c.recordErr("get", herr)
	}
	c.rememberCID(path, hash)

	cacheKey := string(hash[:])
	blob, cached := c.blobCache.Get(cacheKey)
	if !cached {
		var gerr error
		blob, gerr = c.net.Get(ctx, hash)
		if gerr != nil {
			return nil, false, c.recordErr("get", gerr)
		}
		c.blobCache.Put(cacheKey, blob)
	}

	if entry.File.Encryption != nil {
		var key [crypto.KeySize]byte
		copy(key[:], entry.File.Encryption.Key)
		nonceBase := filechunk.DeriveNonceBase(c.suite, key)
		plaintext, derr := filechunk.Decrypt(c.suite, key, nonceBase, int(entry.File.Encryption.ChunkSize), int(entry.File.Size), blob)
		if derr != nil {
			return nil, false, c.recordErr("get", derr)
		}
		digest := c.suite.Blake3(plaintext)
		if !bytes.Equal(digest[:], entry.File.Encryption.PlaintextHash) {
			return nil, false, c.recordErr("get", errs.New(errs.IntegrityFailure, "client.Get", "decrypted plaintext hash mismatch"))
		}
		blob = plaintext
	}

	v, derr := decodeValue(blob)
	if derr != nil {
		return nil, false, c.recordErr("get", derr)
	}
	return v, true, nil
}

// GetMetadata returns path's metadata, or nil if nothing exists there.
func (c *Client) GetMetadata(ctx context.Context, path string) (*Metadata, error) {
	ctx, span := telemetry.TracePathOperation(ctx, "getMetadata", path)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues("getMetadata").Observe(time.Since(start).Seconds())
	}()
	metrics.OperationsTotal.WithLabelValues("getMetadata").Inc()

	segs, err := validatePath(path)
	if err != nil {
		return nil, c.recordErr("getMetadata", err)
	}

	if len(segs) == 1 {
		ks, _, ok := c.rootKeySet(segs[0])
		if !ok {
			return nil, c.recordErr("getMetadata", errs.New(errs.PathInvalid, "client.GetMetadata", "unknown root"))
		}
		md, err := c.directoryMetadata(ctx, ks, segs[0])
		if err != nil {
			return nil, c.recordErr("getMetadata", err)
		}
		return md, nil
	}

	parentKS, err := c.resolvePath(ctx, segs[:len(segs)-1])
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return nil, nil
		}
		return nil, c.recordErr("getMetadata", err)
	}

	name := segs[len(segs)-1]
	entry, ok, err := c.resolver.Lookup(ctx, parentKS, name)
	if err != nil {
		return nil, c.recordErr("getMetadata", err)
	}
	if !ok {
		return nil, nil
	}

	if entry.File != nil {
		if hash, herr := cid.ParseHash(entry.File.Hash); herr == nil {
			c.rememberCID(path, hash)
		}
		return &Metadata{
			Type:      EntryTypeFile,
			Name:      name,
			Size:      entry.File.Size,
			MediaType: entry.File.MediaType,
			Timestamp: entry.File.Timestamp,
		}, nil
	}

	childKS, err := c.resolver.ChildKeySet(parentKS, entry.Dir)
	if err != nil {
		return nil, c.recordErr("getMetadata", err)
	}
	md, err := c.directoryMetadata(ctx, childKS, name)
	if err != nil {
		return nil, c.recordErr("getMetadata", err)
	}
	return md, nil
}

// directoryMetadata counts a directory's immediate file and
// subdirectory entries, walking the full HAMT if it is sharded (the
// trie only tracks a combined count, not a file/directory split).
func (c *Client) directoryMetadata(ctx context.Context, ks resolver.KeySet, name string) (*Metadata, error) {
	d, err := c.directoryOrEmpty(ctx, ks)
	if err != nil {
		return nil, err
	}

	var files, dirs uint64
	if dirv1.Sharded(d) {
		rootHash, err := cid.ParseHash(d.HAMTRoot)
		if err != nil {
			return nil, err
		}
		rootBytes, err := c.net.Get(ctx, rootHash)
		if err != nil {
			return nil, err
		}
		root, err := hamt.Decode(rootBytes)
		if err != nil {
			return nil, err
		}
		var cursor *hamt.Cursor
		for {
			entries, next, err := hamt.Iterate(ctx, c.net, &root, cursor, 256)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if e.Value.File != nil {
					files++
				} else {
					dirs++
				}
			}
			if len(entries) == 0 || next == nil {
				break
			}
			cursor = next
		}
	} else {
		for _, e := range d.Entries {
			if e.File != nil {
				files++
			} else {
				dirs++
			}
		}
	}

	return &Metadata{
		Type:           EntryTypeDirectory,
		Name:           name,
		FileCount:      files,
		DirectoryCount: dirs,
	}, nil
}

// Delete removes path, reporting whether it was present. Deleting a
// reserved root or a non-empty directory fails (§4.10).
func (c *Client) Delete(ctx context.Context, path string) (bool, error) {
	ctx, span := telemetry.TracePathOperation(ctx, "delete", path)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())
	}()
	metrics.OperationsTotal.WithLabelValues("delete").Inc()

	segs, err := validatePath(path)
	if err != nil {
		return false, c.recordErr("delete", err)
	}
	if len(segs) < 2 {
		return false, c.recordErr("delete", errs.New(errs.RootImmutable, "client.Delete", "cannot delete a reserved root"))
	}

	parentKS, err := c.resolvePath(ctx, segs[:len(segs)-1])
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return false, nil
		}
		return false, c.recordErr("delete", err)
	}

	name := segs[len(segs)-1]
	entry, ok, err := c.resolver.Lookup(ctx, parentKS, name)
	if err != nil {
		return false, c.recordErr("delete", err)
	}
	if !ok {
		return false, nil
	}

	if entry.Dir != nil {
		childKS, err := c.resolver.ChildKeySet(parentKS, entry.Dir)
		if err != nil {
			return false, c.recordErr("delete", err)
		}
		childDir, err := c.directoryOrEmpty(ctx, childKS)
		if err != nil {
			return false, c.recordErr("delete", err)
		}
		if dirv1.Sharded(childDir) || len(childDir.Entries) > 0 {
			return false, c.recordErr("delete", errs.New(errs.DirectoryNotEmpty, "client.Delete", name+" is not empty"))
		}
	}

	if parentKS.WriteSeed == nil {
		return false, c.recordErr("delete", errs.New(errs.NoWriteAccess, "client.Delete", "no write access to parent directory"))
	}

	var deleted bool
	err = c.publishWithRetry(ctx, parentKS, *parentKS.WriteSeed, func(d *dirv1.Directory) error {
		got, derr := c.deleteEntry(ctx, d, name)
		deleted = got
		return derr
	})
	if err != nil {
		return false, c.recordErr("delete", err)
	}
	return deleted, nil
}

const (
	cursorPrefixInline = "i:"
	cursorPrefixHAMT   = "h:"
)

// List returns one page of path's directory entries, honoring
// opts.Limit/opts.Cursor. The cursor is opaque and forward-only;
// presenting a cursor from the wrong directory representation (inline
// vs. sharded) fails with errs.InvalidCursor (§4.10).
func (c *Client) List(ctx context.Context, path string, opts ListOptions) (*ListPage, error) {
	ctx, span := telemetry.TracePathOperation(ctx, "list", path)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.OperationDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())
	}()
	metrics.OperationsTotal.WithLabelValues("list").Inc()

	segs, err := validatePath(path)
	if err != nil {
		return nil, c.recordErr("list", err)
	}
	ks, err := c.resolvePath(ctx, segs)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			return nil, c.recordErr("list", errs.New(errs.NotFound, "client.List", "no such directory"))
		}
		return nil, c.recordErr("list", err)
	}

	d, err := c.directoryOrEmpty(ctx, ks)
	if err != nil {
		return nil, c.recordErr("list", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var page *ListPage
	if dirv1.Sharded(d) {
		page, err = c.listSharded(ctx, d, opts, limit)
	} else {
		page, err = c.listInline(d, opts, limit)
	}
	if err != nil {
		return nil, c.recordErr("list", err)
	}
	return page, nil
}

func (c *Client) listInline(d dirv1.Directory, opts ListOptions, limit int) (*ListPage, error) {
	names := dirv1.SortedNames(d)
	start := 0
	if opts.Cursor != "" {
		if !strings.HasPrefix(opts.Cursor, cursorPrefixInline) {
			return nil, errs.New(errs.InvalidCursor, "client.List", "cursor does not match this directory's representation")
		}
		after := strings.TrimPrefix(opts.Cursor, cursorPrefixInline)
		idx := sort.SearchStrings(names, after)
		if idx < len(names) && names[idx] == after {
			idx++
		}
		start = idx
	}

	end := len(names)
	if start+limit < end {
		end = start + limit
	}

	page := &ListPage{}
	for _, n := range names[start:end] {
		e := d.Entries[n]
		typ := EntryTypeFile
		if e.Dir != nil {
			typ = EntryTypeDirectory
		}
		page.Entries = append(page.Entries, ListEntry{Name: n, Type: typ})
	}
	if end < len(names) {
		page.NextCursor = cursorPrefixInline + names[end-1]
	}
	return page, nil
}

func (c *Client) listSharded(ctx context.Context, d dirv1.Directory, opts ListOptions, limit int) (*ListPage, error) {
	rootHash, err := cid.ParseHash(d.HAMTRoot)
	if err != nil {
		return nil, err
	}
	rootBytes, err := c.net.Get(ctx, rootHash)
	if err != nil {
		return nil, err
	}
	root, err := hamt.Decode(rootBytes)
	if err != nil {
		return nil, err
	}

	var after *hamt.Cursor
	if opts.Cursor != "" {
		if !strings.HasPrefix(opts.Cursor, cursorPrefixHAMT) {
			return nil, errs.New(errs.InvalidCursor, "client.List", "cursor does not match this directory's representation")
		}
		cur, err := hamt.DecodeCursor(strings.TrimPrefix(opts.Cursor, cursorPrefixHAMT))
		if err != nil {
			return nil, err
		}
		after = &cur
	}

	entries, next, err := hamt.Iterate(ctx, c.net, &root, after, limit)
	if err != nil {
		return nil, err
	}

	page := &ListPage{}
	for _, e := range entries {
		typ := EntryTypeFile
		if e.Value.Dir != nil {
			typ = EntryTypeDirectory
		}
		page.Entries = append(page.Entries, ListEntry{Name: e.Name, Type: typ})
	}
	if next != nil {
		rest, _, err := hamt.Iterate(ctx, c.net, &root, next, 1)
		if err != nil {
			return nil, err
		}
		if len(rest) > 0 {
			page.NextCursor = cursorPrefixHAMT + hamt.EncodeCursor(*next)
		}
	}
	return page, nil
}
