// Package network defines the external transport capability the core
// consumes (§6.1): upload/download of immutable blobs and get/set/
// subscribe over mutable registry entries. Nothing in the core talks to
// a peer directly; every component that needs the network takes a
// Network as a narrow, mockable dependency.
package network

import (
	"context"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/registry"
)

// Network is the full transport capability set. Put/Get satisfy
// hamt.BlobStore directly; RegistryGet/RegistrySet satisfy
// registry.Source/Sink directly, so a Network can be handed to either
// collaborator without an adapter.
type Network interface {
	// Put uploads data and returns its content hash. Implementations
	// MUST verify the hash they computed/received matches the data
	// before returning, failing with errs.IntegrityFailure otherwise.
	Put(ctx context.Context, data []byte) (cid.Hash, error)
	// Get downloads the blob addressed by hash, failing with
	// errs.NotFound if unknown and errs.IntegrityFailure if the
	// downloaded bytes don't hash to the requested value.
	Get(ctx context.Context, hash cid.Hash) ([]byte, error)

	RegistryGet(ctx context.Context, publicKey [registry.PublicKeySize]byte) (registry.Entry, bool, error)
	RegistrySet(ctx context.Context, e registry.Entry) error
	// RegistrySubscribe streams future accepted entries for publicKey.
	// Optional per §6.1; callers that don't need live tailing never call
	// it. The returned cancel func stops delivery and releases
	// resources; callers MUST call it once done with the channel.
	RegistrySubscribe(ctx context.Context, publicKey [registry.PublicKeySize]byte) (<-chan registry.Entry, func(), error)
}
