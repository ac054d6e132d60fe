// Package resolver implements the path resolver of §4.9: parsing a
// virtual URI's self-describing root, walking directory segments, and
// deriving the key set needed to read (and, if write material is
// present, write) the target.
package resolver

import (
	"encoding/base64"
	"strings"

	"github.com/s5-go/s5/cid"
	"github.com/s5-go/s5/errs"
	"github.com/s5-go/s5/registry"
)

// Scheme is the URI scheme this resolver accepts: scheme://<root>[/seg]*.
const Scheme = "s5"

// rootKind tags which of the three root shapes a URI's root component
// carries, so the root self-describes without any external context.
type rootKind byte

const (
	rootKindPublicKey           rootKind = 0
	rootKindPublicKeyWithCipher rootKind = 1
	rootKindImmutableHash       rootKind = 2
)

// RootURI is a parsed virtual URI: its self-describing root plus the
// path segments to walk from it.
type RootURI struct {
	Kind     rootKind
	Root     KeySet
	Segments []string
}

// ParseURI parses a "s5://<root>[/segment]*" URI. The root component is
// an unpadded base64url encoding of a 1-byte kind tag followed by the
// kind's payload:
//
//	0x00  33-byte tagged Ed25519 public key
//	0x01  33-byte tagged Ed25519 public key || 32-byte encryption key
//	0x02  33-byte tagged BLAKE3 content hash (immutable root)
func ParseURI(uri string) (RootURI, error) {
	prefix := Scheme + "://"
	if !strings.HasPrefix(uri, prefix) {
		return RootURI{}, errs.New(errs.PathInvalid, "resolver.ParseURI", "missing "+prefix+" scheme")
	}
	rest := uri[len(prefix):]

	root := rest
	var segments []string
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		root = rest[:idx]
		segments = splitSegments(rest[idx+1:])
	}

	raw, err := base64.RawURLEncoding.DecodeString(root)
	if err != nil {
		return RootURI{}, errs.Wrap(errs.PathInvalid, "resolver.ParseURI", "bad root encoding", err)
	}
	if len(raw) < 1 {
		return RootURI{}, errs.New(errs.PathInvalid, "resolver.ParseURI", "empty root")
	}

	kind := rootKind(raw[0])
	payload := raw[1:]

	switch kind {
	case rootKindPublicKey:
		if len(payload) != registry.PublicKeySize {
			return RootURI{}, errs.New(errs.PathInvalid, "resolver.ParseURI", "public-key root has wrong length")
		}
		var ks KeySet
		copy(ks.PublicKey[:], payload)
		return RootURI{Kind: kind, Root: ks, Segments: segments}, nil

	case rootKindPublicKeyWithCipher:
		if len(payload) != registry.PublicKeySize+32 {
			return RootURI{}, errs.New(errs.PathInvalid, "resolver.ParseURI", "public-key+cipher root has wrong length")
		}
		var ks KeySet
		copy(ks.PublicKey[:], payload[:registry.PublicKeySize])
		var enc [32]byte
		copy(enc[:], payload[registry.PublicKeySize:])
		ks.EncryptionKey = &enc
		return RootURI{Kind: kind, Root: ks, Segments: segments}, nil

	case rootKindImmutableHash:
		h, err := cid.ParseHash(payload)
		if err != nil {
			return RootURI{}, err
		}
		var ks KeySet
		ks.ImmutableHash = &h
		return RootURI{Kind: kind, Root: ks, Segments: segments}, nil

	default:
		return RootURI{}, errs.New(errs.PathInvalid, "resolver.ParseURI", "unrecognised root kind")
	}
}

// EncodeRootURI is ParseURI's inverse for the public-key root shapes,
// used when minting a fresh root to share out of band.
func EncodeRootURI(ks KeySet) string {
	var payload []byte
	var kind rootKind
	if ks.EncryptionKey != nil {
		kind = rootKindPublicKeyWithCipher
		payload = append(payload, ks.PublicKey[:]...)
		payload = append(payload, ks.EncryptionKey[:]...)
	} else {
		kind = rootKindPublicKey
		payload = append(payload, ks.PublicKey[:]...)
	}
	raw := append([]byte{byte(kind)}, payload...)
	return Scheme + "://" + base64.RawURLEncoding.EncodeToString(raw)
}

func splitSegments(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
