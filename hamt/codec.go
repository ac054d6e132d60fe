package hamt

import (
	"bytes"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/s5-go/s5/errs"
)

var (
	nodeCanonicalMode cbor.EncMode
	nodeCanonicalOnce sync.Once
	nodeCanonicalErr  error
)

func getNodeCanonicalMode() (cbor.EncMode, error) {
	nodeCanonicalOnce.Do(func() {
		nodeCanonicalMode, nodeCanonicalErr = cbor.CanonicalEncOptions().EncMode()
	})
	return nodeCanonicalMode, nodeCanonicalErr
}

// Encode serialises a node to its canonical byte form, matching dirv1's
// deterministic encoding so two conforming encoders of the same node
// content always hash to the same content address.
func Encode(n Node) ([]byte, error) {
	mode, err := getNodeCanonicalMode()
	if err != nil {
		return nil, errs.Wrap(errs.IntegrityFailure, "hamt.Encode", "constructing canonical CBOR encoder", err)
	}
	var buf bytes.Buffer
	if err := mode.NewEncoder(&buf).Encode(n); err != nil {
		return nil, errs.Wrap(errs.IntegrityFailure, "hamt.Encode", "encoding node", err)
	}
	return buf.Bytes(), nil
}

// Decode parses the bytes Encode produces.
func Decode(data []byte) (Node, error) {
	var n Node
	if err := cbor.Unmarshal(data, &n); err != nil {
		return Node{}, errs.Wrap(errs.IntegrityFailure, "hamt.Decode", "decoding node", err)
	}
	return n, nil
}
