package client

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sync"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"

	"github.com/s5-go/s5/errs"
)

var (
	valueCanonicalMode cbor.EncMode
	valueCanonicalOnce sync.Once
	valueCanonicalErr  error
)

func getValueCanonicalMode() (cbor.EncMode, error) {
	valueCanonicalOnce.Do(func() {
		valueCanonicalMode, valueCanonicalErr = cbor.CanonicalEncOptions().EncMode()
	})
	return valueCanonicalMode, valueCanonicalErr
}

// encodeValue renders a put value to its on-network bytes: raw []byte
// values pass through untouched, a string encodes as its UTF-8 bytes, and
// anything else is canonical-CBOR encoded the same way dirv1 encodes
// directories. There is no framing byte - the bytes a peer reads back are
// exactly what a plain get of the same path would expect them to be.
func encodeValue(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		mode, err := getValueCanonicalMode()
		if err != nil {
			return nil, errs.Wrap(errs.IntegrityFailure, "client.encodeValue", "constructing canonical CBOR encoder", err)
		}
		var buf bytes.Buffer
		if err := mode.NewEncoder(&buf).Encode(v); err != nil {
			return nil, errs.Wrap(errs.IntegrityFailure, "client.encodeValue", "encoding value", err)
		}
		return buf.Bytes(), nil
	}
}

// decodeValue reverses encodeValue permissively, since the bytes on the
// network carry no tag of their own: a canonical CBOR decode is tried
// first, then JSON, then valid UTF-8 text, falling back to the raw bytes
// untouched when none of those match.
func decodeValue(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	// Prefer string-keyed maps so a map Put with string keys reads back
	// as map[string]any; other key types fall through to the default mode.
	if dm, err := (cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}).DecMode(); err == nil {
		if err := dm.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}
	v = nil
	if err := cbor.Unmarshal(data, &v); err == nil {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err == nil {
		return v, nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return append([]byte{}, data...), nil
}
