package dirv1_test

import (
	"testing"

	"github.com/s5-go/s5/dirv1"
	"github.com/stretchr/testify/require"
)

func sampleDirectory() dirv1.Directory {
	d := dirv1.New()
	d.Entries["b.txt"] = dirv1.Entry{File: &dirv1.FileRef{
		Hash: bytesOf(33, 0xaa),
		Size: 42,
	}}
	d.Entries["a.txt"] = dirv1.Entry{File: &dirv1.FileRef{
		Hash:      bytesOf(33, 0xbb),
		Size:      7,
		MediaType: "text/plain",
	}}
	d.Entries["sub"] = dirv1.Entry{Dir: &dirv1.DirRef{
		CreatedAt:         1000,
		PublicKey:         bytesOf(33, 0xcc),
		EncryptedWriteKey: bytesOf(64, 0xdd),
	}}
	return d
}

func bytesOf(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	d := sampleDirectory()

	encoded, err := dirv1.Encode(d)
	require.NoError(t, err)

	decoded, err := dirv1.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, d, decoded)
}

func TestEqualDirectoriesEncodeIdentically(t *testing.T) {
	a := sampleDirectory()
	b := sampleDirectory()

	encA, err := dirv1.Encode(a)
	require.NoError(t, err)
	encB, err := dirv1.Encode(b)
	require.NoError(t, err)
	require.Equal(t, encA, encB)
}

func TestSortedNamesOrdersByCodepoint(t *testing.T) {
	d := sampleDirectory()
	names := dirv1.SortedNames(d)
	require.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
}

func TestEncryptionDescriptorRoundTrips(t *testing.T) {
	d := dirv1.New()
	d.Entries["secret.txt"] = dirv1.Entry{File: &dirv1.FileRef{
		Hash: bytesOf(33, 0x01),
		Size: 100,
		Encryption: &dirv1.EncryptionDescriptor{
			Algorithm:     "xchacha20-poly1305",
			Key:           bytesOf(32, 0x02),
			PlaintextHash: bytesOf(32, 0x03),
			ChunkSize:     262144,
		},
	}}

	encoded, err := dirv1.Encode(d)
	require.NoError(t, err)
	decoded, err := dirv1.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, d, decoded)
}

func TestShardedDirectoryRoundTrips(t *testing.T) {
	d := dirv1.New()
	d.HAMTRoot = bytesOf(33, 0xee)
	require.True(t, dirv1.Sharded(d))

	encoded, err := dirv1.Encode(d)
	require.NoError(t, err)
	decoded, err := dirv1.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, d, decoded)
	require.True(t, dirv1.Sharded(decoded))
}

func TestUnshardedDirectoryIsNotSharded(t *testing.T) {
	require.False(t, dirv1.Sharded(dirv1.New()))
}

func TestEmptyDirectoryRoundTrips(t *testing.T) {
	d := dirv1.New()
	encoded, err := dirv1.Encode(d)
	require.NoError(t, err)
	decoded, err := dirv1.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, d, decoded)
}
