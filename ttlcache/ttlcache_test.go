package ttlcache_test

import (
	"testing"
	"time"

	"github.com/s5-go/s5/ttlcache"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	c := ttlcache.New[[]byte]("blob", time.Minute, 0)
	c.Put("abc", []byte("hello"))
	v, ok := c.Get("abc")
	require.True(t, ok)
	require.Equal(t, []byte("hello"), v)
}

func TestExpiry(t *testing.T) {
	c := ttlcache.New[int]("registry", 10*time.Millisecond, 0)
	c.Put("k", 1)
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestSoftLimitEviction(t *testing.T) {
	c := ttlcache.New[int]("blob", time.Hour, 2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	require.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok, "oldest entry should have been evicted")
}

func TestDelete(t *testing.T) {
	c := ttlcache.New[int]("blob", time.Hour, 0)
	c.Put("k", 1)
	c.Delete("k")
	_, ok := c.Get("k")
	require.False(t, ok)
}
