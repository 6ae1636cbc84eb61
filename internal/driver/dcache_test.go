package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vuejsx/internal/diag"
	"vuejsx/internal/options"
)

func TestCacheKey(t *testing.T) {
	base := options.Default()
	optimized := options.Default()
	optimized.Optimize = true

	k1 := CacheKey([]byte(helloSrc), base)
	require.False(t, k1.IsZero())
	require.Equal(t, k1, CacheKey([]byte(helloSrc), base))
	require.NotEqual(t, k1, CacheKey([]byte(helloSrc), optimized))
	require.NotEqual(t, k1, CacheKey([]byte(helloSrc+" "), base))
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	src := []byte("const a = <Foo v-models={x} />;\nconst b = <div>hello</div>;\n")

	first, err := TransformSource(context.Background(), "App.tsx", src, Options{Cache: cache})
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := TransformSource(context.Background(), "App.tsx", src, Options{Cache: cache, Timings: true})
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, string(first.Output), string(second.Output))
	require.Equal(t, first.Result, second.Result)

	var restored []diag.Diagnostic
	for _, d := range second.Bag.Items() {
		if d.Code != diag.ObsTimings {
			restored = append(restored, d)
		}
	}
	require.Equal(t, first.Bag.Items(), restored)
	require.Len(t, restored, 1)
	require.Len(t, restored[0].Fixes, 1)
	require.Equal(t, "[[x]]", restored[0].Fixes[0].Edits[0].NewText)
	require.Equal(t, []string{"cache"}, phaseNames(second))
}

func TestDiskCacheMissAfterOptionChange(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	_, err = TransformSource(context.Background(), "App.tsx", []byte(helloSrc), Options{Cache: cache})
	require.NoError(t, err)

	cfg := options.Default()
	cfg.Optimize = true
	res, err := TransformSource(context.Background(), "App.tsx", []byte(helloSrc), Options{Cache: cache, Config: cfg.MustCompile()})
	require.NoError(t, err)
	require.False(t, res.Cached)
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	key := CacheKey([]byte("x"), options.Default())
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1, Path: "x.tsx"}))

	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	key := CacheKey([]byte(helloSrc), options.Default())
	p := cache.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("not msgpack"), 0o644))

	var payload DiskPayload
	_, err = cache.Get(key, &payload)
	require.Error(t, err)

	res, err := TransformSource(context.Background(), "App.tsx", []byte(helloSrc), Options{Cache: cache})
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, helloOut, string(res.Output))
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "vuejsx"))
	require.NoError(t, err)
	key := CacheKey([]byte(helloSrc), options.Default())
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}))

	require.NoError(t, cache.DropAll())
	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	require.NoError(t, err)
	require.False(t, hit)
	require.DirExists(t, cache.Dir())
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	require.NoError(t, cache.Put(Digest{}, &DiskPayload{}))
	hit, err := cache.Get(Digest{}, &DiskPayload{})
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, cache.DropAll())
}

func TestOutputCompression(t *testing.T) {
	data := []byte(helloOut + helloOut + helloOut)
	packed, err := compressOutput(data)
	require.NoError(t, err)
	unpacked, err := decompressOutput(packed)
	require.NoError(t, err)
	require.Equal(t, data, unpacked)
}

func phaseNames(res *FileResult) []string {
	var names []string
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	return names
}
