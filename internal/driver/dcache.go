package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"vuejsx/internal/diag"
	"vuejsx/internal/source"
	"vuejsx/internal/transform"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты трансформации по CacheKey на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached transformation. Spans are stored as byte offsets
// and rebound to the file on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path string
	// Output is the lz4 frame of the printed module.
	Output      []byte
	Diagnostics []cachedDiag
	Result      transform.Result
}

type cachedSpan struct {
	Start, End uint32
	Synthetic  bool
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "out", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Payloads of
// another schema are reported as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельный Get не увидел полуудалённое дерево
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func compressOutput(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressOutput(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// newDiskPayload snapshots a finished, uncached result.
func newDiskPayload(res *FileResult) (*DiskPayload, error) {
	packed, err := compressOutput(res.Output)
	if err != nil {
		return nil, fmt.Errorf("compress output: %w", err)
	}
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   res.Path,
		Output: packed,
		Result: res.Result,
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		for _, fix := range d.Fixes {
			cf := cachedFix{Title: fix.Title}
			for _, e := range fix.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Span: toCachedSpan(e.Span), NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload, nil
}

// restore fills res from the payload, binding spans to res.FileID.
func (payload *DiskPayload) restore(res *FileResult) error {
	out, err := decompressOutput(payload.Output)
	if err != nil {
		return fmt.Errorf("decompress output: %w", err)
	}
	res.Output = out
	res.Result = payload.Result
	res.Cached = true
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Primary.span(res.FileID),
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.Span.span(res.FileID), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			fix := diag.Fix{Title: cf.Title}
			for _, e := range cf.Edits {
				fix.Edits = append(fix.Edits, diag.FixEdit{Span: e.Span.span(res.FileID), NewText: e.NewText})
			}
			d.Fixes = append(d.Fixes, fix)
		}
		res.Bag.Add(d)
	}
	return nil
}

func toCachedSpan(sp source.Span) cachedSpan {
	if sp.IsSynthetic() {
		return cachedSpan{Synthetic: true}
	}
	return cachedSpan{Start: sp.Start, End: sp.End}
}

func (s cachedSpan) span(file source.FileID) source.Span {
	if s.Synthetic {
		return source.Span{}
	}
	return source.Span{File: file, Start: s.Start, End: s.End}
}
