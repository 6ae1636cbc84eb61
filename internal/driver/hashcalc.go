package driver

import (
	"crypto/sha256"
	"encoding/hex"

	"vuejsx/internal/options"
	"vuejsx/internal/version"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// CacheKey: H(content || 0 || options fingerprint || 0 || version).
// Any change of input, configuration or tool release misses the cache.
func CacheKey(content []byte, opts options.Options) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(opts.Fingerprint()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(version.Version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
