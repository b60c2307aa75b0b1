package encoder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/goliatone/go-qrform/pkg/style"
)

// ErrCacheMiss is returned by Cache.Get when no entry exists.
var ErrCacheMiss = errors.New("encoder: cache miss")

// Cache stores rendered images by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// CacheKey derives a stable key from the payload and every style option.
// salt identifies the encoder settings that produced the image.
func CacheKey(salt, payload string, opts style.Options) string {
	h := sha256.New()
	for _, part := range []string{
		salt,
		payload,
		string(opts.Module),
		string(opts.Eye),
		opts.Fill.Hex(),
		opts.Back.Hex(),
		string(opts.Format),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "qr:" + hex.EncodeToString(h.Sum(nil))
}

// Cached serves repeated renders from a Cache. Cache failures never fail an
// encode; they are reported to the error hook and the wrapped encoder runs.
type Cached struct {
	next    Encoder
	cache   Cache
	salt    string
	onError func(op string, err error)
}

// fingerprinter is implemented by encoders whose output depends on settings
// beyond the payload and style.
type fingerprinter interface {
	Fingerprint() string
}

// CachedOption configures a Cached encoder.
type CachedOption func(*Cached)

// WithCacheErrorHook receives cache errors other than misses.
func WithCacheErrorHook(fn func(op string, err error)) CachedOption {
	return func(c *Cached) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// WithCacheSalt mixes salt into every key. It overrides the fingerprint of
// the wrapped encoder.
func WithCacheSalt(salt string) CachedOption {
	return func(c *Cached) {
		c.salt = salt
	}
}

// NewCached wraps next with cache lookups. When next reports a Fingerprint
// it salts the keys, so changed encoder settings miss old entries.
func NewCached(next Encoder, cache Cache, options ...CachedOption) *Cached {
	c := &Cached{
		next:    next,
		cache:   cache,
		onError: func(string, error) {},
	}
	if f, ok := next.(fingerprinter); ok {
		c.salt = f.Fingerprint()
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Encode implements Encoder.
func (c *Cached) Encode(ctx context.Context, payload string, opts style.Options) ([]byte, error) {
	key := CacheKey(c.salt, payload, opts)

	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		return data, nil
	case !errors.Is(err, ErrCacheMiss):
		c.onError("get", err)
	}

	data, err = c.next.Encode(ctx, payload, opts)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		c.onError("set", err)
	}
	return data, nil
}
