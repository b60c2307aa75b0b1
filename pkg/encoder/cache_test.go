package encoder

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-qrform/pkg/style"
)

type mapCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (c *mapCache) Set(_ context.Context, key string, data []byte) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = data
	return nil
}

type countingEncoder struct {
	calls int
}

func (e *countingEncoder) Encode(_ context.Context, payload string, _ style.Options) ([]byte, error) {
	e.calls++
	return []byte("img:" + payload), nil
}

func TestCachedServesRepeats(t *testing.T) {
	inner := &countingEncoder{}
	enc := NewCached(inner, &mapCache{entries: map[string][]byte{}})

	for i := 0; i < 3; i++ {
		data, err := enc.Encode(context.Background(), "abc", style.Default())
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if string(data) != "img:abc" {
			t.Fatalf("data = %q", data)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedToleratesCacheFailures(t *testing.T) {
	inner := &countingEncoder{}
	boom := errors.New("redis down")
	var ops []string
	enc := NewCached(inner, &mapCache{entries: map[string][]byte{}, getErr: boom, setErr: boom},
		WithCacheErrorHook(func(op string, err error) {
			if !errors.Is(err, boom) {
				t.Fatalf("unexpected error %v", err)
			}
			ops = append(ops, op)
		}))

	if _, err := enc.Encode(context.Background(), "abc", style.Default()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if inner.calls != 1 || len(ops) != 2 || ops[0] != "get" || ops[1] != "set" {
		t.Fatalf("calls=%d ops=%v", inner.calls, ops)
	}
}

func TestCacheKeyCoversStyle(t *testing.T) {
	a := style.Default()
	b := a
	b.Fill = style.RGB{R: 1}
	if CacheKey("", "x", a) == CacheKey("", "x", b) {
		t.Fatalf("fill colour not part of key")
	}
	b = a
	b.Format = style.JPEG
	if CacheKey("", "x", a) == CacheKey("", "x", b) {
		t.Fatalf("format not part of key")
	}
	if CacheKey("", "x", a) != CacheKey("", "x", a) {
		t.Fatalf("key not stable")
	}
}

func TestCachedKeysFollowEncoderSettings(t *testing.T) {
	cache := &mapCache{entries: map[string][]byte{}}
	small := NewCached(NewRaster(WithModuleSize(2)), cache)
	large := NewCached(NewRaster(WithModuleSize(4)), cache)

	first, err := small.Encode(context.Background(), "hello", style.Default())
	if err != nil {
		t.Fatalf("encode small: %v", err)
	}
	second, err := large.Encode(context.Background(), "hello", style.Default())
	if err != nil {
		t.Fatalf("encode large: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Fatalf("a different module size must not be served from the old entry")
	}
	if len(cache.entries) != 2 {
		t.Fatalf("expected one entry per setting, got %d", len(cache.entries))
	}

	if NewRaster().Fingerprint() == NewRaster(WithJPEGQuality(50)).Fingerprint() {
		t.Fatalf("jpeg quality not part of the fingerprint")
	}
	if CacheKey("a", "x", style.Default()) == CacheKey("b", "x", style.Default()) {
		t.Fatalf("salt not part of key")
	}
}
