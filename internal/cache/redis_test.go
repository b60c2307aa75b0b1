package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/pkg/encoder"
	"github.com/goliatone/go-qrform/pkg/style"
)

type fakeClient struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet error
	failSet error
	closed  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(val), nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.data[key] = append([]byte(nil), value.([]byte)...)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestRedisCacheRoundTrip(t *testing.T) {
	fake := newFakeClient()
	c := newWithClient(fake, time.Hour)
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, encoder.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
	if err := c.Set(ctx, "k", []byte{1, 2, 3}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if fake.ttls["qrform:k"] != time.Hour {
		t.Fatalf("expected prefixed key with ttl, got %v", fake.ttls)
	}
	if err := c.HealthCheck(ctx); err != nil {
		t.Fatalf("health: %v", err)
	}
	if err := c.Close(); err != nil || !fake.closed {
		t.Fatalf("close: %v", err)
	}
}

func TestRedisCacheErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	fake := newFakeClient()
	fake.failGet = boom
	fake.failSet = boom
	c := newWithClient(fake, 0)

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, boom) || errors.Is(err, encoder.ErrCacheMiss) {
		t.Fatalf("expected wrapped get error, got %v", err)
	}
	if err := c.Set(context.Background(), "k", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped set error, got %v", err)
	}
}

func TestRedisCacheBacksCachedEncoder(t *testing.T) {
	fake := newFakeClient()
	calls := 0
	enc := encoder.NewCached(encoder.Func(func(context.Context, string, style.Options) ([]byte, error) {
		calls++
		return []byte("png"), nil
	}), newWithClient(fake, time.Minute))

	for range 2 {
		if _, err := enc.Encode(context.Background(), "hello", style.Default()); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one underlying encode, got %d", calls)
	}
}

func TestNewRequiresAddress(t *testing.T) {
	if _, err := New(context.Background(), config.RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}
