package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/limejump/corona-analytics/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on disabled client error = %v", err)
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(Disabled(), "test")
	ctx := context.Background()

	if cache.Enabled() {
		t.Error("Expected cache over a disabled client to report disabled")
	}

	if err := cache.Set(ctx, "key", "value", TTLShort); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var result string
	found, err := cache.Get(ctx, "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestQuotesKey(t *testing.T) {
	tests := []struct {
		encoded  string
		expected string
	}{
		{"", "ppa:quotes:all"},
		{"mpan=123", "ppa:quotes:mpan=123"},
		{"contracted_ppa=true&mpan=123", "ppa:quotes:contracted_ppa=true&mpan=123"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := QuotesKey(tt.encoded); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

// setupRedis connects to a local Redis or skips the test
func setupRedis(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skipping test; redis not available: %v", err)
	}
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})
	return Wrap(rdb)
}

func TestCache_RoundTrip(t *testing.T) {
	cache := NewCache(setupRedis(t), "test")
	ctx := context.Background()
	require.True(t, cache.Enabled())

	type quote struct {
		QuoteID int64  `json:"quote_id"`
		MPAN    string `json:"mpan"`
	}

	found, err := cache.Get(ctx, QuotesKey("mpan=1"), &[]quote{})
	require.NoError(t, err)
	require.False(t, found)

	in := []quote{{QuoteID: 1001, MPAN: "1"}}
	require.NoError(t, cache.Set(ctx, QuotesKey("mpan=1"), in, time.Minute))

	var out []quote
	found, err = cache.Get(ctx, QuotesKey("mpan=1"), &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, out)

	require.NoError(t, cache.Delete(ctx, QuotesKey("mpan=1")))
	found, err = cache.Get(ctx, QuotesKey("mpan=1"), &out)
	require.NoError(t, err)
	require.False(t, found)
}
