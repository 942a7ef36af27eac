package corona_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/internal/external/corona"
	"github.com/limejump/corona-analytics/internal/external/corona/coronatest"
	"github.com/limejump/corona-analytics/pkg/logger"
	"github.com/limejump/corona-analytics/pkg/redis"
)

func TestCachedQuotes_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: "localhost:6379", DB: 14})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skipping test; redis not available: %v", err)
	}
	defer func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	}()

	srv := coronatest.NewServer().Seed()
	defer srv.Close()

	rec := &countingRecorder{}
	cached := corona.NewCachedQuotes(newClient(t, srv), redis.NewCache(redis.Wrap(rdb), "test"), time.Minute, logger.Nop()).
		WithRecorder(rec)
	ctx := context.Background()

	filters := contract.BuildFilters(contract.QueryCriteria{AssetID: coronatest.MPANSolar})
	first, err := cached.FetchQuotes(ctx, filters)
	require.NoError(t, err)
	second, err := cached.FetchQuotes(ctx, filters)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.CountRequests(corona.PathQuotes))
	assert.Equal(t, 1, rec.hits)

	require.NoError(t, cached.Invalidate(ctx, filters))
	_, err = cached.FetchQuotes(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.CountRequests(corona.PathQuotes))
}
