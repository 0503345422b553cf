package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/metrics"
)

type fakeSource struct {
	price decimal.Decimal
	err   error
	calls int
}

func (f *fakeSource) GlobalQuote(context.Context, string) (decimal.Decimal, error) {
	f.calls++
	return f.price, f.err
}

type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestService_Price_CachesUpstreamResult(t *testing.T) {
	source := &fakeSource{price: decimal.RequireFromString("101.5")}
	cache := newFakeCache()
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(source, cache, time.Minute, m, nil)
	ctx := context.Background()

	first, err := svc.Price(ctx, "msft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", first.Symbol)
	assert.False(t, first.Cached)
	assert.Equal(t, "101.5", cache.values["stock:MSFT:price"])
	assert.Equal(t, time.Minute, cache.ttls["stock:MSFT:price"])

	second, err := svc.Price(ctx, "MSFT")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, first.Price.Equal(second.Price))

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteCacheMisses))
}

func TestService_Price_WithoutCache(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(3)}
	svc := NewService(source, nil, 0, nil, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Price(context.Background(), "X")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, source.calls)
}

func TestService_Price_CacheFailureFallsThrough(t *testing.T) {
	source := &fakeSource{price: decimal.NewFromInt(7)}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(source, cache, time.Minute, nil, nil)

	q, err := svc.Price(context.Background(), "IBM")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(q.Price))
}

func TestService_Price_UpstreamErrors(t *testing.T) {
	svc := NewService(&fakeSource{err: ErrQuoteNotFound}, newFakeCache(), time.Minute, nil, nil)

	_, err := svc.Price(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}
