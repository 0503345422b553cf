package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockfolio/metrics"
)

const DefaultCacheTTL = 5 * time.Minute

// PriceSource looks up a live price.
type PriceSource interface {
	GlobalQuote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Quote is a price with its provenance.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	Cached bool
}

type Service struct {
	source  PriceSource
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// NewService wires the quote service. cache and m may be nil.
func NewService(source PriceSource, cache Cache, ttl time.Duration, m *metrics.Metrics, log logrus.FieldLogger) *Service {
	if source == nil {
		panic("PriceSource cannot be nil for market Service")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{source: source, cache: cache, ttl: ttl, metrics: m, log: log}
}

// Price returns the cached price of symbol, or fetches and caches it. Cache
// failures are logged and otherwise ignored.
func (s *Service) Price(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := cacheKey(symbol)
	logCtx := s.log.WithField("symbol", symbol)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logCtx.WithError(err).Warn("Quote cache read failed")
		} else if ok {
			if price, err := decimal.NewFromString(cached); err == nil {
				s.metrics.IncrementQuoteCacheHits()
				return &Quote{Symbol: symbol, Price: price, Cached: true}, nil
			}
			logCtx.WithField("value", cached).Warn("Ignoring unparsable cached quote")
		}
	}

	s.metrics.IncrementQuoteCacheMisses()
	price, err := s.source.GlobalQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, price.String(), s.ttl); err != nil {
			logCtx.WithError(err).Warn("Quote cache write failed")
		}
	}
	return &Quote{Symbol: symbol, Price: price}, nil
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("stock:%s:price", symbol)
}
