package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GlobalQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			_, _ = w.Write([]byte(`{"Global Quote":{"01. symbol":"AAPL","05. price":"189.8400"}}`))
		case "NONE":
			_, _ = w.Write([]byte(`{"Global Quote":{}}`))
		case "BROKEN":
			_, _ = w.Write([]byte(`{"Global Quote":`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "test-key", srv.Client())
	ctx := context.Background()

	price, err := client.GlobalQuote(ctx, "AAPL")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("189.84").Equal(price), "price = %s", price)

	_, err = client.GlobalQuote(ctx, "NONE")
	assert.ErrorIs(t, err, ErrQuoteNotFound)

	_, err = client.GlobalQuote(ctx, "BROKEN")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = client.GlobalQuote(ctx, "DOWN")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k", nil).GlobalQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUpstream)
}
