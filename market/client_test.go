package market_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptocortex/market"
)

func TestTopCoins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":64000.5,"price_change_percentage_24h":1.2},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3100.0,"price_change_percentage_24h":-0.8}
		]`))
	}))
	defer server.Close()

	client := market.NewClient(server.URL)
	coins, err := client.TopCoins(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "Bitcoin", coins[0].Name)
	assert.InDelta(t, 64000.5, coins[0].CurrentPrice, 0.001)
	assert.Equal(t, "eth", coins[1].Symbol)
}

func TestTopCoinsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := market.NewClient(server.URL)
	_, err := client.TopCoins(context.Background(), 5)
	assert.Error(t, err)
}

func TestTopCoinsUnreachable(t *testing.T) {
	client := market.NewClient("http://127.0.0.1:1")
	_, err := client.TopCoins(context.Background(), 5)
	assert.Error(t, err)
}
