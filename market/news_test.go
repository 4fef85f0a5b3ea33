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

func TestLatestNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/news", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles":[
			{"title":"Bitcoin breaks 100k","url":"https://example.com/btc","source":"Example"},
			{"title":"Ethereum upgrade ships","url":"https://example.com/eth","source":"Example"}
		]}`))
	}))
	defer server.Close()

	client := market.NewNewsClient(server.URL)
	articles, err := client.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Bitcoin breaks 100k", articles[0].Title)
	assert.Equal(t, "https://example.com/eth", articles[1].URL)
}

func TestLatestNewsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := market.NewNewsClient(server.URL)
	_, err := client.Latest(context.Background())
	assert.Error(t, err)
}
