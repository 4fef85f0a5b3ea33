// Package market fetches coin prices from the CoinGecko API.
package market

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

type Coin struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

// TopCoins returns the top coins by market cap in USD.
func (c *Client) TopCoins(ctx context.Context, count int) ([]Coin, error) {
	var coins []Coin

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"order":       "market_cap_desc",
			"per_page":    strconv.Itoa(count),
			"page":        "1",
			"sparkline":   "false",
		}).
		SetResult(&coins).
		Get("/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("fetching market data: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market API returned %s", resp.Status())
	}

	return coins, nil
}
