package market

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

type newsResponse struct {
	Articles []Article `json:"articles"`
}

// NewsClient fetches headlines from the news feed, which lives on a
// different host than the price API.
type NewsClient struct {
	http *resty.Client
}

func NewNewsClient(baseURL string) *NewsClient {
	return &NewsClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

// Latest returns the current headlines.
func (c *NewsClient) Latest(ctx context.Context) ([]Article, error) {
	var payload newsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/news")
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("news API returned %s", resp.Status())
	}

	return payload.Articles, nil
}
