package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// NoNews is shown when no headline could be retrieved.
const NoNews = "No news available"

// NewsSource returns the latest headline for a ticker.
type NewsSource interface {
	Headline(ctx context.Context, ticker string) (string, error)
}

// YahooNews implements NewsSource using the Yahoo Finance search API.
type YahooNews struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooNews creates a news source with optional proxy support.
func NewYahooNews(proxyURL string) *YahooNews {
	return &YahooNews{BaseURL: yahooBaseURL, Client: newHTTPClient(proxyURL)}
}

// Headline returns the title of the first news item for ticker, or NoNews
// when the search returns none.
func (n *YahooNews) Headline(ctx context.Context, ticker string) (string, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s", n.BaseURL, url.QueryEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return NoNews, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := n.Client.Do(req)
	if err != nil {
		return NoNews, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return NoNews, fmt.Errorf("news fetch: status %d", resp.StatusCode)
	}

	var result struct {
		News []struct {
			Title string `json:"title"`
		} `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return NoNews, fmt.Errorf("decode news: %w", err)
	}
	if len(result.News) == 0 || result.News[0].Title == "" {
		return NoNews, nil
	}
	return result.News[0].Title, nil
}
