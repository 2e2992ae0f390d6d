package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SilverSentinel/internal/model"

	"github.com/tidwall/gjson"
)

// NewsFetcher pulls recent headlines from NewsAPI (/v2/everything).
type NewsFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewNewsFetcher creates a NewsAPI client with optional proxy support.
func NewNewsFetcher(baseURL, apiKey, proxyURL string) *NewsFetcher {
	return &NewsFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

// FetchHeadlines returns at most limit headlines for query, newest first.
func (f *NewsFetcher) FetchHeadlines(ctx context.Context, query string, limit int) ([]model.Headline, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("news: api key not configured")
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("sortBy", "publishedAt")
	if limit > 0 {
		q.Set("pageSize", fmt.Sprint(limit))
	}
	endpoint := fmt.Sprintf("%s/v2/everything?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("news: invalid json (status %d)", resp.StatusCode)
	}
	doc := gjson.ParseBytes(body)
	if status := doc.Get("status").String(); status != "ok" {
		return nil, fmt.Errorf("news: status %d, %s: %s", resp.StatusCode, doc.Get("code").String(), doc.Get("message").String())
	}

	var out []model.Headline
	doc.Get("articles").ForEach(func(_, a gjson.Result) bool {
		if limit > 0 && len(out) >= limit {
			return false
		}
		title := a.Get("title").String()
		if title == "" {
			return true
		}
		h := model.Headline{
			Title:  title,
			URL:    a.Get("url").String(),
			Source: a.Get("source.name").String(),
		}
		if ts, err := time.Parse(time.RFC3339, a.Get("publishedAt").String()); err == nil {
			h.PublishedAt = ts
		}
		out = append(out, h)
		return true
	})
	return out, nil
}
