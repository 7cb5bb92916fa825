package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WikipediaClient answers concept checks from the Wikipedia REST API.
type WikipediaClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    "https://en.wikipedia.org",
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Extract string `json:"extract"`
}

// Verify searches for the topic and returns a short summary of the top hit.
// Any failure (no results, network, bad payload) is an error for the caller to
// convert into its fixed fallback string.
func (c *WikipediaClient) Verify(ctx context.Context, topic string) (string, error) {
	title, err := c.search(ctx, topic)
	if err != nil {
		return "", err
	}
	summary, err := c.summary(ctx, title)
	if err != nil {
		return "", err
	}
	return summary, nil
}

func (c *WikipediaClient) search(ctx context.Context, topic string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", topic)
	q.Set("srlimit", "1")
	q.Set("format", "json")

	var sr searchResponse
	if err := c.getJSON(ctx, "/w/api.php?"+q.Encode(), &sr); err != nil {
		return "", err
	}
	if len(sr.Query.Search) == 0 {
		return "", fmt.Errorf("wikipedia: no results for %q", topic)
	}
	return sr.Query.Search[0].Title, nil
}

func (c *WikipediaClient) summary(ctx context.Context, title string) (string, error) {
	var sum summaryResponse
	if err := c.getJSON(ctx, "/api/rest_v1/page/summary/"+url.PathEscape(title), &sum); err != nil {
		return "", err
	}
	if sum.Extract == "" {
		return "", fmt.Errorf("wikipedia: empty summary for %q", title)
	}
	return sum.Extract, nil
}

func (c *WikipediaClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wikipedia: status=%d body=%s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
