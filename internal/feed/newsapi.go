package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gonewsag/internal/config"
	"gonewsag/internal/models"
)

// NewsAPIClient fetches headlines from a newsapi.org-style JSON API
type NewsAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewNewsAPIClient(baseURL, apiKey string, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		URLToImage  string    `json:"urlToImage"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (c *NewsAPIClient) Fetch(ctx context.Context, category config.CategoryConfig, query string, pageSize int) ([]Item, error) {
	params := url.Values{}
	params.Set("category", category.Upstream)
	params.Set("pageSize", strconv.Itoa(pageSize))
	if query != "" {
		params.Set("q", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, &models.UpstreamError{Category: category.Upstream, Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{Category: category.Upstream, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.UpstreamError{
			Category: category.Upstream,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &models.UpstreamError{Category: category.Upstream, Err: err}
	}

	items := make([]Item, 0, len(body.Articles))
	for _, a := range body.Articles {
		items = append(items, Item{
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    a.URLToImage,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			SourceName:  a.Source.Name,
		})
	}
	return items, nil
}
