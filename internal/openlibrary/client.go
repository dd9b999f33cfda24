// Package openlibrary is a thin client for the Open Library works API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ckreads/shelfbuild/internal/enrich"
)

const defaultBaseURL = "https://openlibrary.org"

// Client fetches work and edition records.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a production client against openlibrary.org.
func NewClient() *Client {
	return NewClientWithHTTP(defaultBaseURL, &http.Client{Timeout: 10 * time.Second})
}

// NewClientWithHTTP allows tests to point the client at a stub server or a
// mocked transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type workPayload struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Subjects         []string `json:"subjects"`
	FirstPublishDate string   `json:"first_publish_date"`
}

// GetWork fetches a work record. workKey must be in "/works/OL...W" form.
func (c *Client) GetWork(ctx context.Context, workKey string) (*enrich.Work, error) {
	var payload workPayload
	if err := c.getJSON(ctx, c.baseURL+workKey+".json", &payload); err != nil {
		return nil, err
	}

	work := &enrich.Work{
		Key:              payload.Key,
		Title:            payload.Title,
		Subjects:         payload.Subjects,
		FirstPublishDate: payload.FirstPublishDate,
	}
	if work.Key == "" {
		work.Key = workKey
	}
	return work, nil
}

type editionsPayload struct {
	Entries []struct {
		ISBN13      []string `json:"isbn_13"`
		ISBN10      []string `json:"isbn_10"`
		PublishDate string   `json:"publish_date"`
	} `json:"entries"`
}

// GetEditions fetches up to limit editions of a work.
func (c *Client) GetEditions(ctx context.Context, workKey string, limit int) ([]enrich.Edition, error) {
	url := fmt.Sprintf("%s%s/editions.json?limit=%d", c.baseURL, workKey, limit)

	var payload editionsPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	editions := make([]enrich.Edition, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		editions = append(editions, enrich.Edition{
			ISBNs:       append(append([]string(nil), entry.ISBN13...), entry.ISBN10...),
			PublishDate: entry.PublishDate,
		})
	}
	return editions, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return enrich.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
