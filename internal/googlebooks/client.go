// Package googlebooks adapts the Google Books volumes API to the enrichment
// source interfaces.
package googlebooks

import (
	"context"
	"fmt"
	"strings"

	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"

	"github.com/ckreads/shelfbuild/internal/enrich"
)

// Client wraps the generated Books service.
type Client struct {
	svc *books.Service
}

// New creates a Books client. Extra options are passed through, which lets
// tests substitute an HTTP client.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}

	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FindByISBN looks up the single volume matching an exact ISBN.
func (c *Client) FindByISBN(ctx context.Context, isbn string) (*enrich.Volume, error) {
	result, err := c.svc.Volumes.List("isbn:" + isbn).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query volumes: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, enrich.ErrNotFound
	}

	volume := volumeFromItem(result.Items[0])
	return &volume, nil
}

// Search runs a title/author query and returns up to limit candidates in the
// API's own ranking order.
func (c *Client) Search(ctx context.Context, title, author string, limit int) ([]enrich.Volume, error) {
	query := fmt.Sprintf("intitle:%s inauthor:%s", title, author)

	result, err := c.svc.Volumes.List(query).MaxResults(int64(limit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query volumes: %w", err)
	}

	volumes := make([]enrich.Volume, 0, len(result.Items))
	for _, item := range result.Items {
		volumes = append(volumes, volumeFromItem(item))
	}
	return volumes, nil
}

func volumeFromItem(item *books.Volume) enrich.Volume {
	volume := enrich.Volume{ID: item.Id}

	info := item.VolumeInfo
	if info == nil {
		return volume
	}

	volume.Title = info.Title
	volume.Authors = info.Authors
	volume.PublishedDate = info.PublishedDate
	volume.Categories = info.Categories

	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13", "ISBN_10":
			volume.ISBNs = append(volume.ISBNs, id.Identifier)
		}
	}

	if info.ImageLinks != nil && info.ImageLinks.Thumbnail != "" {
		// Thumbnails come back as plain http links.
		volume.CoverURL = strings.Replace(info.ImageLinks.Thumbnail, "http://", "https://", 1)
	}

	return volume
}
