package meilisearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"github.com/ncobase/geocontent/data/config"
)

// Client Meilisearch client wrapper
type Client struct {
	client meilisearch.ServiceManager
}

// SearchParams is an alias for meilisearch.SearchRequest type
type SearchParams = meilisearch.SearchRequest

// NewMeilisearch creates new Meilisearch client
func NewMeilisearch(host, apiKey string) *Client {
	if host == "" {
		return &Client{client: nil}
	}
	ms := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &Client{client: ms}
}

// Connect creates a client from conf and checks its health.
func Connect(ctx context.Context, conf *config.Meilisearch) (*Client, error) {
	if conf == nil || conf.Host == "" {
		return nil, errors.New("meilisearch: host is empty")
	}
	c := NewMeilisearch(conf.Host, conf.APIKey)
	if err := c.Health(ctx); err != nil {
		return nil, fmt.Errorf("meilisearch: health check failed: %w", err)
	}
	return c, nil
}

// Search searches from Meilisearch
func (c *Client) Search(ctx context.Context, index, query string, options *SearchParams) (*meilisearch.SearchResponse, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("meilisearch client is nil, cannot perform search")
	}
	resp, err := c.client.Index(index).SearchWithContext(ctx, query, options)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search error: %v", err)
	}
	return resp, nil
}

// Health checks the server health.
func (c *Client) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("meilisearch client is nil, cannot check health")
	}
	_, err := c.client.HealthWithContext(ctx)
	return err
}
