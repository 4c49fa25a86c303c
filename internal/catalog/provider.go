// Package catalog talks to the external audiobook catalog: the
// regional Audible products API for searching and the Audnexus API for
// full records by id.
package catalog

import (
	"context"
	"fmt"

	"audimatch/internal/domain"
	"audimatch/internal/httpclient"
	"audimatch/internal/logger"
)

// Provider is the candidate fetcher consumed by the agent.
type Provider interface {
	SearchBooks(ctx context.Context, title, author, region string) ([]domain.BookCandidate, error)
	SearchAuthors(ctx context.Context, name, region string) ([]domain.AuthorCandidate, error)
	GetBook(ctx context.Context, id domain.CatalogID) (*domain.BookRecord, error)
	GetAuthor(ctx context.Context, id domain.CatalogID) (*domain.AuthorRecord, error)
	GetImage(ctx context.Context, url string) ([]byte, error)
}

// Client implements Provider against the live APIs.
type Client struct {
	http   *httpclient.Client
	logger *logger.Logger

	// audibleBase overrides the regional Audible API host when set;
	// audnexusBase overrides the Audnexus host. Both exist for tests.
	audibleBase  string
	audnexusBase string
}

var _ Provider = (*Client)(nil)

// NewClient creates a catalog client using the live API hosts.
func NewClient(hc *httpclient.Client, log *logger.Logger) *Client {
	return &Client{
		http:   hc,
		logger: log.WithComponent("catalog"),
	}
}

// NewClientWithBaseURLs creates a client pointed at custom hosts.
func NewClientWithBaseURLs(hc *httpclient.Client, log *logger.Logger, audibleBase, audnexusBase string) *Client {
	c := NewClient(hc, log)
	c.audibleBase = audibleBase
	c.audnexusBase = audnexusBase
	return c
}

// GetImage fetches cover art bytes through the shared transport.
func (c *Client) GetImage(ctx context.Context, url string) ([]byte, error) {
	data, err := c.http.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	return data, nil
}
