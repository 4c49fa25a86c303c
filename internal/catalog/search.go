package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"audimatch/internal/domain"
)

// SearchBooks queries the regional products API by title and optional
// author and returns valid candidates in the catalog's relevance
// order. Records missing required fields are dropped here, so later
// candidates move up a relevance slot; only unreleased titles keep
// their slot, and that happens downstream in the scorer. A malformed
// response body yields an empty list, not an error; transport failures
// propagate so the caller can log and give up.
func (c *Client) SearchBooks(ctx context.Context, title, author, region string) ([]domain.BookCandidate, error) {
	u := c.audibleSearchURL(region, title, author)
	body, err := c.http.GetBytes(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("book search failed: %w", err)
	}

	var resp audibleProductsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("Malformed book search response, treating as no results", "error", err, "region", region)
		return nil, nil
	}

	candidates := make([]domain.BookCandidate, 0, len(resp.Products))
	for i, p := range resp.Products {
		candidate, ok := p.toBookCandidate(region)
		if !ok {
			c.logger.Debug("Dropping candidate with missing required fields", "index", i, "asin", p.ASIN)
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

// SearchAuthors queries Audnexus by author name.
func (c *Client) SearchAuthors(ctx context.Context, name, region string) ([]domain.AuthorCandidate, error) {
	u := c.audnexusAuthorSearchURL(name, region)
	body, err := c.http.GetBytes(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("author search failed: %w", err)
	}

	var authors []audnexusAuthor
	if err := json.Unmarshal(body, &authors); err != nil {
		c.logger.Warn("Malformed author search response, treating as no results", "error", err, "region", region)
		return nil, nil
	}

	candidates := make([]domain.AuthorCandidate, 0, len(authors))
	for i, a := range authors {
		candidate, ok := a.toAuthorCandidate(region)
		if !ok {
			c.logger.Debug("Dropping author candidate with missing required fields", "index", i, "asin", a.ASIN)
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
