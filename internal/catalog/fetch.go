package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"audimatch/internal/domain"
)

// GetBook fetches the full record for a known catalog id. Unlike
// search, a malformed or incomplete record here is an error: the
// caller asked for this specific id and got nothing usable.
func (c *Client) GetBook(ctx context.Context, id domain.CatalogID) (*domain.BookRecord, error) {
	body, err := c.http.GetBytes(ctx, c.audnexusBookURL(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch book %s: %w", id.StoredID(), err)
	}

	var book audnexusBook
	if err := json.Unmarshal(body, &book); err != nil {
		return nil, fmt.Errorf("malformed book record for %s: %w", id.StoredID(), err)
	}

	rec, ok := book.toBookRecord(id)
	if !ok {
		return nil, fmt.Errorf("book record for %s is missing required fields", id.StoredID())
	}
	return rec, nil
}

// GetAuthor fetches the full author record for a known catalog id.
func (c *Client) GetAuthor(ctx context.Context, id domain.CatalogID) (*domain.AuthorRecord, error) {
	body, err := c.http.GetBytes(ctx, c.audnexusAuthorURL(id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch author %s: %w", id.StoredID(), err)
	}

	var author audnexusAuthor
	if err := json.Unmarshal(body, &author); err != nil {
		return nil, fmt.Errorf("malformed author record for %s: %w", id.StoredID(), err)
	}

	rec, ok := author.toAuthorRecord(id.Region)
	if !ok {
		return nil, fmt.Errorf("author record for %s is missing required fields", id.StoredID())
	}
	return rec, nil
}
