// Package domain holds the data model shared by the matching pipeline.
package domain

import (
	"strings"
	"time"

	"audimatch/internal/constants"
)

// CatalogID identifies one catalog item in one regional marketplace.
// Two ids are equal iff both the ASIN and the region match.
type CatalogID struct {
	ASIN   string
	Region string
}

// StoredID renders the composite identifier persisted by the host,
// e.g. "B002V0QK4C_us".
func (id CatalogID) StoredID() string {
	return id.ASIN + constants.StoredIDSeparator + id.Region
}

func (id CatalogID) String() string {
	return id.StoredID()
}

// IsZero reports whether the id carries no ASIN.
func (id CatalogID) IsZero() bool {
	return id.ASIN == ""
}

// ParseStoredID splits a stored identifier on its last underscore. Ids
// written before region support have no region suffix; those fall back
// to defaultRegion.
func ParseStoredID(stored, defaultRegion string) CatalogID {
	if idx := strings.LastIndex(stored, constants.StoredIDSeparator); idx > 0 {
		asin, region := stored[:idx], stored[idx+1:]
		if ValidRegion(region) {
			return CatalogID{ASIN: asin, Region: region}
		}
	}
	return CatalogID{ASIN: stored, Region: defaultRegion}
}

// LocalMediaQuery is the search input assembled from the host's scanner
// hints. Album usually carries the book title; some scanners only
// populate Title with the first track's name.
type LocalMediaQuery struct {
	Title    string
	Album    string
	Artist   string
	Filename string
	Manual   bool
	Language string // library language code, e.g. "en"
}

// SearchTerm returns the best available title-ish search term.
func (q LocalMediaQuery) SearchTerm() string {
	if q.Album != "" {
		return q.Album
	}
	return q.Title
}

// NormalizedQuery is derived deterministically from a LocalMediaQuery
// and never mutated afterwards.
type NormalizedQuery struct {
	Title    string
	Author   string
	Region   string
	Language string
	Manual   bool
	Override CatalogID // non-zero when an embedded id short-circuits scoring
}

// Person is a named contributor on a catalog record.
type Person struct {
	Name string `json:"name"`
}

// Series places a book inside a named series.
type Series struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Genre is a named catalog genre. Type distinguishes parent genres from
// child tags in the catalog's hierarchy.
type Genre struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// BookCandidate is one search hit returned by the catalog for a book
// query. Records missing any required field are dropped before scoring.
type BookCandidate struct {
	ID          CatalogID
	Title       string
	Subtitle    string
	Authors     []Person
	Narrators   []Person
	Language    string
	ReleaseDate *time.Time
}

// AuthorNames returns the candidate's authors joined with ", ", the
// form the scoring engine compares against the local author.
func (c BookCandidate) AuthorNames() string {
	names := make([]string, 0, len(c.Authors))
	for _, a := range c.Authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// NarratorNames returns the candidate's narrators joined with ", ".
func (c BookCandidate) NarratorNames() string {
	names := make([]string, 0, len(c.Narrators))
	for _, n := range c.Narrators {
		names = append(names, n.Name)
	}
	return strings.Join(names, ", ")
}

// AuthorCandidate is one search hit for an author query.
type AuthorCandidate struct {
	ID   CatalogID
	Name string
}

// ScoredResult is one ranked search result handed back to the host.
// Results are sorted strictly descending by Score; Position is the
// candidate's original index in the catalog's relevance order.
type ScoredResult struct {
	ID       CatalogID
	Score    int
	Name     string
	Year     int
	Position int
}

// BookRecord is the full update-phase payload fetched by id.
// Optional catalog keys parse to zero values, never errors.
type BookRecord struct {
	ID              CatalogID
	Title           string
	Subtitle        string
	Summary         string
	Publisher       string
	Language        string
	ReleaseDate     *time.Time
	Genres          []Genre
	SeriesPrimary   *Series
	SeriesSecondary *Series
	Rating          float64 // 0-5 catalog scale; 0 means absent
	CoverURL        string
	Authors         []Person
	Narrators       []Person
}

// AuthorRecord is the full author payload fetched by id.
type AuthorRecord struct {
	ID          CatalogID
	Name        string
	Description string
	Genres      []Genre
	CoverURL    string
}
