package catalog

import (
	"strconv"
	"strings"
	"time"

	"audimatch/internal/domain"
)

// Raw API shapes. Every field is optional on the wire; conversion
// fails closed, dropping records that lack required fields instead of
// letting empty fields reach the scorer.

type apiPerson struct {
	ASIN string `json:"asin"`
	Name string `json:"name"`
}

type apiSeries struct {
	ASIN     string `json:"asin"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type apiGenre struct {
	ASIN string `json:"asin"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// audibleProduct is one item of the Audible products search response.
type audibleProduct struct {
	ASIN                string      `json:"asin"`
	Title               string      `json:"title"`
	Subtitle            string      `json:"subtitle"`
	Authors             []apiPerson `json:"authors"`
	Narrators           []apiPerson `json:"narrators"`
	Language            string      `json:"language"`
	ReleaseDate         string      `json:"release_date"`
	PublicationDatetime string      `json:"publication_datetime"`
}

type audibleProductsResponse struct {
	Products     []audibleProduct `json:"products"`
	TotalResults int              `json:"total_results"`
}

// audnexusBook is the full Audnexus book payload.
type audnexusBook struct {
	ASIN            string      `json:"asin"`
	Title           string      `json:"title"`
	Subtitle        string      `json:"subtitle"`
	Summary         string      `json:"summary"`
	PublisherName   string      `json:"publisherName"`
	Language        string      `json:"language"`
	ReleaseDate     string      `json:"releaseDate"`
	Rating          string      `json:"rating"`
	Image           string      `json:"image"`
	Genres          []apiGenre  `json:"genres"`
	SeriesPrimary   *apiSeries  `json:"seriesPrimary"`
	SeriesSecondary *apiSeries  `json:"seriesSecondary"`
	Authors         []apiPerson `json:"authors"`
	Narrators       []apiPerson `json:"narrators"`
}

// audnexusAuthor is the full Audnexus author payload; the same shape
// comes back (without description) from the author name search.
type audnexusAuthor struct {
	ASIN        string     `json:"asin"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Genres      []apiGenre `json:"genres"`
}

// toBookCandidate validates and converts a search product. The second
// return is false when a required field is missing and the record must
// be skipped.
func (p audibleProduct) toBookCandidate(region string) (domain.BookCandidate, bool) {
	if p.ASIN == "" || strings.TrimSpace(p.Title) == "" || len(p.Authors) == 0 {
		return domain.BookCandidate{}, false
	}
	return domain.BookCandidate{
		ID:          domain.CatalogID{ASIN: p.ASIN, Region: region},
		Title:       strings.TrimSpace(p.Title),
		Subtitle:    strings.TrimSpace(p.Subtitle),
		Authors:     convertPeople(p.Authors),
		Narrators:   convertPeople(p.Narrators),
		Language:    strings.TrimSpace(p.Language),
		ReleaseDate: parseDate(p.ReleaseDate, p.PublicationDatetime),
	}, true
}

func (b audnexusBook) toBookRecord(id domain.CatalogID) (*domain.BookRecord, bool) {
	if b.ASIN == "" || strings.TrimSpace(b.Title) == "" {
		return nil, false
	}

	rating, _ := strconv.ParseFloat(b.Rating, 64)

	rec := &domain.BookRecord{
		ID:          domain.CatalogID{ASIN: b.ASIN, Region: id.Region},
		Title:       strings.TrimSpace(b.Title),
		Subtitle:    strings.TrimSpace(b.Subtitle),
		Summary:     b.Summary,
		Publisher:   strings.TrimSpace(b.PublisherName),
		Language:    strings.TrimSpace(b.Language),
		ReleaseDate: parseDate(b.ReleaseDate),
		Rating:      rating,
		CoverURL:    b.Image,
		Authors:     convertPeople(b.Authors),
		Narrators:   convertPeople(b.Narrators),
	}

	for _, g := range b.Genres {
		if g.Name == "" {
			continue
		}
		rec.Genres = append(rec.Genres, domain.Genre{Name: g.Name, Type: g.Type})
	}
	if s := convertSeries(b.SeriesPrimary); s != nil {
		rec.SeriesPrimary = s
	}
	if s := convertSeries(b.SeriesSecondary); s != nil {
		rec.SeriesSecondary = s
	}
	return rec, true
}

func (a audnexusAuthor) toAuthorRecord(region string) (*domain.AuthorRecord, bool) {
	if a.ASIN == "" || strings.TrimSpace(a.Name) == "" {
		return nil, false
	}
	rec := &domain.AuthorRecord{
		ID:          domain.CatalogID{ASIN: a.ASIN, Region: region},
		Name:        strings.TrimSpace(a.Name),
		Description: a.Description,
		CoverURL:    a.Image,
	}
	for _, g := range a.Genres {
		if g.Name == "" {
			continue
		}
		rec.Genres = append(rec.Genres, domain.Genre{Name: g.Name, Type: g.Type})
	}
	return rec, true
}

func (a audnexusAuthor) toAuthorCandidate(region string) (domain.AuthorCandidate, bool) {
	if a.ASIN == "" || strings.TrimSpace(a.Name) == "" {
		return domain.AuthorCandidate{}, false
	}
	return domain.AuthorCandidate{
		ID:   domain.CatalogID{ASIN: a.ASIN, Region: region},
		Name: strings.TrimSpace(a.Name),
	}, true
}

func convertPeople(people []apiPerson) []domain.Person {
	out := make([]domain.Person, 0, len(people))
	for _, p := range people {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.Person{Name: name})
	}
	return out
}

func convertSeries(s *apiSeries) *domain.Series {
	if s == nil || strings.TrimSpace(s.Name) == "" {
		return nil
	}
	return &domain.Series{Name: strings.TrimSpace(s.Name), Position: strings.TrimSpace(s.Position)}
}

// parseDate tries each value against the date layouts the catalog is
// known to emit. A candidate with no parseable date simply has none.
func parseDate(values ...string) *time.Time {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
	}
	return nil
}
