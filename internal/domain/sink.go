package domain

import "time"

// Metadata is the host-owned mutable metadata record the compiler
// writes into. Except for Rating, fields are only overwritten when
// empty or when the update is forced.
type Metadata struct {
	ID          string // stored catalog id, "asin_region"
	Title       string
	SortTitle   string
	Studio      string
	Summary     string
	ReleaseDate *time.Time
	Rating      float64 // host scale 0-10

	// Clearable tag sets. Each is cleared and repopulated as a whole,
	// never merged with pre-existing entries.
	Genres []string
	Styles []string // narrators
	Moods  []string // primary authors and series tags

	CoverURL  string
	CoverData []byte
}

// HasCover reports whether a cover is already stored for url.
func (m *Metadata) HasCover(url string) bool {
	return m.CoverURL == url && len(m.CoverData) > 0
}
