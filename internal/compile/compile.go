// Package compile maps a fetched catalog record into the host's
// mutable metadata fields.
package compile

import (
	"context"
	"strings"

	"audimatch/internal/author"
	"audimatch/internal/catalog"
	"audimatch/internal/config"
	"audimatch/internal/constants"
	"audimatch/internal/domain"
	"audimatch/internal/logger"
)

// Compiler writes catalog records into a metadata sink. It is the only
// core component with side effects beyond logging.
//
// The overwrite policy is uniform: a field is written when it is empty
// or when force is set. Rating is the exception, catalog ratings are
// considered always fresher than whatever is stored.
type Compiler struct {
	cfg      *config.Config
	provider catalog.Provider
	logger   *logger.Logger
}

func NewCompiler(cfg *config.Config, provider catalog.Provider, log *logger.Logger) *Compiler {
	return &Compiler{
		cfg:      cfg,
		provider: provider,
		logger:   log.WithComponent("compile"),
	}
}

// ApplyBook writes a full book record into the sink.
func (c *Compiler) ApplyBook(ctx context.Context, rec *domain.BookRecord, sink *domain.Metadata, force bool) error {
	sink.ID = rec.ID.StoredID()

	writeString(&sink.Title, c.displayTitle(rec), force)
	writeString(&sink.SortTitle, sortTitle(rec), force)
	writeString(&sink.Studio, rec.Publisher, force)
	writeString(&sink.Summary, cleanSummary(rec.Summary), force)

	if sink.ReleaseDate == nil || force {
		if rec.ReleaseDate != nil {
			sink.ReleaseDate = rec.ReleaseDate
		}
	}

	// Catalog scale is 0-5, the host stores 0-10.
	if rec.Rating > 0 {
		sink.Rating = rec.Rating * 2
	}

	c.applyGenres(rec, sink, force)
	c.applyStyles(rec, sink, force)
	c.applyMoods(rec, sink, force)

	if err := c.applyCover(ctx, rec.CoverURL, sink, force); err != nil {
		c.logger.Error("Failed to fetch cover", "error", err, "url", rec.CoverURL)
	}
	return nil
}

// ApplyAuthor writes a full author record into the sink. Author pages
// carry a name, a biography, genres, and a portrait.
func (c *Compiler) ApplyAuthor(ctx context.Context, rec *domain.AuthorRecord, sink *domain.Metadata, force bool) error {
	sink.ID = rec.ID.StoredID()

	writeString(&sink.Title, rec.Name, force)
	writeString(&sink.SortTitle, lastFirst(rec.Name), force)
	writeString(&sink.Summary, cleanSummary(rec.Description), force)

	if len(sink.Genres) == 0 || force {
		sink.Genres = genreNames(rec.Genres)
	}

	if err := c.applyCover(ctx, rec.CoverURL, sink, force); err != nil {
		c.logger.Error("Failed to fetch author image", "error", err, "url", rec.CoverURL)
	}
	return nil
}

// displayTitle appends the subtitle with ": " unless titles are being
// simplified, in which case the bare title stands alone.
func (c *Compiler) displayTitle(rec *domain.BookRecord) string {
	if c.cfg.SimplifyTitles || rec.Subtitle == "" {
		return rec.Title
	}
	return rec.Title + constants.SubtitleSeparator + rec.Subtitle
}

// sortTitle builds "{series}, Book {position} - {title}" when the
// record belongs to a series, so volumes shelve together in order.
func sortTitle(rec *domain.BookRecord) string {
	s := rec.SeriesPrimary
	if s == nil || s.Name == "" {
		return rec.Title
	}
	prefix := s.Name
	if label := volumeLabel(s.Position); label != "" {
		prefix += constants.SeriesVolumeSeparator + label
	}
	return prefix + constants.SortTitleSeparator + rec.Title
}

// volumeLabel prefixes a series position with "Book " unless the
// catalog already phrased it that way.
func volumeLabel(position string) string {
	position = strings.TrimSpace(position)
	if position == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(position), "book ") {
		return position
	}
	return constants.VolumePrefix + position
}

func (c *Compiler) applyGenres(rec *domain.BookRecord, sink *domain.Metadata, force bool) {
	if c.cfg.KeepExistingGenres && len(sink.Genres) > 0 {
		return
	}
	if len(sink.Genres) == 0 || force {
		sink.Genres = genreNames(rec.Genres)
	}
}

// applyStyles stores narrator names as style tags.
func (c *Compiler) applyStyles(rec *domain.BookRecord, sink *domain.Metadata, force bool) {
	if len(sink.Styles) == 0 || force {
		styles := make([]string, 0, len(rec.Narrators))
		for _, n := range rec.Narrators {
			styles = append(styles, n.Name)
		}
		sink.Styles = styles
	}
}

// applyMoods stores primary authors and series tags as mood tags.
// Contributor-tagged names (translators, editors) are not authors and
// are left out.
func (c *Compiler) applyMoods(rec *domain.BookRecord, sink *domain.Metadata, force bool) {
	if len(sink.Moods) > 0 && !force {
		return
	}

	var moods []string
	if c.cfg.AuthorsAsMoods {
		for _, a := range rec.Authors {
			if _, tagged := author.ParseContributor(a.Name); tagged {
				continue
			}
			name := a.Name
			if c.cfg.SortAuthorsByLastName {
				name = lastFirst(name)
			}
			moods = append(moods, name)
		}
	}
	for _, s := range []*domain.Series{rec.SeriesPrimary, rec.SeriesSecondary} {
		if s != nil && s.Name != "" {
			moods = append(moods, "Series: "+s.Name)
		}
	}
	sink.Moods = moods
}

// applyCover fetches and stores cover art according to the configured
// policy. An unchanged URL with art already present is never refetched.
func (c *Compiler) applyCover(ctx context.Context, url string, sink *domain.Metadata, force bool) error {
	if url == "" || c.cfg.CoverPolicy == config.CoverNever {
		return nil
	}
	if sink.HasCover(url) && !force {
		return nil
	}
	if c.cfg.CoverPolicy == config.CoverMissing && len(sink.CoverData) > 0 && !force {
		return nil
	}

	data, err := c.provider.GetImage(ctx, url)
	if err != nil {
		return err
	}
	sink.CoverURL = url
	sink.CoverData = data
	return nil
}

func writeString(field *string, value string, force bool) {
	if value == "" {
		return
	}
	if *field == "" || force {
		*field = value
	}
}

func genreNames(genres []domain.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

// lastFirst renders "Andy Weir" as "Weir, Andy". Single-token names
// come back unchanged.
func lastFirst(name string) string {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name
	}
	return name[idx+1:] + ", " + name[:idx]
}
