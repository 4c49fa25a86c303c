package compile

import (
	"context"
	"testing"

	"audimatch/internal/config"
	"audimatch/internal/domain"
	"audimatch/internal/logger"
)

type mockImageProvider struct {
	data  []byte
	calls int
}

func (m *mockImageProvider) SearchBooks(ctx context.Context, title, author, region string) ([]domain.BookCandidate, error) {
	return nil, nil
}

func (m *mockImageProvider) SearchAuthors(ctx context.Context, name, region string) ([]domain.AuthorCandidate, error) {
	return nil, nil
}

func (m *mockImageProvider) GetBook(ctx context.Context, id domain.CatalogID) (*domain.BookRecord, error) {
	return nil, nil
}

func (m *mockImageProvider) GetAuthor(ctx context.Context, id domain.CatalogID) (*domain.AuthorRecord, error) {
	return nil, nil
}

func (m *mockImageProvider) GetImage(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	return m.data, nil
}

func testCompiler(cfg *config.Config) (*Compiler, *mockImageProvider) {
	if cfg == nil {
		cfg = &config.Config{AuthorsAsMoods: true, CoverPolicy: config.CoverMissing}
	}
	provider := &mockImageProvider{data: []byte{1, 2, 3}}
	return NewCompiler(cfg, provider, logger.Default()), provider
}

func martianRecord() *domain.BookRecord {
	return &domain.BookRecord{
		ID:        domain.CatalogID{ASIN: "B002V5BUYU", Region: "us"},
		Title:     "The Martian",
		Publisher: "Podium Audio",
		Summary:   "Stranded on Mars.",
		Rating:    4.5,
		Authors:   []domain.Person{{Name: "Andy Weir"}},
		Narrators: []domain.Person{{Name: "R.C. Bray"}},
		Genres:    []domain.Genre{{Name: "Science Fiction", Type: "genre"}},
	}
}

func TestApplyBook_FillsEmptySink(t *testing.T) {
	c, _ := testCompiler(nil)
	sink := &domain.Metadata{}

	if err := c.ApplyBook(context.Background(), martianRecord(), sink, false); err != nil {
		t.Fatalf("ApplyBook failed: %v", err)
	}

	if sink.ID != "B002V5BUYU_us" {
		t.Errorf("ID = %q", sink.ID)
	}
	if sink.Title != "The Martian" {
		t.Errorf("Title = %q", sink.Title)
	}
	if sink.Studio != "Podium Audio" {
		t.Errorf("Studio = %q", sink.Studio)
	}
	if sink.Rating != 9 {
		t.Errorf("Rating = %v, want 9 (catalog 4.5 doubled)", sink.Rating)
	}
	if len(sink.Genres) != 1 || sink.Genres[0] != "Science Fiction" {
		t.Errorf("Genres = %v", sink.Genres)
	}
	if len(sink.Styles) != 1 || sink.Styles[0] != "R.C. Bray" {
		t.Errorf("Styles = %v", sink.Styles)
	}
	if len(sink.Moods) != 1 || sink.Moods[0] != "Andy Weir" {
		t.Errorf("Moods = %v", sink.Moods)
	}
}

func TestApplyBook_ExistingFieldsWinWithoutForce(t *testing.T) {
	c, _ := testCompiler(nil)
	sink := &domain.Metadata{
		Title:   "My Curated Title",
		Summary: "My curated summary.",
		Rating:  3,
	}

	if err := c.ApplyBook(context.Background(), martianRecord(), sink, false); err != nil {
		t.Fatalf("ApplyBook failed: %v", err)
	}

	if sink.Title != "My Curated Title" {
		t.Errorf("Title = %q, existing value should win", sink.Title)
	}
	if sink.Summary != "My curated summary." {
		t.Errorf("Summary = %q, existing value should win", sink.Summary)
	}
	// Rating is the exception: the catalog value always wins.
	if sink.Rating != 9 {
		t.Errorf("Rating = %v, want 9", sink.Rating)
	}
}

func TestApplyBook_ForceOverwrites(t *testing.T) {
	c, _ := testCompiler(nil)
	sink := &domain.Metadata{Title: "My Curated Title", Genres: []string{"Old Genre"}}

	if err := c.ApplyBook(context.Background(), martianRecord(), sink, true); err != nil {
		t.Fatalf("ApplyBook failed: %v", err)
	}

	if sink.Title != "The Martian" {
		t.Errorf("Title = %q, want forced overwrite", sink.Title)
	}
	if len(sink.Genres) != 1 || sink.Genres[0] != "Science Fiction" {
		t.Errorf("Genres = %v, want replaced not merged", sink.Genres)
	}
}

func TestApplyBook_KeepExistingGenres(t *testing.T) {
	c, _ := testCompiler(&config.Config{KeepExistingGenres: true, CoverPolicy: config.CoverNever})
	sink := &domain.Metadata{Genres: []string{"My Genre"}}

	if err := c.ApplyBook(context.Background(), martianRecord(), sink, true); err != nil {
		t.Fatalf("ApplyBook failed: %v", err)
	}
	if len(sink.Genres) != 1 || sink.Genres[0] != "My Genre" {
		t.Errorf("Genres = %v, want existing kept even under force", sink.Genres)
	}
}

func TestApplyBook_SubtitleHandling(t *testing.T) {
	rec := martianRecord()
	rec.Subtitle = "A Novel"

	c, _ := testCompiler(nil)
	sink := &domain.Metadata{}
	c.ApplyBook(context.Background(), rec, sink, false)
	if sink.Title != "The Martian: A Novel" {
		t.Errorf("Title = %q, want subtitle appended", sink.Title)
	}

	simplified, _ := testCompiler(&config.Config{SimplifyTitles: true, CoverPolicy: config.CoverNever})
	sink = &domain.Metadata{}
	simplified.ApplyBook(context.Background(), rec, sink, false)
	if sink.Title != "The Martian" {
		t.Errorf("Title = %q, want bare title when simplifying", sink.Title)
	}
}

func TestSortTitle(t *testing.T) {
	tests := []struct {
		name   string
		series *domain.Series
		want   string
	}{
		{"no series", nil, "The Martian"},
		{"numeric position", &domain.Series{Name: "Mars Trilogy", Position: "1"}, "Mars Trilogy, Book 1 - The Martian"},
		{"already book shaped", &domain.Series{Name: "Mars Trilogy", Position: "Book 1"}, "Mars Trilogy, Book 1 - The Martian"},
		{"no position", &domain.Series{Name: "Mars Trilogy"}, "Mars Trilogy - The Martian"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := martianRecord()
			rec.SeriesPrimary = tt.series
			if got := sortTitle(rec); got != tt.want {
				t.Errorf("sortTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyBook_Moods(t *testing.T) {
	rec := martianRecord()
	rec.Authors = []domain.Person{
		{Name: "Andy Weir"},
		{Name: "Jane Doe - translator"},
	}
	rec.SeriesPrimary = &domain.Series{Name: "Mars Trilogy", Position: "1"}

	c, _ := testCompiler(nil)
	sink := &domain.Metadata{}
	c.ApplyBook(context.Background(), rec, sink, false)

	want := []string{"Andy Weir", "Series: Mars Trilogy"}
	if len(sink.Moods) != len(want) {
		t.Fatalf("Moods = %v, want %v", sink.Moods, want)
	}
	for i := range want {
		if sink.Moods[i] != want[i] {
			t.Errorf("Moods[%d] = %q, want %q", i, sink.Moods[i], want[i])
		}
	}
}

func TestApplyBook_MoodsLastFirst(t *testing.T) {
	c, _ := testCompiler(&config.Config{AuthorsAsMoods: true, SortAuthorsByLastName: true, CoverPolicy: config.CoverNever})
	sink := &domain.Metadata{}
	c.ApplyBook(context.Background(), martianRecord(), sink, false)

	if len(sink.Moods) != 1 || sink.Moods[0] != "Weir, Andy" {
		t.Errorf("Moods = %v, want [Weir, Andy]", sink.Moods)
	}
}

func TestApplyBook_CoverPolicies(t *testing.T) {
	rec := martianRecord()
	rec.CoverURL = "https://example.com/cover.jpg"

	t.Run("never skips fetch", func(t *testing.T) {
		c, provider := testCompiler(&config.Config{CoverPolicy: config.CoverNever})
		sink := &domain.Metadata{}
		c.ApplyBook(context.Background(), rec, sink, false)
		if provider.calls != 0 || len(sink.CoverData) != 0 {
			t.Errorf("fetched %d times, data %d bytes", provider.calls, len(sink.CoverData))
		}
	})

	t.Run("missing keeps an existing cover", func(t *testing.T) {
		c, provider := testCompiler(&config.Config{CoverPolicy: config.CoverMissing})
		sink := &domain.Metadata{CoverURL: "https://example.com/old.jpg", CoverData: []byte{9}}
		c.ApplyBook(context.Background(), rec, sink, false)
		if provider.calls != 0 {
			t.Errorf("fetched %d times, want 0", provider.calls)
		}
	})

	t.Run("missing fills an empty cover", func(t *testing.T) {
		c, provider := testCompiler(&config.Config{CoverPolicy: config.CoverMissing})
		sink := &domain.Metadata{}
		c.ApplyBook(context.Background(), rec, sink, false)
		if provider.calls != 1 || sink.CoverURL != rec.CoverURL || len(sink.CoverData) != 3 {
			t.Errorf("calls %d, url %q, data %d bytes", provider.calls, sink.CoverURL, len(sink.CoverData))
		}
	})

	t.Run("always replaces on url change", func(t *testing.T) {
		c, provider := testCompiler(&config.Config{CoverPolicy: config.CoverAlways})
		sink := &domain.Metadata{CoverURL: "https://example.com/old.jpg", CoverData: []byte{9}}
		c.ApplyBook(context.Background(), rec, sink, false)
		if provider.calls != 1 || sink.CoverURL != rec.CoverURL {
			t.Errorf("calls %d, url %q", provider.calls, sink.CoverURL)
		}
	})

	t.Run("unchanged url is not refetched", func(t *testing.T) {
		c, provider := testCompiler(&config.Config{CoverPolicy: config.CoverAlways})
		sink := &domain.Metadata{CoverURL: rec.CoverURL, CoverData: []byte{9}}
		c.ApplyBook(context.Background(), rec, sink, false)
		if provider.calls != 0 {
			t.Errorf("calls %d, want 0", provider.calls)
		}
	})
}

func TestApplyAuthor(t *testing.T) {
	c, _ := testCompiler(nil)
	sink := &domain.Metadata{}
	rec := &domain.AuthorRecord{
		ID:          domain.CatalogID{ASIN: "B00G0WYW92", Region: "us"},
		Name:        "Andy Weir",
		Description: "<p>Author of <b>The Martian</b>.</p>",
		Genres:      []domain.Genre{{Name: "Science Fiction"}},
	}

	if err := c.ApplyAuthor(context.Background(), rec, sink, false); err != nil {
		t.Fatalf("ApplyAuthor failed: %v", err)
	}
	if sink.ID != "B00G0WYW92_us" {
		t.Errorf("ID = %q", sink.ID)
	}
	if sink.Title != "Andy Weir" || sink.SortTitle != "Weir, Andy" {
		t.Errorf("Title = %q, SortTitle = %q", sink.Title, sink.SortTitle)
	}
	if sink.Summary != "Author of The Martian." {
		t.Errorf("Summary = %q", sink.Summary)
	}
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Stranded on Mars.", "Stranded on Mars."},
		{"inline markup", "<b>Bold</b> and <i>italic</i>.", "Bold and italic."},
		{"paragraphs", "<p>One.</p><p>Two.</p>", "One.\nTwo."},
		{"breaks", "One.<br>Two.<br/>Three.", "One.\nTwo.\nThree."},
		{"list items", "<ul><li>First</li><li>Second</li></ul>", "• First\n• Second"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanSummary(tt.in); got != tt.want {
				t.Errorf("cleanSummary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
