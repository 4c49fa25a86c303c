package tagging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"audimatch/internal/domain"
)

func TestNewVorbisComment(t *testing.T) {
	released := time.Date(2014, 2, 11, 0, 0, 0, 0, time.UTC)
	meta := &domain.Metadata{
		Title:       "The Martian",
		Studio:      "Podium Audio",
		Summary:     "Stranded on Mars.",
		ReleaseDate: &released,
		Genres:      []string{"Science Fiction", "Adventure"},
		Styles:      []string{"R.C. Bray"},
		Moods:       []string{"Andy Weir", "Series: Mars Trilogy"},
	}

	vc := newVorbisComment(meta)

	check := func(name, expected string) {
		t.Helper()
		target := fmt.Sprintf("%s=%s", name, expected)
		for _, entry := range vc.Comments {
			if entry == target {
				return
			}
		}
		t.Errorf("Field %s not found in VorbisComment", target)
	}

	check("TITLE", "The Martian")
	check("ALBUM", "The Martian")
	check("ARTIST", "Andy Weir")
	check("PERFORMER", "R.C. Bray")
	check("ORGANIZATION", "Podium Audio")
	check("GENRE", "Science Fiction")
	check("DATE", "2014-02-11")
}

func TestAuthorNames_SkipsSeriesTags(t *testing.T) {
	meta := &domain.Metadata{
		Moods: []string{"Andy Weir", "Jane Doe", "Series: Mars Trilogy"},
	}
	if got := authorNames(meta); got != "Andy Weir, Jane Doe" {
		t.Errorf("authorNames = %q", got)
	}
}

func TestDetectImageMIME(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")
	if got := detectImageMIME(png); got != "image/png" {
		t.Errorf("png detected as %q", got)
	}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	if got := detectImageMIME(jpeg); got != "image/jpeg" {
		t.Errorf("jpeg detected as %q", got)
	}
}

func TestProbe_UnsupportedFormat(t *testing.T) {
	if _, err := Probe("audiobook.ogg"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestWriteFile_UnsupportedFormat(t *testing.T) {
	if err := WriteFile("audiobook.ogg", &domain.Metadata{}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestMP3RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "martian.mp3")
	// A bare file with no frames is enough for tag round-tripping.
	if err := os.WriteFile(path, []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	meta := &domain.Metadata{
		Title:  "The Martian",
		Genres: []string{"Science Fiction"},
		Moods:  []string{"Andy Weir"},
	}
	if err := WriteFile(path, meta); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	query, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if query.Title != "The Martian" || query.Album != "The Martian" {
		t.Errorf("Title = %q, Album = %q", query.Title, query.Album)
	}
	if query.Artist != "Andy Weir" {
		t.Errorf("Artist = %q", query.Artist)
	}
	if query.Filename != "martian.mp3" {
		t.Errorf("Filename = %q", query.Filename)
	}
}
