// Package tagging reads and writes audiobook tags on local files. The
// probe side turns a file's embedded tags into a search query; the
// sink side writes matched metadata back.
package tagging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
)

// Probe reads the tags of an audiobook file and builds the search
// query the agent expects from a scanner: album (book title), artist
// (author field) and filename.
func Probe(path string) (domain.LocalMediaQuery, error) {
	query := domain.LocalMediaQuery{Filename: filepath.Base(path)}

	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtMP3:
		return probeMP3(path, query)
	case constants.ExtFLAC:
		return probeFLAC(path, query)
	default:
		return query, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

func probeMP3(path string, query domain.LocalMediaQuery) (domain.LocalMediaQuery, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return query, fmt.Errorf("failed to open mp3 tags: %w", err)
	}
	defer tag.Close()

	query.Title = strings.TrimSpace(tag.Title())
	query.Album = strings.TrimSpace(tag.Album())
	query.Artist = strings.TrimSpace(tag.Artist())
	return query, nil
}

func probeFLAC(path string, query domain.LocalMediaQuery) (domain.LocalMediaQuery, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return query, fmt.Errorf("failed to parse flac file: %w", err)
	}

	comment := findVorbisComment(f)
	if comment == nil {
		return query, nil
	}
	query.Title = firstField(comment, flacvorbis.FIELD_TITLE)
	query.Album = firstField(comment, flacvorbis.FIELD_ALBUM)
	query.Artist = firstField(comment, flacvorbis.FIELD_ARTIST)
	return query, nil
}

func findVorbisComment(f *flac.File) *flacvorbis.MetaDataBlockVorbisComment {
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		if comment, err := flacvorbis.ParseFromMetaDataBlock(*block); err == nil {
			return comment
		}
	}
	return nil
}

func firstField(comment *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := comment.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
