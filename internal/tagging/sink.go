package tagging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
)

// WriteFile writes compiled metadata back into the audiobook file the
// query came from. The album field mirrors the title, the way single-
// file audiobooks are shelved.
func WriteFile(path string, meta *domain.Metadata) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtMP3:
		return writeMP3(path, meta)
	case constants.ExtFLAC:
		return writeFLAC(path, meta)
	default:
		return fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

func writeMP3(path string, meta *domain.Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open mp3 tags: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
		tag.SetAlbum(meta.Title)
	}
	if authors := authorNames(meta); authors != "" {
		tag.SetArtist(authors)
	}
	if narrators := strings.Join(meta.Styles, ", "); narrators != "" {
		tag.AddTextFrame(tag.CommonID("Composer"), tag.DefaultEncoding(), narrators)
	}
	if len(meta.Genres) > 0 {
		tag.SetGenre(meta.Genres[0])
	}
	if meta.Studio != "" {
		tag.AddTextFrame(tag.CommonID("Publisher"), tag.DefaultEncoding(), meta.Studio)
	}
	if meta.ReleaseDate != nil {
		tag.SetYear(fmt.Sprintf("%d", meta.ReleaseDate.Year()))
	}
	if meta.SortTitle != "" {
		tag.AddTextFrame("TSOA", tag.DefaultEncoding(), meta.SortTitle)
	}
	if meta.Summary != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "Description",
			Text:        meta.Summary,
		})
	}
	if len(meta.CoverData) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    detectImageMIME(meta.CoverData),
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     meta.CoverData,
		})
	}
	return tag.Save()
}

func writeFLAC(path string, meta *domain.Metadata) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse flac file: %w", err)
	}

	// Replace any existing comment and picture blocks wholesale.
	kept := f.Meta[:0]
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	commentBlock := newVorbisComment(meta).Marshal()
	f.Meta = append(f.Meta, &commentBlock)

	if len(meta.CoverData) > 0 {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front cover",
			meta.CoverData,
			detectImageMIME(meta.CoverData),
		)
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		pictureBlock := picture.Marshal()
		f.Meta = append(f.Meta, &pictureBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save flac file: %w", err)
	}
	return nil
}

func newVorbisComment(meta *domain.Metadata) *flacvorbis.MetaDataBlockVorbisComment {
	comment := flacvorbis.New()
	addField(comment, flacvorbis.FIELD_TITLE, meta.Title)
	addField(comment, flacvorbis.FIELD_ALBUM, meta.Title)
	addField(comment, flacvorbis.FIELD_ARTIST, authorNames(meta))
	addField(comment, flacvorbis.FIELD_PERFORMER, strings.Join(meta.Styles, ", "))
	addField(comment, flacvorbis.FIELD_ORGANIZATION, meta.Studio)
	addField(comment, flacvorbis.FIELD_DESCRIPTION, meta.Summary)
	if len(meta.Genres) > 0 {
		addField(comment, flacvorbis.FIELD_GENRE, meta.Genres[0])
	}
	if meta.ReleaseDate != nil {
		addField(comment, flacvorbis.FIELD_DATE, meta.ReleaseDate.Format("2006-01-02"))
	}
	return comment
}

// authorNames extracts the author mood tags, leaving series tags out.
func authorNames(meta *domain.Metadata) string {
	authors := make([]string, 0, len(meta.Moods))
	for _, mood := range meta.Moods {
		if strings.HasPrefix(mood, "Series: ") {
			continue
		}
		authors = append(authors, mood)
	}
	return strings.Join(authors, ", ")
}

func addField(comment *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	if value == "" {
		return
	}
	comment.Add(field, value)
}

func detectImageMIME(data []byte) string {
	if bytes.HasPrefix(data, []byte("\x89PNG")) {
		return "image/png"
	}
	return "image/jpeg"
}
