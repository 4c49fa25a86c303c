// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort      = "8271"
	DefaultCachePath = "audimatch.db"
	DefaultRegion    = "us"
	DefaultCacheTTL  = 7 * 24 * time.Hour
)

// Scoring
//
// Scores start at InitialScore and penalties are subtracted from it.
// Candidates below IgnoreScore are dropped; automatic searches stop
// returning alternatives once a candidate reaches GoodScore.
const (
	InitialScore = 100
	GoodScore    = 98
	IgnoreScore  = 45

	// Edit-distance weights. Author mismatches are penalized far more
	// heavily than title mismatches: titles pick up subtitles and
	// edition text over time, authorship does not.
	TitleDistanceWeight  = 2
	AuthorDistanceWeight = 10

	// Flat penalties substituted when the local side has no value to
	// compare against. Absence of ground truth is not free.
	MissingTitlePenalty  = 50
	MissingAuthorPenalty = 20

	// Flat penalty when the candidate language does not match the
	// library language.
	LanguagePenalty = 2
)

// HTTP
const (
	DefaultRetryCount  = 4
	DefaultRetryBase   = 1 * time.Second
	DefaultHTTPTimeout = 30 * time.Second
	ImageHTTPTimeout   = 30 * time.Second

	UserAgent = "audimatch/1.0"
)

// Catalog endpoints
const (
	AudnexusBaseURL = "https://api.audnex.us"

	// Fixed query string for Audible product searches: contributor and
	// description groups, capped result count, catalog relevance order.
	AudibleSearchParams = "response_groups=contributors,product_desc,product_attrs" +
		"&num_results=25&products_sort_by=Relevance"
)

// Catalog identifiers
const (
	// ASINs are ten alphanumeric characters. The stored form appends
	// the region code: "B002V0QK4C_us".
	ASINLength        = 10
	StoredIDSeparator = "_"
)

// Result display
const (
	MaxDisplayTitleRunes = 36
	TruncatedTitleRunes  = 30
	DisplayTitleEllipsis = ".."
)

// Sort titles and display titles
const (
	SortTitleSeparator    = " - "
	SubtitleSeparator     = ": "
	SeriesVolumeSeparator = ", "
	VolumePrefix          = "Book "
)

// Database
const (
	CacheTable = "cache"
)

// File extensions accepted by the local tag probe
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
)

// Batch matching
const (
	DefaultConcurrency = 2
)
