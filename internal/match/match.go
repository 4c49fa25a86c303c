// Package match scores catalog candidates against the local query.
package match

import (
	"sort"
	"time"

	"github.com/xrash/smetrics"

	"audimatch/internal/constants"
	"audimatch/internal/domain"
	"audimatch/internal/logger"
	"audimatch/internal/normalize"
)

// RankedBook pairs a surviving candidate with its score. Position is
// the candidate's index in the catalog's relevance order, which is
// also the per-candidate tie-break penalty.
type RankedBook struct {
	Candidate domain.BookCandidate
	Score     int
	Position  int
}

// RankedAuthor pairs a surviving author candidate with its score.
type RankedAuthor struct {
	Candidate domain.AuthorCandidate
	Score     int
	Position  int
}

// Scorer ranks candidates. now is injectable so pre-order filtering is
// testable with fixed dates.
type Scorer struct {
	logger *logger.Logger
	now    func() time.Time
}

func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{
		logger: log.WithComponent("match"),
		now:    time.Now,
	}
}

// RankBooks scores every candidate, drops pre-orders and weak matches,
// and returns the rest sorted by score descending. Dropped candidates
// keep their index slot: the relevance penalty for later candidates
// does not shrink when an earlier one goes away.
//
// Automatic searches collapse to the single best hit once it clears
// the good-match bar; manual searches always present the full list.
func (s *Scorer) RankBooks(query domain.NormalizedQuery, candidates []domain.BookCandidate) []RankedBook {
	now := s.now()
	ranked := make([]RankedBook, 0, len(candidates))

	for i, c := range candidates {
		if c.ReleaseDate != nil && c.ReleaseDate.After(now) {
			s.logger.Debug("Skipping unreleased candidate", "asin", c.ID.ASIN, "release_date", c.ReleaseDate)
			continue
		}

		score := s.scoreBook(query, c) - i
		if score < constants.IgnoreScore {
			s.logger.Debug("Ignoring weak candidate", "asin", c.ID.ASIN, "score", score)
			continue
		}
		ranked = append(ranked, RankedBook{Candidate: c, Score: score, Position: i})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if !query.Manual && len(ranked) > 1 && ranked[0].Score >= constants.GoodScore {
		s.logger.Debug("Good match found, dropping alternatives", "asin", ranked[0].Candidate.ID.ASIN, "score", ranked[0].Score)
		return ranked[:1]
	}
	return ranked
}

func (s *Scorer) scoreBook(query domain.NormalizedQuery, c domain.BookCandidate) int {
	score := constants.InitialScore

	if query.Title == "" {
		score -= constants.MissingTitlePenalty
	} else {
		score -= constants.TitleDistanceWeight * distance(query.Title, c.Title)
	}

	if query.Author == "" {
		score -= constants.MissingAuthorPenalty
	} else {
		score -= constants.AuthorDistanceWeight * distance(query.Author, c.AuthorNames())
	}

	if languageMismatch(query.Language, c.Language) {
		score -= constants.LanguagePenalty
	}
	return score
}

// RankAuthors is the unweighted variant used for author searches: one
// point per edit between the queried and the candidate name.
func (s *Scorer) RankAuthors(name string, manual bool, candidates []domain.AuthorCandidate) []RankedAuthor {
	ranked := make([]RankedAuthor, 0, len(candidates))

	for i, c := range candidates {
		score := constants.InitialScore - distance(name, c.Name) - i
		if score < constants.IgnoreScore {
			continue
		}
		ranked = append(ranked, RankedAuthor{Candidate: c, Score: score, Position: i})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if !manual && len(ranked) > 1 && ranked[0].Score >= constants.GoodScore {
		return ranked[:1]
	}
	return ranked
}

// distance is the edit distance between the reduced forms of the two
// strings. Reduction removes spaces on top of normalization, so
// spelling variants of initials ("J.R.R.", "J R R", "JRR") are
// zero-distance and never eat into the weighted score.
func distance(a, b string) int {
	ra := normalize.ReduceForComparison(normalize.Normalize(a))
	rb := normalize.ReduceForComparison(normalize.Normalize(b))
	return smetrics.WagnerFischer(ra, rb, 1, 1, 1)
}

// languageMismatch compares a candidate's language string against the
// display name of the library's language code. The comparison is exact
// equality after case and diacritic folding; no edit distance is ever
// applied to languages. Either side being unknown or empty gives no
// basis for a penalty.
func languageMismatch(libraryCode, candidateLanguage string) bool {
	if libraryCode == "" || candidateLanguage == "" {
		return false
	}
	want := domain.LanguageDisplayName(libraryCode)
	if want == "" {
		return false
	}
	// Normalizing both sides makes the comparison blind to case and
	// diacritics ("Français" vs "francais").
	return normalize.Normalize(want) != normalize.Normalize(candidateLanguage)
}
