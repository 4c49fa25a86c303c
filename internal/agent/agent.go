// Package agent wires the matching pipeline together: it turns scanner
// hints into catalog queries, ranks what comes back, and applies the
// chosen record to the host's metadata.
package agent

import (
	"context"
	"fmt"

	"audimatch/internal/author"
	"audimatch/internal/catalog"
	"audimatch/internal/compile"
	"audimatch/internal/config"
	"audimatch/internal/constants"
	"audimatch/internal/domain"
	"audimatch/internal/identifier"
	"audimatch/internal/logger"
	"audimatch/internal/match"
	"audimatch/internal/normalize"
)

// Placeholder album scanners emit when they found nothing usable.
// Automatic searches abort on it; a manual search is the user's call.
const unknownAlbum = "[Unknown Album]"

type Agent struct {
	cfg      *config.Config
	provider catalog.Provider
	scorer   *match.Scorer
	compiler *compile.Compiler
	logger   *logger.Logger
}

func New(cfg *config.Config, provider catalog.Provider, log *logger.Logger) *Agent {
	return &Agent{
		cfg:      cfg,
		provider: provider,
		scorer:   match.NewScorer(log),
		compiler: compile.NewCompiler(cfg, provider, log),
		logger:   log.WithComponent("agent"),
	}
}

// Search runs the full book search pipeline and returns ranked
// results. Failures never propagate: an unusable query or a dead
// catalog both come back as an empty list, with the cause logged.
func (a *Agent) Search(ctx context.Context, query domain.LocalMediaQuery) []domain.ScoredResult {
	term := query.SearchTerm()
	if term == "" {
		a.logger.Warn("No usable search term, aborting search")
		return nil
	}
	if !query.Manual && term == unknownAlbum {
		a.logger.Warn("Placeholder album on automatic search, aborting")
		return nil
	}

	region := a.resolveRegion(term, query.Filename)

	if asin := a.quickMatchASIN(query, term); asin != "" {
		a.logger.Info("Embedded identifier found, skipping scoring", "asin", asin, "region", region)
		return []domain.ScoredResult{{
			ID:    domain.CatalogID{ASIN: asin, Region: region},
			Score: constants.InitialScore,
			Name:  term,
		}}
	}

	nq := a.normalizeQuery(query, term, region)
	log := a.logger.WithSearch(nq.Title, nq.Author)
	log.Info("Searching catalog", "region", region, "manual", nq.Manual)

	candidates, err := a.provider.SearchBooks(ctx, nq.Title, nq.Author, region)
	if err != nil {
		log.Error("Catalog search failed", "error", err)
		return nil
	}

	ranked := a.scorer.RankBooks(nq, candidates)
	results := make([]domain.ScoredResult, 0, len(ranked))
	for _, r := range ranked {
		result := domain.ScoredResult{
			ID:       r.Candidate.ID,
			Score:    r.Score,
			Name:     formatBookResult(r.Candidate, query.Language),
			Position: r.Position,
		}
		if r.Candidate.ReleaseDate != nil {
			result.Year = r.Candidate.ReleaseDate.Year()
		}
		results = append(results, result)
	}
	log.Info("Search finished", "candidates", len(candidates), "results", len(results))
	return results
}

// Update fetches the record behind a stored id and writes it into the
// host's metadata sink.
func (a *Agent) Update(ctx context.Context, storedID string, sink *domain.Metadata, force bool) error {
	id := domain.ParseStoredID(storedID, a.cfg.Region)
	a.logger.WithASIN(id.ASIN, id.Region).Info("Updating book metadata", "force", force)

	rec, err := a.provider.GetBook(ctx, id)
	if err != nil {
		return fmt.Errorf("update of %s failed: %w", id.StoredID(), err)
	}
	return a.compiler.ApplyBook(ctx, rec, sink, force)
}

// SearchAuthor runs the author variant of the pipeline against the
// raw artist field.
func (a *Agent) SearchAuthor(ctx context.Context, query domain.LocalMediaQuery) []domain.ScoredResult {
	name := author.ResolvePrimaryAuthor(query.Artist, query.Title)
	if name == "" {
		a.logger.Warn("No usable author name, aborting author search")
		return nil
	}

	region := a.resolveRegion(query.Artist, query.Filename)

	if asin := identifier.FindASIN(query.Artist); asin != "" {
		a.logger.Info("Embedded identifier found, skipping scoring", "asin", asin, "region", region)
		return []domain.ScoredResult{{
			ID:    domain.CatalogID{ASIN: asin, Region: region},
			Score: constants.InitialScore,
			Name:  name,
		}}
	}

	cleaned := author.CleanSearchName(name)
	a.logger.Info("Searching catalog for author", "name", cleaned, "region", region)

	candidates, err := a.provider.SearchAuthors(ctx, cleaned, region)
	if err != nil {
		a.logger.Error("Author search failed", "error", err, "name", cleaned)
		return nil
	}

	ranked := a.scorer.RankAuthors(cleaned, query.Manual, candidates)
	results := make([]domain.ScoredResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, domain.ScoredResult{
			ID:       r.Candidate.ID,
			Score:    r.Score,
			Name:     r.Candidate.Name,
			Position: r.Position,
		})
	}
	return results
}

// UpdateAuthor fetches an author record and writes it into the sink.
func (a *Agent) UpdateAuthor(ctx context.Context, storedID string, sink *domain.Metadata, force bool) error {
	id := domain.ParseStoredID(storedID, a.cfg.Region)
	a.logger.WithASIN(id.ASIN, id.Region).Info("Updating author metadata", "force", force)

	rec, err := a.provider.GetAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("author update of %s failed: %w", id.StoredID(), err)
	}
	return a.compiler.ApplyAuthor(ctx, rec, sink, force)
}

// quickMatchASIN probes, in priority order, the filename, the
// manually-entered term, and the raw artist field for an embedded
// catalog id.
func (a *Agent) quickMatchASIN(query domain.LocalMediaQuery, term string) string {
	if asin := identifier.FindASIN(query.Filename); asin != "" {
		return asin
	}
	if query.Manual {
		if asin := identifier.FindASIN(term); asin != "" {
			return asin
		}
	}
	return identifier.FindASIN(query.Artist)
}

// resolveRegion honors an explicit "[uk]" style tag in the search term
// or filename, falling back to the configured region.
func (a *Agent) resolveRegion(term, filename string) string {
	if code := identifier.FindRegionTag(term); code != "" {
		return code
	}
	if code := identifier.FindRegionTag(filename); code != "" {
		return code
	}
	return a.cfg.Region
}

func (a *Agent) normalizeQuery(query domain.LocalMediaQuery, term, region string) domain.NormalizedQuery {
	nq := domain.NormalizedQuery{
		Title:    normalize.Normalize(term),
		Region:   region,
		Language: query.Language,
		Manual:   query.Manual,
	}
	if name := author.ResolvePrimaryAuthor(query.Artist, query.Title); name != "" {
		nq.Author = author.CleanSearchName(name)
	}
	return nq
}
