// Package worker runs batch matching over a directory of audiobook
// files with a bounded number of concurrent jobs.
package worker

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"audimatch/internal/agent"
	"audimatch/internal/constants"
	"audimatch/internal/domain"
	"audimatch/internal/logger"
	"audimatch/internal/tagging"
)

// Job is one file's trip through the pipeline.
type Job struct {
	ID   string
	Path string
}

// Result reports the outcome of a single job.
type Result struct {
	Job     Job
	Matched bool
	Err     error
}

// Summary aggregates a whole batch run.
type Summary struct {
	Total     int
	Matched   int
	Unmatched int
	Failed    int
}

type Pool struct {
	agent       *agent.Agent
	logger      *logger.Logger
	concurrency int
	force       bool
}

func NewPool(a *agent.Agent, log *logger.Logger, concurrency int, force bool) *Pool {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrency
	}
	return &Pool{
		agent:       a,
		logger:      log.WithComponent("worker"),
		concurrency: concurrency,
		force:       force,
	}
}

// Run walks root for audiobook files and processes each one through
// probe, search and update. The walk error is the only fatal failure;
// per-file errors are counted and logged.
func (p *Pool) Run(ctx context.Context, root string) (Summary, error) {
	jobs, err := collectJobs(root)
	if err != nil {
		return Summary{}, err
	}
	p.logger.Info("Starting batch run", "root", root, "files", len(jobs), "concurrency", p.concurrency)

	results := make(chan Result, len(jobs))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- p.runJob(ctx, j)
		}(job)
	}

	wg.Wait()
	close(results)

	summary := Summary{Total: len(jobs)}
	for r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Matched:
			summary.Matched++
		default:
			summary.Unmatched++
		}
	}
	p.logger.Info("Batch run finished",
		"matched", summary.Matched, "unmatched", summary.Unmatched, "failed", summary.Failed)
	return summary, nil
}

func (p *Pool) runJob(ctx context.Context, job Job) Result {
	log := p.logger.With("job_id", job.ID, "path", job.Path)

	query, err := tagging.Probe(job.Path)
	if err != nil {
		log.Error("Probe failed", "error", err)
		return Result{Job: job, Err: err}
	}

	results := p.agent.Search(ctx, query)
	if len(results) == 0 {
		log.Warn("No match found")
		return Result{Job: job}
	}
	best := results[0]
	log.Info("Matched", "id", best.ID.StoredID(), "score", best.Score, "name", best.Name)

	sink := &domain.Metadata{}
	if err := p.agent.Update(ctx, best.ID.StoredID(), sink, p.force); err != nil {
		log.Error("Update failed", "error", err)
		return Result{Job: job, Err: err}
	}
	if err := tagging.WriteFile(job.Path, sink); err != nil {
		log.Error("Tag write failed", "error", err)
		return Result{Job: job, Err: err}
	}
	return Result{Job: job, Matched: true}
}

func collectJobs(root string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case constants.ExtMP3, constants.ExtFLAC:
			jobs = append(jobs, Job{ID: uuid.NewString(), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
