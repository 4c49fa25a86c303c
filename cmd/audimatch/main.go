package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audimatch/internal/agent"
	"audimatch/internal/catalog"
	"audimatch/internal/config"
	"audimatch/internal/domain"
	"audimatch/internal/httpclient"
	"audimatch/internal/logger"
	"audimatch/internal/server"
	"audimatch/internal/store"
	"audimatch/internal/tagging"
	"audimatch/internal/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	app, err := newApp(cfg, appLogger)
	if err != nil {
		appLogger.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer app.db.Close()

	var runErr error
	switch os.Args[1] {
	case "search":
		runErr = app.runSearch(os.Args[2:])
	case "update":
		runErr = app.runUpdate(os.Args[2:])
	case "batch":
		runErr = app.runBatch(os.Args[2:])
	case "serve":
		runErr = app.runServe()
	case "cache":
		runErr = app.runCache(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		appLogger.Error("Command failed", "error", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: audimatch <command> [flags]

Commands:
  search  -album <title> [-artist <name>] [-manual] [-lang <code>]
  update  -id <asin_region> [-file <path>] [-force]
  batch   -dir <path> [-concurrency <n>] [-force]
  serve
  cache   clear`)
}

// app holds the wired dependency graph shared by all commands.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *store.DB
	provider catalog.Provider
	agent    *agent.Agent
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	db, err := store.NewSQLiteDB(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	client := catalog.NewClient(httpclient.New(nil, 0), log)
	provider := catalog.NewCachedProvider(client, db, cfg.CacheTTL)

	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		provider: provider,
		agent:    agent.New(cfg, provider, log),
	}, nil
}

func (a *app) runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	album := fs.String("album", "", "book title to search for")
	artist := fs.String("artist", "", "author name")
	manual := fs.Bool("manual", false, "treat as a manual search (full result list)")
	lang := fs.String("lang", "", "library language code, e.g. en")
	fs.Parse(args)

	if *album == "" {
		return fmt.Errorf("search requires -album")
	}

	results := a.agent.Search(context.Background(), domain.LocalMediaQuery{
		Album:    *album,
		Artist:   *artist,
		Manual:   *manual,
		Language: *lang,
	})
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	for _, r := range results {
		if r.Year != 0 {
			fmt.Printf("%3d  %s  %s (%d)\n", r.Score, r.ID.StoredID(), r.Name, r.Year)
		} else {
			fmt.Printf("%3d  %s  %s\n", r.Score, r.ID.StoredID(), r.Name)
		}
	}
	return nil
}

func (a *app) runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "stored catalog id, e.g. B002V5BUYU_us")
	file := fs.String("file", "", "audiobook file to write tags into")
	force := fs.Bool("force", false, "overwrite fields that already have values")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("update requires -id")
	}

	sink := &domain.Metadata{}
	if *file != "" {
		// Start from the file's current tags so the empty-or-force
		// policy sees what is already there.
		query, err := tagging.Probe(*file)
		if err != nil {
			return err
		}
		sink.Title = query.Album
	}

	if err := a.agent.Update(context.Background(), *id, sink, *force); err != nil {
		return err
	}

	if *file != "" {
		if err := tagging.WriteFile(*file, sink); err != nil {
			return err
		}
		fmt.Printf("Tagged %s as %q\n", *file, sink.Title)
		return nil
	}

	fmt.Printf("Title:     %s\n", sink.Title)
	fmt.Printf("Sort:      %s\n", sink.SortTitle)
	fmt.Printf("Studio:    %s\n", sink.Studio)
	fmt.Printf("Rating:    %.1f\n", sink.Rating)
	fmt.Printf("Genres:    %v\n", sink.Genres)
	fmt.Printf("Narrators: %v\n", sink.Styles)
	fmt.Printf("Moods:     %v\n", sink.Moods)
	return nil
}

func (a *app) runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	dir := fs.String("dir", "", "directory of audiobook files")
	concurrency := fs.Int("concurrency", 0, "concurrent jobs (default 2)")
	force := fs.Bool("force", false, "overwrite fields that already have values")
	fs.Parse(args)

	if *dir == "" {
		return fmt.Errorf("batch requires -dir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewPool(a.agent, a.logger, *concurrency, *force)
	summary, err := pool.Run(ctx, *dir)
	if err != nil {
		return err
	}
	fmt.Printf("%d files: %d matched, %d unmatched, %d failed\n",
		summary.Total, summary.Matched, summary.Unmatched, summary.Failed)
	return nil
}

func (a *app) runServe() error {
	h := server.NewHandler(a.agent, a.db, a.logger)
	srv := server.New(a.cfg.Port, h, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (a *app) runCache(args []string) error {
	if len(args) < 1 || args[0] != "clear" {
		return fmt.Errorf("usage: audimatch cache clear")
	}
	if err := a.db.ClearCache(); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}
