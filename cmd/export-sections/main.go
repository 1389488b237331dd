package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/jonahtballard/CatBase/internal/api"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/config"
	"github.com/jonahtballard/CatBase/internal/db"
	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"
	"github.com/jonahtballard/CatBase/internal/ui"
)

// spin runs action behind the progress spinner; tests swap it for a direct call
var spin = func(ctx context.Context, title string, action func()) error {
	return spinner.New().Title(title).Context(ctx).Action(action).Run()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(fmt.Sprintf("Invalid configuration: %v", err))
		return 1
	}

	fs := flag.NewFlagSet("export-sections", flag.ContinueOnError)
	dbPath := fs.String("db", "catbase.db", "Path to SQLite snapshot database")
	apiFlag := fs.String("api", cfg.APIURL, "Catalog API base URL")
	limitFlag := fs.Int("limit", cfg.PageSize, "Sections per request")
	maxPages := fs.Int("max-pages", 200, "Stop after this many pages (0 = no limit)")
	withRatings := fs.Bool("ratings", false, "Also resolve and store instructor ratings")
	workers := fs.Int("workers", 4, "Concurrent rating lookups")
	filterFlags := config.RegisterFilterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg.APIURL = *apiFlag
	cfg.PageSize = *limitFlag
	if err := cfg.Validate(); err != nil {
		ui.PrintError(err.Error())
		return 1
	}
	filters, err := filterFlags.Filters()
	if err != nil {
		ui.PrintError(err.Error())
		return 1
	}

	logger, logFile, err := cfg.OpenLogger("export")
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to open log: %v", err))
		return 1
	}
	defer logFile.Close()

	client, err := api.NewClient(cfg.APIURL, cfg.Timeout, logger)
	if err != nil {
		ui.PrintError(err.Error())
		return 1
	}

	database, err := db.New(*dbPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		return 1
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exportID, err := database.BeginExport(client.BaseURL(), filters)
	if err != nil {
		ui.PrintError(err.Error())
		return 1
	}
	logger.Info("export started", "id", exportID, "api", client.BaseURL(), "db", *dbPath)

	// Walk every page, storing as we go
	var (
		stats   catalog.WalkStats
		walkErr error
		refs    []models.InstructorRef
	)
	spinErr := spin(ctx, "Exporting sections from "+client.BaseURL()+"...", func() {
		stats, walkErr = catalog.Walk(ctx, client, catalog.NewComposer(cfg.PageSize), filters, *maxPages, func(res catalog.Result) error {
			if err := database.InsertSections(exportID, res.Items); err != nil {
				return err
			}
			for _, s := range res.Items {
				refs = append(refs, s.Instructors...)
			}
			logger.Debug("page stored", "page", res.Pagination.CurrentPage, "sections", len(res.Items))
			return nil
		})
	})
	if spinErr != nil {
		ui.PrintError(fmt.Sprintf("Spinner error: %v", spinErr))
		return 1
	}

	if err := database.FinishExport(exportID, stats.ReportedTotal, stats.Pages, stats.Sections); err != nil {
		logger.Error("finish export", "error", err)
	}
	if walkErr != nil {
		ui.PrintError(fmt.Sprintf("Export stopped after %d pages: %v", stats.Pages, walkErr))
		return 1
	}
	ui.PrintProgress(stats.Pages, stats.Sections)
	fmt.Println()
	if *maxPages > 0 && stats.Pages >= *maxPages {
		ui.PrintError(fmt.Sprintf("Stopped at the -max-pages limit (%d); the snapshot may be incomplete", *maxPages))
	}

	if *withRatings && len(refs) > 0 {
		if err := storeRatings(ctx, database, client, refs, *workers, logger); err != nil {
			ui.PrintError(err.Error())
			return 1
		}
	}

	courses, err := database.CourseCounts()
	if err != nil {
		ui.PrintError(err.Error())
		return 1
	}
	ui.PrintCourseTable(fmt.Sprintf("Export #%d", exportID), courses)
	ui.PrintSuccess(fmt.Sprintf("Stored %d sections from %d pages in %s", stats.Sections, stats.Pages, *dbPath))
	return 0
}

// storeRatings resolves every distinct instructor of the export and saves the
// outcome, failures included
func storeRatings(ctx context.Context, database *db.DB, client *api.Client, refs []models.InstructorRef, workers int, logger *log.Logger) error {
	resolver := ratings.NewResolver(ratings.NewCache(), client, logger)

	var resolved []ratings.Resolved
	err := ui.RunWithSpinner(ctx, "Resolving instructor ratings...", func(ctx context.Context) (err error) {
		resolved, err = resolver.ResolveAll(ctx, refs, workers)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to resolve ratings: %w", err)
	}

	failed := 0
	for _, r := range resolved {
		if r.Entry.Err != nil {
			failed++
			logger.Warn("rating unavailable", "key", r.Key, "error", r.Entry.Err)
		}
		if err := database.SaveRating(r.Key, r.Entry); err != nil {
			return err
		}
	}
	ui.PrintSuccess(fmt.Sprintf("Stored ratings for %d instructors (%d unavailable)", len(resolved)-failed, failed))
	return nil
}
