package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/jonahtballard/CatBase/internal/api"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/config"
	"github.com/jonahtballard/CatBase/internal/ratings"
	"github.com/jonahtballard/CatBase/internal/ui"
)

func main() {
	os.Exit(run())
}

// run executes the command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(fmt.Sprintf("Invalid configuration: %v", err))
		return 1
	}

	// Parse command line flags
	apiFlag := flag.String("api", cfg.APIURL, "Catalog API base URL (env "+config.KeyAPIURL+")")
	limitFlag := flag.Int("limit", cfg.PageSize, "Sections per page (env "+config.KeyPageSize+")")
	pageFlag := flag.Int("page", 1, "Start page")
	exportDir := flag.String("export-dir", ".", "Directory for markdown page exports")
	noRatings := flag.Bool("no-ratings", false, "Do not look up instructor ratings")
	filtersFlag := flag.Bool("filters", false, "Open the filter form before browsing")
	checkFlag := flag.Bool("check", false, "Check the backend health and exit")
	filterFlags := config.RegisterFilterFlags(flag.CommandLine)
	flag.Parse()

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

	logger, logFile, err := cfg.OpenLogger("catbase")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *checkFlag {
		err := ui.RunWithSpinner(ctx, "Checking "+client.BaseURL()+"...", func(ctx context.Context) error {
			return client.Health(ctx)
		})
		if err != nil {
			ui.PrintError(fmt.Sprintf("Health check failed: %v", err))
			return 1
		}
		ui.PrintSuccess("Backend is healthy: " + client.BaseURL())
		return 0
	}

	// One rating cache per process, shared by every browser run
	var resolver *ratings.Resolver
	if !*noRatings {
		resolver = ratings.NewResolver(ratings.NewCache(), client, logger)
	}

	logger.Info("starting", "api", client.BaseURL(), "limit", cfg.PageSize)

	var options *ui.FilterOptions
	page := *pageFlag
	editFilters := *filtersFlag

	// Main application loop - the browser exits to open the filter form
	for {
		if editFilters {
			if options == nil {
				options = loadFilterOptions(ctx, client)
			}
			next, err := ui.PromptForFilters(filters, *options)
			switch {
			case errors.Is(err, huh.ErrUserAborted):
				// keep the current filters
			case err != nil:
				ui.PrintError(err.Error())
			default:
				if !next.Equal(filters) {
					page = 1
				}
				filters = next
			}
		}

		result, err := ui.RunBrowser(ctx, ui.BrowserConfig{
			Source:    client,
			Resolver:  resolver,
			Composer:  catalog.NewComposer(cfg.PageSize),
			Filters:   filters,
			Page:      page,
			ExportDir: *exportDir,
			Logger:    logger,
		})
		if err != nil {
			if ctx.Err() != nil {
				return 0
			}
			ui.PrintError(fmt.Sprintf("Interactive mode failed: %v", err))
			return 1
		}

		filters, page = result.Filters, result.Page
		if !result.EditFilters {
			return 0
		}
		editFilters = true
	}
}

// loadFilterOptions fetches the subject and term lists for the filter form.
// A failure leaves the lists empty; the form still accepts typed values.
func loadFilterOptions(ctx context.Context, client *api.Client) *ui.FilterOptions {
	opts := &ui.FilterOptions{}
	err := ui.RunWithSpinner(ctx, "Loading subjects and terms...", func(ctx context.Context) error {
		subjects, err := client.Subjects(ctx)
		if err != nil {
			return err
		}
		terms, err := client.Terms(ctx)
		if err != nil {
			return err
		}
		opts.Subjects, opts.Terms = subjects, terms
		return nil
	})
	if err != nil && !errors.Is(err, ui.ErrSpinnerCancelled) {
		ui.PrintError(fmt.Sprintf("Failed to load filter options: %v", err))
	}
	return opts
}
