package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nba_standings/internal/app"
	"nba_standings/internal/config"
	"nba_standings/internal/deployment"
	"nba_standings/internal/domain/standings"
	"nba_standings/internal/nba"
	"nba_standings/internal/processing"
	"nba_standings/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	season := flag.String("season", "", "Season to chart, e.g. 2023-24 (defaults to current_season in the seasons file)")
	teams := flag.String("teams", "all", "Teams to plot: all, east or west")
	xAxis := flag.String("x", "game", "Time scale: game, day, week or month")
	yAxis := flag.String("y", "record", "Y axis metric: record or seed")
	lastGames := flag.Int("games", 0, "Plot only the last N games on the game scale (0 plots all)")
	interval := flag.Duration("interval", 15*time.Minute, "Interval between standings updates (e.g., 5m, 1h)")
	runOnce := flag.Bool("once", false, "Run once and exit (don't start scheduler)")
	refresh := flag.Bool("refresh", false, "Discard the cached season payload before the first run")
	flag.Parse()

	log.Info().
		Dur("interval", *interval).
		Bool("run_once", *runOnce).
		Msg("Starting NBA standings application")

	// Load configuration
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.UpdateInterval = *interval

	seasons, err := config.LoadSeasons(cfg.SeasonsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().
			Str("path", cfg.SeasonsFile).
			Msg("No seasons file found; running without season breaks")
		seasons = &config.Seasons{}
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seasons file")
	}

	if *season == "" {
		*season = seasons.CurrentSeason
	}
	opts, err := standings.ParseDisplayOptions(*teams, *xAxis, *yAxis, *season)
	if err == nil {
		opts.LastGames = *lastGames
		err = opts.Validate()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid display options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize clients
	apiClient := nba.NewClient(cfg.APIBaseURL)
	tracker := processing.NewAPICallTracker()

	cache, err := processing.OpenSeasonCache(cfg.CacheDBPath, apiClient, seasons, cfg.CacheTTL, tracker)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open season cache")
	}
	defer cache.Close()

	if *refresh {
		if err := cache.Invalidate(ctx, opts.Season); err != nil {
			log.Fatal().Err(err).Msg("Failed to refresh season cache")
		}
	}

	var exporter processing.StandingsExporter
	if cfg.SheetsEnabled() {
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sheets client")
		}
		exporter = sheets.NewStandingsSheetsManager(sheetsClient)
	}

	var deployer processing.Deployer
	if cfg.DeployEnabled() {
		sshDeployer := deployment.NewSSHDeployer(cfg.DeployURL, cfg.DeployKeyFile, cfg.DeployKnownHosts)
		defer sshDeployer.Disconnect()
		deployer = sshDeployer
	}

	processor, err := processing.NewStandingsProcessor(cache, seasons, exporter, deployer, tracker, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create standings processor")
	}

	// Define the main processing function
	processStandings := func() {
		log.Debug().Msg("Starting standings processing cycle")

		// Reset API call counter at the start of each cycle
		apiClient.ResetAPICallCount()

		if err := processor.Run(ctx, opts); err != nil {
			log.Error().Err(err).Msg("Failed to process standings")
			return
		}

		log.Info().
			Int64("api_calls", apiClient.GetAPICallCount()).
			Msg("Completed standings processing cycle")
	}

	// Run initial processing
	log.Info().
		Str("season", opts.Season).
		Str("teams", string(opts.TeamSubset)).
		Str("x", string(opts.TimeScale)).
		Str("y", string(opts.YAxis)).
		Msg("Running initial standings processing")
	processStandings()

	// Exit if run-once flag is set
	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial processing")
		return
	}

	// Start scheduled processing
	log.Info().
		Dur("interval", *interval).
		Msg("Starting scheduled standings processing")

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		case <-ticker.C:
			processStandings()
		}
	}
}
