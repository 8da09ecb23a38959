package processing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nba_standings/internal/app"
	"nba_standings/internal/config"
	"nba_standings/internal/domain/ranking"
	"nba_standings/internal/domain/standings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Result is everything a front end needs to draw one standings view
type Result struct {
	Options      standings.DisplayOptions `json:"options"`
	Chart        *standings.ChartData     `json:"chart"`
	ChartOptions standings.ChartOptions   `json:"chart_options"`
	Table        []standings.TableRow     `json:"table"`
	GeneratedAt  time.Time                `json:"generated_at"`
}

// StandingsProcessor loads a season, builds the chart and table, and publishes them
type StandingsProcessor struct {
	teams    TeamSource
	builder  *standings.Builder
	seasons  *config.Seasons
	exporter StandingsExporter
	deployer Deployer
	config   *app.Config
	tracker  *APICallTracker
	now      func() time.Time
}

// NewStandingsProcessor wires a processor. exporter and deployer may be nil to
// disable the Sheets export and SSH publish steps.
func NewStandingsProcessor(
	teams TeamSource,
	seasons *config.Seasons,
	exporter StandingsExporter,
	deployer Deployer,
	tracker *APICallTracker,
	cfg *app.Config,
) (*StandingsProcessor, error) {
	breaks, err := SeasonBreaks(seasons)
	if err != nil {
		return nil, err
	}

	if tracker == nil {
		tracker = NewAPICallTracker()
	}

	return &StandingsProcessor{
		teams:    teams,
		builder:  standings.NewBuilder(cfg.LogoBaseURL, breaks),
		seasons:  seasons,
		exporter: exporter,
		deployer: deployer,
		config:   cfg,
		tracker:  tracker,
		now:      time.Now,
	}, nil
}

// SeasonBreaks converts configured breaks into builder breaks keyed by season
func SeasonBreaks(seasons *config.Seasons) (map[string][]standings.SeasonBreak, error) {
	breaks := make(map[string][]standings.SeasonBreak)
	if seasons == nil {
		return breaks, nil
	}

	for id, season := range seasons.Seasons {
		for _, b := range season.Breaks {
			start, end, err := b.Interval()
			if err != nil {
				return nil, fmt.Errorf("season %s: %w", id, err)
			}
			breaks[id] = append(breaks[id], standings.SeasonBreak{Name: b.Name, Start: start, End: end})
		}
	}
	return breaks, nil
}

// Process builds the chart data, chart options and table for one view
func (p *StandingsProcessor) Process(ctx context.Context, opts standings.DisplayOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	teams, err := p.teams.Teams(ctx, opts.Season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %s: %w", opts.Season, err)
	}
	if len(teams) == 0 {
		return nil, &standings.EmptyInputError{Reason: fmt.Sprintf("season %s has no teams", opts.Season)}
	}

	teams, err = p.ensureRankHistory(teams, opts.Season)
	if err != nil {
		return nil, err
	}

	data, err := p.builder.Build(teams, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build standings series: %w", err)
	}

	result := &Result{
		Options:      opts,
		Chart:        data,
		ChartOptions: standings.BuildChartOptions(opts, data, p.builder.Breaks(opts.Season)),
		Table:        standings.BuildTable(teams, opts.TeamSubset),
		GeneratedAt:  p.now().UTC(),
	}

	log.Info().
		Str("season", opts.Season).
		Str("teams", string(opts.TeamSubset)).
		Str("x", string(opts.TimeScale)).
		Str("y", string(opts.YAxis)).
		Int("datasets", len(data.Datasets)).
		Msg("Built standings view")

	return result, nil
}

// ensureRankHistory fills in per-date ranks for teams whose payload lacks them
func (p *StandingsProcessor) ensureRankHistory(teams []app.Team, season string) ([]app.Team, error) {
	missing := make(map[string]bool)
	for i := range teams {
		if !teams[i].HasRankHistory() {
			missing[teams[i].Slug] = true
		}
	}
	if len(missing) == 0 {
		return teams, nil
	}

	format := ranking.ParsePlayoffFormat(p.seasons.Season(season).PlayoffFormat)
	ranks, err := ranking.Compute(teams, format)
	if errors.Is(err, ranking.ErrNoGames) {
		// Nothing has been played yet, so there is nothing to rank
		return teams, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute rank history: %w", err)
	}

	for slug := range ranks {
		if !missing[slug] {
			delete(ranks, slug)
		}
	}

	log.Debug().
		Str("season", season).
		Int("teams", len(ranks)).
		Msg("Computed rank history")

	return ranking.Apply(teams, ranks), nil
}

// OutputFileName names the published file for a view
func OutputFileName(opts standings.DisplayOptions) string {
	name := fmt.Sprintf("standings_%s_%s_%s_%s", opts.Season, opts.TeamSubset, opts.TimeScale, opts.YAxis)
	if opts.LastGames > 0 {
		name += fmt.Sprintf("_last%d", opts.LastGames)
	}
	return name + ".json"
}

// Publish writes the result to the output directory, then exports and deploys it
// when those steps are configured. It returns the written path.
func (p *StandingsProcessor) Publish(ctx context.Context, result *Result) (string, error) {
	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode standings: %w", err)
	}

	if err := os.MkdirAll(p.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(p.config.OutputDir, OutputFileName(result.Options))
	if err := writeFileAtomic(path, body); err != nil {
		return "", err
	}

	log.Info().
		Str("path", path).
		Int("bytes", len(body)).
		Msg("Wrote standings file")

	if p.exporter != nil {
		if err := p.exporter.ExportStandings(ctx, p.config.SpreadsheetID, result.Options.Season, result.Options.TeamSubset, result.Table); err != nil {
			return path, fmt.Errorf("failed to export standings to sheets: %w", err)
		}
	}

	if p.deployer != nil {
		if err := p.deployer.Deploy(ctx, path); err != nil {
			return path, fmt.Errorf("failed to deploy standings file: %w", err)
		}
	}

	return path, nil
}

// Run processes and publishes one view, logging API usage for the cycle
func (p *StandingsProcessor) Run(ctx context.Context, opts standings.DisplayOptions) error {
	defer p.tracker.ResetSession()

	result, err := p.Process(ctx, opts)
	if err != nil {
		return err
	}

	if _, err := p.Publish(ctx, result); err != nil {
		return err
	}

	p.tracker.LogSessionSummary()
	return nil
}

// writeFileAtomic writes to a temporary file in the same directory and renames it over path
func writeFileAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write standings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write standings file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set standings file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move standings file into place: %w", err)
	}
	return nil
}
