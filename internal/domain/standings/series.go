package standings

import (
	"time"

	"nba_standings/internal/app"
)

// SeriesPoint is one plotted value. X is a game number or a Unix millisecond
// timestamp depending on the time scale; a nil Y leaves a gap in the line.
type SeriesPoint struct {
	X     int64      `json:"x"`
	Y     *int       `json:"y"`
	Games []app.Game `json:"games,omitempty"`
	// Origin marks the synthetic starting point of a record series
	Origin bool `json:"origin,omitempty"`
	// PeriodStart is the start of the week or month a binned point covers
	PeriodStart int64 `json:"period_start,omitempty"`
}

// HasValue reports whether the point carries data
func (p SeriesPoint) HasValue() bool {
	return p.Y != nil
}

// TeamSeries is one team's dataset, styled for a line chart
type TeamSeries struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
	// Team is shared with the caller and must be treated as read-only
	Team *app.Team     `json:"-"`
	Data []SeriesPoint `json:"data"`

	BackgroundColor  string `json:"backgroundColor"`
	BorderColor      string `json:"borderColor"`
	BorderWidth      int    `json:"borderWidth"`
	Order            int    `json:"order"`
	LogoURL          string `json:"logo_url"`
	GrayscaleLogoURL string `json:"grayscale_logo_url"`

	PointStyle       []string `json:"pointStyle"`
	PointRadius      []int    `json:"pointRadius"`
	PointHoverRadius []int    `json:"pointHoverRadius"`
	PointHitRadius   []int    `json:"pointHitRadius"`
}

// ChartData is the builder output: one series per team plus the time range covered
type ChartData struct {
	Datasets   []TeamSeries   `json:"datasets"`
	RangeStart time.Time      `json:"range_start"`
	RangeEnd   time.Time      `json:"range_end"`
	Options    DisplayOptions `json:"options"`
	// FirstGame is the lowest game number plotted when LastGames is set
	FirstGame int64 `json:"first_game,omitempty"`
}

// SeasonBreak is a date range with no games, such as the All-Star break
type SeasonBreak struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Builder converts team payloads into chart series
type Builder struct {
	logoBaseURL string
	breaks      map[string][]SeasonBreak
}

// NewBuilder creates a builder. breaks is keyed by season id.
func NewBuilder(logoBaseURL string, breaks map[string][]SeasonBreak) *Builder {
	return &Builder{
		logoBaseURL: logoBaseURL,
		breaks:      breaks,
	}
}

// Breaks returns the configured breaks for a season
func (b *Builder) Breaks(season string) []SeasonBreak {
	return b.breaks[season]
}

// Build produces one series per team in the selected subset.
// Input teams are never modified; every call returns fresh output.
func (b *Builder) Build(teams []app.Team, opts DisplayOptions) (*ChartData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data := &ChartData{
		Datasets: []TeamSeries{},
		Options:  opts,
	}
	if len(teams) == 0 {
		return data, nil
	}

	selected := filterTeams(teams, opts.TeamSubset)

	played := make([][]playedGame, len(selected))
	for i, team := range selected {
		games, err := validateGames(team)
		if err != nil {
			return nil, err
		}
		if len(games) == 0 && (opts.TimeScale.IsTimestamp() || opts.YAxis == MetricSeed) {
			return nil, &EmptyInputError{Team: team.Name, Reason: "no games played"}
		}
		played[i] = games
	}

	first, last, ok := playedRange(played)
	if ok {
		data.RangeStart = first
		data.RangeEnd = last
	}

	var bins *timeline
	if opts.TimeScale.IsBinned() && ok {
		bins = newTimeline(opts.TimeScale, first, last)
	}

	firstGame, windowed := gameWindow(played, opts.LastGames)
	data.FirstGame = firstGame

	for i, team := range selected {
		var (
			points []SeriesPoint
			err    error
		)

		switch opts.YAxis {
		case MetricRecord:
			points = recordPoints(played[i], opts.TimeScale, first, bins)
		case MetricSeed:
			points, err = seedPoints(team, played[i], opts, bins)
		}
		if err != nil {
			return nil, err
		}

		if windowed {
			points = pointsFrom(points, firstGame)
		}
		if opts.YAxis == MetricSeed {
			points = compressRuns(points)
		}

		if opts.TimeScale.IsTimestamp() {
			for _, brk := range b.breaks[opts.Season] {
				points = insertBreak(points, brk)
			}
		}

		series := TeamSeries{
			Label:            team.Name,
			Slug:             team.Slug,
			Team:             team,
			Data:             points,
			BorderWidth:      2,
			Order:            team.LeagueRank,
			LogoURL:          logoURL(b.logoBaseURL, team.Slug, false),
			GrayscaleLogoURL: logoURL(b.logoBaseURL, team.Slug, true),
		}
		data.Datasets = append(data.Datasets, Restyle(series, true))
	}

	return data, nil
}

// filterTeams keeps teams of the subset's conference in input order
func filterTeams(teams []app.Team, subset TeamSubset) []*app.Team {
	conference := subset.Conference()
	selected := make([]*app.Team, 0, len(teams))
	for i := range teams {
		if conference != "" && teams[i].Conference != conference {
			continue
		}
		selected = append(selected, &teams[i])
	}
	return selected
}

// playedRange returns the earliest and latest game dates across all teams
func playedRange(played [][]playedGame) (time.Time, time.Time, bool) {
	var first, last time.Time
	found := false
	for _, games := range played {
		if len(games) == 0 {
			continue
		}
		start, end := games[0].at, games[len(games)-1].at
		if !found || start.Before(first) {
			first = start
		}
		if !found || end.After(last) {
			last = end
		}
		found = true
	}
	return first, last, found
}

// recordPoints derives games-above-.500 points for one team
func recordPoints(games []playedGame, scale TimeScale, first time.Time, bins *timeline) []SeriesPoint {
	switch scale {
	case ScaleDay:
		points := make([]SeriesPoint, 0, len(games)+1)
		points = append(points, SeriesPoint{
			X:      first.AddDate(0, 0, -1).UnixMilli(),
			Y:      intPtr(0),
			Origin: true,
		})
		for _, g := range games {
			points = append(points, SeriesPoint{
				X:     g.at.UnixMilli(),
				Y:     intPtr(g.record()),
				Games: []app.Game{*g.game},
			})
		}
		return points

	case ScaleWeek, ScaleMonth:
		buckets := bins.bucket(games)
		points := make([]SeriesPoint, bins.Len())
		for i, p := range bins.periods {
			points[i] = p.point()
			if bucket := buckets[i]; len(bucket) > 0 {
				points[i].Y = intPtr(bucket[len(bucket)-1].record())
				points[i].Games = make([]app.Game, len(bucket))
				for j, g := range bucket {
					points[i].Games[j] = *g.game
				}
			}
		}
		return points

	default:
		points := make([]SeriesPoint, 0, len(games)+1)
		points = append(points, SeriesPoint{X: 0, Y: intPtr(0), Origin: true})
		for _, g := range games {
			points = append(points, SeriesPoint{
				X:     int64(g.game.GameNum),
				Y:     intPtr(g.record()),
				Games: []app.Game{*g.game},
			})
		}
		return points
	}
}

// gameWindow returns the first game number shown when only the last n games
// are plotted, and false when every game is shown
func gameWindow(played [][]playedGame, n int) (int64, bool) {
	if n <= 0 {
		return 0, false
	}
	maxPlayed := 0
	for _, games := range played {
		for _, g := range games {
			maxPlayed = max(maxPlayed, g.game.GameNum)
		}
	}
	return int64(max(0, maxPlayed-n)), true
}

// pointsFrom keeps the points at or after x
func pointsFrom(points []SeriesPoint, x int64) []SeriesPoint {
	kept := make([]SeriesPoint, 0, len(points))
	for _, p := range points {
		if p.X >= x {
			kept = append(kept, p)
		}
	}
	return kept
}

func intPtr(v int) *int {
	return &v
}
