package standings

import (
	"strconv"
	"strings"

	"nba_standings/internal/app"
)

// TeamSubset selects which teams are plotted
type TeamSubset string

const (
	SubsetAll  TeamSubset = "all"
	SubsetEast TeamSubset = "east"
	SubsetWest TeamSubset = "west"
)

// TimeScale is the x-axis granularity
type TimeScale string

const (
	ScaleGameNumber TimeScale = "game"
	ScaleDay        TimeScale = "day"
	ScaleWeek       TimeScale = "week"
	ScaleMonth      TimeScale = "month"
)

// Metric is the y-axis quantity
type Metric string

const (
	// MetricRecord plots games above .500
	MetricRecord Metric = "record"
	// MetricSeed plots league rank or conference seed
	MetricSeed Metric = "seed"
)

// DisplayOptions are the user's current chart selections
type DisplayOptions struct {
	TeamSubset TeamSubset `json:"team_subset"`
	TimeScale  TimeScale  `json:"time_scale"`
	YAxis      Metric     `json:"y_axis"`
	Season     string     `json:"season"`
	// LastGames limits the game scale to the most recent games; 0 shows all
	LastGames int `json:"last_games,omitempty"`
}

// ParseDisplayOptions builds validated options from raw strings (flags, query params)
func ParseDisplayOptions(subset, scale, metric, season string) (DisplayOptions, error) {
	opts := DisplayOptions{
		TeamSubset: TeamSubset(strings.ToLower(strings.TrimSpace(subset))),
		TimeScale:  TimeScale(strings.ToLower(strings.TrimSpace(scale))),
		YAxis:      Metric(strings.ToLower(strings.TrimSpace(metric))),
		Season:     strings.TrimSpace(season),
	}
	if err := opts.Validate(); err != nil {
		return DisplayOptions{}, err
	}
	return opts, nil
}

// Validate fails with a ConfigurationError on any unrecognized value
func (o DisplayOptions) Validate() error {
	switch o.TeamSubset {
	case SubsetAll, SubsetEast, SubsetWest:
	default:
		return &ConfigurationError{Option: "team subset", Value: string(o.TeamSubset)}
	}

	switch o.TimeScale {
	case ScaleGameNumber, ScaleDay, ScaleWeek, ScaleMonth:
	default:
		return &ConfigurationError{Option: "time scale", Value: string(o.TimeScale)}
	}

	switch o.YAxis {
	case MetricRecord, MetricSeed:
	default:
		return &ConfigurationError{Option: "y-axis metric", Value: string(o.YAxis)}
	}

	if o.LastGames < 0 || (o.LastGames > 0 && o.TimeScale != ScaleGameNumber) {
		return &ConfigurationError{Option: "last games", Value: strconv.Itoa(o.LastGames)}
	}

	if !app.IsSeasonID(o.Season) {
		return &ConfigurationError{Option: "season", Value: o.Season}
	}

	return nil
}

// IsTimestamp reports whether x values on this scale are Unix millisecond timestamps
func (s TimeScale) IsTimestamp() bool {
	return s != ScaleGameNumber
}

// IsBinned reports whether games are grouped into periods on this scale
func (s TimeScale) IsBinned() bool {
	return s == ScaleWeek || s == ScaleMonth
}

// Conference returns the conference name for a subset, or "" for all teams
func (s TeamSubset) Conference() string {
	switch s {
	case SubsetEast:
		return app.ConferenceEast
	case SubsetWest:
		return app.ConferenceWest
	default:
		return ""
	}
}
