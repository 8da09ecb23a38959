package config

import (
	"fmt"
	"os"
	"time"

	"nba_standings/internal/app"

	"gopkg.in/yaml.v3"
)

// Seasons is the contents of the seasons file
type Seasons struct {
	CurrentSeason string                  `yaml:"current_season"`
	Seasons       map[string]SeasonConfig `yaml:"seasons"`
}

// SeasonConfig holds per-season settings
type SeasonConfig struct {
	// PlayoffFormat is "modern" (play-in tournament) or "legacy"
	PlayoffFormat string        `yaml:"playoff_format"`
	Breaks        []BreakConfig `yaml:"breaks"`
}

// BreakConfig is a date range excluded from continuous trend lines
type BreakConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Interval parses the break dates (YYYY-MM-DD, UTC)
func (b BreakConfig) Interval() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(time.DateOnly, b.Start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start for break %q: %w", b.Name, err)
	}
	end, err := time.ParseInLocation(time.DateOnly, b.End, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end for break %q: %w", b.Name, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("break %q ends before it starts", b.Name)
	}
	return start, end, nil
}

// LoadSeasons reads and validates the seasons file
func LoadSeasons(path string) (*Seasons, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seasons file: %w", err)
	}
	return ParseSeasons(data)
}

// ParseSeasons parses seasons YAML
func ParseSeasons(data []byte) (*Seasons, error) {
	var seasons Seasons
	if err := yaml.Unmarshal(data, &seasons); err != nil {
		return nil, fmt.Errorf("failed to parse seasons file: %w", err)
	}

	if seasons.CurrentSeason != "" && !app.IsSeasonID(seasons.CurrentSeason) {
		return nil, fmt.Errorf("invalid current_season %q: expected YYYY-YY", seasons.CurrentSeason)
	}

	for id, season := range seasons.Seasons {
		if !app.IsSeasonID(id) {
			return nil, fmt.Errorf("invalid season id %q: expected YYYY-YY", id)
		}
		switch season.PlayoffFormat {
		case "", "modern", "legacy":
		default:
			return nil, fmt.Errorf("season %s: unknown playoff_format %q", id, season.PlayoffFormat)
		}
		for _, b := range season.Breaks {
			if _, _, err := b.Interval(); err != nil {
				return nil, fmt.Errorf("season %s: %w", id, err)
			}
		}
	}

	return &seasons, nil
}

// Season returns the settings for a season, or zero settings if none are configured
func (s *Seasons) Season(id string) SeasonConfig {
	if s == nil || s.Seasons == nil {
		return SeasonConfig{}
	}
	return s.Seasons[id]
}

// IsCompleted reports whether a season is in the past relative to the current season
func (s *Seasons) IsCompleted(id string) bool {
	if s == nil || s.CurrentSeason == "" {
		return false
	}
	// YYYY-YY ids sort lexically
	return id < s.CurrentSeason
}
