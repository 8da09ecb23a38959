package app

import (
	"fmt"
	"regexp"
	"time"
)

// APIDateLayout is the timestamp format used by the standings data server
const APIDateLayout = "2006-01-02T15:04:05"

var seasonIDPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsSeasonID reports whether id looks like "2023-24"
func IsSeasonID(id string) bool {
	return seasonIDPattern.MatchString(id)
}

// Conference identifiers as sent by the data server
const (
	ConferenceEast = "east"
	ConferenceWest = "west"
)

// Game outcomes
const (
	OutcomeWin  = "W"
	OutcomeLoss = "L"
)

// Team represents a team and its season so far, as served by /nba/<season>
type Team struct {
	ID                   int            `json:"id"`
	Name                 string         `json:"name"`
	Slug                 string         `json:"slug"`
	Conference           string         `json:"conference"`
	Division             string         `json:"division"`
	PrimaryColour        string         `json:"primary_colour"`
	SecondaryColour      string         `json:"secondary_colour"`
	TextColour           string         `json:"text_colour"`
	LeagueRank           int            `json:"league_rank"`
	ConferenceSeed       int            `json:"conference_seed"`
	Games                []Game         `json:"games"`
	LeagueRankByDate     map[string]int `json:"league_rank_by_date"`
	ConferenceSeedByDate map[string]int `json:"conference_seed_by_date"`
	StandingsInfo        StandingsInfo  `json:"standings_info"`
}

// Game represents a single game from one team's perspective
type Game struct {
	ID               string `json:"id"`
	GameNum          int    `json:"game_num"`
	Date             string `json:"date"`
	Matchup          string `json:"matchup"`
	Opponent         string `json:"opponent"`
	TeamScore        int    `json:"team_score"`
	OpponentScore    int    `json:"opponent_score"`
	Outcome          string `json:"outcome"`
	CumulativeWins   int    `json:"cumulative_wins"`
	CumulativeLosses int    `json:"cumulative_losses"`
}

// StandingsInfo is the league table snapshot for a team
type StandingsInfo struct {
	Wins                  int     `json:"wins"`
	Losses                int     `json:"losses"`
	GamesBack             float64 `json:"games_back"`
	Home                  string  `json:"home"`
	Road                  string  `json:"road"`
	PointsPerGame         float64 `json:"points_per_game"`
	OpponentPointsPerGame float64 `json:"opponent_points_per_game"`
	PointDifferential     float64 `json:"point_differential"`
	Last10                string  `json:"last_10"`
	Streak                int     `json:"streak"`
	ClinchedPlayoffs      int     `json:"clinched_playoffs"`
	ClinchedPlayIn        int     `json:"clinched_playin"`
	Eliminated            int     `json:"eliminated"`
}

// HasRankHistory reports whether the per-date rank maps were supplied
func (t *Team) HasRankHistory() bool {
	return len(t.LeagueRankByDate) > 0 && len(t.ConferenceSeedByDate) > 0
}

// ParseAPIDate converts a data server timestamp to a UTC time
func ParseAPIDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.ParseInLocation(APIDateLayout, s, time.UTC)
	if err != nil {
		// Some payloads carry plain dates
		if d, dErr := time.ParseInLocation(time.DateOnly, s, time.UTC); dErr == nil {
			return d, nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatAPIDate renders a time in the data server timestamp format
func FormatAPIDate(t time.Time) string {
	return t.UTC().Format(APIDateLayout)
}
