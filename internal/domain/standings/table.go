package standings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"nba_standings/internal/app"
)

// TableHeaders are the standings table column titles, in cell order
var TableHeaders = []string{
	"#", "Team", "", "W", "L", "Pct.", "GB", "Home", "Away",
	"PPG", "Opp. PPG", "Diff.", "Last 10", "Streak",
}

// Clinch marks
const (
	ClinchedPlayoffs = "x"
	ClinchedPlayIn   = "pi"
	Eliminated       = "e"
	NotClinched      = "-"
)

// TableRow is one team's line in the standings table
type TableRow struct {
	Rank                  int     `json:"rank"`
	Slug                  string  `json:"slug"`
	Clinched              string  `json:"clinched"`
	Wins                  int     `json:"wins"`
	Losses                int     `json:"losses"`
	WinPct                string  `json:"win_pct"`
	GamesBack             float64 `json:"games_back"`
	Home                  string  `json:"home"`
	Away                  string  `json:"away"`
	PointsPerGame         float64 `json:"points_per_game"`
	OpponentPointsPerGame float64 `json:"opponent_points_per_game"`
	PointDifferential     float64 `json:"point_differential"`
	Last10                string  `json:"last_10"`
	Streak                string  `json:"streak"`
}

// BuildTable returns one row per team in the subset, sorted by rank.
// Rank is the league rank for all teams and the conference seed otherwise.
// Pure function: does not modify the teams.
func BuildTable(teams []app.Team, subset TeamSubset) []TableRow {
	rows := make([]TableRow, 0, len(teams))
	for _, team := range filterTeams(teams, subset) {
		rows = append(rows, tableRow(team, subset))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})
	return rows
}

func tableRow(team *app.Team, subset TeamSubset) TableRow {
	info := team.StandingsInfo

	rank := team.LeagueRank
	if subset != SubsetAll {
		rank = team.ConferenceSeed
	}

	return TableRow{
		Rank:                  rank,
		Slug:                  team.Slug,
		Clinched:              clinchMark(info),
		Wins:                  info.Wins,
		Losses:                info.Losses,
		WinPct:                winPct(info.Wins, info.Losses),
		GamesBack:             info.GamesBack,
		Home:                  info.Home,
		Away:                  info.Road,
		PointsPerGame:         info.PointsPerGame,
		OpponentPointsPerGame: info.OpponentPointsPerGame,
		PointDifferential:     info.PointDifferential,
		Last10:                info.Last10,
		Streak:                streakText(info.Streak),
	}
}

// Cells renders the row in TableHeaders order
func (r TableRow) Cells() []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Slug,
		r.Clinched,
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		r.WinPct,
		formatFloat(r.GamesBack),
		r.Home,
		r.Away,
		formatFloat(r.PointsPerGame),
		formatFloat(r.OpponentPointsPerGame),
		formatFloat(r.PointDifferential),
		r.Last10,
		r.Streak,
	}
}

func clinchMark(info app.StandingsInfo) string {
	switch {
	case info.ClinchedPlayoffs == 1:
		return ClinchedPlayoffs
	case info.ClinchedPlayIn == 1:
		return ClinchedPlayIn
	case info.Eliminated == 1:
		return Eliminated
	default:
		return NotClinched
	}
}

func winPct(wins, losses int) string {
	if wins+losses == 0 {
		return "0.000"
	}
	return strconv.FormatFloat(float64(wins)/float64(wins+losses), 'f', 3, 64)
}

// streakText renders a streak like "W4 🔥" with one emoji per three games, at most three
func streakText(streak int) string {
	if streak == 0 {
		return NotClinched
	}

	prefix, emoji, length := "W", "🔥", streak
	if streak < 0 {
		prefix, emoji, length = "L", "❄️", -streak
	}

	count := length / 3
	if count > 3 {
		count = 3
	}
	return strings.TrimSpace(fmt.Sprintf("%s%d %s", prefix, length, strings.Repeat(emoji, count)))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
