package standings

import (
	"time"

	"nba_standings/internal/app"
)

var seasonStart = time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return seasonStart.AddDate(0, 0, offset)
}

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

// makeTeam builds a team whose games are played on the given day offsets with
// the given outcomes, e.g. outcomes "WWL" with days {0, 2, 3}
func makeTeam(name, slug, conference, outcomes string, days []int) app.Team {
	team := app.Team{
		Name:            name,
		Slug:            slug,
		Conference:      conference,
		PrimaryColour:   "#" + slug + "111",
		SecondaryColour: "#" + slug + "222",
		TextColour:      "#ffffff",
		LeagueRank:      1,
		ConferenceSeed:  1,
	}

	wins, losses := 0, 0
	for i, outcome := range outcomes {
		if outcome == 'W' {
			wins++
		} else {
			losses++
		}
		team.Games = append(team.Games, app.Game{
			ID:               slug + "-" + string(rune('a'+i)),
			GameNum:          i + 1,
			Date:             app.FormatAPIDate(day(days[i])),
			Matchup:          slug + " vs. OPP",
			Opponent:         "OPP",
			TeamScore:        100 + i,
			OpponentScore:    95,
			Outcome:          string(outcome),
			CumulativeWins:   wins,
			CumulativeLosses: losses,
		})
	}
	return team
}

// withRanks records league rank and conference seed on the given day offsets
func withRanks(team app.Team, days []int, ranks []int) app.Team {
	team.LeagueRankByDate = map[string]int{}
	team.ConferenceSeedByDate = map[string]int{}
	for i, d := range days {
		key := app.FormatAPIDate(day(d))
		team.LeagueRankByDate[key] = ranks[i]
		team.ConferenceSeedByDate[key] = (ranks[i] + 1) / 2
	}
	return team
}

func consecutiveDays(n int) []int {
	days := make([]int, n)
	for i := range days {
		days[i] = i
	}
	return days
}

func yValues(points []SeriesPoint) []*int {
	ys := make([]*int, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	return ys
}

func optsFor(subset TeamSubset, scale TimeScale, metric Metric) DisplayOptions {
	return DisplayOptions{TeamSubset: subset, TimeScale: scale, YAxis: metric, Season: "2023-24"}
}
