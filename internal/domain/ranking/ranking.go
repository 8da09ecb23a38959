package ranking

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"nba_standings/internal/app"
)

// ErrNoGames is returned when no team has played a game
var ErrNoGames = errors.New("no games played")

// Ranks is one team's standing over the season
type Ranks struct {
	LeagueRankByDate     map[string]int
	ConferenceSeedByDate map[string]int
	// Final rank and seed after the last day
	LeagueRank     int
	ConferenceSeed int
}

// Compute replays the season day by day and ranks every team after each day's
// games, breaking ties with the NBA criteria. The result is keyed by team slug.
// Pure function: the input teams are not modified.
func Compute(teams []app.Team, format PlayoffFormat) (map[string]Ranks, error) {
	standings := make([]*standing, 0, len(teams))
	bySlug := make(map[string]*standing, len(teams))

	var first, last time.Time
	played := false

	for i := range teams {
		games, err := datedGames(&teams[i])
		if err != nil {
			return nil, err
		}
		s := newStanding(&teams[i], games)
		standings = append(standings, s)
		bySlug[s.slug] = s

		if len(games) == 0 {
			continue
		}
		if !played || games[0].day.Before(first) {
			first = games[0].day
		}
		if !played || games[len(games)-1].day.After(last) {
			last = games[len(games)-1].day
		}
		played = true
	}

	if !played {
		return nil, ErrNoGames
	}

	result := make(map[string]Ranks, len(standings))
	for _, s := range standings {
		result[s.slug] = Ranks{
			LeagueRankByDate:     make(map[string]int),
			ConferenceSeedByDate: make(map[string]int),
		}
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		for _, s := range standings {
			s.playThrough(day, bySlug)
		}

		ranked := rankTeams(standings, format)
		key := app.FormatAPIDate(day)

		seeds := make(map[string]int, 2)
		for i, s := range ranked {
			seeds[s.conference]++
			r := result[s.slug]
			r.LeagueRankByDate[key] = i + 1
			r.ConferenceSeedByDate[key] = seeds[s.conference]
			r.LeagueRank = i + 1
			r.ConferenceSeed = seeds[s.conference]
			result[s.slug] = r
		}
	}

	return result, nil
}

// Apply returns copies of the teams with rank maps and final ranks filled in.
// Teams missing from ranks are copied unchanged.
func Apply(teams []app.Team, ranks map[string]Ranks) []app.Team {
	out := make([]app.Team, len(teams))
	for i, team := range teams {
		out[i] = team
		r, ok := ranks[team.Slug]
		if !ok {
			continue
		}
		out[i].LeagueRankByDate = r.LeagueRankByDate
		out[i].ConferenceSeedByDate = r.ConferenceSeedByDate
		out[i].LeagueRank = r.LeagueRank
		out[i].ConferenceSeed = r.ConferenceSeed
	}
	return out
}

// rankTeams orders teams by winning percentage, breaking ties
func rankTeams(teams []*standing, format PlayoffFormat) []*standing {
	groups := sortAndGroup(teams, overallPct)
	if len(groups) == len(teams) {
		return flatten(groups)
	}

	leaders := divisionLeaders(teams, groups, format)

	ranked := make([]*standing, 0, len(teams))
	for _, g := range groups {
		if len(g) == 1 {
			ranked = append(ranked, g[0])
			continue
		}
		ranked = append(ranked, newTieBreaker(g, groups, format, leaders).order(g)...)
	}
	return ranked
}

// divisionLeaders picks the best team of each division, breaking ties for the lead
func divisionLeaders(teams []*standing, ordering []group, format PlayoffFormat) map[string]*standing {
	var divisions []string
	byDivision := make(map[string][]*standing)
	for _, t := range teams {
		if _, ok := byDivision[t.division]; !ok {
			divisions = append(divisions, t.division)
		}
		byDivision[t.division] = append(byDivision[t.division], t)
	}

	leaders := make(map[string]*standing, len(divisions))
	for _, division := range divisions {
		top := sortAndGroup(byDivision[division], overallPct)[0]
		if len(top) > 1 {
			leaders[division] = newTieBreaker(top, ordering, format, nil).order(top)[0]
		} else {
			leaders[division] = top[0]
		}
	}
	return leaders
}

func overallPct(s *standing) float64 {
	return s.overall.pct()
}

// datedGames parses and date-orders a team's games
func datedGames(team *app.Team) ([]datedGame, error) {
	games := make([]datedGame, 0, len(team.Games))
	for i := range team.Games {
		at, err := app.ParseAPIDate(team.Games[i].Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse game date for %s: %w", team.Slug, err)
		}
		day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		games = append(games, datedGame{game: &team.Games[i], day: day})
	}
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].day.Before(games[j].day)
	})
	return games, nil
}
