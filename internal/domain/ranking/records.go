package ranking

import (
	"time"

	"nba_standings/internal/app"
)

// record counts wins and losses
type record struct {
	wins   int
	losses int
}

// pct returns the winning percentage, .500 before any game is played
func (r record) pct() float64 {
	if r.wins == 0 && r.losses == 0 {
		return 0.5
	}
	return float64(r.wins) / float64(r.wins+r.losses)
}

func (r *record) add(won bool) {
	if won {
		r.wins++
	} else {
		r.losses++
	}
}

func (r record) plus(other record) record {
	return record{wins: r.wins + other.wins, losses: r.losses + other.losses}
}

// datedGame is a game with its date truncated to the day
type datedGame struct {
	game *app.Game
	day  time.Time
}

// standing tracks the records that decide a team's rank as the season is replayed
type standing struct {
	slug       string
	conference string
	division   string

	overall    record
	conf       record
	div        record
	vs         map[string]record
	pointsDiff int

	games []datedGame
	next  int
}

func newStanding(team *app.Team, games []datedGame) *standing {
	return &standing{
		slug:       team.Slug,
		conference: team.Conference,
		division:   team.Division,
		vs:         make(map[string]record),
		games:      games,
	}
}

// playThrough applies every game on or before day that has not been applied yet
func (s *standing) playThrough(day time.Time, teams map[string]*standing) {
	for s.next < len(s.games) && !s.games[s.next].day.After(day) {
		s.apply(s.games[s.next].game, teams[s.games[s.next].game.Opponent])
		s.next++
	}
}

func (s *standing) apply(game *app.Game, opponent *standing) {
	won := game.Outcome == app.OutcomeWin

	s.overall.add(won)

	vs := s.vs[game.Opponent]
	vs.add(won)
	s.vs[game.Opponent] = vs

	if opponent != nil {
		if opponent.conference == s.conference {
			s.conf.add(won)
		}
		if opponent.division == s.division {
			s.div.add(won)
		}
	}

	s.pointsDiff += game.TeamScore - game.OpponentScore
}

func (s *standing) pctVs(other *standing) float64 {
	return s.vs[other.slug].pct()
}

// recordVs sums the team's record against every listed opponent except itself
func (s *standing) recordVs(opponents []*standing) record {
	var total record
	for _, o := range opponents {
		if o == s {
			continue
		}
		total = total.plus(s.vs[o.slug])
	}
	return total
}
