package standings

import (
	"fmt"
	"sort"
	"time"

	"nba_standings/internal/app"
)

// playedGame pairs a game with its parsed date and its position in the input
type playedGame struct {
	game  *app.Game
	at    time.Time
	index int
}

// record returns games above .500 after this game
func (p playedGame) record() int {
	return p.game.CumulativeWins - p.game.CumulativeLosses
}

// rankEntry is one recorded date of a rank map
type rankEntry struct {
	at   time.Time
	rank int
}

// validateGames checks every field the builder depends on and returns the games
// in chronological order. Games sharing a date keep their input order. In date
// order, game numbers must run 1..N and cumulative counts must grow by the
// game's outcome.
// Pure function: does not modify the team.
func validateGames(team *app.Team) ([]playedGame, error) {
	played := make([]playedGame, 0, len(team.Games))

	for i := range team.Games {
		game := &team.Games[i]

		if game.GameNum < 1 {
			return nil, &DataIntegrityError{Team: team.Name, Index: i, Field: "game_num", Reason: "missing or not positive"}
		}

		at, err := app.ParseAPIDate(game.Date)
		if err != nil {
			return nil, &DataIntegrityError{Team: team.Name, Index: i, Field: "date", Reason: err.Error()}
		}

		switch game.Outcome {
		case app.OutcomeWin, app.OutcomeLoss:
		default:
			return nil, &DataIntegrityError{Team: team.Name, Index: i, Field: "outcome", Reason: "expected W or L"}
		}

		if game.CumulativeWins < 0 || game.CumulativeLosses < 0 ||
			game.CumulativeWins+game.CumulativeLosses != game.GameNum {
			return nil, &DataIntegrityError{
				Team:   team.Name,
				Index:  i,
				Field:  "cumulative_wins/cumulative_losses",
				Reason: "wins plus losses must equal game_num",
			}
		}

		played = append(played, playedGame{game: game, at: at, index: i})
	}

	sort.SliceStable(played, func(i, j int) bool {
		return played[i].at.Before(played[j].at)
	})

	if err := checkSequence(team.Name, played); err != nil {
		return nil, err
	}

	return played, nil
}

// checkSequence verifies date-ordered games against their game numbers and
// running record
func checkSequence(teamName string, played []playedGame) error {
	wins, losses := 0, 0
	for i, p := range played {
		if p.game.GameNum != i+1 {
			return &DataIntegrityError{
				Team:   teamName,
				Index:  p.index,
				Field:  "game_num",
				Reason: fmt.Sprintf("game %d falls at position %d in date order", p.game.GameNum, i+1),
			}
		}

		if p.game.Outcome == app.OutcomeWin {
			wins++
		} else {
			losses++
		}
		if p.game.CumulativeWins != wins || p.game.CumulativeLosses != losses {
			return &DataIntegrityError{
				Team:   teamName,
				Index:  p.index,
				Field:  "cumulative_wins/cumulative_losses",
				Reason: fmt.Sprintf("expected %d-%d after outcome %s", wins, losses, p.game.Outcome),
			}
		}
	}
	return nil
}

// rankHistory returns the team's rank map for the subset in date order:
// league rank for all teams, conference seed otherwise.
func rankHistory(team *app.Team, subset TeamSubset) ([]rankEntry, error) {
	source, field := team.LeagueRankByDate, "league_rank_by_date"
	if subset != SubsetAll {
		source, field = team.ConferenceSeedByDate, "conference_seed_by_date"
	}

	if len(source) == 0 {
		return nil, &DataIntegrityError{Team: team.Name, Index: -1, Field: field, Reason: "missing"}
	}

	history := make([]rankEntry, 0, len(source))
	for date, rank := range source {
		at, err := app.ParseAPIDate(date)
		if err != nil {
			return nil, &DataIntegrityError{Team: team.Name, Index: -1, Field: field, Reason: err.Error()}
		}
		if rank < 1 {
			return nil, &DataIntegrityError{Team: team.Name, Index: -1, Field: field, Reason: "rank must be positive"}
		}
		history = append(history, rankEntry{at: at, rank: rank})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].at.Before(history[j].at)
	})

	return history, nil
}

// rankAt returns the rank recorded on the latest date not after t
func rankAt(history []rankEntry, t time.Time) (int, bool) {
	idx := sort.Search(len(history), func(i int) bool {
		return history[i].at.After(t)
	})
	if idx == 0 {
		return 0, false
	}
	return history[idx-1].rank, true
}
