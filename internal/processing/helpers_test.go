package processing

import (
	"testing"
	"time"

	"nba_standings/internal/app"
	"nba_standings/internal/config"

	json "github.com/goccy/go-json"
)

var openingNight = time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)

type matchResult struct {
	day                  int
	home, away           string
	homeScore, awayScore int
}

// sampleSeason returns four teams with three games each and no rank history
func sampleSeason() []app.Team {
	teams := []app.Team{
		{Name: "Boston Celtics", Slug: "BOS", Conference: app.ConferenceEast, Division: "atlantic",
			PrimaryColour: "#007a33", SecondaryColour: "#ba9653", LeagueRank: 1, ConferenceSeed: 1},
		{Name: "New York Knicks", Slug: "NYK", Conference: app.ConferenceEast, Division: "atlantic",
			PrimaryColour: "#006bb6", SecondaryColour: "#f58426", LeagueRank: 4, ConferenceSeed: 2},
		{Name: "Denver Nuggets", Slug: "DEN", Conference: app.ConferenceWest, Division: "northwest",
			PrimaryColour: "#0e2240", SecondaryColour: "#fec524", LeagueRank: 3, ConferenceSeed: 2},
		{Name: "Los Angeles Lakers", Slug: "LAL", Conference: app.ConferenceWest, Division: "pacific",
			PrimaryColour: "#552583", SecondaryColour: "#fdb927", LeagueRank: 2, ConferenceSeed: 1},
	}

	results := []matchResult{
		{0, "BOS", "NYK", 108, 104},
		{0, "DEN", "LAL", 119, 107},
		{2, "NYK", "DEN", 120, 99},
		{2, "LAL", "BOS", 110, 100},
		{4, "BOS", "DEN", 115, 100},
		{4, "NYK", "LAL", 101, 111},
	}

	index := make(map[string]int, len(teams))
	for i, team := range teams {
		index[team.Slug] = i
	}

	addGame := func(slug, opponent string, day, score, oppScore int, matchup string) {
		team := &teams[index[slug]]
		prev := app.Game{}
		if n := len(team.Games); n > 0 {
			prev = team.Games[n-1]
		}
		game := app.Game{
			GameNum:          len(team.Games) + 1,
			Date:             app.FormatAPIDate(openingNight.AddDate(0, 0, day)),
			Matchup:          matchup,
			Opponent:         opponent,
			TeamScore:        score,
			OpponentScore:    oppScore,
			Outcome:          app.OutcomeLoss,
			CumulativeWins:   prev.CumulativeWins,
			CumulativeLosses: prev.CumulativeLosses + 1,
		}
		if score > oppScore {
			game.Outcome = app.OutcomeWin
			game.CumulativeWins++
			game.CumulativeLosses--
		}
		team.Games = append(team.Games, game)
	}

	for _, r := range results {
		addGame(r.home, r.away, r.day, r.homeScore, r.awayScore, r.home+" vs. "+r.away)
		addGame(r.away, r.home, r.day, r.awayScore, r.homeScore, r.away+" @ "+r.home)
	}
	return teams
}

// samplePayload encodes sampleSeason the way the data server does
func samplePayload(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(sampleSeason())
	if err != nil {
		t.Fatalf("failed to encode sample season: %v", err)
	}
	return body
}

func testSeasons() *config.Seasons {
	return &config.Seasons{
		CurrentSeason: "2023-24",
		Seasons: map[string]config.SeasonConfig{
			"2023-24": {
				PlayoffFormat: "modern",
				Breaks: []config.BreakConfig{
					{Name: "All-Star break", Start: "2024-02-16", End: "2024-02-21"},
				},
			},
			"2013-14": {PlayoffFormat: "legacy"},
		},
	}
}
