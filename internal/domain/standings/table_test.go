package standings

import (
	"testing"

	"nba_standings/internal/app"
)

func TestBuildTable(t *testing.T) {
	teams := []app.Team{
		{
			Slug: "BOS", Conference: app.ConferenceEast, LeagueRank: 1, ConferenceSeed: 1,
			StandingsInfo: app.StandingsInfo{Wins: 64, Losses: 18, Home: "37-4", Road: "27-14", Last10: "7-3", Streak: 4, ClinchedPlayoffs: 1},
		},
		{
			Slug: "DEN", Conference: app.ConferenceWest, LeagueRank: 3, ConferenceSeed: 2,
			StandingsInfo: app.StandingsInfo{Wins: 57, Losses: 25, GamesBack: 0.5, Streak: -1, ClinchedPlayIn: 1},
		},
		{
			Slug: "DET", Conference: app.ConferenceEast, LeagueRank: 30, ConferenceSeed: 15,
			StandingsInfo: app.StandingsInfo{Wins: 14, Losses: 68, GamesBack: 50, Streak: -28, Eliminated: 1},
		},
		{
			Slug: "OKC", Conference: app.ConferenceWest, LeagueRank: 2, ConferenceSeed: 1,
			StandingsInfo: app.StandingsInfo{Wins: 57, Losses: 25, PointDifferential: 7.4},
		},
	}

	t.Run("AllSortedByLeagueRank", func(t *testing.T) {
		rows := BuildTable(teams, SubsetAll)
		expected := []string{"BOS", "OKC", "DEN", "DET"}
		if len(rows) != len(expected) {
			t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
		}
		for i, slug := range expected {
			if rows[i].Slug != slug {
				t.Errorf("row %d: expected %s, got %s", i, slug, rows[i].Slug)
			}
		}
	})

	t.Run("ConferenceUsesSeed", func(t *testing.T) {
		rows := BuildTable(teams, SubsetWest)
		if len(rows) != 2 || rows[0].Slug != "OKC" || rows[0].Rank != 1 || rows[1].Rank != 2 {
			t.Errorf("unexpected west rows %+v", rows)
		}
	})

	t.Run("RowFields", func(t *testing.T) {
		rows := BuildTable(teams, SubsetEast)

		bos := rows[0]
		if bos.Clinched != ClinchedPlayoffs || bos.WinPct != "0.780" || bos.Streak != "W4 🔥" || bos.Away != "27-14" {
			t.Errorf("unexpected BOS row %+v", bos)
		}

		det := rows[1]
		if det.Clinched != Eliminated || det.Streak != "L28 ❄️❄️❄️" {
			t.Errorf("unexpected DET row %+v", det)
		}
	})
}

func TestStreakText(t *testing.T) {
	tests := map[int]string{
		0:   "-",
		1:   "W1",
		2:   "W2",
		3:   "W3 🔥",
		7:   "W7 🔥🔥",
		-2:  "L2",
		-6:  "L6 ❄️❄️",
		-15: "L15 ❄️❄️❄️",
	}
	for streak, expected := range tests {
		if got := streakText(streak); got != expected {
			t.Errorf("streakText(%d) = %q, expected %q", streak, got, expected)
		}
	}
}

func TestTableRowCells(t *testing.T) {
	row := TableRow{
		Rank: 2, Slug: "OKC", Clinched: NotClinched, Wins: 57, Losses: 25, WinPct: "0.695",
		GamesBack: 0.5, Home: "33-8", Away: "24-17", PointsPerGame: 120.1,
		OpponentPointsPerGame: 112.7, PointDifferential: 7.4, Last10: "8-2", Streak: "W5 🔥",
	}

	cells := row.Cells()
	if len(cells) != len(TableHeaders) {
		t.Fatalf("expected %d cells, got %d", len(TableHeaders), len(cells))
	}
	expected := []string{"2", "OKC", "-", "57", "25", "0.695", "0.5", "33-8", "24-17", "120.1", "112.7", "7.4", "8-2", "W5 🔥"}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell %d (%s): expected %q, got %q", i, TableHeaders[i], expected[i], cells[i])
		}
	}
}

func TestWinPct(t *testing.T) {
	if got := winPct(0, 0); got != "0.000" {
		t.Errorf("expected 0.000 with no games, got %s", got)
	}
	if got := winPct(1, 2); got != "0.333" {
		t.Errorf("expected 0.333, got %s", got)
	}
}
