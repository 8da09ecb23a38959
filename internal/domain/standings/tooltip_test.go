package standings

import (
	"testing"
	"time"

	"nba_standings/internal/app"
)

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 30: "30th",
		111: "111th",
	}
	for n, expected := range tests {
		if got := Ordinal(n); got != expected {
			t.Errorf("Ordinal(%d) = %q, expected %q", n, got, expected)
		}
	}
}

func TestTooltipRecord(t *testing.T) {
	builder := NewBuilder("/logos", nil)
	team := makeTeam("Atlanta Hawks", "ATL", app.ConferenceEast, "WLWW", []int{0, 1, 2, 10})
	team.Games[1].Matchup = "ATL @ BOS"
	team.Games[1].TeamScore = 99
	team.Games[1].OpponentScore = 104
	teams := []app.Team{team}
	farFuture := day(400)

	tests := []struct {
		name            string
		scale           TimeScale
		index           int
		now             time.Time
		expectedTitle   string
		expectedRecord  string
		expectedFlavour string
	}{
		{
			name:            "GameNumber",
			scale:           ScaleGameNumber,
			index:           2,
			now:             farFuture,
			expectedTitle:   "Game 2",
			expectedRecord:  "1-1",
			expectedFlavour: "L @ BOS 99-104",
		},
		{
			name:            "Day",
			scale:           ScaleDay,
			index:           1,
			now:             farFuture,
			expectedTitle:   "24 Oct 2023",
			expectedRecord:  "1-0",
			expectedFlavour: "W vs. OPP 100-95",
		},
		{
			name:            "CompletedWeek",
			scale:           ScaleWeek,
			index:           0,
			now:             farFuture,
			expectedTitle:   "Week 1 (ending 31 Oct 2023)",
			expectedRecord:  "2-1",
			expectedFlavour: "2-1 in week",
		},
		{
			name:            "CurrentWeek",
			scale:           ScaleWeek,
			index:           1,
			now:             day(11),
			expectedTitle:   "Week 2 (current)",
			expectedRecord:  "3-1",
			expectedFlavour: "1-0 in week",
		},
		{
			name:            "Month",
			scale:           ScaleMonth,
			index:           0,
			now:             farFuture,
			expectedTitle:   "October 2023",
			expectedRecord:  "2-1",
			expectedFlavour: "2-1 in Oct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := builder.Build(teams, optsFor(SubsetAll, tt.scale, MetricRecord))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			text, ok := Tooltip(data, []PointRef{{Dataset: 0, Index: tt.index}}, tt.now)
			if !ok {
				t.Fatal("expected a tooltip")
			}
			if text.Title != tt.expectedTitle {
				t.Errorf("expected title %q, got %q", tt.expectedTitle, text.Title)
			}
			if len(text.Lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(text.Lines))
			}
			line := text.Lines[0]
			if line.Record != tt.expectedRecord {
				t.Errorf("expected record %q, got %q", tt.expectedRecord, line.Record)
			}
			if line.Flavour != tt.expectedFlavour {
				t.Errorf("expected flavour %q, got %q", tt.expectedFlavour, line.Flavour)
			}
			if line.Slug != "ATL" || line.LogoURL != "/logos/ATL.png" {
				t.Errorf("unexpected team fields %+v", line)
			}
		})
	}
}

func TestTooltipSeed(t *testing.T) {
	builder := NewBuilder("/logos", nil)
	team := withRanks(
		makeTeam("Atlanta Hawks", "ATL", app.ConferenceEast, "WLW", []int{0, 2, 4}),
		[]int{0, 1, 2, 3, 4},
		[]int{3, 4, 11, 12, 12},
	)

	t.Run("League", func(t *testing.T) {
		data, err := builder.Build([]app.Team{team}, optsFor(SubsetAll, ScaleDay, MetricSeed))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		// Day 3: rank 12 after the 1-1 game on day 2
		text, ok := Tooltip(data, []PointRef{{Dataset: 0, Index: 3}}, day(30))
		if !ok {
			t.Fatal("expected a tooltip")
		}
		line := text.Lines[0]
		if line.Flavour != "Ranked 12th" || line.Record != "1-1" {
			t.Errorf("unexpected line %+v", line)
		}
	})

	t.Run("Conference", func(t *testing.T) {
		data, err := builder.Build([]app.Team{team}, optsFor(SubsetEast, ScaleGameNumber, MetricSeed))
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		text, ok := Tooltip(data, []PointRef{{Dataset: 0, Index: 0}}, day(30))
		if !ok {
			t.Fatal("expected a tooltip")
		}
		line := text.Lines[0]
		if line.Flavour != "2nd seed" || line.Record != "1-0" || text.Title != "Game 1" {
			t.Errorf("unexpected tooltip %+v", text)
		}
	})
}

func TestTooltipHiddenPoints(t *testing.T) {
	builder := NewBuilder("/logos", nil)
	teams := []app.Team{
		makeTeam("Atlanta Hawks", "ATL", app.ConferenceEast, "WLWW", []int{0, 1, 2, 10}),
		makeTeam("Boston Celtics", "BOS", app.ConferenceEast, "W", []int{0}),
	}

	gameData, err := builder.Build(teams, optsFor(SubsetAll, ScaleGameNumber, MetricRecord))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	weekData, err := builder.Build(teams, optsFor(SubsetAll, ScaleWeek, MetricRecord))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		name string
		data *ChartData
		refs []PointRef
	}{
		{"NoRefs", gameData, nil},
		{"Origin", gameData, []PointRef{{Dataset: 0, Index: 0}}},
		{"EmptyWeek", weekData, []PointRef{{Dataset: 1, Index: 1}}},
		{"OutOfRange", gameData, []PointRef{{Dataset: 5, Index: 0}}},
		{"NilData", nil, []PointRef{{Dataset: 0, Index: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Tooltip(tt.data, tt.refs, day(30)); ok {
				t.Error("expected no tooltip")
			}
		})
	}

	// Gaps among several hovered points are skipped
	text, ok := Tooltip(weekData, []PointRef{{Dataset: 0, Index: 1}, {Dataset: 1, Index: 1}}, day(30))
	if !ok || len(text.Lines) != 1 || text.Lines[0].Slug != "ATL" {
		t.Errorf("expected only ATL in the tooltip, got %+v", text)
	}
}
