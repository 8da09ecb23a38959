package standings

import (
	"testing"

	"nba_standings/internal/app"
)

func TestBuildChartOptions(t *testing.T) {
	builder := NewBuilder("/logos", nil)
	teams := []app.Team{
		withRanks(makeTeam("Atlanta Hawks", "ATL", app.ConferenceEast, "WLW", []int{0, 10, 30}), []int{0, 10, 30}, []int{2, 3, 1}),
	}
	breaks := []SeasonBreak{
		{Name: "All-Star", Start: day(12), End: day(17)},
		{Name: "Offseason", Start: day(100), End: day(120)},
	}

	t.Run("GameNumberRecord", func(t *testing.T) {
		opts := optsFor(SubsetAll, ScaleGameNumber, MetricRecord)
		data, err := builder.Build(teams, opts)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		options := BuildChartOptions(opts, data, breaks)

		if options.SpanGaps || options.Legend.Display || options.Layout.Padding != LogoSizePx {
			t.Errorf("unexpected base options %+v", options)
		}
		if options.Scales.X.Type != "linear" || *options.Scales.X.Max != GamesPerSeason || *options.Scales.X.Min != 0 {
			t.Errorf("unexpected x axis %+v", options.Scales.X)
		}
		if options.Scales.Y.Title != "Games above .500" || options.Scales.Y.Reverse {
			t.Errorf("unexpected y axis %+v", options.Scales.Y)
		}
		if len(options.Annotations) != 0 {
			t.Error("expected no break annotations on the game-number scale")
		}
	})

	t.Run("GameNumberWindow", func(t *testing.T) {
		opts := optsFor(SubsetAll, ScaleGameNumber, MetricRecord)
		opts.LastGames = 1
		data, err := builder.Build(teams, opts)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		options := BuildChartOptions(opts, data, breaks)

		if *options.Scales.X.Min != 2 || *options.Scales.X.Max != GamesPerSeason {
			t.Errorf("unexpected windowed x bounds %d - %d", *options.Scales.X.Min, *options.Scales.X.Max)
		}
	})

	t.Run("WeeklyConferenceSeed", func(t *testing.T) {
		opts := optsFor(SubsetEast, ScaleWeek, MetricSeed)
		data, err := builder.Build(teams, opts)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		options := BuildChartOptions(opts, data, breaks)

		if options.Scales.X.Type != "time" || options.Scales.X.Unit != "week" {
			t.Errorf("unexpected x axis %+v", options.Scales.X)
		}
		if *options.Scales.X.Min != ms(day(0)) || *options.Scales.X.Max != ms(day(30)) {
			t.Errorf("unexpected x bounds %d - %d", *options.Scales.X.Min, *options.Scales.X.Max)
		}
		if !options.Scales.Y.Reverse || *options.Scales.Y.Min != 1 || *options.Scales.Y.Max != 15 {
			t.Errorf("unexpected y axis %+v", options.Scales.Y)
		}
		if options.Scales.Y.Title != "Conference seed" {
			t.Errorf("unexpected y title %q", options.Scales.Y.Title)
		}
		if len(options.Annotations) != 1 || options.Annotations[0].Label != "All-Star" {
			t.Errorf("expected only the in-range break, got %+v", options.Annotations)
		}
	})

	t.Run("DayOriginExtendsRange", func(t *testing.T) {
		opts := optsFor(SubsetAll, ScaleDay, MetricRecord)
		data, err := builder.Build(teams, opts)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		options := BuildChartOptions(opts, data, nil)
		if *options.Scales.X.Min != ms(day(-1)) {
			t.Errorf("expected x min at the origin, got %d", *options.Scales.X.Min)
		}
	})

	t.Run("LeagueSeedBounds", func(t *testing.T) {
		options := BuildChartOptions(optsFor(SubsetAll, ScaleDay, MetricSeed), nil, nil)
		if *options.Scales.Y.Max != 30 || options.Scales.Y.Title != "League rank" {
			t.Errorf("unexpected y axis %+v", options.Scales.Y)
		}
		if options.Scales.X.Min != nil {
			t.Error("expected no x bounds without data")
		}
	})

	t.Run("FreshPerCall", func(t *testing.T) {
		opts := optsFor(SubsetAll, ScaleGameNumber, MetricRecord)
		first := BuildChartOptions(opts, nil, nil)
		*first.Scales.X.Max = 10
		first.Annotations = append(first.Annotations, BoxAnnotation{Label: "x"})

		second := BuildChartOptions(opts, nil, nil)
		if *second.Scales.X.Max != GamesPerSeason || len(second.Annotations) != 0 {
			t.Error("options leaked between calls")
		}
	})
}
