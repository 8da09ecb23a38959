package standings

import (
	"math"
	"reflect"
	"testing"

	"nba_standings/internal/app"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// teamFromCodes builds a team from generated codes: code%2 picks the outcome
// and code/2+1 is the number of days since the previous game.
func teamFromCodes(slug string, codes []int) app.Team {
	outcomes := make([]byte, len(codes))
	days := make([]int, len(codes))
	offset := 0
	for i, code := range codes {
		if code%2 == 0 {
			outcomes[i] = 'W'
		} else {
			outcomes[i] = 'L'
		}
		if i > 0 {
			offset += code/2 + 1
		}
		days[i] = offset
	}
	return makeTeam(slug, slug, app.ConferenceEast, string(outcomes), days)
}

func lastDay(codes []int) int {
	offset := 0
	for i, code := range codes {
		if i > 0 {
			offset += code/2 + 1
		}
	}
	return offset
}

func genCodes() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 9))
}

func genNonEmptyCodes() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 9)).SuchThat(func(codes []int) bool {
		return len(codes) > 0
	})
}

// TestSeriesBuilderProperties verifies builder invariants over generated seasons
func TestSeriesBuilderProperties(t *testing.T) {
	builder := NewBuilder("/logos", nil)

	properties := gopter.NewProperties(nil)

	// Property: game-number record series have one point per game plus the origin
	properties.Property("game-number record has N+1 points with y = W-L", prop.ForAll(
		func(codes []int) bool {
			team := teamFromCodes("ATL", codes)
			data, err := builder.Build([]app.Team{team}, optsFor(SubsetAll, ScaleGameNumber, MetricRecord))
			if err != nil {
				return false
			}

			points := data.Datasets[0].Data
			if len(points) != len(team.Games)+1 {
				return false
			}
			if points[0].X != 0 || *points[0].Y != 0 {
				return false
			}
			for i, g := range team.Games {
				p := points[i+1]
				if p.X != int64(g.GameNum) || *p.Y != g.CumulativeWins-g.CumulativeLosses {
					return false
				}
			}
			return true
		},
		genCodes(),
	))

	// Property: weekly record series have exactly one point per week
	properties.Property("week point count equals bin count", prop.ForAll(
		func(codes []int) bool {
			team := teamFromCodes("ATL", codes)
			data, err := builder.Build([]app.Team{team}, optsFor(SubsetAll, ScaleWeek, MetricRecord))
			if err != nil {
				return false
			}

			expected := int(math.Ceil(float64(lastDay(codes)) / 7))
			if expected < 1 {
				expected = 1
			}
			return len(data.Datasets[0].Data) == expected
		},
		genNonEmptyCodes(),
	))

	// Property: monthly record series have exactly one point per calendar month
	properties.Property("month point count equals bin count", prop.ForAll(
		func(codes []int) bool {
			team := teamFromCodes("ATL", codes)
			data, err := builder.Build([]app.Team{team}, optsFor(SubsetAll, ScaleMonth, MetricRecord))
			if err != nil {
				return false
			}

			first, last := day(0), day(lastDay(codes))
			expected := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
			return len(data.Datasets[0].Data) == expected
		},
		genNonEmptyCodes(),
	))

	// Property: building twice from the same input gives the same output
	properties.Property("build is idempotent", prop.ForAll(
		func(codesA, codesB []int, scaleIdx int) bool {
			scales := []TimeScale{ScaleGameNumber, ScaleDay, ScaleWeek, ScaleMonth}
			teams := []app.Team{teamFromCodes("ATL", codesA), teamFromCodes("BOS", codesB)}
			opts := optsFor(SubsetAll, scales[scaleIdx], MetricRecord)

			first, err1 := builder.Build(teams, opts)
			second, err2 := builder.Build(teams, opts)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		genNonEmptyCodes(),
		genNonEmptyCodes(),
		gen.IntRange(0, 3),
	))

	// Property: a break adds two null points only when the series reaches past its start
	properties.Property("break insertion", prop.ForAll(
		func(codes []int, breakDay int) bool {
			team := teamFromCodes("ATL", codes)
			breaks := map[string][]SeasonBreak{
				"2023-24": {{Name: "All-Star", Start: day(breakDay), End: day(breakDay + 5)}},
			}
			withBreaks := NewBuilder("/logos", breaks)

			plain, err := builder.Build([]app.Team{team}, optsFor(SubsetAll, ScaleDay, MetricRecord))
			if err != nil {
				return false
			}
			broken, err := withBreaks.Build([]app.Team{team}, optsFor(SubsetAll, ScaleDay, MetricRecord))
			if err != nil {
				return false
			}

			before, after := plain.Datasets[0].Data, broken.Datasets[0].Data
			if lastDay(codes) <= breakDay {
				return len(after) == len(before)
			}
			if len(after) != len(before)+2 {
				return false
			}
			nulls := 0
			for i, p := range after {
				if i > 0 && p.X < after[i-1].X {
					return false
				}
				if p.Y == nil {
					nulls++
				}
			}
			return nulls == 2
		},
		genNonEmptyCodes(),
		gen.IntRange(0, 120),
	))

	// Property: a constant run of k seeds keeps only its two ends
	properties.Property("seed compression drops interior of a constant run", prop.ForAll(
		func(k, rank int) bool {
			points := make([]SeriesPoint, k)
			for i := range points {
				points[i] = SeriesPoint{X: int64(i), Y: intPtr(rank)}
			}
			kept := compressRuns(points)
			return len(kept) == 2 && kept[0].X == 0 && kept[1].X == int64(k-1)
		},
		gen.IntRange(2, 100),
		gen.IntRange(1, 30),
	))

	properties.TestingRun(t)
}
