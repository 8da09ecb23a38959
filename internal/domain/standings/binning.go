package standings

import (
	"math"
	"time"
)

const week = 7 * 24 * time.Hour

// period is one week or month bin of the season
type period struct {
	Number int // 1-based
	Start  time.Time
	End    time.Time
	// X is End clipped to the latest played date
	X time.Time
}

// point returns an empty series point positioned at the period
func (p period) point() SeriesPoint {
	return SeriesPoint{
		X:           p.X.UnixMilli(),
		PeriodStart: p.Start.UnixMilli(),
	}
}

// timeline is the ordered set of bins for a binned scale
type timeline struct {
	scale   TimeScale
	periods []period
}

// newTimeline splits [first, last] into weeks anchored on first, or into
// calendar months. Pure function: the result depends only on the arguments.
func newTimeline(scale TimeScale, first, last time.Time) *timeline {
	tl := &timeline{scale: scale}

	switch scale {
	case ScaleWeek:
		count := int(math.Ceil(float64(last.Sub(first)) / float64(week)))
		if count < 1 {
			count = 1
		}
		for k := 1; k <= count; k++ {
			start := first.Add(time.Duration(k-1) * week)
			end := first.Add(time.Duration(k) * week)
			tl.periods = append(tl.periods, period{Number: k, Start: start, End: end, X: clip(end, last)})
		}

	case ScaleMonth:
		start := monthStart(first)
		for k := 1; !start.After(last); k++ {
			end := start.AddDate(0, 1, 0)
			tl.periods = append(tl.periods, period{Number: k, Start: start, End: end, X: clip(end, last)})
			start = end
		}
	}

	return tl
}

// Len returns the number of bins
func (tl *timeline) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.periods)
}

// index returns the position of the bin containing t
func (tl *timeline) index(t time.Time) (int, bool) {
	if tl.Len() == 0 {
		return 0, false
	}
	origin := tl.periods[0].Start
	if t.Before(origin) {
		return 0, false
	}

	var idx int
	switch tl.scale {
	case ScaleWeek:
		// Weeks are closed at the end so the anchor date belongs to week 1
		k := int(math.Ceil(float64(t.Sub(origin)) / float64(week)))
		if k < 1 {
			k = 1
		}
		idx = k - 1
	case ScaleMonth:
		idx = (t.Year()-origin.Year())*12 + int(t.Month()) - int(origin.Month())
	default:
		return 0, false
	}

	if idx >= len(tl.periods) {
		return 0, false
	}
	return idx, true
}

// bucket groups chronologically ordered games by bin, preserving their order
func (tl *timeline) bucket(games []playedGame) [][]playedGame {
	buckets := make([][]playedGame, tl.Len())
	for _, g := range games {
		if idx, ok := tl.index(g.at); ok {
			buckets[idx] = append(buckets[idx], g)
		}
	}
	return buckets
}

// weekNumber returns the 1-based week of a period starting at periodStart
func weekNumber(rangeStart, periodStart time.Time) int {
	return int(periodStart.Sub(rangeStart)/week) + 1
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func clip(t, limit time.Time) time.Time {
	if t.After(limit) {
		return limit
	}
	return t
}
