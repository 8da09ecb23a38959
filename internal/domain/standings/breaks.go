package standings

import (
	"sort"
)

// insertBreak adds null points at a break's start and end so the line is not
// drawn across it. Nothing is inserted when the break starts at or after the
// team's latest data point.
// Pure function: returns a new slice.
func insertBreak(points []SeriesPoint, brk SeasonBreak) []SeriesPoint {
	latest, ok := latestX(points)
	start, end := brk.Start.UnixMilli(), brk.End.UnixMilli()
	if !ok || latest <= start {
		return points
	}

	out := make([]SeriesPoint, 0, len(points)+2)
	out = append(out, points...)
	out = append(out, SeriesPoint{X: start}, SeriesPoint{X: end})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].X < out[j].X
	})
	return out
}

// latestX returns the greatest x of any point carrying data
func latestX(points []SeriesPoint) (int64, bool) {
	var latest int64
	found := false
	for _, p := range points {
		if !p.HasValue() {
			continue
		}
		if !found || p.X > latest {
			latest = p.X
			found = true
		}
	}
	return latest, found
}

