package standings

import (
	"nba_standings/internal/app"
)

// seedPoints derives league rank or conference seed points for one team.
// The caller compresses runs with compressRuns.
func seedPoints(team *app.Team, games []playedGame, opts DisplayOptions, bins *timeline) ([]SeriesPoint, error) {
	history, err := rankHistory(team, opts.TeamSubset)
	if err != nil {
		return nil, err
	}

	var points []SeriesPoint

	switch opts.TimeScale {
	case ScaleGameNumber:
		points = make([]SeriesPoint, 0, len(games))
		for _, g := range games {
			p := SeriesPoint{
				X:     int64(g.game.GameNum),
				Games: []app.Game{*g.game},
			}
			if rank, ok := rankAt(history, g.at); ok {
				p.Y = intPtr(rank)
			}
			points = append(points, p)
		}

	case ScaleDay:
		points = make([]SeriesPoint, 0, len(history))
		for _, entry := range history {
			points = append(points, SeriesPoint{
				X: entry.at.UnixMilli(),
				Y: intPtr(entry.rank),
			})
		}

	case ScaleWeek, ScaleMonth:
		points = make([]SeriesPoint, bins.Len())
		for i, p := range bins.periods {
			points[i] = p.point()
		}
		// history is date ordered, so the last entry in a bin wins
		for _, entry := range history {
			if idx, ok := bins.index(entry.at); ok {
				points[idx].Y = intPtr(entry.rank)
			}
		}
		for i, bucket := range bins.bucket(games) {
			for _, g := range bucket {
				points[i].Games = append(points[i].Games, *g.game)
			}
		}
	}

	return points, nil
}

// compressRuns drops every point whose neighbours both hold the same rank,
// keeping the first and last point of each run.
// Pure function: returns a new slice.
func compressRuns(points []SeriesPoint) []SeriesPoint {
	kept := make([]SeriesPoint, 0, len(points))
	for i, p := range points {
		if i > 0 && i < len(points)-1 && sameRank(points[i-1], p) && sameRank(p, points[i+1]) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func sameRank(a, b SeriesPoint) bool {
	return a.Y != nil && b.Y != nil && *a.Y == *b.Y
}
