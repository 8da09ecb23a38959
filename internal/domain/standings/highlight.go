package standings

// hoverOrderOffset lifts hovered series above every other dataset
const hoverOrderOffset = 100

// ApplyHover returns fresh datasets for the given hovered dataset indices.
// Hovered series keep their team colours and move to the front; the rest are
// grayed out. With no hovered series every dataset returns to its natural style.
// Pure function: the input datasets are not modified.
func ApplyHover(datasets []TeamSeries, hovered []int) []TeamSeries {
	active := make(map[int]bool, len(hovered))
	for _, idx := range hovered {
		if idx >= 0 && idx < len(datasets) {
			active[idx] = true
		}
	}

	out := make([]TeamSeries, len(datasets))
	for i, series := range datasets {
		rank := series.Order
		if series.Team != nil {
			rank = series.Team.LeagueRank
		}

		switch {
		case len(active) == 0:
			out[i] = Restyle(series, true)
			out[i].Order = rank
		case active[i]:
			out[i] = Restyle(series, true)
			out[i].Order = rank - hoverOrderOffset
		default:
			out[i] = Restyle(series, false)
			out[i].Order = rank
		}
	}
	return out
}
