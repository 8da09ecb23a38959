package standings

import "time"

// GamesPerSeason bounds the game-number axis
const GamesPerSeason = 82

// Seed axis bounds
const (
	leagueTeams     = 30
	conferenceTeams = 15
)

// ChartOptions is the line chart configuration matching the chart data
type ChartOptions struct {
	SpanGaps    bool            `json:"spanGaps"`
	Layout      LayoutOptions   `json:"layout"`
	Legend      LegendOptions   `json:"legend"`
	Scales      ScaleOptions    `json:"scales"`
	Annotations []BoxAnnotation `json:"annotations"`
}

type LayoutOptions struct {
	Padding int `json:"padding"`
}

type LegendOptions struct {
	Display bool `json:"display"`
}

type ScaleOptions struct {
	X AxisOptions `json:"x"`
	Y AxisOptions `json:"y"`
}

// AxisOptions describes one chart axis. Min and Max are nil when unbounded.
type AxisOptions struct {
	Type    string `json:"type"`
	Unit    string `json:"unit,omitempty"`
	Title   string `json:"title,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
	Min     *int64 `json:"min,omitempty"`
	Max     *int64 `json:"max,omitempty"`
}

// BoxAnnotation shades a season break on a time axis
type BoxAnnotation struct {
	Label string `json:"label"`
	XMin  int64  `json:"xMin"`
	XMax  int64  `json:"xMax"`
}

// BuildChartOptions returns a fresh options value for the selections and data.
// Pure function: nothing is shared between calls.
func BuildChartOptions(opts DisplayOptions, data *ChartData, breaks []SeasonBreak) ChartOptions {
	options := ChartOptions{
		SpanGaps:    false,
		Layout:      LayoutOptions{Padding: LogoSizePx},
		Legend:      LegendOptions{Display: false},
		Annotations: []BoxAnnotation{},
	}

	if opts.TimeScale.IsTimestamp() {
		options.Scales.X = AxisOptions{Type: "time", Unit: string(opts.TimeScale)}
		if data != nil && !data.RangeStart.IsZero() {
			start, end := xBounds(data)
			options.Scales.X.Min = int64Ptr(start)
			options.Scales.X.Max = int64Ptr(end)

			for _, brk := range breaks {
				if brk.End.UnixMilli() < start || brk.Start.UnixMilli() > end {
					continue
				}
				options.Annotations = append(options.Annotations, BoxAnnotation{
					Label: brk.Name,
					XMin:  brk.Start.UnixMilli(),
					XMax:  brk.End.UnixMilli(),
				})
			}
		}
	} else {
		options.Scales.X = AxisOptions{
			Type:  "linear",
			Title: "Game",
			Min:   int64Ptr(0),
			Max:   int64Ptr(GamesPerSeason),
		}
		if data != nil && data.FirstGame > 0 {
			options.Scales.X.Min = int64Ptr(data.FirstGame)
		}
	}

	switch opts.YAxis {
	case MetricSeed:
		options.Scales.Y = AxisOptions{
			Type:    "linear",
			Title:   "League rank",
			Reverse: true,
			Min:     int64Ptr(1),
			Max:     int64Ptr(leagueTeams),
		}
		if opts.TeamSubset != SubsetAll {
			options.Scales.Y.Title = "Conference seed"
			options.Scales.Y.Max = int64Ptr(conferenceTeams)
		}
	default:
		options.Scales.Y = AxisOptions{Type: "linear", Title: "Games above .500"}
	}

	return options
}

// xBounds returns the smallest and largest x over every dataset point
func xBounds(data *ChartData) (int64, int64) {
	start, end := data.RangeStart.UnixMilli(), data.RangeEnd.UnixMilli()
	for _, series := range data.Datasets {
		for _, p := range series.Data {
			if p.X < start {
				start = p.X
			}
			if p.X > end {
				end = p.X
			}
		}
	}
	return start, end
}

func int64Ptr(v int64) *int64 {
	return &v
}

// unixMilli converts a chart x value back to a UTC time
func unixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
