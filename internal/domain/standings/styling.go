package standings

import (
	"strings"
)

// Marker sizes in pixels
const (
	LogoSizePx = 24

	logoRadius      = LogoSizePx / 2
	logoHoverRadius = 16
	logoHitRadius   = LogoSizePx

	dotRadius      = 2
	dotHoverRadius = 4
	dotHitRadius   = 4

	PointStyleCircle = "circle"

	InactiveColour = "#ababab"
)

// logoURL returns "{base}/{slug}.png" or "{base}/grayscale/{slug}.png"
func logoURL(base, slug string, grayscale bool) string {
	base = strings.TrimSuffix(base, "/")
	if grayscale {
		return base + "/grayscale/" + slug + ".png"
	}
	return base + "/" + slug + ".png"
}

// Restyle returns a copy of the series with colours and per-point markers set for
// the active or inactive state. The last data point carries the team logo.
// Pure function: the input series is not modified.
func Restyle(series TeamSeries, active bool) TeamSeries {
	out := series
	out.Data = make([]SeriesPoint, len(series.Data))
	copy(out.Data, series.Data)

	logo := series.GrayscaleLogoURL
	if active {
		logo = series.LogoURL
		if series.Team != nil {
			out.BackgroundColor = series.Team.PrimaryColour
			out.BorderColor = series.Team.SecondaryColour
		}
	} else {
		out.BackgroundColor = InactiveColour
		out.BorderColor = InactiveColour
	}

	n := len(series.Data)
	out.PointStyle = make([]string, n)
	out.PointRadius = make([]int, n)
	out.PointHoverRadius = make([]int, n)
	out.PointHitRadius = make([]int, n)

	last := lastMarkedIndex(series.Data)
	for i, p := range series.Data {
		switch {
		case i == last:
			out.PointStyle[i] = logo
			out.PointRadius[i] = logoRadius
			out.PointHoverRadius[i] = logoHoverRadius
			out.PointHitRadius[i] = logoHitRadius
		case p.Origin || !p.HasValue():
			out.PointStyle[i] = PointStyleCircle
		default:
			out.PointStyle[i] = PointStyleCircle
			out.PointRadius[i] = dotRadius
			out.PointHoverRadius[i] = dotHoverRadius
			out.PointHitRadius[i] = dotHitRadius
		}
	}

	return out
}

// lastMarkedIndex returns the index of the last non-origin point with data, or -1
func lastMarkedIndex(points []SeriesPoint) int {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].HasValue() && !points[i].Origin {
			return i
		}
	}
	return -1
}
