package standings

import (
	"fmt"
	"strings"
	"time"

	"nba_standings/internal/app"
)

// PointRef addresses one point of one dataset
type PointRef struct {
	Dataset int `json:"dataset"`
	Index   int `json:"index"`
}

// TooltipText is the content of a hover tooltip
type TooltipText struct {
	Title string        `json:"title"`
	Lines []TooltipLine `json:"lines"`
}

// TooltipLine describes one team under the cursor
type TooltipLine struct {
	Slug       string `json:"slug"`
	LogoURL    string `json:"logo_url"`
	TextColour string `json:"text_colour"`
	Background string `json:"background"`
	Record     string `json:"record"`
	// Outcome is "W" or "L" when the flavour text describes a single game
	Outcome string `json:"outcome,omitempty"`
	Flavour string `json:"flavour"`
}

// Tooltip derives the tooltip for the hovered points. ok is false when the first
// point is an origin or a gap, in which case no tooltip is shown.
func Tooltip(data *ChartData, refs []PointRef, now time.Time) (TooltipText, bool) {
	if data == nil || len(refs) == 0 {
		return TooltipText{}, false
	}

	head, ok := lookupPoint(data, refs[0])
	if !ok {
		return TooltipText{}, false
	}

	text := TooltipText{
		Title: tooltipTitle(data, head, now),
		Lines: make([]TooltipLine, 0, len(refs)),
	}

	for _, ref := range refs {
		p, ok := lookupPoint(data, ref)
		if !ok {
			continue
		}
		text.Lines = append(text.Lines, tooltipLine(data, &data.Datasets[ref.Dataset], p))
	}

	return text, true
}

func lookupPoint(data *ChartData, ref PointRef) (SeriesPoint, bool) {
	if ref.Dataset < 0 || ref.Dataset >= len(data.Datasets) {
		return SeriesPoint{}, false
	}
	points := data.Datasets[ref.Dataset].Data
	if ref.Index < 0 || ref.Index >= len(points) {
		return SeriesPoint{}, false
	}
	p := points[ref.Index]
	if p.Origin || !p.HasValue() {
		return SeriesPoint{}, false
	}
	return p, true
}

func tooltipTitle(data *ChartData, p SeriesPoint, now time.Time) string {
	switch data.Options.TimeScale {
	case ScaleDay:
		return unixMilli(p.X).Format("2 Jan 2006")

	case ScaleWeek:
		start := unixMilli(p.PeriodStart)
		number := weekNumber(data.RangeStart, start)
		if now.Before(start.Add(week)) {
			return fmt.Sprintf("Week %d (current)", number)
		}
		return fmt.Sprintf("Week %d (ending %s)", number, unixMilli(p.X).Format("2 Jan 2006"))

	case ScaleMonth:
		return unixMilli(p.PeriodStart).Format("January 2006")

	default:
		return fmt.Sprintf("Game %d", p.X)
	}
}

func tooltipLine(data *ChartData, series *TeamSeries, p SeriesPoint) TooltipLine {
	line := TooltipLine{
		Slug:    series.Slug,
		LogoURL: series.LogoURL,
	}
	if series.Team != nil {
		line.TextColour = series.Team.TextColour
		line.Background = series.Team.PrimaryColour
	}

	opts := data.Options

	if opts.YAxis == MetricSeed {
		line.Record = seedRecord(series.Team, p, opts.TimeScale)
		if opts.TeamSubset == SubsetAll {
			line.Flavour = "Ranked " + Ordinal(*p.Y)
		} else {
			line.Flavour = Ordinal(*p.Y) + " seed"
		}
		return line
	}

	if len(p.Games) == 0 {
		return line
	}
	last := p.Games[len(p.Games)-1]
	line.Record = formatRecord(last.CumulativeWins, last.CumulativeLosses)

	switch opts.TimeScale {
	case ScaleWeek, ScaleMonth:
		wins, losses := tally(p.Games)
		if opts.TimeScale == ScaleWeek {
			line.Flavour = fmt.Sprintf("%d-%d in week", wins, losses)
		} else {
			line.Flavour = fmt.Sprintf("%d-%d in %s", wins, losses, unixMilli(p.PeriodStart).Format("Jan"))
		}
	default:
		line.Outcome = last.Outcome
		line.Flavour = fmt.Sprintf("%s %s %d-%d", last.Outcome, opponentText(series.Slug, last), last.TeamScore, last.OpponentScore)
	}

	return line
}

// opponentText strips the team's own slug from a matchup, "ATL vs. BOS" -> "vs. BOS"
func opponentText(slug string, game app.Game) string {
	matchup := strings.TrimSpace(game.Matchup)
	if slug != "" && strings.HasPrefix(matchup, slug+" ") {
		return strings.TrimSpace(strings.TrimPrefix(matchup, slug))
	}
	if matchup == "" {
		return "vs. " + game.Opponent
	}
	return matchup
}

// seedRecord returns the team's record after its last game on or before the point
func seedRecord(team *app.Team, p SeriesPoint, scale TimeScale) string {
	if scale == ScaleGameNumber && len(p.Games) > 0 {
		g := p.Games[len(p.Games)-1]
		return formatRecord(g.CumulativeWins, g.CumulativeLosses)
	}
	if team == nil {
		return formatRecord(0, 0)
	}

	cutoff := unixMilli(p.X)
	var (
		latest *app.Game
		at     time.Time
	)
	for i := range team.Games {
		d, err := app.ParseAPIDate(team.Games[i].Date)
		if err != nil || d.After(cutoff) {
			continue
		}
		if latest == nil || !d.Before(at) {
			latest, at = &team.Games[i], d
		}
	}
	if latest == nil {
		return formatRecord(0, 0)
	}
	return formatRecord(latest.CumulativeWins, latest.CumulativeLosses)
}

func tally(games []app.Game) (int, int) {
	wins, losses := 0, 0
	for _, g := range games {
		if g.Outcome == app.OutcomeWin {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

func formatRecord(wins, losses int) string {
	return fmt.Sprintf("%d-%d", wins, losses)
}

// Ordinal formats 1 as "1st", 12 as "12th", 23 as "23rd"
func Ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
