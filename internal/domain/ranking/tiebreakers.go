package ranking

import (
	"sort"

	"nba_standings/internal/app"
)

// PlayoffFormat decides how many teams per conference count as playoff teams
type PlayoffFormat int

const (
	// FormatModern has 6 playoff teams plus a play-in tournament
	FormatModern PlayoffFormat = iota
	// FormatLegacy has 8 playoff teams and no play-in
	FormatLegacy
)

const (
	modernPlayoffTeams = 6
	legacyPlayoffTeams = 8
)

// ParsePlayoffFormat maps a seasons file value to a format; empty means modern
func ParsePlayoffFormat(s string) PlayoffFormat {
	if s == "legacy" {
		return FormatLegacy
	}
	return FormatModern
}

func (f PlayoffFormat) playoffTeams() int {
	if f == FormatLegacy {
		return legacyPlayoffTeams
	}
	return modernPlayoffTeams
}

// group is a run of teams sharing a sort key; a group of one is untied
type group []*standing

type sortKey func(*standing) float64

// sortAndGroup orders teams by key, best first, and groups equal keys.
// Equal keys keep their input order.
func sortAndGroup(teams []*standing, key sortKey) []group {
	ordered := make([]*standing, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return key(ordered[i]) > key(ordered[j])
	})

	var groups []group
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && key(ordered[end]) == key(ordered[start]) {
			end++
		}
		groups = append(groups, group(ordered[start:end]))
		start = end
	}
	return groups
}

func allEqual(teams []*standing, key sortKey) bool {
	for _, t := range teams[1:] {
		if key(t) != key(teams[0]) {
			return false
		}
	}
	return true
}

func flatten(groups []group) []*standing {
	var flat []*standing
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat
}

// tieBreaker orders one group of teams tied on winning percentage
type tieBreaker struct {
	leaders   map[string]*standing // nil while division leaders are being decided
	ownConf   map[*standing]float64
	otherConf map[*standing]float64
}

// newTieBreaker precomputes each tied team's percentage against playoff teams
// of both conferences, taken from the current league ordering.
func newTieBreaker(tied []*standing, ordering []group, format PlayoffFormat, leaders map[string]*standing) *tieBreaker {
	tb := &tieBreaker{
		leaders:   leaders,
		ownConf:   make(map[*standing]float64, len(tied)),
		otherConf: make(map[*standing]float64, len(tied)),
	}

	playoff := map[string][]*standing{}
	for _, t := range tied {
		for _, conference := range []string{t.conference, otherConference(t.conference)} {
			if _, ok := playoff[conference]; !ok {
				playoff[conference] = playoffTeams(ordering, conference, format)
			}
		}
		tb.ownConf[t] = t.recordVs(playoff[t.conference]).pct()
		tb.otherConf[t] = t.recordVs(playoff[otherConference(t.conference)]).pct()
	}
	return tb
}

// playoffTeams returns the conference's teams in playoff position, including
// every conference team tied into the last spot
func playoffTeams(ordering []group, conference string, format PlayoffFormat) []*standing {
	limit := format.playoffTeams()
	var teams []*standing
	for _, g := range ordering {
		if len(teams) >= limit {
			break
		}
		for _, t := range g {
			if t.conference == conference {
				teams = append(teams, t)
			}
		}
	}
	return teams
}

func otherConference(conference string) string {
	if conference == app.ConferenceEast {
		return app.ConferenceWest
	}
	return app.ConferenceEast
}

func (tb *tieBreaker) isLeader(t *standing) float64 {
	if tb.leaders != nil && tb.leaders[t.division] == t {
		return 1
	}
	return 0
}

// order breaks the tie and returns the teams best first
func (tb *tieBreaker) order(tied []*standing) []*standing {
	if len(tied) == 2 {
		return tb.twoWay(tied[0], tied[1])
	}
	return tb.multiWay(tied)
}

// twoWay applies the two-team criteria in order; the first that differs decides
func (tb *tieBreaker) twoWay(a, b *standing) []*standing {
	criteria := []struct {
		applies bool
		ka, kb  float64
	}{
		// Head-to-head
		{true, a.pctVs(b), b.pctVs(a)},
		// Division leader over non-leader
		{tb.leaders != nil, tb.isLeader(a), tb.isLeader(b)},
		// Division record, same division only
		{a.division == b.division, a.div.pct(), b.div.pct()},
		// Conference record
		{true, a.conf.pct(), b.conf.pct()},
		// Record against own-conference playoff teams
		{true, tb.ownConf[a], tb.ownConf[b]},
		// Record against other-conference playoff teams
		{true, tb.otherConf[a], tb.otherConf[b]},
		// Point differential
		{true, float64(a.pointsDiff), float64(b.pointsDiff)},
	}

	for _, c := range criteria {
		if !c.applies || c.ka == c.kb {
			continue
		}
		if c.kb > c.ka {
			return []*standing{b, a}
		}
		return []*standing{a, b}
	}
	return []*standing{a, b}
}

// multiWay splits the group on the first criterion that separates it and
// recursively orders any remaining sub-groups
func (tb *tieBreaker) multiWay(tied []*standing) []*standing {
	if len(tied) < 2 {
		return tied
	}
	if len(tied) == 2 {
		return tb.twoWay(tied[0], tied[1])
	}

	vsTied := make(map[*standing]float64, len(tied))
	for _, t := range tied {
		vsTied[t] = t.recordVs(tied).pct()
	}

	sameDivision := allEqual(tied, func(t *standing) float64 { return divisionKey(t, tied[0]) })

	criteria := []struct {
		applies bool
		key     sortKey
	}{
		// Division leader over non-leader
		{tb.leaders != nil, tb.isLeader},
		// Record among the tied teams
		{true, func(t *standing) float64 { return vsTied[t] }},
		// Division record, all in one division only
		{sameDivision, func(t *standing) float64 { return t.div.pct() }},
		// Conference record
		{true, func(t *standing) float64 { return t.conf.pct() }},
		// Record against own-conference playoff teams
		{true, func(t *standing) float64 { return tb.ownConf[t] }},
		// Point differential
		{true, func(t *standing) float64 { return float64(t.pointsDiff) }},
	}

	for _, c := range criteria {
		if !c.applies || allEqual(tied, c.key) {
			continue
		}
		groups := sortAndGroup(tied, c.key)
		for i, g := range groups {
			if len(g) > 1 {
				groups[i] = tb.multiWay(g)
			}
		}
		return flatten(groups)
	}
	return tied
}

// divisionKey is 1 when t shares ref's division
func divisionKey(t, ref *standing) float64 {
	if t.division == ref.division {
		return 1
	}
	return 0
}
