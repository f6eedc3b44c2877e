package intel

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TeamDNA is a squad's stylistic fingerprint: the squad mean of each
// verdict metric, plus their sum as a single comparable score
type TeamDNA struct {
	Squad   string             `json:"squad"`
	Players int                `json:"players"`
	Metrics map[string]float64 `json:"metrics"`
	Score   float64            `json:"score"`
}

// TeamProfile computes a squad's DNA from its roster rows.
// Returns ErrTeamNotFound when the squad has no rows.
func (e *Engine) TeamProfile(squad string) (*TeamDNA, error) {
	rows := e.dataset.TeamRows(squad)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, squad)
	}

	metrics := make(map[string]float64, len(verdictMetrics))
	var score float64
	for _, metric := range verdictMetrics {
		values := make([]float64, 0, len(rows))
		for _, p := range rows {
			v, err := p.FeatureValue(metric)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		mean := nanMean(values...)
		if math.IsNaN(mean) {
			mean = 0
		}
		metrics[metric] = round2(mean)
		score += mean
	}

	return &TeamDNA{
		Squad:   squad,
		Players: len(rows),
		Metrics: metrics,
		Score:   round2(score),
	}, nil
}

// FatigueRiskEntry is one overworked player in a fatigue report
type FatigueRiskEntry struct {
	Name         string  `json:"name"`
	Squad        string  `json:"squad"`
	Pos          string  `json:"pos"`
	FatigueIndex float64 `json:"fatigueIndex"`
}

// FatigueRisks lists players from both squads whose fatigue index sits
// at or above the configured threshold, most fatigued first, capped at
// the configured report size. Used to flag rotation candidates ahead of
// a fixture.
func (e *Engine) FatigueRisks(squadA, squadB string) ([]*FatigueRiskEntry, error) {
	rowsA := e.dataset.TeamRows(squadA)
	if len(rowsA) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, squadA)
	}
	rowsB := e.dataset.TeamRows(squadB)
	if len(rowsB) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, squadB)
	}

	threshold := Config.FatigueRiskThreshold
	var entries []*FatigueRiskEntry
	for _, p := range append(rowsA, rowsB...) {
		if math.IsNaN(p.FatigueIndex) || p.FatigueIndex < threshold {
			continue
		}
		entries = append(entries, &FatigueRiskEntry{
			Name:         p.Name,
			Squad:        p.Squad,
			Pos:          p.Pos,
			FatigueIndex: round2(p.FatigueIndex),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FatigueIndex > entries[j].FatigueIndex
	})

	if limit := Config.FatigueRiskLimit; len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// KeyPlayer is one of a squad's most influential regulars
type KeyPlayer struct {
	Name    string  `json:"name"`
	Pos     string  `json:"pos"`
	Minutes float64 `json:"minutes"`
	GA      float64 `json:"ga"`
}

// KeyPlayers picks a squad's most influential regulars: players whose
// minutes reach the configured share of the squad's maximum, ranked by
// goal contributions with minutes as tiebreak.
func (e *Engine) KeyPlayers(squad string) ([]*KeyPlayer, error) {
	rows := e.dataset.TeamRows(squad)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, squad)
	}

	var maxMin float64
	for _, p := range rows {
		if !math.IsNaN(p.Min) && p.Min > maxMin {
			maxMin = p.Min
		}
	}

	floor := maxMin * Config.KeyPlayerMinShare
	var regulars []*Player
	for _, p := range rows {
		if !math.IsNaN(p.Min) && p.Min >= floor {
			regulars = append(regulars, p)
		}
	}

	sort.SliceStable(regulars, func(i, j int) bool {
		gi, gj := nanOrZero(regulars[i].GA), nanOrZero(regulars[j].GA)
		if gi != gj {
			return gi > gj
		}
		return regulars[i].Min > regulars[j].Min
	})

	limit := Config.KeyPlayerLimit
	if len(regulars) > limit {
		regulars = regulars[:limit]
	}

	key := make([]*KeyPlayer, 0, len(regulars))
	for _, p := range regulars {
		key = append(key, &KeyPlayer{
			Name:    p.Name,
			Pos:     p.Pos,
			Minutes: p.Min,
			GA:      nanOrZero(p.GA),
		})
	}
	return key, nil
}

// LeaderEntry is one player in a league leaderboard
type LeaderEntry struct {
	Name  string  `json:"name"`
	Squad string  `json:"squad"`
	Value float64 `json:"value"`
}

// Leaderboards are the league-wide top performers per category
type Leaderboards struct {
	Scorers    []*LeaderEntry `json:"scorers"`
	Assisters  []*LeaderEntry `json:"assisters"`
	Defenders  []*LeaderEntry `json:"defenders"`
	Playmakers []*LeaderEntry `json:"playmakers"`
}

// Leaders computes league-wide leaderboards. Defenders rank on stops
// plus clearances, playmakers on the passing volume that reaches the
// final third.
func (e *Engine) Leaders() *Leaderboards {
	size := Config.LeaderboardSize
	return &Leaderboards{
		Scorers: topBy(e.dataset.Players(), size, func(p *Player) float64 {
			return nanOrZero(p.Gls)
		}),
		Assisters: topBy(e.dataset.Players(), size, func(p *Player) float64 {
			return nanOrZero(p.Ast)
		}),
		Defenders: topBy(e.dataset.Players(), size, func(p *Player) float64 {
			return nanSum(p.TklInt, p.Clr)
		}),
		Playmakers: topBy(e.dataset.Players(), size, func(p *Player) float64 {
			return nanSum(p.KP, p.ThirdPasses, p.PrgP)
		}),
	}
}

func topBy(players []*Player, n int, value func(*Player) float64) []*LeaderEntry {
	entries := make([]*LeaderEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, &LeaderEntry{
			Name:  p.Name,
			Squad: p.Squad,
			Value: value(p),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// ScoutFilter narrows a league-wide player search. Zero values leave a
// criterion unconstrained.
type ScoutFilter struct {
	MinMinutes float64  `json:"minMinutes"`
	Positions  []string `json:"positions"`
	MinSCA90   float64  `json:"minSca90"`
	MinGA      float64  `json:"minGa"`
	AgeMin     float64  `json:"ageMin"`
	AgeMax     float64  `json:"ageMax"`
}

func (f *ScoutFilter) matches(p *Player) bool {
	if f.MinMinutes > 0 && (math.IsNaN(p.Min) || p.Min < f.MinMinutes) {
		return false
	}
	if f.MinSCA90 > 0 && (math.IsNaN(p.SCA90) || p.SCA90 < f.MinSCA90) {
		return false
	}
	if f.MinGA > 0 && (math.IsNaN(p.GA) || p.GA < f.MinGA) {
		return false
	}
	if f.AgeMin > 0 && (math.IsNaN(p.Age) || p.Age < f.AgeMin) {
		return false
	}
	if f.AgeMax > 0 && (math.IsNaN(p.Age) || p.Age > f.AgeMax) {
		return false
	}
	if len(f.Positions) > 0 {
		matched := false
		for _, pos := range f.Positions {
			// Position tags can be compound, e.g. "MF,FW"
			if strings.Contains(strings.ToLower(p.Pos), strings.ToLower(pos)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Discover searches the whole roster with a scout filter, ranked by
// shot creation rate
func (e *Engine) Discover(filter *ScoutFilter) []*Player {
	if filter == nil {
		filter = &ScoutFilter{}
	}
	var found []*Player
	for _, p := range e.dataset.Players() {
		if filter.matches(p) {
			found = append(found, p)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return nanOrZero(found[i].SCA90) > nanOrZero(found[j].SCA90)
	})
	return found
}

// nanOrZero maps NaN to zero for ranking comparisons
func nanOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
