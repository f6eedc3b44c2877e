package intel

import (
	"fmt"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
)

// MatchPrediction is the weighted win probability estimate for a matchup
type MatchPrediction struct {
	TeamA    string  `json:"teamA"`
	TeamB    string  `json:"teamB"`
	ProbA    float64 `json:"probA"`
	ProbB    float64 `json:"probB"`
	Analysis string  `json:"analysis"`
}

// teamProfile aggregates the derived metric columns over a roster.
// Attack and defense accumulate over the whole squad while possession
// is a per-player average, so a deeper squad hits harder but doesn't
// fake ball control. Missing values are skipped, matching how the
// derived columns treat them.
type teamProfile struct {
	Attack     float64
	Defense    float64
	Possession float64
}

func profileTeam(rows []*Player) teamProfile {
	attack := make([]float64, 0, len(rows))
	defense := make([]float64, 0, len(rows))
	possession := make([]float64, 0, len(rows))
	for _, p := range rows {
		attack = append(attack, p.AttackScore)
		defense = append(defense, p.DefenseScore)
		possession = append(possession, p.PossessionScore)
	}
	return teamProfile{
		Attack:     nanSum(attack...),
		Defense:    nanSum(defense...),
		Possession: nanOrZero(nanMean(possession...)),
	}
}

// PredictMatch estimates win probabilities for teamA against teamB from
// the squads' aggregated attack, defense and possession scores. Each side's
// raw strength weighs its attack against the opponent's defense, then
// blends in its own possession; the probabilities are the two raw
// strengths normalized to a 100-point split.
//
// Returns ErrTeamNotFound when either squad has no rows in the roster.
func (e *Engine) PredictMatch(teamA, teamB string) (*MatchPrediction, error) {
	rowsA := e.dataset.TeamRows(teamA)
	if len(rowsA) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamA)
	}
	rowsB := e.dataset.TeamRows(teamB)
	if len(rowsB) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamB)
	}

	profA := profileTeam(rowsA)
	profB := profileTeam(rowsB)

	attackWeight := GetAttackWeight()
	possessionWeight := GetPossessionWeight()
	smoothing := GetDefenseSmoothing()

	rawA := (profA.Attack/(profB.Defense+smoothing))*attackWeight + profA.Possession*possessionWeight
	rawB := (profB.Attack/(profA.Defense+smoothing))*attackWeight + profB.Possession*possessionWeight

	total := rawA + rawB
	if total == 0 {
		total = 1
	}
	probA := round1(rawA / total * 100)
	probB := round1(rawB / total * 100)

	analysis := fmt.Sprintf("Analysis: %s attack %.1f and possession %.1f; %s defense %.1f and possession %.1f",
		teamA, profA.Attack, profA.Possession, teamB, profB.Defense, profB.Possession)

	logger.Debug("Predicted match", teamA, probA, "vs", teamB, probB)

	return &MatchPrediction{
		TeamA:    teamA,
		TeamB:    teamB,
		ProbA:    probA,
		ProbB:    probB,
		Analysis: analysis,
	}, nil
}

// verdictMetrics are the per-player stats the coarse tactical comparison
// aggregates. Deliberately a different lens than PredictMatch: raw
// progression and pressing volume rather than the derived scores.
var verdictMetrics = []string{"xG", "xAG", "PrgP", "PrgDist", "Carries", "Tkl+Int"}

// MatchVerdict is the coarse sum-of-metrics comparison for a matchup
type MatchVerdict struct {
	TeamA   string  `json:"teamA"`
	TeamB   string  `json:"teamB"`
	ScoreA  float64 `json:"scoreA"`
	ScoreB  float64 `json:"scoreB"`
	Verdict string  `json:"verdict"`
}

func verdictScore(rows []*Player) float64 {
	var total float64
	for _, metric := range verdictMetrics {
		values := make([]float64, 0, len(rows))
		for _, p := range rows {
			v, err := p.FeatureValue(metric)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		total = nanSum(total, nanMean(values...))
	}
	return total
}

// CompareTactically renders the coarse verdict: for each side, the mean
// of each metric over the squad, summed into a single score. The higher
// score holds the tactical advantage.
//
// Returns ErrTeamNotFound when either squad has no rows in the roster.
func (e *Engine) CompareTactically(teamA, teamB string) (*MatchVerdict, error) {
	rowsA := e.dataset.TeamRows(teamA)
	if len(rowsA) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamA)
	}
	rowsB := e.dataset.TeamRows(teamB)
	if len(rowsB) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamB)
	}

	scoreA := verdictScore(rowsA)
	scoreB := verdictScore(rowsB)

	var verdict string
	switch {
	case scoreA > scoreB:
		verdict = fmt.Sprintf("%s holds the tactical advantage", teamA)
	case scoreB > scoreA:
		verdict = fmt.Sprintf("%s holds the tactical advantage", teamB)
	default:
		verdict = "Evenly matched on current form"
	}

	return &MatchVerdict{
		TeamA:   teamA,
		TeamB:   teamB,
		ScoreA:  round2(scoreA),
		ScoreB:  round2(scoreB),
		Verdict: verdict,
	}, nil
}
