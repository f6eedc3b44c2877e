package intel

import (
	"math"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
)

// Raw columns the derived metrics are computed from. All must be present
// in the source table before enrichment runs.
var derivedInputs = []string{
	"Age", "Gls", "Ast", "SoT", "SCA",
	"Tkl", "Int", "Blocks", "Clr",
	"xG", "KP", "PPA", "CrsPA",
	"Touches", "Live_stats_possession", "Def 3rd_stats_possession", "PrgDist",
}

// Enrich computes the derived metric columns for every row. The formulas
// are pure functions of the raw columns, so enrichment is idempotent and
// safe to run again after a snapshot reload.
//
// Returns *MissingColumnError when the source table lacks any required
// raw column.
func Enrich(d *Dataset) error {
	var missing []string
	for _, col := range derivedInputs {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}

	for _, p := range d.players {
		// Creation and scoring output relative to age
		p.Potential = (p.SCA + p.Gls + p.Ast) / p.Age

		// Goals per shot on target, offset so shotless rows stay finite
		p.Efficiency = p.Gls / (p.SoT + GetEfficiencyOffset())

		p.DefensiveImpact = p.Tkl + p.Int

		p.AttackScore = 2*p.XG + p.Gls + p.Ast + p.KP + p.PPA + p.CrsPA
		p.DefenseScore = p.Tkl + p.Int + p.Blocks + p.Clr + p.DefThird
		p.PossessionScore = nanMean(p.LiveTouches, p.Touches, p.PrgDist)
	}

	logger.Debug("Enriched dataset with derived metrics", d.Len(), "players")
	return nil
}

// nanMean averages the non-NaN values; NaN when all are missing
func nanMean(values ...float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// nanSum adds the non-NaN values; zero when all are missing
func nanSum(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	return sum
}
