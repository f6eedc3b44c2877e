package intel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(name, squad, pos string) *Player {
	return &Player{
		Name:  name,
		Squad: squad,
		Pos:   pos,
		Age:   25, MP: 30, Starts: 28, Min: 2500,
		Gls: 10, Ast: 5, GA: 15, XG: 8.2, XAG: 4.1,
		Sh: 60, SoT: 24, SoTPct: 40, ShPer90: 2.1, SoTPer90: 0.9,
		GPerSh: 0.17, GPerSoT: 0.42, SuccPct: 55,
		KP: 30, PPA: 20, CrsPA: 5, SCA: 80, SCA90: 2.9, GCA: 12,
		Tkl: 40, Int: 25, TklInt: 65, Blocks: 15, Clr: 30, Won: 20, Rec: 1200,
		Touches: 1500, LiveTouches: 1400, DefThird: 300, MidThird: 700, AttThird: 500,
		Carries: 800, PrgDist: 4200, PrgC: 90, PrgP: 120, PrgR: 60, ThirdPasses: 70,
		FatigueIndex: 1.1,
	}
}

func TestEnrichFormulas(t *testing.T) {
	p := newTestPlayer("Test Player", "Test FC", "MF")
	d := NewDataset([]*Player{p})

	err := Enrich(d)
	require.NoError(t, err)

	assert.InDelta(t, (80.0+10.0+5.0)/25.0, p.Potential, 1e-9)
	assert.InDelta(t, 10.0/(24.0+1.0), p.Efficiency, 1e-9)
	assert.InDelta(t, 65.0, p.DefensiveImpact, 1e-9)
	assert.InDelta(t, 2*8.2+10+5+30+20+5, p.AttackScore, 1e-9)
	assert.InDelta(t, 40+25+15+30+300, p.DefenseScore, 1e-9)
	assert.InDelta(t, (1400.0+1500.0+4200.0)/3.0, p.PossessionScore, 1e-9)
}

func TestEnrichIsIdempotent(t *testing.T) {
	p := newTestPlayer("Test Player", "Test FC", "MF")
	d := NewDataset([]*Player{p})

	require.NoError(t, Enrich(d))
	first := *p
	require.NoError(t, Enrich(d))

	assert.Equal(t, first.Potential, p.Potential)
	assert.Equal(t, first.Efficiency, p.Efficiency)
	assert.Equal(t, first.AttackScore, p.AttackScore)
	assert.Equal(t, first.DefenseScore, p.DefenseScore)
	assert.Equal(t, first.PossessionScore, p.PossessionScore)
}

func TestEnrichNeverDividesByZeroShots(t *testing.T) {
	p := newTestPlayer("No Shots", "Test FC", "DF")
	p.SoT = 0
	p.Gls = 0
	d := NewDataset([]*Player{p})

	require.NoError(t, Enrich(d))

	assert.False(t, math.IsInf(p.Efficiency, 0))
	assert.False(t, math.IsNaN(p.Efficiency))
	assert.Equal(t, 0.0, p.Efficiency)
}

func TestEnrichMissingColumns(t *testing.T) {
	p := newTestPlayer("Test Player", "Test FC", "MF")
	d := NewDataset([]*Player{p})
	delete(d.columns, "xG")
	delete(d.columns, "SCA")

	err := Enrich(d)
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"xG", "SCA"}, missing.Columns)
}

func TestPossessionScoreSkipsMissingValues(t *testing.T) {
	p := newTestPlayer("Partial", "Test FC", "MF")
	p.LiveTouches = math.NaN()
	d := NewDataset([]*Player{p})

	require.NoError(t, Enrich(d))

	// Mean over the two values that are present
	assert.InDelta(t, (1500.0+4200.0)/2.0, p.PossessionScore, 1e-9)
}

func TestNanMean(t *testing.T) {
	assert.InDelta(t, 2.0, nanMean(1, 2, 3), 1e-9)
	assert.InDelta(t, 2.0, nanMean(1, math.NaN(), 3), 1e-9)
	assert.True(t, math.IsNaN(nanMean(math.NaN(), math.NaN())))
}

func TestNanSum(t *testing.T) {
	assert.InDelta(t, 4.0, nanSum(1, math.NaN(), 3), 1e-9)
	assert.Equal(t, 0.0, nanSum(math.NaN()))
}
