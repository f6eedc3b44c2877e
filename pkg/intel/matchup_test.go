package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoredPlayer builds a row with the derived team-score columns set
// directly, bypassing enrichment
func scoredPlayer(name, squad string, attack, defense, possession float64) *Player {
	p := newTestPlayer(name, squad, "MF")
	p.AttackScore = attack
	p.DefenseScore = defense
	p.PossessionScore = possession
	return p
}

func matchupTestEngine() *Engine {
	return &Engine{dataset: NewDataset([]*Player{
		scoredPlayer("A One", "Alpha FC", 100, 50, 60),
		scoredPlayer("B One", "Beta FC", 80, 70, 40),
	})}
}

func TestPredictMatchWorkedScenario(t *testing.T) {
	e := matchupTestEngine()

	// rawA = (100/(70+1))*0.6 + 60*0.4 = 24.845...
	// rawB = (80/(50+1))*0.6 + 40*0.4 = 16.941...
	pred, err := e.PredictMatch("Alpha FC", "Beta FC")
	require.NoError(t, err)

	assert.InDelta(t, 59.5, pred.ProbA, 1e-9)
	assert.InDelta(t, 40.5, pred.ProbB, 1e-9)
	assert.Equal(t, "Alpha FC", pred.TeamA)
	assert.Equal(t, "Beta FC", pred.TeamB)
	assert.Equal(t,
		"Analysis: Alpha FC attack 100.0 and possession 60.0; Beta FC defense 70.0 and possession 40.0",
		pred.Analysis)
}

func TestPredictMatchIsComplementary(t *testing.T) {
	e := matchupTestEngine()

	forward, err := e.PredictMatch("Alpha FC", "Beta FC")
	require.NoError(t, err)
	reverse, err := e.PredictMatch("Beta FC", "Alpha FC")
	require.NoError(t, err)

	assert.InDelta(t, forward.ProbA, reverse.ProbB, 1e-9)
	assert.InDelta(t, forward.ProbB, reverse.ProbA, 1e-9)
	assert.InDelta(t, 100.0, forward.ProbA+forward.ProbB, 0.1)
}

func TestPredictMatchAggregatesSquad(t *testing.T) {
	e := &Engine{dataset: NewDataset([]*Player{
		scoredPlayer("A One", "Alpha FC", 60, 30, 50),
		scoredPlayer("A Two", "Alpha FC", 40, 20, 70),
		scoredPlayer("B One", "Beta FC", 80, 70, 40),
	})}

	// Attack and defense sum to 100/50 while possession averages to 60,
	// so the split matches the single-row 100/50/60 profile
	pred, err := e.PredictMatch("Alpha FC", "Beta FC")
	require.NoError(t, err)
	assert.InDelta(t, 59.5, pred.ProbA, 1e-9)
}

func TestPredictMatchUnknownTeam(t *testing.T) {
	e := matchupTestEngine()

	_, err := e.PredictMatch("Alpha FC", "Atlantis United")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = e.PredictMatch("Atlantis United", "Beta FC")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestCompareTactically(t *testing.T) {
	strong := newTestPlayer("Strong", "Alpha FC", "MF")
	weak := newTestPlayer("Weak", "Beta FC", "MF")
	weak.XG, weak.XAG = 1, 0.5
	weak.PrgP, weak.PrgDist, weak.Carries, weak.TklInt = 10, 300, 100, 5

	e := &Engine{dataset: NewDataset([]*Player{strong, weak})}

	verdict, err := e.CompareTactically("Alpha FC", "Beta FC")
	require.NoError(t, err)
	assert.Greater(t, verdict.ScoreA, verdict.ScoreB)
	assert.Equal(t, "Alpha FC holds the tactical advantage", verdict.Verdict)

	reversed, err := e.CompareTactically("Beta FC", "Alpha FC")
	require.NoError(t, err)
	assert.Equal(t, "Alpha FC holds the tactical advantage", reversed.Verdict)
}

func TestCompareTacticallyUnknownTeam(t *testing.T) {
	e := matchupTestEngine()

	_, err := e.CompareTactically("Alpha FC", "Atlantis United")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
