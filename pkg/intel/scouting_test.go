package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoutingTestEngine() *Engine {
	star := newTestPlayer("Star", "Alpha FC", "MF")
	star.Min, star.GA, star.Gls, star.Ast = 2800, 25, 18, 7
	star.SCA90, star.Age = 4.5, 24
	star.FatigueIndex = 2.1

	regular := newTestPlayer("Regular", "Alpha FC", "DF")
	regular.Min, regular.GA, regular.Gls, regular.Ast = 2500, 4, 1, 3
	regular.SCA90, regular.Age = 1.2, 29
	regular.FatigueIndex = 1.7

	fringe := newTestPlayer("Fringe", "Alpha FC", "FW")
	fringe.Min, fringe.GA, fringe.Gls, fringe.Ast = 400, 9, 6, 3
	fringe.SCA90, fringe.Age = 5.0, 19
	fringe.FatigueIndex = 0.4

	rival := newTestPlayer("Rival", "Beta FC", "MF")
	rival.Min, rival.GA, rival.Gls, rival.Ast = 2600, 12, 8, 4
	rival.SCA90, rival.Age = 3.1, 27
	rival.FatigueIndex = 1.5

	return &Engine{dataset: NewDataset([]*Player{star, regular, fringe, rival})}
}

func TestTeamProfile(t *testing.T) {
	e := scoutingTestEngine()

	dna, err := e.TeamProfile("alpha fc")
	require.NoError(t, err)
	assert.Equal(t, 3, dna.Players)
	assert.Len(t, dna.Metrics, len(verdictMetrics))
	assert.Greater(t, dna.Score, 0.0)

	_, err = e.TeamProfile("Atlantis United")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestFatigueRisks(t *testing.T) {
	e := scoutingTestEngine()

	risks, err := e.FatigueRisks("Alpha FC", "Beta FC")
	require.NoError(t, err)

	// Threshold is 1.5: Star 2.1, Regular 1.7, Rival 1.5 qualify; Fringe does not
	require.Len(t, risks, 3)
	assert.Equal(t, "Star", risks[0].Name)
	assert.Equal(t, "Regular", risks[1].Name)
	assert.Equal(t, "Rival", risks[2].Name)
}

func TestFatigueRisksUnknownTeam(t *testing.T) {
	e := scoutingTestEngine()

	_, err := e.FatigueRisks("Alpha FC", "Atlantis United")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestKeyPlayers(t *testing.T) {
	e := scoutingTestEngine()

	// Fringe has strong contributions but only 400 of the squad-max 2800
	// minutes, below the half-share floor
	key, err := e.KeyPlayers("Alpha FC")
	require.NoError(t, err)
	require.Len(t, key, 2)
	assert.Equal(t, "Star", key[0].Name)
	assert.Equal(t, "Regular", key[1].Name)
}

func TestLeaders(t *testing.T) {
	e := scoutingTestEngine()

	leaders := e.Leaders()
	require.NotEmpty(t, leaders.Scorers)
	assert.Equal(t, "Star", leaders.Scorers[0].Name)
	assert.InDelta(t, 18.0, leaders.Scorers[0].Value, 1e-9)

	require.NotEmpty(t, leaders.Assisters)
	assert.Equal(t, "Star", leaders.Assisters[0].Name)

	assert.LessOrEqual(t, len(leaders.Scorers), Config.LeaderboardSize)
	assert.NotEmpty(t, leaders.Defenders)
	assert.NotEmpty(t, leaders.Playmakers)
}

func TestDiscover(t *testing.T) {
	e := scoutingTestEngine()

	// Ranked by shot creation rate
	found := e.Discover(&ScoutFilter{MinSCA90: 3.0})
	require.Len(t, found, 3)
	assert.Equal(t, "Fringe", found[0].Name)
	assert.Equal(t, "Star", found[1].Name)
	assert.Equal(t, "Rival", found[2].Name)

	found = e.Discover(&ScoutFilter{MinSCA90: 3.0, MinMinutes: 1000})
	require.Len(t, found, 2)
	assert.Equal(t, "Star", found[0].Name)

	found = e.Discover(&ScoutFilter{Positions: []string{"FW"}})
	require.Len(t, found, 1)
	assert.Equal(t, "Fringe", found[0].Name)

	found = e.Discover(&ScoutFilter{AgeMin: 20, AgeMax: 25})
	require.Len(t, found, 1)
	assert.Equal(t, "Star", found[0].Name)

	assert.Len(t, e.Discover(nil), 4)
}
