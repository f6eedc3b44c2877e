package intel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityBundle builds a bundle whose scaler is a no-op and whose model
// sums the chosen features
func identityBundle(target string, features []string, coefficients []float64) *Bundle {
	n := len(features)
	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	return &Bundle{
		Target:   target,
		Features: features,
		Scaler:   &Scaler{Mean: mean, Scale: scale},
		Model:    &Regressor{Type: "linear", Coefficients: coefficients},
	}
}

func roleModelSet() *ModelSet {
	fieldFeatures := []string{"Gls", "Ast"}
	return &ModelSet{
		FieldValue: identityBundle("field_value", fieldFeatures, []float64{1, 1}),
		Goals:      identityBundle("goals", fieldFeatures, []float64{1, 0}),
		Assists:    identityBundle("assists", fieldFeatures, []float64{0, 1}),
		GKValue:    identityBundle("gk_value", []string{"MP", "Min"}, []float64{1, 0.01}),
		Saves:      identityBundle("saves", []string{"MP"}, []float64{3.21}),
	}
}

func unifiedModelSet() *ModelSet {
	features := []string{"Gls", "Ast"}
	return &ModelSet{
		MarketValue: identityBundle("market_value", features, []float64{1, 1}),
		Performance: identityBundle("performance", features, []float64{0.5, 0.5}),
		MatchRating: identityBundle("match_rating", features, []float64{0.1, 0}),
	}
}

func TestNewEngineSelectsRoleStrategy(t *testing.T) {
	d := NewDataset([]*Player{newTestPlayer("Test Player", "Test FC", "MF")})

	e, err := NewEngine(d, roleModelSet())
	require.NoError(t, err)
	assert.Equal(t, "role", e.StrategyName())
}

func TestNewEngineFallsBackToUnifiedStrategy(t *testing.T) {
	d := NewDataset([]*Player{newTestPlayer("Test Player", "Test FC", "MF")})

	e, err := NewEngine(d, unifiedModelSet())
	require.NoError(t, err)
	assert.Equal(t, "unified", e.StrategyName())
}

func TestNewEngineRejectsIncompleteBundles(t *testing.T) {
	d := NewDataset([]*Player{newTestPlayer("Test Player", "Test FC", "MF")})
	ms := roleModelSet()
	ms.Saves = nil

	_, err := NewEngine(d, ms)
	assert.Error(t, err)
}

func TestRoleStrategyFieldPlayer(t *testing.T) {
	p := newTestPlayer("Field Player", "Test FC", "MF")
	p.Gls, p.Ast = 12, 7
	p.FatigueIndex = 1.234

	e, err := NewEngine(NewDataset([]*Player{p}), roleModelSet())
	require.NoError(t, err)

	pred, err := e.PredictPlayer("field player")
	require.NoError(t, err)

	require.NotNil(t, pred.MarketValue)
	assert.InDelta(t, 19.0, *pred.MarketValue, 1e-9)
	require.NotNil(t, pred.Goals)
	assert.InDelta(t, 12.0, *pred.Goals, 1e-9)
	require.NotNil(t, pred.Assists)
	assert.InDelta(t, 7.0, *pred.Assists, 1e-9)
	assert.Nil(t, pred.Saves)
	assert.InDelta(t, 1.23, pred.FatigueIndex, 1e-9)
}

func TestRoleStrategyGoalkeeper(t *testing.T) {
	gk := newTestPlayer("The Keeper", "Test FC", "GK")
	gk.MP, gk.Min = 30, 2700
	gk.FatigueIndex = 1.23

	e, err := NewEngine(NewDataset([]*Player{gk}), roleModelSet())
	require.NoError(t, err)

	pred, err := e.PredictPlayer("The Keeper")
	require.NoError(t, err)

	require.NotNil(t, pred.MarketValue)
	assert.InDelta(t, 57.0, *pred.MarketValue, 1e-9)
	require.NotNil(t, pred.Saves)
	assert.Equal(t, 96, *pred.Saves) // round(30 * 3.21)
	assert.Nil(t, pred.Goals)
	assert.Nil(t, pred.Assists)
	assert.InDelta(t, 1.23, pred.FatigueIndex, 1e-9)
}

func TestPredictRefusesMissingValues(t *testing.T) {
	p := newTestPlayer("Sparse Player", "Test FC", "MF")
	p.Ast = math.NaN()

	e, err := NewEngine(NewDataset([]*Player{p}), roleModelSet())
	require.NoError(t, err)

	_, err = e.PredictPlayer("Sparse Player")
	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Sparse Player", missing.Player)
	assert.Equal(t, "Ast", missing.Feature)
}

func TestPredictUnknownPlayer(t *testing.T) {
	e, err := NewEngine(NewDataset([]*Player{newTestPlayer("Someone", "Test FC", "MF")}), roleModelSet())
	require.NoError(t, err)

	_, err = e.PredictPlayer("Nobody Atall")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestUnifiedStrategy(t *testing.T) {
	high := newTestPlayer("High Output", "Test FC", "MF")
	high.Gls, high.Ast = 20, 10
	low := newTestPlayer("Low Output", "Test FC", "MF")
	low.Gls, low.Ast = 1, 1

	e, err := NewEngine(NewDataset([]*Player{high, low}), unifiedModelSet())
	require.NoError(t, err)

	pred, err := e.PredictPlayer("High Output")
	require.NoError(t, err)
	require.NotNil(t, pred.MarketValue)
	assert.InDelta(t, 30.0, *pred.MarketValue, 1e-9)
	require.NotNil(t, pred.Performance)
	assert.InDelta(t, 15.0, *pred.Performance, 1e-9)
	assert.Equal(t, "High", pred.MatchOutlook)

	pred, err = e.PredictPlayer("Low Output")
	require.NoError(t, err)
	assert.Equal(t, "Low", pred.MatchOutlook)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 59.5, round1(59.4575))
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.236))
}
