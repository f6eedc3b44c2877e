package intel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func similarityTestEngine() *Engine {
	target := newTestPlayer("Target", "Alpha FC", "MF")

	twin := newTestPlayer("Twin", "Beta FC", "MF")

	// Same direction, double magnitude: cosine 1.0
	double := newTestPlayer("Double", "Gamma FC", "MF")
	double.XG, double.XAG = target.XG*2, target.XAG*2
	double.Carries, double.PrgDist, double.PrgP = target.Carries*2, target.PrgDist*2, target.PrgP*2

	// Different profile, same position
	grinder := newTestPlayer("Grinder", "Beta FC", "MF")
	grinder.XG, grinder.XAG = 0.5, 0.3
	grinder.Carries, grinder.PrgDist, grinder.PrgP = 200, 600, 20

	// Identical stats but wrong position pool
	striker := newTestPlayer("Striker", "Beta FC", "FW")

	return &Engine{dataset: NewDataset([]*Player{target, twin, double, grinder, striker})}
}

func TestFindSimilarExcludesSelfAndOtherRoles(t *testing.T) {
	e := similarityTestEngine()

	similar, err := e.FindSimilar("target", 10)
	require.NoError(t, err)

	names := make([]string, 0, len(similar))
	for _, s := range similar {
		names = append(names, s.Name)
	}
	assert.NotContains(t, names, "Target")
	assert.NotContains(t, names, "Striker")
	assert.Len(t, similar, 3)
}

func TestFindSimilarOrdering(t *testing.T) {
	e := similarityTestEngine()

	similar, err := e.FindSimilar("Target", 10)
	require.NoError(t, err)
	require.Len(t, similar, 3)

	for i := 1; i < len(similar); i++ {
		assert.GreaterOrEqual(t, similar[i-1].Similarity, similar[i].Similarity)
	}

	// Twin and Double both point in exactly the target's direction
	assert.InDelta(t, 1.0, similar[0].Similarity, 1e-9)
	assert.InDelta(t, 1.0, similar[1].Similarity, 1e-9)
	// Equal scores keep table order
	assert.Equal(t, "Twin", similar[0].Name)
	assert.Equal(t, "Double", similar[1].Name)
	assert.Equal(t, "Grinder", similar[2].Name)
}

func TestFindSimilarRespectsLimit(t *testing.T) {
	e := similarityTestEngine()

	similar, err := e.FindSimilar("Target", 2)
	require.NoError(t, err)
	assert.Len(t, similar, 2)
}

func TestFindSimilarUnknownPlayer(t *testing.T) {
	e := similarityTestEngine()

	similar, err := e.FindSimilar("Nobody Atall", 4)
	require.NoError(t, err)
	assert.Empty(t, similar)
}

func TestSimilarityVectorImputesZero(t *testing.T) {
	p := newTestPlayer("Sparse", "Alpha FC", "MF")
	p.XG = math.NaN()
	p.PrgDist = math.NaN()

	vec := similarityVector(p)
	assert.Equal(t, 0.0, vec[0])
	assert.Equal(t, 0.0, vec[3])
	assert.InDelta(t, p.Carries, vec[2], 1e-9)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosine([]float64{0, 0}, []float64{1, 1}))
}

func TestComparePlayers(t *testing.T) {
	e := similarityTestEngine()

	cmp, err := e.ComparePlayers("target", "GRINDER")
	require.NoError(t, err)
	assert.Equal(t, "Target", cmp.PlayerA)
	assert.Equal(t, "Grinder", cmp.PlayerB)
	require.Len(t, cmp.Metrics, 5)

	assert.Equal(t, "xG", cmp.Metrics[0].Metric)
	assert.InDelta(t, 8.2, cmp.Metrics[0].A, 1e-9)
	assert.InDelta(t, 0.5, cmp.Metrics[0].B, 1e-9)

	_, err = e.ComparePlayers("Target", "Nobody Atall")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
