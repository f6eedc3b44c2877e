package intel

import (
	"fmt"
	"math"
	"sort"
)

// similarityFeatures define the profile vector players are compared on:
// chance quality and ball progression volume
var similarityFeatures = []string{"xG", "xAG", "Carries", "PrgDist", "PrgP"}

// SimilarPlayer is one neighbour in a similarity query result
type SimilarPlayer struct {
	Name       string  `json:"name"`
	Squad      string  `json:"squad"`
	Pos        string  `json:"pos"`
	Similarity float64 `json:"similarity"`
}

// similarityVector builds the comparison profile for a row. Missing
// stats are imputed to zero here, unlike the prediction path: a lookup
// should still rank the players it can, not refuse the whole query.
func similarityVector(p *Player) []float64 {
	vec := make([]float64, len(similarityFeatures))
	for i, name := range similarityFeatures {
		v, err := p.FeatureValue(name)
		if err != nil || math.IsNaN(v) {
			v = 0
		}
		vec[i] = v
	}
	return vec
}

// cosine returns the cosine similarity of two equal-length vectors,
// zero when either has no magnitude
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// FindSimilar returns the n players most similar to the named player,
// drawn from the pool sharing the same position tag, the player itself
// excluded. Ties keep table order. An unknown player yields an empty
// result rather than an error; n <= 0 falls back to the configured
// pool size.
func (e *Engine) FindSimilar(name string, n int) ([]*SimilarPlayer, error) {
	if n <= 0 {
		n = GetSimilarityPoolSize()
	}

	target, err := e.dataset.FindPlayer(name)
	if err != nil {
		return []*SimilarPlayer{}, nil
	}

	targetVec := similarityVector(target)

	var neighbours []*SimilarPlayer
	for _, p := range e.dataset.Players() {
		if p == target || p.Pos != target.Pos {
			continue
		}
		neighbours = append(neighbours, &SimilarPlayer{
			Name:       p.Name,
			Squad:      p.Squad,
			Pos:        p.Pos,
			Similarity: cosine(targetVec, similarityVector(p)),
		})
	}

	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].Similarity > neighbours[j].Similarity
	})

	if len(neighbours) > n {
		neighbours = neighbours[:n]
	}
	return neighbours, nil
}

// comparisonMetrics are the stats rendered side by side by ComparePlayers
var comparisonMetrics = []string{"xG", "xAG", "PrgP", "Carries", "Tkl+Int"}

// MetricPair is one row of a side-by-side player comparison
type MetricPair struct {
	Metric string  `json:"metric"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
}

// PlayerComparison lays two players' key stats side by side
type PlayerComparison struct {
	PlayerA string       `json:"playerA"`
	PlayerB string       `json:"playerB"`
	Metrics []MetricPair `json:"metrics"`
}

// ComparePlayers resolves both names and renders their key stats side
// by side. Unlike FindSimilar, an unknown name here is an error: the
// caller asked for two specific players.
func (e *Engine) ComparePlayers(nameA, nameB string) (*PlayerComparison, error) {
	a, err := e.dataset.FindPlayer(nameA)
	if err != nil {
		return nil, err
	}
	b, err := e.dataset.FindPlayer(nameB)
	if err != nil {
		return nil, err
	}

	metrics := make([]MetricPair, 0, len(comparisonMetrics))
	for _, metric := range comparisonMetrics {
		va, err := a.FeatureValue(metric)
		if err != nil {
			return nil, fmt.Errorf("unknown comparison metric: %s", metric)
		}
		vb, _ := b.FeatureValue(metric)
		metrics = append(metrics, MetricPair{Metric: metric, A: nanOrZero(va), B: nanOrZero(vb)})
	}

	return &PlayerComparison{
		PlayerA: a.Name,
		PlayerB: b.Name,
		Metrics: metrics,
	}, nil
}
