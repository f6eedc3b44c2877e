package intel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
)

// Scaler standardizes a feature vector with the mean and scale recorded
// at training time
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform standardizes the vector, (v - mean) / scale per feature.
// Returns *FeatureMismatchError when the vector width does not match the
// training width.
func (s *Scaler) Transform(bundle string, vec []float64) ([]float64, error) {
	if len(vec) != len(s.Mean) {
		return nil, &FeatureMismatchError{Bundle: bundle, Expected: len(s.Mean), Got: len(vec)}
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

// Regressor is a linear model exported from training
type Regressor struct {
	Type         string    `json:"type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Predict evaluates the model on a scaled vector
func (r *Regressor) Predict(scaled []float64) (float64, error) {
	if len(scaled) != len(r.Coefficients) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(r.Coefficients), len(scaled))
	}
	sum := r.Intercept
	for i, v := range scaled {
		sum += r.Coefficients[i] * v
	}
	return sum, nil
}

// Bundle pairs a scaler and model with the feature names they were
// trained on. The feature list is the single source of truth for vector
// order; vectors are always assembled by walking it.
type Bundle struct {
	Target   string     `json:"target"`
	Features []string   `json:"features"`
	Scaler   *Scaler    `json:"scaler"`
	Model    *Regressor `json:"model"`
}

// LoadBundle reads a model bundle from a JSON file and validates that
// the scaler and model widths agree with the feature list
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model bundle %s: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse model bundle %s: %w", path, err)
	}

	if b.Scaler == nil || b.Model == nil {
		return nil, fmt.Errorf("model bundle %s is missing scaler or model", path)
	}
	n := len(b.Features)
	if n == 0 {
		return nil, fmt.Errorf("model bundle %s has no features", path)
	}
	if len(b.Scaler.Mean) != n || len(b.Scaler.Scale) != n {
		return nil, fmt.Errorf("model bundle %s: scaler width %d does not match %d features",
			path, len(b.Scaler.Mean), n)
	}
	if len(b.Model.Coefficients) != n {
		return nil, fmt.Errorf("model bundle %s: model width %d does not match %d features",
			path, len(b.Model.Coefficients), n)
	}

	logger.Debug("Loaded model bundle", path, b.Target, n, "features")
	return &b, nil
}

// Vector assembles this bundle's feature vector for a player.
// Returns *MissingValueError when any required stat is NaN; models are
// never fed imputed values.
func (b *Bundle) Vector(p *Player) ([]float64, error) {
	vec := make([]float64, len(b.Features))
	for i, name := range b.Features {
		v, err := p.FeatureValue(name)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) {
			return nil, &MissingValueError{Player: p.Name, Feature: name}
		}
		vec[i] = v
	}
	return vec, nil
}

// ScaledVector assembles and standardizes the feature vector for a player
func (b *Bundle) ScaledVector(p *Player) ([]float64, error) {
	vec, err := b.Vector(p)
	if err != nil {
		return nil, err
	}
	return b.Scaler.Transform(b.Target, vec)
}

// PredictPlayer runs the full pipeline for one player: assemble, scale, predict
func (b *Bundle) PredictPlayer(p *Player) (float64, error) {
	scaled, err := b.ScaledVector(p)
	if err != nil {
		return 0, err
	}
	return b.Model.Predict(scaled)
}

// PredictScaled evaluates this bundle's model on a vector already scaled
// by a sibling bundle. The goal and assist models were trained on the
// value model's scaled features, so they share its scaler output.
func (b *Bundle) PredictScaled(scaled []float64) (float64, error) {
	return b.Model.Predict(scaled)
}

// ModelSet holds every bundle the prediction engine may serve. Role
// bundles and unified bundles are independent; whichever set is present
// on disk decides the strategy at startup.
type ModelSet struct {
	// Field player role bundles
	FieldValue *Bundle
	Goals      *Bundle
	Assists    *Bundle

	// Goalkeeper role bundles
	GKValue *Bundle
	Saves   *Bundle

	// Unified pathway bundles
	MarketValue *Bundle
	Performance *Bundle
	MatchRating *Bundle
}

// roleFiles and unifiedFiles name the bundle files under the models directory
var roleFiles = map[string]string{
	"field_value": "field_value.json",
	"goals":       "goals.json",
	"assists":     "assists.json",
	"gk_value":    "gk_value.json",
	"saves":       "saves.json",
}

var unifiedFiles = map[string]string{
	"market_value": "market_value.json",
	"performance":  "performance.json",
	"match_rating": "match_rating.json",
}

// LoadModelSet loads whichever bundles exist under the models directory.
// Absent files are not an error; an incomplete role or unified set is
// caught when the strategy is selected.
func LoadModelSet(dir string) (*ModelSet, error) {
	load := func(name string) (*Bundle, error) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
		return LoadBundle(path)
	}

	ms := &ModelSet{}
	var err error

	if ms.FieldValue, err = load(roleFiles["field_value"]); err != nil {
		return nil, err
	}
	if ms.Goals, err = load(roleFiles["goals"]); err != nil {
		return nil, err
	}
	if ms.Assists, err = load(roleFiles["assists"]); err != nil {
		return nil, err
	}
	if ms.GKValue, err = load(roleFiles["gk_value"]); err != nil {
		return nil, err
	}
	if ms.Saves, err = load(roleFiles["saves"]); err != nil {
		return nil, err
	}
	if ms.MarketValue, err = load(unifiedFiles["market_value"]); err != nil {
		return nil, err
	}
	if ms.Performance, err = load(unifiedFiles["performance"]); err != nil {
		return nil, err
	}
	if ms.MatchRating, err = load(unifiedFiles["match_rating"]); err != nil {
		return nil, err
	}

	return ms, nil
}

// HasRoleBundles reports whether the full role-specific set is present
func (ms *ModelSet) HasRoleBundles() bool {
	return ms.FieldValue != nil && ms.Goals != nil && ms.Assists != nil &&
		ms.GKValue != nil && ms.Saves != nil
}

// HasUnifiedBundles reports whether the unified pathway set is present
func (ms *ModelSet) HasUnifiedBundles() bool {
	return ms.MarketValue != nil && ms.Performance != nil && ms.MatchRating != nil
}
