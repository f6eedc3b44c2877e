package intel

import (
	"fmt"
	"math"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
)

// PlayerPrediction is the engine's output for one player. Which fields
// are populated depends on the player's role and the active strategy.
type PlayerPrediction struct {
	Player string `json:"player"`
	Squad  string `json:"squad"`
	Pos    string `json:"pos"`

	// Role pathway
	MarketValue *float64 `json:"marketValue,omitempty"`
	Goals       *float64 `json:"predictedGoals,omitempty"`
	Assists     *float64 `json:"predictedAssists,omitempty"`
	Saves       *int     `json:"predictedSaves,omitempty"`

	// Unified pathway
	Performance  *float64 `json:"performance,omitempty"`
	MatchOutlook string   `json:"matchOutlook,omitempty"`

	FatigueIndex float64 `json:"fatigueIndex"`
}

// PredictionStrategy maps a roster row to a prediction. The engine picks
// one implementation at startup from the bundles found on disk.
type PredictionStrategy interface {
	Name() string
	Predict(p *Player) (*PlayerPrediction, error)
}

// Engine ties the enriched dataset to a prediction strategy
type Engine struct {
	dataset  *Dataset
	models   *ModelSet
	strategy PredictionStrategy
}

// NewEngine selects a strategy from the available bundles. The role
// pathway is preferred; the unified pathway is the fallback when only
// the generic bundles are present.
func NewEngine(dataset *Dataset, models *ModelSet) (*Engine, error) {
	if dataset == nil {
		return nil, fmt.Errorf("engine requires a dataset")
	}
	if models == nil {
		return nil, fmt.Errorf("engine requires a model set")
	}

	var strategy PredictionStrategy
	switch {
	case models.HasRoleBundles():
		strategy = &RoleStrategy{models: models}
	case models.HasUnifiedBundles():
		strategy = &UnifiedStrategy{models: models}
	default:
		return nil, fmt.Errorf("no complete bundle set found: need either the role bundles or the unified bundles")
	}

	logger.Info("Prediction engine ready", strategy.Name(), "strategy,", dataset.Len(), "players")
	return &Engine{dataset: dataset, models: models, strategy: strategy}, nil
}

// Dataset exposes the engine's roster
func (e *Engine) Dataset() *Dataset {
	return e.dataset
}

// StrategyName reports which pathway the engine selected at startup
func (e *Engine) StrategyName() string {
	return e.strategy.Name()
}

// PredictPlayer resolves a player by name and runs the active strategy
func (e *Engine) PredictPlayer(name string) (*PlayerPrediction, error) {
	p, err := e.dataset.FindPlayer(name)
	if err != nil {
		return nil, err
	}
	return e.strategy.Predict(p)
}

// RoleStrategy serves the role-specific bundles: goalkeepers get the
// value and saves models, field players get value, goals and assists
type RoleStrategy struct {
	models *ModelSet
}

func (s *RoleStrategy) Name() string { return "role" }

func (s *RoleStrategy) Predict(p *Player) (*PlayerPrediction, error) {
	pred := &PlayerPrediction{
		Player:       p.Name,
		Squad:        p.Squad,
		Pos:          p.Pos,
		FatigueIndex: round2(nanOrZero(p.FatigueIndex)),
	}

	if p.IsGoalkeeper() {
		value, err := s.models.GKValue.PredictPlayer(p)
		if err != nil {
			return nil, err
		}
		saves, err := s.models.Saves.PredictPlayer(p)
		if err != nil {
			return nil, err
		}
		pred.MarketValue = ptr(round1(value))
		savesInt := int(math.Round(saves))
		pred.Saves = &savesInt
		return pred, nil
	}

	// The goal and assist models were trained on the value model's
	// scaled features, so one scaled vector serves all three
	scaled, err := s.models.FieldValue.ScaledVector(p)
	if err != nil {
		return nil, err
	}
	value, err := s.models.FieldValue.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}
	goals, err := s.models.Goals.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}
	assists, err := s.models.Assists.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}

	pred.MarketValue = ptr(round1(value))
	pred.Goals = ptr(round1(goals))
	pred.Assists = ptr(round1(assists))
	return pred, nil
}

// UnifiedStrategy serves the generic bundles: one scaler feeds the
// market value, performance and match rating models for every role
type UnifiedStrategy struct {
	models *ModelSet
}

func (s *UnifiedStrategy) Name() string { return "unified" }

func (s *UnifiedStrategy) Predict(p *Player) (*PlayerPrediction, error) {
	pred := &PlayerPrediction{
		Player:       p.Name,
		Squad:        p.Squad,
		Pos:          p.Pos,
		FatigueIndex: round2(nanOrZero(p.FatigueIndex)),
	}

	scaled, err := s.models.MarketValue.ScaledVector(p)
	if err != nil {
		return nil, err
	}
	value, err := s.models.MarketValue.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}
	performance, err := s.models.Performance.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}
	rating, err := s.models.MatchRating.PredictScaled(scaled)
	if err != nil {
		return nil, err
	}

	pred.MarketValue = ptr(round2(value))
	pred.Performance = ptr(round2(performance))
	if rating >= 0.5 {
		pred.MatchOutlook = "High"
	} else {
		pred.MatchOutlook = "Low"
	}
	return pred, nil
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
