package intel

import "fmt"

// IntelConfig contains all configurable parameters that influence analytics
// outcomes. This centralizes all magic numbers and constants for easy
// adjustment.
type IntelConfig struct {
	// Data and asset paths
	RosterPath   string `koanf:"roster_path"`   // CSV roster file ("final.csv" equivalent)
	SnapshotPath string `koanf:"snapshot_path"` // sqlite roster snapshot location
	ModelsPath   string `koanf:"models_path"`   // directory holding serialized model bundles
	RosterURL    string `koanf:"roster_url"`    // optional HTML stats table source

	// === MATCHUP PREDICTION PARAMETERS ===

	// Weighting between attacking output and possession in the raw team score
	AttackWeight     float64 `koanf:"attack_weight"`     // default: 0.6
	PossessionWeight float64 `koanf:"possession_weight"` // calculated as 1.0 - AttackWeight

	// Smoothing constant added to the opposing defense aggregate before
	// division. Prevents division by zero for teams with no defensive
	// output; changing it changes every published probability.
	DefenseSmoothing float64 `koanf:"defense_smoothing"` // default: 1.0

	// === FEATURE DERIVATION ===

	// Offset added to shots on target in the efficiency ratio
	EfficiencyOffset float64 `koanf:"efficiency_offset"` // default: 1.0

	// === SIMILARITY ENGINE ===

	SimilarityPoolSize int `koanf:"similarity_pool_size"` // default: 4

	// === SCOUTING PARAMETERS ===

	FatigueRiskThreshold float64 `koanf:"fatigue_risk_threshold"` // default: 1.5
	FatigueRiskLimit     int     `koanf:"fatigue_risk_limit"`     // default: 6
	KeyPlayerMinShare    float64 `koanf:"key_player_min_share"`   // share of squad-max minutes, default: 0.5
	KeyPlayerLimit       int     `koanf:"key_player_limit"`       // default: 2
	LeaderboardSize      int     `koanf:"leaderboard_size"`       // default: 5
}

// DefaultIntelConfig returns the default configuration with all standard values
func DefaultIntelConfig() *IntelConfig {
	assetsPath := ".intel/"
	config := &IntelConfig{
		RosterPath:   assetsPath + "final.csv",
		SnapshotPath: assetsPath + "roster.db",
		ModelsPath:   assetsPath + "models/",
		RosterURL:    "",

		AttackWeight:     0.6,
		PossessionWeight: 0.4, // Will be recalculated as 1.0 - AttackWeight
		DefenseSmoothing: 1.0,

		EfficiencyOffset: 1.0,

		SimilarityPoolSize: 4,

		FatigueRiskThreshold: 1.5,
		FatigueRiskLimit:     6,
		KeyPlayerMinShare:    0.5,
		KeyPlayerLimit:       2,
		LeaderboardSize:      5,
	}

	// Ensure PossessionWeight is always calculated correctly
	config.PossessionWeight = 1.0 - config.AttackWeight

	return config
}

// Global configuration instance
var Config *IntelConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultIntelConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *IntelConfig) {
	// Ensure PossessionWeight is recalculated when AttackWeight changes
	newConfig.PossessionWeight = 1.0 - newConfig.AttackWeight
	Config = newConfig
}

// GetAttackWeight returns the current attack weight
func GetAttackWeight() float64 {
	return Config.AttackWeight
}

// GetPossessionWeight returns the current possession weight
func GetPossessionWeight() float64 {
	return Config.PossessionWeight
}

// SetAttackWeight updates the attack weight and recalculates the possession weight
func SetAttackWeight(weight float64) {
	Config.AttackWeight = weight
	Config.PossessionWeight = 1.0 - weight
}

// GetDefenseSmoothing returns the defensive smoothing constant
func GetDefenseSmoothing() float64 {
	return Config.DefenseSmoothing
}

// GetEfficiencyOffset returns the shots-on-target offset for the efficiency ratio
func GetEfficiencyOffset() float64 {
	return Config.EfficiencyOffset
}

// GetSimilarityPoolSize returns how many similar players to report by default
func GetSimilarityPoolSize() int {
	return Config.SimilarityPoolSize
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *IntelConfig) error {
	if config.AttackWeight < 0.0 || config.AttackWeight > 1.0 {
		return fmt.Errorf("AttackWeight must be between 0.0 and 1.0, got: %f", config.AttackWeight)
	}

	if config.DefenseSmoothing <= 0.0 {
		return fmt.Errorf("DefenseSmoothing must be positive, got: %f", config.DefenseSmoothing)
	}

	if config.EfficiencyOffset <= 0.0 {
		return fmt.Errorf("EfficiencyOffset must be positive, got: %f", config.EfficiencyOffset)
	}

	if config.SimilarityPoolSize < 1 {
		return fmt.Errorf("SimilarityPoolSize must be at least 1, got: %d", config.SimilarityPoolSize)
	}

	if config.FatigueRiskThreshold < 0.0 {
		return fmt.Errorf("FatigueRiskThreshold must not be negative, got: %f", config.FatigueRiskThreshold)
	}

	if config.KeyPlayerMinShare < 0.0 || config.KeyPlayerMinShare > 1.0 {
		return fmt.Errorf("KeyPlayerMinShare must be between 0.0 and 1.0, got: %f", config.KeyPlayerMinShare)
	}

	if config.LeaderboardSize < 1 {
		return fmt.Errorf("LeaderboardSize must be at least 1, got: %d", config.LeaderboardSize)
	}

	return nil
}
