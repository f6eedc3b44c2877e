package tools

import (
	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

func MatchPredictionTool() protocol.Tool {
	return protocol.Tool{
		Name: "predict_match",
		Description: `
		Predicts the outcome of a match between two teams as win probabilities.
		Weighs each squad's mean attacking output against the opponent's defensive
		aggregate, blended with possession. Team name matching is case insensitive.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team_a": {
					Type:        "string",
					Description: "The first team's name, e.g. 'Real Madrid'. Case does not matter.",
				},
				"team_b": {
					Type:        "string",
					Description: "The opposing team's name, e.g. 'Barcelona'. Case does not matter.",
				},
			},
			Required: []string{"team_a", "team_b"},
		},
	}
}

func HandleMatchPrediction(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		teamA, err := stringParam(params, "team_a")
		if err != nil {
			return nil, err
		}
		teamB, err := stringParam(params, "team_b")
		if err != nil {
			return nil, err
		}
		return e.PredictMatch(teamA, teamB)
	}
}

func TacticalVerdictTool() protocol.Tool {
	return protocol.Tool{
		Name: "tactical_verdict",
		Description: `
		Compares two teams on raw chance creation, ball progression and pressing
		volume, and names which side holds the tactical advantage. A coarser lens
		than predict_match; use it for a quick form read rather than a probability.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team_a": {
					Type:        "string",
					Description: "The first team's name. Case does not matter.",
				},
				"team_b": {
					Type:        "string",
					Description: "The opposing team's name. Case does not matter.",
				},
			},
			Required: []string{"team_a", "team_b"},
		},
	}
}

func HandleTacticalVerdict(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		teamA, err := stringParam(params, "team_a")
		if err != nil {
			return nil, err
		}
		teamB, err := stringParam(params, "team_b")
		if err != nil {
			return nil, err
		}
		return e.CompareTactically(teamA, teamB)
	}
}
