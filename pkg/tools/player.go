package tools

import (
	"fmt"

	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

func PlayerPredictionTool() protocol.Tool {
	return protocol.Tool{
		Name: "predict_player",
		Description: `
		Predicts a player's market value and output from their current season stats.
		Field players get predicted market value, goals and assists; goalkeepers get
		predicted market value and saves. Both include the player's fatigue index.
		Player name matching is case insensitive.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"player": {
					Type:        "string",
					Description: "The player's name as it appears in the league roster, e.g. 'Jude Bellingham'. Case does not matter.",
				},
			},
			Required: []string{"player"},
		},
	}
}

func HandlePlayerPrediction(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		name, err := stringParam(params, "player")
		if err != nil {
			return nil, err
		}
		return e.PredictPlayer(name)
	}
}

// stringParam extracts a required string parameter from a tool call
func stringParam(params any, key string) (string, error) {
	if params == nil {
		return "", fmt.Errorf("no params given")
	}
	paramsMap, ok := params.(map[string]any)
	if !ok {
		return "", fmt.Errorf("couldn't format the parameters as a map of strings")
	}
	value, ok := paramsMap[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("no %s parameter was sent", key)
	}
	return value, nil
}

// optionalNumber extracts an optional numeric parameter, returning the
// fallback when absent
func optionalNumber(params any, key string, fallback float64) float64 {
	paramsMap, ok := params.(map[string]any)
	if !ok {
		return fallback
	}
	if v, ok := paramsMap[key].(float64); ok {
		return v
	}
	return fallback
}
