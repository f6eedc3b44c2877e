package tools

import (
	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

func SimilarPlayersTool() protocol.Tool {
	return protocol.Tool{
		Name: "similar_players",
		Description: `
		Finds the players whose statistical profile is closest to the named player,
		compared on chance quality and ball progression within the same position
		group. Useful for finding replacements or stylistic comparisons.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"player": {
					Type:        "string",
					Description: "The player to find comparisons for. Case does not matter.",
				},
				"count": {
					Type:        "number",
					Description: "How many similar players to return. Defaults to 4.",
				},
			},
			Required: []string{"player"},
		},
	}
}

func HandleSimilarPlayers(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		name, err := stringParam(params, "player")
		if err != nil {
			return nil, err
		}
		n := int(optionalNumber(params, "count", 0))
		similar, err := e.FindSimilar(name, n)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"player":  name,
			"similar": similar,
		}, nil
	}
}

func ComparePlayersTool() protocol.Tool {
	return protocol.Tool{
		Name: "compare_players",
		Description: `
		Lays two players' key stats side by side: expected goals, expected assists,
		progressive passes, carries and defensive actions.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"player_a": {
					Type:        "string",
					Description: "The first player's name. Case does not matter.",
				},
				"player_b": {
					Type:        "string",
					Description: "The second player's name. Case does not matter.",
				},
			},
			Required: []string{"player_a", "player_b"},
		},
	}
}

func HandleComparePlayers(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		nameA, err := stringParam(params, "player_a")
		if err != nil {
			return nil, err
		}
		nameB, err := stringParam(params, "player_b")
		if err != nil {
			return nil, err
		}
		return e.ComparePlayers(nameA, nameB)
	}
}
