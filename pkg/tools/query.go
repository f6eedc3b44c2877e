package tools

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

// matchupPattern splits free-text matchup queries on their separator word
var matchupPattern = regexp.MustCompile(`(?i)\s+(?:vs\.?|contra|against)\s+`)

func FootballQueryTool() protocol.Tool {
	return protocol.Tool{
		Name: "football_query",
		Description: `
		Answers a free-text football query. A query naming two teams separated by
		'vs', 'against' or 'contra' becomes a match prediction; a single name is
		resolved as a player first and as a team profile second.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"query": {
					Type:        "string",
					Description: "The query text, e.g. 'Real Madrid vs Barcelona' or 'Jude Bellingham'.",
				},
			},
			Required: []string{"query"},
		},
	}
}

func HandleFootballQuery(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		query, err := stringParam(params, "query")
		if err != nil {
			return nil, err
		}
		query = strings.TrimSpace(query)

		if sides := matchupPattern.Split(query, 2); len(sides) == 2 {
			teamA := strings.TrimSpace(sides[0])
			teamB := strings.TrimSpace(sides[1])
			if teamA != "" && teamB != "" {
				return e.PredictMatch(teamA, teamB)
			}
		}

		// Single name: player first, team second
		pred, err := e.PredictPlayer(query)
		if err == nil {
			return pred, nil
		}
		if !errors.Is(err, intel.ErrPlayerNotFound) {
			return nil, err
		}

		dna, teamErr := e.TeamProfile(query)
		if teamErr == nil {
			return dna, nil
		}

		return nil, fmt.Errorf("could not resolve %q as a player or a team", query)
	}
}
