package tools

import (
	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

func TeamAnalysisTool() protocol.Tool {
	return protocol.Tool{
		Name: "team_analysis",
		Description: `
		Profiles a squad: its stylistic fingerprint (mean chance creation, ball
		progression and pressing volume) and its key players, the regulars who
		carry the goal contributions.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"team": {
					Type:        "string",
					Description: "The team's name as it appears in the roster. Case does not matter.",
				},
			},
			Required: []string{"team"},
		},
	}
}

func HandleTeamAnalysis(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		team, err := stringParam(params, "team")
		if err != nil {
			return nil, err
		}
		dna, err := e.TeamProfile(team)
		if err != nil {
			return nil, err
		}
		key, err := e.KeyPlayers(team)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"dna":        dna,
			"keyPlayers": key,
		}, nil
	}
}

func FatigueReportTool() protocol.Tool {
	return protocol.Tool{
		Name: "fatigue_report",
		Description: `
		Flags the most overworked players across two squads ahead of a fixture.
		Lists players whose fatigue index crosses the risk threshold, most
		fatigued first. Use before predict_match to spot rotation candidates.
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

func HandleFatigueReport(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		teamA, err := stringParam(params, "team_a")
		if err != nil {
			return nil, err
		}
		teamB, err := stringParam(params, "team_b")
		if err != nil {
			return nil, err
		}
		risks, err := e.FatigueRisks(teamA, teamB)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"teamA": teamA,
			"teamB": teamB,
			"risks": risks,
		}, nil
	}
}
