package tools

import (
	"math"

	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
)

func LeagueLeadersTool() protocol.Tool {
	return protocol.Tool{
		Name: "league_leaders",
		Description: `
		League-wide leaderboards: top scorers, top assisters, the busiest
		defenders (tackles, interceptions and clearances) and the most productive
		playmakers (key passes, final third entries and progressive passes).
		`,
		InputSchema: protocol.InputSchema{
			Type:       "object",
			Properties: map[string]protocol.ToolProperty{},
		},
	}
}

func HandleLeagueLeaders(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		return e.Leaders(), nil
	}
}

func ScoutTool() protocol.Tool {
	return protocol.Tool{
		Name: "scout_players",
		Description: `
		Searches the whole roster with scouting criteria and ranks the matches by
		shot creation rate. All criteria are optional; omitted ones do not
		constrain the search.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"position": {
					Type:        "string",
					Description: "Position tag to match: GK, DF, MF or FW. Compound tags like 'MF,FW' match either part.",
				},
				"min_minutes": {
					Type:        "number",
					Description: "Minimum minutes played this season.",
				},
				"min_sca90": {
					Type:        "number",
					Description: "Minimum shot creating actions per 90 minutes.",
				},
				"min_goal_contributions": {
					Type:        "number",
					Description: "Minimum combined goals and assists.",
				},
				"age_min": {
					Type:        "number",
					Description: "Minimum age in years.",
				},
				"age_max": {
					Type:        "number",
					Description: "Maximum age in years.",
				},
			},
		},
	}
}

func HandleScout(e *intel.Engine) func(params any) (any, error) {
	return func(params any) (any, error) {
		filter := &intel.ScoutFilter{
			MinMinutes: optionalNumber(params, "min_minutes", 0),
			MinSCA90:   optionalNumber(params, "min_sca90", 0),
			MinGA:      optionalNumber(params, "min_goal_contributions", 0),
			AgeMin:     optionalNumber(params, "age_min", 0),
			AgeMax:     optionalNumber(params, "age_max", 0),
		}
		if pos, err := stringParam(params, "position"); err == nil {
			filter.Positions = []string{pos}
		}

		found := e.Discover(filter)

		// Trim the full rows down to a scouting summary
		type scoutHit struct {
			Name  string  `json:"name"`
			Squad string  `json:"squad"`
			Pos   string  `json:"pos"`
			Age   float64 `json:"age"`
			Min   float64 `json:"min"`
			SCA90 float64 `json:"sca90"`
			GA    float64 `json:"ga"`
		}
		hits := make([]scoutHit, 0, len(found))
		for _, p := range found {
			hits = append(hits, scoutHit{
				Name:  p.Name,
				Squad: p.Squad,
				Pos:   p.Pos,
				Age:   jsonNumber(p.Age),
				Min:   jsonNumber(p.Min),
				SCA90: jsonNumber(p.SCA90),
				GA:    jsonNumber(p.GA),
			})
		}
		return map[string]any{
			"matches": hits,
		}, nil
	}
}

// jsonNumber maps NaN stats to zero; encoding/json cannot carry NaN
func jsonNumber(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
