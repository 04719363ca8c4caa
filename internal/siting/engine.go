// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// RankNodes composes validation, filtering, scoring and ranking.

package siting

import (
	"gridsite/internal/nodes"
)

// RankNodes ranks the nodes of t for scenario s. It validates s and t,
// applies the location filter, scores the surviving rows relative to each
// other and returns the top s.TopN results. Configuration and schema
// errors are returned with no partial result; an empty filtered set is a
// valid, empty Ranking.
//
// t is treated as read-only, so one loaded table can serve concurrent
// calls.
func RankNodes(t nodes.Table, s Scenario) (Ranking, error) {
	if err := s.Validate(); err != nil {
		return Ranking{}, err
	}
	scenarioWeights, err := ComputeFinalWeights(s.LoadType, s.LoadSizeMW, s.EmissionsPreference)
	if err != nil {
		return Ranking{}, err
	}

	cleaned, report, err := nodes.Validate(t)
	if err != nil {
		return Ranking{}, err
	}
	rows, dist, err := FilterLocation(cleaned.Rows, s.Location)
	if err != nil {
		return Ranking{}, err
	}

	out := Ranking{
		Scenario:        s,
		BaselineWeights: BaselineWeights(),
		ScenarioWeights: scenarioWeights,
		Results:         []Result{},
		Stats: Stats{
			InputRows:    t.Len(),
			ValidRows:    cleaned.Len(),
			FilteredRows: len(rows),
			Validation:   report,
		},
	}
	if len(rows) == 0 {
		return out, nil
	}

	comps, effective, err := ScoreComponents(rows, s.LoadType, s.ResourceConfig)
	if err != nil {
		return Ranking{}, err
	}
	results := make([]Result, len(rows))
	for i, n := range rows {
		results[i] = Result{
			Node:                             n,
			Components:                       comps[i],
			EffectivePriceVariabilityPenalty: effective[i],
		}
		if dist != nil {
			d := dist[i]
			results[i].DistanceKM = &d
		}
	}

	out.Results = rankResults(results, out.BaselineWeights, scenarioWeights, s.TopN)
	out.Stats.ReturnedRows = len(out.Results)
	return out, nil
}
