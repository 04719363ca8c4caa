// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Composite scoring, ordering and truncation.

package siting

import "sort"

// composite returns the weighted sum of the component scores.
func composite(w Weights, score func(Component) float64) float64 {
	total := 0.0
	for _, c := range AllComponents {
		total += w.Get(c) * score(c)
	}
	return clamp(total, 0, 1)
}

// rankResults scores every result against both weight vectors, assigns
// dense ranks and truncates to topN. Ties keep input order.
func rankResults(results []Result, baseline, scenario Weights, topN int) []Result {
	for i := range results {
		r := &results[i]
		r.order = i
		r.ScoreBaseline = composite(baseline, r.Components.Get)
		r.ScoreScenario = composite(scenario, r.scenarioComponent)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ScoreBaseline > results[j].ScoreBaseline
	})
	for i := range results {
		results[i].RankBaseline = i + 1
	}

	// Restore input order so the scenario sort breaks ties the same way.
	sort.Slice(results, func(i, j int) bool { return results[i].order < results[j].order })
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ScoreScenario > results[j].ScoreScenario
	})
	for i := range results {
		results[i].RankScenario = i + 1
	}
	return truncate(results, topN)
}

func truncate(results []Result, max int) []Result {
	if max <= 0 || max >= len(results) {
		return results
	}
	return results[:max]
}
