// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Scenario comparisons: resource configs, load types, emissions sweeps.

package siting

import (
	"context"

	"gridsite/internal/fanout"
	"gridsite/internal/nodes"
)

// ResourceComparison is the ranking of one scenario under one resource
// config.
type ResourceComparison struct {
	ResourceConfig ResourceConfig `json:"resource_config"`
	Ranking        Ranking        `json:"ranking"`
}

// TopResult returns the first-ranked result, if any.
func (c ResourceComparison) TopResult() (Result, bool) {
	if len(c.Ranking.Results) == 0 {
		return Result{}, false
	}
	return c.Ranking.Results[0], true
}

// CompareResources ranks s once per resource config, concurrently. The
// ResourceConfig of s is ignored. Results follow ResourceConfigs order.
func CompareResources(ctx context.Context, t nodes.Table, s Scenario) ([]ResourceComparison, error) {
	return fanout.Fanout(ctx, ResourceConfigs, func(ctx context.Context, rc ResourceConfig) (ResourceComparison, error) {
		sc := s
		sc.ResourceConfig = rc
		r, err := RankNodes(t, sc)
		if err != nil {
			return ResourceComparison{}, err
		}
		return ResourceComparison{ResourceConfig: rc, Ranking: r}, nil
	})
}

// LoadTypeWeights is the scenario weight vector for one load type.
type LoadTypeWeights struct {
	LoadType LoadType `json:"load_type"`
	Weights  Weights  `json:"weights"`
}

// WeightsByLoadType computes the scenario weights of every load type for
// the same size and emissions preference.
func WeightsByLoadType(sizeMW float64, emissionsPreference int) ([]LoadTypeWeights, error) {
	out := make([]LoadTypeWeights, 0, len(LoadTypes))
	for _, lt := range LoadTypes {
		w, err := ComputeFinalWeights(lt, sizeMW, emissionsPreference)
		if err != nil {
			return nil, err
		}
		out = append(out, LoadTypeWeights{LoadType: lt, Weights: w})
	}
	return out, nil
}

// DefaultSweep is the emissions preferences SweepEmissions uses when none
// are given.
var DefaultSweep = []int{0, 25, 50, 75, 100}

// sweepParallelism bounds the rankings a sweep runs at once; each holds
// a full scored copy of the filtered set.
const sweepParallelism = 4

// EmissionsPoint is the ranking of one scenario at one emissions
// preference.
type EmissionsPoint struct {
	Preference int     `json:"emissions_preference"`
	Weights    Weights `json:"weights"`
	Ranking    Ranking `json:"ranking"`
}

// SweepEmissions ranks s at each emissions preference, concurrently.
func SweepEmissions(ctx context.Context, t nodes.Table, s Scenario, prefs []int) ([]EmissionsPoint, error) {
	if len(prefs) == 0 {
		prefs = DefaultSweep
	}
	return fanout.FanoutLimit(ctx, prefs, sweepParallelism, func(ctx context.Context, pref int) (EmissionsPoint, error) {
		sc := s
		sc.EmissionsPreference = pref
		r, err := RankNodes(t, sc)
		if err != nil {
			return EmissionsPoint{}, err
		}
		return EmissionsPoint{Preference: pref, Weights: r.ScenarioWeights, Ranking: r}, nil
	})
}
