package tools

import (
	"context"

	"gridsite/internal/adapter"
	"gridsite/internal/siting"
)

// CompareResourceConfigs tool

type CompareInput struct {
	Scenario ScenarioInput `json:"scenario" jsonschema:"scenario to compare; its resource_config is ignored"`
}

type ResourceRow struct {
	ResourceConfig siting.ResourceConfig  `json:"resource_config"`
	Mitigation     float64                `json:"mitigation"`
	Weights        siting.Weights         `json:"scenario_weights"`
	Results        []adapter.ResponseItem `json:"results"`
}

type CompareOutput struct {
	Scenario siting.Scenario `json:"scenario"`
	Configs  []ResourceRow   `json:"configs"`
}

func CompareResourceConfigs(ctx context.Context, deps Dependencies, input CompareInput) (CompareOutput, error) {
	s, err := input.Scenario.scenario(deps)
	if err != nil {
		return CompareOutput{}, err
	}
	t, err := table(ctx, deps)
	if err != nil {
		return CompareOutput{}, err
	}
	cmp, err := siting.CompareResources(ctx, t, s)
	if err != nil {
		return CompareOutput{}, err
	}
	out := CompareOutput{Scenario: s, Configs: make([]ResourceRow, 0, len(cmp))}
	for _, c := range cmp {
		m, _ := siting.Mitigation(c.ResourceConfig)
		out.Configs = append(out.Configs, ResourceRow{
			ResourceConfig: c.ResourceConfig,
			Mitigation:     m,
			Weights:        c.Ranking.ScenarioWeights,
			Results:        adapter.FormatResponse(c.Ranking),
		})
	}
	return out, nil
}

// SweepEmissions tool

type SweepInput struct {
	Scenario    ScenarioInput `json:"scenario" jsonschema:"scenario to sweep; its emissions_preference is ignored"`
	Preferences []int         `json:"preferences,omitempty" jsonschema:"emissions preferences to rank at, default 0, 25, 50, 75, 100"`
}

type SweepRow struct {
	Preference int                    `json:"emissions_preference"`
	Weights    siting.Weights         `json:"scenario_weights"`
	Results    []adapter.ResponseItem `json:"results"`
}

type SweepOutput struct {
	Points []SweepRow `json:"points"`
}

func SweepEmissions(ctx context.Context, deps Dependencies, input SweepInput) (SweepOutput, error) {
	s, err := input.Scenario.scenario(deps)
	if err != nil {
		return SweepOutput{}, err
	}
	t, err := table(ctx, deps)
	if err != nil {
		return SweepOutput{}, err
	}
	points, err := siting.SweepEmissions(ctx, t, s, input.Preferences)
	if err != nil {
		return SweepOutput{}, err
	}
	out := SweepOutput{Points: make([]SweepRow, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, SweepRow{Preference: p.Preference, Weights: p.Weights, Results: adapter.FormatResponse(p.Ranking)})
	}
	return out, nil
}
