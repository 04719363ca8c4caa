package tools

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"gridsite/internal/adapter"
	serr "gridsite/internal/errors"
	"gridsite/internal/logging"
	"gridsite/internal/siting"
)

// ScenarioInput is the scenario shape shared by the ranking tools.
type ScenarioInput struct {
	LoadType            string       `json:"load_type" jsonschema:"data_center_always_on, data_center_flexible, h2_electrolyzer_firm, industrial_continuous, industrial_flexible, commercial_campus, or free text such as data center"`
	SubType             string       `json:"sub_type,omitempty" jsonschema:"optional subtype used with free-text load types, e.g. flexible"`
	LoadSizeMW          float64      `json:"load_size_mw" jsonschema:"requested interconnection size in MW, > 0"`
	EmissionsPreference *int         `json:"emissions_preference,omitempty" jsonschema:"0-100 emissions priority slider, default 50"`
	ResourceConfig      string       `json:"resource_config,omitempty" jsonschema:"none, solar, battery, solar_battery or firm_gen; default none"`
	States              []string     `json:"states,omitempty" jsonschema:"restrict to these states (codes or names)"`
	Points              []PointInput `json:"points,omitempty" jsonschema:"restrict to circles around these points; union of circles"`
	TopN                *int         `json:"top_n,omitempty" jsonschema:"number of results, > 0, default from server config"`
}

type PointInput struct {
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	RadiusKM *float64 `json:"radius_km,omitempty" jsonschema:"radius in km, 0 keeps only the exact point, default from server config"`
}

func (in ScenarioInput) scenario(deps Dependencies) (siting.Scenario, error) {
	sf := adapter.ScenarioFile{
		LoadType:            in.LoadType,
		SubType:             in.SubType,
		LoadSizeMW:          in.LoadSizeMW,
		EmissionsPreference: in.EmissionsPreference,
		ResourceConfig:      in.ResourceConfig,
		TopN:                in.TopN,
		States:              in.States,
	}
	for _, p := range in.Points {
		sf.Points = append(sf.Points, adapter.PointSpec{Lat: p.Lat, Lon: p.Lon, RadiusKM: p.RadiusKM})
	}
	return sf.Scenario(options(deps))
}

func options(deps Dependencies) adapter.Options {
	return adapter.Options{
		PointRadiusKM: deps.Config.PointRadiusKM,
		DefaultTopN:   deps.Config.DefaultTopN,
		MaxTopN:       deps.Config.MaxTopN,
	}
}

// RankNodes tool

type RankNodesOutput struct {
	Scenario        siting.Scenario        `json:"scenario"`
	BaselineWeights siting.Weights         `json:"baseline_weights"`
	ScenarioWeights siting.Weights         `json:"scenario_weights"`
	Stats           siting.Stats           `json:"stats"`
	Results         []adapter.ResponseItem `json:"results"`
	Summary         siting.Summary         `json:"summary"`
}

func RankNodes(ctx context.Context, deps Dependencies, input ScenarioInput) (RankNodesOutput, error) {
	s, err := input.scenario(deps)
	if err != nil {
		return RankNodesOutput{}, err
	}
	return rank(ctx, deps, s)
}

func rank(ctx context.Context, deps Dependencies, s siting.Scenario) (RankNodesOutput, error) {
	t, err := table(ctx, deps)
	if err != nil {
		return RankNodesOutput{}, err
	}
	r, err := siting.RankNodes(t, s)
	if err != nil {
		return RankNodesOutput{}, err
	}
	deps.Metrics.ObserveRanking(r.Stats.FilteredRows)
	deps.log().Info("ranked nodes",
		zap.String("load_type", string(s.LoadType)),
		logging.FieldRanking(r.Stats.InputRows, r.Stats.ValidRows, r.Stats.FilteredRows, r.Stats.ReturnedRows),
	)
	return RankNodesOutput{
		Scenario:        r.Scenario,
		BaselineWeights: r.BaselineWeights,
		ScenarioWeights: r.ScenarioWeights,
		Stats:           r.Stats,
		Results:         adapter.FormatResponse(r),
		Summary:         siting.Summarize(r.Results),
	}, nil
}

// RankRequest tool

type RankRequestInput struct {
	Request any `json:"request" jsonschema:"frontend request object {loadConfig:{type, subType, sizeMW, carbonEmissions, onSiteGeneration, configurationType}, location:{mode, selectedStates, selectedPoints}, topN}"`
}

type RankRequestOutput struct {
	Scenario siting.Scenario        `json:"scenario"`
	Results  []adapter.ResponseItem `json:"results"`
}

func RankRequest(ctx context.Context, deps Dependencies, input RankRequestInput) (RankRequestOutput, error) {
	if input.Request == nil {
		return RankRequestOutput{}, serr.NewInvalidInput("request required", "provide the frontend request object", nil)
	}
	body, err := json.Marshal(input.Request)
	if err != nil {
		return RankRequestOutput{}, serr.NewInvalidInput("request is not JSON encodable", "", nil)
	}
	req, err := adapter.DecodeRequest(body)
	if err != nil {
		return RankRequestOutput{}, err
	}
	s, err := adapter.TranslateRequest(req, options(deps))
	if err != nil {
		return RankRequestOutput{}, err
	}
	out, err := rank(ctx, deps, s)
	if err != nil {
		return RankRequestOutput{}, err
	}
	return RankRequestOutput{Scenario: out.Scenario, Results: out.Results}, nil
}
