package tools

import (
	"context"

	"gridsite/internal/adapter"
	serr "gridsite/internal/errors"
	"gridsite/internal/siting"
)

// ComputeWeights tool

type ComputeWeightsInput struct {
	LoadType            string  `json:"load_type,omitempty" jsonschema:"load type; empty returns every load type"`
	LoadSizeMW          float64 `json:"load_size_mw" jsonschema:"load size in MW, > 0"`
	EmissionsPreference *int    `json:"emissions_preference,omitempty" jsonschema:"0-100, default 50"`
}

type WeightsRow struct {
	LoadType    siting.LoadType `json:"load_type"`
	Multipliers siting.Weights  `json:"load_type_multipliers"`
	Final       siting.Weights  `json:"final"`
}

type ComputeWeightsOutput struct {
	Baseline        siting.Weights     `json:"baseline"`
	SizeBracket     siting.SizeBracket `json:"size_bracket"`
	SizeMultipliers siting.Weights     `json:"size_multipliers"`
	Preference      int                `json:"emissions_preference"`
	LoadTypes       []WeightsRow       `json:"load_types"`
}

func ComputeWeights(ctx context.Context, deps Dependencies, input ComputeWeightsInput) (ComputeWeightsOutput, error) {
	if input.LoadSizeMW <= 0 {
		return ComputeWeightsOutput{}, serr.NewConfiguration("load_size_mw must be > 0", "", map[string]any{"load_size_mw": input.LoadSizeMW})
	}
	pref := adapter.DefaultEmissionsPreference
	if input.EmissionsPreference != nil {
		pref = *input.EmissionsPreference
	}
	if pref < 0 || pref > 100 {
		return ComputeWeightsOutput{}, serr.NewConfiguration("emissions_preference must be within 0..100", "", map[string]any{"emissions_preference": pref})
	}

	types := siting.LoadTypes
	if input.LoadType != "" {
		lt, err := adapter.NormalizeLoadType(input.LoadType, "")
		if err != nil {
			return ComputeWeightsOutput{}, err
		}
		types = []siting.LoadType{lt}
	}

	out := ComputeWeightsOutput{
		Baseline:        siting.BaselineWeights(),
		SizeBracket:     siting.BracketFor(input.LoadSizeMW),
		SizeMultipliers: siting.SizeMultipliers(input.LoadSizeMW),
		Preference:      pref,
	}
	for _, lt := range types {
		m, err := siting.LoadTypeMultipliers(lt)
		if err != nil {
			return ComputeWeightsOutput{}, err
		}
		w, err := siting.ComputeFinalWeights(lt, input.LoadSizeMW, pref)
		if err != nil {
			return ComputeWeightsOutput{}, err
		}
		out.LoadTypes = append(out.LoadTypes, WeightsRow{LoadType: lt, Multipliers: m, Final: w})
	}
	return out, nil
}
