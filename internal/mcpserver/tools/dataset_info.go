package tools

import (
	"context"

	"go.uber.org/zap"

	"gridsite/internal/dataset"
	"gridsite/internal/nodes"
)

// DatasetInfo tool

type DatasetInfoInput struct {
	Reload bool `json:"reload,omitempty" jsonschema:"reload the dataset from its source first"`
}

type DatasetInfoOutput struct {
	Dataset    dataset.Info `json:"dataset"`
	Validation nodes.Report `json:"validation"`
	Warnings   []string     `json:"warnings,omitempty"`
}

func DatasetInfo(ctx context.Context, deps Dependencies, input DatasetInfoInput) (DatasetInfoOutput, error) {
	if deps.Dataset == nil {
		_, err := table(ctx, deps)
		return DatasetInfoOutput{}, err
	}
	load := deps.Dataset.Table
	if input.Reload {
		load = deps.Dataset.Reload
	}
	t, err := load(ctx)
	if err != nil {
		return DatasetInfoOutput{}, err
	}
	out := DatasetInfoOutput{Dataset: deps.Dataset.Info()}
	if len(out.Dataset.Missing) > 0 {
		out.Warnings = append(out.Warnings, "required columns missing; ranking will fail until the dataset is fixed")
		return out, nil
	}
	_, report, err := nodes.Validate(t)
	if err != nil {
		return DatasetInfoOutput{}, err
	}
	out.Validation = report
	if report.DroppedRows > 0 {
		deps.log().Info("dataset rows dropped by validation", zap.Int("dropped", report.DroppedRows))
		out.Warnings = append(out.Warnings, "some rows lack critical fields and are excluded from ranking")
	}
	return out, nil
}
