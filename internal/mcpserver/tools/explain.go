package tools

import (
	"context"
	"strings"

	serr "gridsite/internal/errors"
	"gridsite/internal/siting"
)

// ExplainNode tool

type ExplainNodeInput struct {
	Node     string        `json:"node" jsonschema:"node identifier"`
	Scenario ScenarioInput `json:"scenario"`
}

type ExplainNodeOutput struct {
	Explanation siting.Explanation `json:"explanation"`
}

func ExplainNode(ctx context.Context, deps Dependencies, input ExplainNodeInput) (ExplainNodeOutput, error) {
	node := strings.TrimSpace(input.Node)
	if node == "" {
		return ExplainNodeOutput{}, serr.NewInvalidInput("node required", "provide a node identifier", nil)
	}
	s, err := input.Scenario.scenario(deps)
	if err != nil {
		return ExplainNodeOutput{}, err
	}
	t, err := table(ctx, deps)
	if err != nil {
		return ExplainNodeOutput{}, err
	}
	ex, err := siting.ExplainNode(t, s, node)
	if err != nil {
		return ExplainNodeOutput{}, err
	}
	return ExplainNodeOutput{Explanation: ex}, nil
}
