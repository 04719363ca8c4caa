package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gridsite/internal/mcpserver/tools"
)

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "/siting.scenario_walkthrough",
		Title:       "Siting scenario walkthrough",
		Description: "Step-by-step guidance for ranking nodes for one load",
		Arguments: []*mcp.PromptArgument{
			{Name: "load_type", Description: "load type, e.g. data_center_always_on"},
			{Name: "load_size_mw", Description: "load size in MW"},
			{Name: "states", Description: "optional comma separated state codes"},
		},
	}, promptScenarioWalkthrough(deps))
}

func promptScenarioWalkthrough(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := map[string]string{}
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args = req.Params.Arguments
		}
		loadType := strings.TrimSpace(args["load_type"])
		size, err := strconv.ParseFloat(strings.TrimSpace(args["load_size_mw"]), 64)
		if err != nil || size <= 0 {
			size = 100
		}
		var states []string
		for _, s := range strings.Split(args["states"], ",") {
			if s = strings.TrimSpace(s); s != "" {
				states = append(states, s)
			}
		}
		if loadType == "" {
			loadType = "data_center_always_on"
		}

		scenario := map[string]any{"load_type": loadType, "load_size_mw": size, "emissions_preference": 50}
		if len(states) > 0 {
			scenario["states"] = states
		}
		scenarioJSON, _ := json.MarshalIndent(scenario, "", "  ")

		var b strings.Builder
		b.WriteString("### Siting scenario walkthrough\n")
		b.WriteString("1) Check the dataset\nRun: `dataset_info`\n\n")
		b.WriteString("2) Review the weights for this load\n")
		fmt.Fprintf(&b, "Run: `compute_weights` with `{\"load_type\":%q,\"load_size_mw\":%g}`\n\n", loadType, size)

		w, err := tools.ComputeWeights(ctx, deps, tools.ComputeWeightsInput{LoadType: loadType, LoadSizeMW: size})
		if err == nil {
			out, _ := json.MarshalIndent(w, "", "  ")
			fmt.Fprintf(&b, "```json\n%s\n```\n\n", out)
		} else {
			fmt.Fprintf(&b, "Unable to compute weights: %v\n\n", err)
		}

		b.WriteString("3) Rank nodes\n")
		fmt.Fprintf(&b, "```json\n%s\n```\nRun: `rank_nodes`\n\n", scenarioJSON)
		b.WriteString("4) Test on-site resources\nRun: `compare_resource_configs` with `{\"scenario\": <as above>}`\n\n")
		b.WriteString("5) Test emissions sensitivity\nRun: `sweep_emissions` with `{\"scenario\": <as above>}`\n\n")
		b.WriteString("6) Explain a candidate\nRun: `explain_node` with `{\"node\": \"<node>\", \"scenario\": <as above>}`\n\n")
		b.WriteString("Notes:\n- Scores are relative to the filtered node set; narrowing states changes every score.\n- `rank_shift` > 0 means the scenario favours the node over the baseline weights.\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Siting scenario walkthrough", Messages: messages}, nil
	}
}
