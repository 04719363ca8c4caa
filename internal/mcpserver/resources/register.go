package resources

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gridsite/internal/mcpserver/tools"
	"gridsite/internal/nodes"
	"gridsite/internal/siting"
)

const (
	SchemaURI  = "gridsite://schema/nodes"
	WeightsURI = "gridsite://weights/baseline"
)

// NodeSchema documents the columns a node dataset must or may carry.
type NodeSchema struct {
	Required []string `json:"required_columns"`
	Optional []string `json:"optional_columns"`
	Loaded   []string `json:"loaded_columns,omitempty"`
	Missing  []string `json:"missing_required_columns,omitempty"`
}

// RegisterAll registers resources with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddResource(&mcp.Resource{
		URI:         SchemaURI,
		Name:        "node_schema",
		Description: "Required and optional node dataset columns",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		s := NodeSchema{Required: nodes.RequiredColumns, Optional: nodes.OptionalColumns}
		if deps.Dataset != nil {
			info := deps.Dataset.Info()
			s.Loaded = info.Columns
			s.Missing = info.Missing
		}
		return jsonResult(SchemaURI, s)
	})

	server.AddResource(&mcp.Resource{
		URI:         WeightsURI,
		Name:        "baseline_weights",
		Description: "Baseline component weights and resource mitigation factors",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		mitigation := map[siting.ResourceConfig]float64{}
		for _, rc := range siting.ResourceConfigs {
			mitigation[rc], _ = siting.Mitigation(rc)
		}
		return jsonResult(WeightsURI, map[string]any{
			"baseline":   siting.BaselineWeights(),
			"mitigation": mitigation,
		})
	})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: "application/json", Text: string(b)}},
	}, nil
}
