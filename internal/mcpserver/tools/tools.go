// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// MCP tool registration and shared call plumbing.

package tools

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"gridsite/internal/config"
	"gridsite/internal/dataset"
	serr "gridsite/internal/errors"
	"gridsite/internal/logging"
	"gridsite/internal/metrics"
	"gridsite/internal/nodes"
	"gridsite/internal/siting"
	"gridsite/internal/version"
)

// Dataset is the node table provider the tools rank against.
type Dataset interface {
	Table(ctx context.Context) (nodes.Table, error)
	Reload(ctx context.Context) (nodes.Table, error)
	Info() dataset.Info
}

type Dependencies struct {
	Config  config.Config
	Logger  *zap.Logger
	Dataset Dataset
	Metrics *metrics.Metrics
}

// log returns the dependency logger, or a no-op logger when none is set.
func (d Dependencies) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func Register(server *mcp.Server, deps Dependencies) {
	deps.Logger = deps.log()
	addTool(server, deps, &mcp.Tool{Name: "ping", Description: "ping the server"}, Ping)
	addTool(server, deps, &mcp.Tool{Name: "server_info", Description: "returns server metadata and the accepted load types and resource configs"}, ServerInfo)
	addTool(server, deps, &mcp.Tool{Name: "dataset_info", Description: "describes the loaded node dataset and its validation report"}, DatasetInfo)
	addTool(server, deps, &mcp.Tool{Name: "rank_nodes", Description: "ranks interconnection nodes for a load scenario"}, RankNodes)
	addTool(server, deps, &mcp.Tool{Name: "rank_request", Description: "ranks nodes for a frontend request {loadConfig, location, topN}"}, RankRequest)
	addTool(server, deps, &mcp.Tool{Name: "compute_weights", Description: "shows baseline, multiplier and final component weights"}, ComputeWeights)
	addTool(server, deps, &mcp.Tool{Name: "compare_resource_configs", Description: "ranks one scenario under every on-site resource config"}, CompareResourceConfigs)
	addTool(server, deps, &mcp.Tool{Name: "sweep_emissions", Description: "ranks one scenario across emissions preferences"}, SweepEmissions)
	addTool(server, deps, &mcp.Tool{Name: "explain_node", Description: "explains the rank of one node under a scenario"}, ExplainNode)
}

// addTool wraps fn with a request id, a scoped logger, metrics and coded
// error results. The output schema is derived from Out, but the handler is
// registered untyped so a failed call returns only the coded error and is
// never checked against that schema.
func addTool[In, Out any](server *mcp.Server, deps Dependencies, tool *mcp.Tool, fn func(context.Context, Dependencies, In) (Out, error)) {
	if tool.OutputSchema == nil {
		schema, err := jsonschema.ForType(reflect.TypeFor[Out](), &jsonschema.ForOptions{})
		if err != nil {
			panic(fmt.Sprintf("tool %s: output schema: %v", tool.Name, err))
		}
		tool.OutputSchema = schema
	}
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, any, error) {
		started := time.Now()
		requestID := uuid.NewString()
		sessionID := ""
		if req != nil && req.Session != nil {
			sessionID = req.Session.ID()
		}
		d := deps
		d.Logger = logging.WithRequest(logging.WithTool(deps.Logger, tool.Name), requestID, sessionID)

		out, err := fn(ctx, d, input)
		deps.Metrics.ObserveTool(tool.Name, started, err)
		if err != nil {
			te := serr.ToToolError(err)
			d.Logger.Warn("tool call failed", zap.String("code", string(te.Code)), zap.String("message", te.Message))
			return callError(te, requestID), nil, nil
		}
		d.Logger.Debug("tool call completed", zap.Duration("took", time.Since(started)))
		return nil, out, nil
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return PingOutput{Pong: msg}, nil
}

// ServerInfo tool

type ServerInfoInput struct{}

type ServerInfoOutput struct {
	Name            string                  `json:"name"`
	Version         version.BuildInfo       `json:"version"`
	Transport       config.Transport        `json:"transport"`
	DefaultTopN     int                     `json:"default_top_n"`
	MaxTopN         int                     `json:"max_top_n"`
	PointRadiusKM   float64                 `json:"point_radius_km"`
	LoadTypes       []siting.LoadType       `json:"load_types"`
	ResourceConfigs []siting.ResourceConfig `json:"resource_configs"`
	Components      []siting.Component      `json:"components"`
	Dataset         dataset.Info            `json:"dataset"`
}

func ServerInfo(ctx context.Context, deps Dependencies, _ ServerInfoInput) (ServerInfoOutput, error) {
	out := ServerInfoOutput{
		Name:            deps.Config.AppName,
		Version:         version.Info(),
		Transport:       deps.Config.Transport,
		DefaultTopN:     deps.Config.DefaultTopN,
		MaxTopN:         deps.Config.MaxTopN,
		PointRadiusKM:   deps.Config.PointRadiusKM,
		LoadTypes:       siting.LoadTypes,
		ResourceConfigs: siting.ResourceConfigs,
		Components:      siting.AllComponents,
	}
	if deps.Dataset != nil {
		out.Dataset = deps.Dataset.Info()
	}
	return out, nil
}

// Helper error creation
func callError(e *serr.SiteError, requestID string) *mcp.CallToolResult {
	errObj := map[string]any{"code": e.Code, "message": e.Message, "request_id": requestID}
	if e.Hint != "" {
		errObj["hint"] = e.Hint
	}
	if len(e.Details) > 0 {
		errObj["details"] = e.Details
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", e.Code, e.Message)},
		},
	}
}

func table(ctx context.Context, deps Dependencies) (nodes.Table, error) {
	if deps.Dataset == nil {
		return nodes.Table{}, serr.NewDataUnavailable("", nil)
	}
	return deps.Dataset.Table(ctx)
}
