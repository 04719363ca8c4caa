package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"gridsite/internal/config"
	"gridsite/internal/mcpserver/prompts"
	"gridsite/internal/mcpserver/resources"
	"gridsite/internal/mcpserver/tools"
	"gridsite/internal/metrics"
	"gridsite/internal/version"
)

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	deps   tools.Dependencies
	srv    *mcp.Server
}

// New builds the MCP server with every tool, prompt and resource
// registered against dataset.
func New(impl *mcp.Implementation, cfg config.Config, logger *zap.Logger, dataset tools.Dataset, m *metrics.Metrics) *Server {
	if impl == nil {
		impl = &mcp.Implementation{Name: cfg.AppName, Version: version.Version}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := mcp.NewServer(impl, nil)
	deps := tools.Dependencies{Config: cfg, Logger: logger, Dataset: dataset, Metrics: m}
	tools.Register(s, deps)
	prompts.RegisterAll(s, deps)
	resources.RegisterAll(s, deps)
	return &Server{cfg: cfg, logger: logger, deps: deps, srv: s}
}

// MCP exposes the underlying server for HTTP handlers and tests.
func (s *Server) MCP() *mcp.Server { return s.srv }

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}
