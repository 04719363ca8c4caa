package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridsite/internal/adapter"
	"gridsite/internal/config"
	"gridsite/internal/dataset"
	"gridsite/internal/logging"
	"gridsite/internal/nodes"
	"gridsite/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gridsite",
		Short:         "Rank interconnection nodes for a new load",
		Long:          "gridsite scores grid interconnection nodes on cost, land, emissions, policy, queue and price variability for a load scenario.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().Bool("json", false, "write JSON instead of tables")

	root.AddCommand(
		newRankCmd(),
		newWeightsCmd(),
		newCompareCmd(),
		newSweepCmd(),
		newRequestCmd(),
		newExplainCmd(),
	)
	return root
}

// env is what every command needs once flags are parsed.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	source *dataset.Source
	json   bool
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	return &env{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "cli"),
		source: dataset.New(cfg, logger, nil),
		json:   asJSON,
	}, nil
}

func (e *env) close() {
	e.source.Close()
	_ = e.logger.Sync()
}

func (e *env) table(ctx context.Context) (nodes.Table, error) {
	return e.source.Table(ctx)
}

func (e *env) options() adapter.Options {
	return adapter.Options{
		PointRadiusKM: e.cfg.PointRadiusKM,
		DefaultTopN:   e.cfg.DefaultTopN,
		MaxTopN:       e.cfg.MaxTopN,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
