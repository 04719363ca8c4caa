package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gridsite/internal/adapter"
	"gridsite/internal/logging"
	"gridsite/internal/render"
	"gridsite/internal/siting"
)

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank nodes for a scenario",
		Args:  cobra.NoArgs,
		RunE:  runRank,
	}
	addScenarioFlags(cmd)
	cmd.Flags().String("export", "", "also write the results to this CSV file")
	cmd.Flags().Bool("summary", false, "print a state and ISO breakdown of the results")
	return cmd
}

func runRank(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	s, err := scenarioFromFlags(cmd, e.options())
	if err != nil {
		return err
	}
	t, err := e.table(cmd.Context())
	if err != nil {
		return err
	}
	r, err := siting.RankNodes(t, s)
	if err != nil {
		return err
	}
	e.logger.Debug("ranked nodes", logging.FieldRanking(r.Stats.InputRows, r.Stats.ValidRows, r.Stats.FilteredRows, r.Stats.ReturnedRows))

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if err := exportCSV(path, r.Results); err != nil {
			return err
		}
		e.logger.Info("exported results", zap.String("path", path), zap.Int("rows", len(r.Results)))
	}

	out := cmd.OutOrStdout()
	if e.json {
		return writeJSON(out, adapter.FormatResponse(r))
	}
	if err := render.Rankings(out, r); err != nil {
		return err
	}
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		return render.Summary(out, siting.Summarize(r.Results))
	}
	return nil
}

func exportCSV(path string, results []siting.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := render.WriteCSV(f, results); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	return f.Close()
}
