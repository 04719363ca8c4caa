package main

import (
	"github.com/spf13/cobra"

	"gridsite/internal/render"
	"gridsite/internal/siting"
)

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Show the scenario weights of every load type",
		Args:  cobra.NoArgs,
		RunE:  runWeights,
	}
	cmd.Flags().Float64("size-mw", 100, "load size in MW")
	cmd.Flags().Int("emissions-pref", 50, "emissions preference 0-100")
	return cmd
}

// runWeights needs no dataset, so it skips setup.
func runWeights(cmd *cobra.Command, _ []string) error {
	size, _ := cmd.Flags().GetFloat64("size-mw")
	pref, _ := cmd.Flags().GetInt("emissions-pref")
	asJSON, _ := cmd.Flags().GetBool("json")

	s := siting.Scenario{LoadType: siting.LoadDataCenterAlwaysOn, LoadSizeMW: size, EmissionsPreference: pref, ResourceConfig: siting.ResourceNone, TopN: 1, Location: siting.NoFilter()}
	if err := s.Validate(); err != nil {
		return err
	}
	rows, err := siting.WeightsByLoadType(size, pref)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, map[string]any{
			"baseline":     siting.BaselineWeights(),
			"size_bracket": siting.BracketFor(size),
			"load_types":   rows,
		})
	}
	if err := render.Weights(out, "baseline", []string{"baseline"}, []siting.Weights{siting.BaselineWeights()}); err != nil {
		return err
	}
	return render.LoadTypeWeights(out, rows)
}
