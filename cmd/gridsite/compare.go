package main

import (
	"github.com/spf13/cobra"

	"gridsite/internal/render"
	"gridsite/internal/siting"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank one scenario under every on-site resource config",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addScenarioFlags(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, _ []string) error {
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
	cmp, err := siting.CompareResources(cmd.Context(), t, s)
	if err != nil {
		return err
	}
	if e.json {
		return writeJSON(cmd.OutOrStdout(), cmp)
	}
	return render.Comparison(cmd.OutOrStdout(), cmp)
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Rank one scenario across emissions preferences",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntSlice("prefs", siting.DefaultSweep, "emissions preferences to rank at")
	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	s, err := scenarioFromFlags(cmd, e.options())
	if err != nil {
		return err
	}
	prefs, _ := cmd.Flags().GetIntSlice("prefs")
	t, err := e.table(cmd.Context())
	if err != nil {
		return err
	}
	points, err := siting.SweepEmissions(cmd.Context(), t, s, prefs)
	if err != nil {
		return err
	}
	if e.json {
		return writeJSON(cmd.OutOrStdout(), points)
	}
	return render.Sweep(cmd.OutOrStdout(), points)
}
