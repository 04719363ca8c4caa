package main

import (
	"github.com/spf13/cobra"

	"gridsite/internal/render"
	"gridsite/internal/siting"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <node>",
		Short: "Explain one node's rank under a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runExplain,
	}
	addScenarioFlags(cmd)
	return cmd
}

func runExplain(cmd *cobra.Command, args []string) error {
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
	ex, err := siting.ExplainNode(t, s, args[0])
	if err != nil {
		return err
	}
	if e.json {
		return writeJSON(cmd.OutOrStdout(), ex)
	}
	return render.Explanation(cmd.OutOrStdout(), ex)
}
