package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"gridsite/internal/adapter"
	"gridsite/internal/siting"
)

func newRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <file.json|->",
		Short: "Run a frontend JSON request and print the formatted response",
		Args:  cobra.ExactArgs(1),
		RunE:  runRequest,
	}
}

func runRequest(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	var body []byte
	if args[0] == "-" {
		body, err = io.ReadAll(cmd.InOrStdin())
	} else {
		body, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}
	req, err := adapter.DecodeRequest(body)
	if err != nil {
		return err
	}
	s, err := adapter.TranslateRequest(req, e.options())
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
	return writeJSON(cmd.OutOrStdout(), adapter.FormatResponse(r))
}
