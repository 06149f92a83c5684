package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podscribe/internal/deps"
	"podscribe/internal/logging"
	"podscribe/internal/speech"
)

func newBackendsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "Show external dependencies and the selected speech backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "available"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				detail := status.Description
				if status.Detail != "" {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Dependency", "Status", "Details"}, rows, nil))

			// Selection probes quietly; the command output is the report.
			facade := speech.NewFacade(cfg, logging.NewNop())
			backend, err := facade.Select()
			if err != nil {
				fmt.Fprintf(out, "Selected backend: none (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Selected backend: %s\n", backend.Name())
			return nil
		},
	}
}
