package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photozip/internal/errkind"
	"photozip/internal/runlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errkind.Wrap(errkind.ErrValidation, "cli", "history",
					"run history is disabled in the configuration", nil)
			}

			store, err := runlog.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				status := string(run.Status)
				if run.DryRun {
					status += " (dry run)"
				}
				rows = append(rows, []string{
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Pattern,
					strconv.Itoa(run.GroupCount),
					strconv.Itoa(run.Copied),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Deleted),
					status,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Pattern", "Groups", "Copied", "Skipped", "Deleted", "Status"},
				rows,
				2, 3, 4, 5,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
