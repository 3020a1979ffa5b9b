package main

import (
	"fmt"
	"os"

	"answerkey/internal/ledger"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently generated answer keys from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := os.Stat(a.cfg.Ledger.Path); os.IsNotExist(err) {
				fmt.Fprintln(out, dimStyle.Render("No runs recorded at "+a.cfg.Ledger.Path))
				return nil
			}

			l, err := ledger.Open(a.cfg.Ledger.Path)
			if err != nil {
				return err
			}
			defer l.Close()

			entries, err := l.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No runs recorded at "+a.cfg.Ledger.Path))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Last %d runs", len(entries))))
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  %s -> %s  %s  %s\n",
					dimStyle.Render(e.CreatedAt.Format("2006-01-02 15:04:05")),
					nameStyle.Render(e.Function),
					e.InputPath,
					e.OutputPath,
					fmt.Sprintf("%d rows", e.Rows),
					dimStyle.Render(shortDigest(e.Digest)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
