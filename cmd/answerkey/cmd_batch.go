package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"answerkey/internal/answerkey"

	"github.com/spf13/cobra"
)

func (a *app) newBatchCmd() *cobra.Command {
	var (
		flags     overrides
		functions []string
		outDir    string
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "batch [input]",
		Short: "Write answer keys for several activation functions from one input",
		Long: `Loads and decodes the input once, then writes answerkey-<function>.mem for
every selected function. Keys are written concurrently.

Examples:
  answerkey batch ../Input_Dataset.xlsx
  answerkey batch --functions bstep,bstep-strict --out-dir keys/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg, args); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := answerkey.RunBatch(ctx, a.cfg, a.registry, answerkey.BatchOptions{
				Functions: functions,
				OutDir:    outDir,
				Jobs:      jobs,
			}, a.logger)
			if err != nil {
				return err
			}

			a.record(ctx, results...)
			for _, res := range results {
				printResult(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}

	flags.bind(cmd, false)
	cmd.Flags().StringSliceVar(&functions, "functions", nil, "Functions to generate (default: all registered)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the answer keys (default: directory of output.path)")
	cmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "Maximum keys written concurrently")
	return cmd
}
