package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"answerkey/internal/answerkey"
	"answerkey/internal/logging"
	"answerkey/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newWatchCmd() *cobra.Command {
	var flags overrides

	cmd := &cobra.Command{
		Use:   "watch [input]",
		Short: "Regenerate the answer key whenever the input file changes",
		Long: `Generates the answer key once, then watches the input file and regenerates
after every settled burst of changes (see watch.debounce). Failed runs are
reported and watching continues. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg, args); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, err := answerkey.NewPipeline(a.cfg, a.registry, a.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			generate := func(ctx context.Context) error {
				res, err := p.Run(ctx)
				if err != nil {
					printFailure(out, err)
					return err
				}
				a.record(ctx, res)
				printResult(out, res)
				return nil
			}

			if err := generate(ctx); err != nil {
				logging.For(a.logger, logging.CategoryWatch).Warn("initial generation failed", zap.Error(err))
			}

			w, err := watch.New(a.cfg.Input.Path, a.cfg.GetDebounce(), generate, a.logger)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}

	flags.bind(cmd, true)
	return cmd
}
