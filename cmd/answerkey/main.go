package main

import (
	"fmt"
	"os"

	"answerkey/internal/answerkey"
	"answerkey/internal/config"
	"answerkey/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every sub-command of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool

	cfg      *config.Config
	logger   *zap.Logger
	registry *answerkey.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{registry: answerkey.NewRegistry()}
	var genFlags overrides

	rootCmd := &cobra.Command{
		Use:   "answerkey [input]",
		Short: "Generate activation-function answer keys from spreadsheet test vectors",
		Long: `answerkey reads hexadecimal test vectors from the "Input Data" column of a
spreadsheet, evaluates an activation function on each value and writes the
expected results as zero-padded decimal tokens, one per line.

The default function is the binary step, f(x) = 1 if x >= 0 else 0, and the
default output is answerkey-bstep.mem in the working directory.

Run without a sub-command to behave like "answerkey generate".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, &genFlags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "answerkey.yaml", "Config file (missing file = defaults)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	genFlags.bind(rootCmd, true)

	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newBatchCmd())
	rootCmd.AddCommand(a.newFunctionsCmd())
	rootCmd.AddCommand(a.newHistoryCmd())
	rootCmd.AddCommand(a.newWatchCmd())
	rootCmd.AddCommand(a.newConfigCmd())

	return rootCmd
}

// loadConfig loads the config file and builds the logger.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	logging.For(logger, logging.CategoryCLI).Debug("config resolved",
		zap.String("config", a.configPath),
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path),
		zap.String("function", cfg.Function))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
