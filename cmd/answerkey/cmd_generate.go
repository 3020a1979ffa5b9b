package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"answerkey/internal/answerkey"
	"answerkey/internal/config"
	"answerkey/internal/ledger"
	"answerkey/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// overrides holds the per-run flags layered on top of the config file.
type overrides struct {
	input    string
	sheet    string
	column   string
	output   string
	function string
	padding  int
	bitWidth int
	noLedger bool
}

func (o *overrides) bind(cmd *cobra.Command, withOutput bool) {
	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&o.input, "input", "i", "", "Input spreadsheet (.xlsx or .csv)")
	flags.StringVar(&o.sheet, "sheet", "", "Workbook sheet (default: first sheet)")
	flags.StringVar(&o.column, "column", defaults.Input.Column, "Column holding the hex test vectors")
	flags.IntVar(&o.padding, "padding", defaults.Output.PaddingWidth, "Zero-padded width of each answer")
	flags.IntVar(&o.bitWidth, "bit-width", defaults.Decode.BitWidth, "Two's-complement width of input cells (0 = plain signed hex)")
	flags.BoolVar(&o.noLedger, "no-ledger", false, "Do not record this run in the ledger")
	if withOutput {
		flags.StringVarP(&o.output, "output", "o", "", "Answer key file to write")
		flags.StringVarP(&o.function, "function", "f", "", "Activation function (see 'answerkey functions')")
	}
}

// apply copies explicitly set flags and the optional positional input into cfg.
func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config, args []string) error {
	flags := cmd.Flags()
	if len(args) > 0 {
		if flags.Changed("input") {
			return fmt.Errorf("input given both as argument and --input")
		}
		cfg.Input.Path = args[0]
	}
	if flags.Changed("input") {
		cfg.Input.Path = o.input
	}
	if flags.Changed("sheet") {
		cfg.Input.Sheet = o.sheet
	}
	if flags.Changed("column") {
		cfg.Input.Column = o.column
	}
	if flags.Changed("padding") {
		cfg.Output.PaddingWidth = o.padding
	}
	if flags.Changed("bit-width") {
		cfg.Decode.BitWidth = o.bitWidth
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output.Path = o.output
	}
	if flags.Lookup("function") != nil && flags.Changed("function") {
		cfg.Function = o.function
	}
	if o.noLedger {
		cfg.Ledger.Enabled = false
	}
	return cfg.Validate()
}

func (a *app) newGenerateCmd() *cobra.Command {
	var flags overrides
	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Write the answer key for one activation function",
		Long: `Runs the full pipeline once: load the input column, decode every cell as
hex, apply the activation function and write one zero-padded token per line.

The output is written to a temporary file and renamed into place, so a
failed run never leaves a partial answer key.

Examples:
  answerkey generate ../Input_Dataset.xlsx
  answerkey generate -i vectors.csv -o answerkey-bstep.mem --padding 8 --bit-width 8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args, &flags)
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, flags *overrides) error {
	if err := flags.apply(cmd, a.cfg, args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := answerkey.NewPipeline(a.cfg, a.registry, a.logger)
	if err != nil {
		return err
	}
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	a.record(ctx, res)
	printResult(cmd.OutOrStdout(), res)
	return nil
}

// record appends results to the ledger when it is enabled.
// Ledger failures are logged; the answer keys are already on disk.
func (a *app) record(ctx context.Context, results ...*answerkey.Result) {
	if !a.cfg.Ledger.Enabled || len(results) == 0 {
		return
	}
	log := logging.For(a.logger, logging.CategoryLedger)

	l, err := ledger.Open(a.cfg.Ledger.Path)
	if err != nil {
		log.Warn("ledger unavailable", zap.Error(err))
		return
	}
	defer l.Close()

	for _, res := range results {
		entry, err := l.Record(ctx, ledger.Entry{
			RunID:      res.RunID,
			Function:   res.Function,
			InputPath:  res.InputPath,
			OutputPath: res.OutputPath,
			Rows:       res.Rows,
			Digest:     res.Digest,
		})
		if err != nil {
			log.Warn("failed to record run", zap.String("output", res.OutputPath), zap.Error(err))
			continue
		}
		log.Debug("run recorded", zap.String("id", entry.ID))
	}
}
