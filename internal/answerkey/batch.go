package answerkey

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"answerkey/internal/config"
	"answerkey/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchOptions selects the functions generated by RunBatch.
type BatchOptions struct {
	Functions []string // empty = every registered function
	OutDir    string   // empty = directory of cfg.Output.Path
	Jobs      int      // max concurrent writers, <= 0 = one per function
}

// OutputName is the file name used for a function's answer key in batch mode.
func OutputName(function string) string {
	return fmt.Sprintf("answerkey-%s.mem", function)
}

// RunBatch loads and decodes the input once, then writes one answer key per
// function concurrently. Results are returned in the order of opts.Functions.
// If any write fails the remaining ones are cancelled; keys that were
// already renamed into place stay on disk.
func RunBatch(ctx context.Context, cfg *config.Config, registry *Registry, opts BatchOptions, logger *zap.Logger) ([]*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("batch requires a config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		registry = NewRegistry()
	}

	names := opts.Functions
	if len(names) == 0 {
		names = registry.Names()
	}
	fns := make([]Activation, len(names))
	for i, name := range names {
		fn, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		fns[i] = fn
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(cfg.Output.Path)
	}

	start := time.Now()
	runID := uuid.NewString()
	log := logging.For(logger, logging.CategoryBatch).With(zap.String("run_id", runID))
	log.Info("batch started", zap.Strings("functions", names), zap.String("out_dir", outDir))

	values, err := loadValues(ctx, cfg, Decoder{BitWidth: cfg.Decode.BitWidth}, logger)
	if err != nil {
		log.Error("batch failed", zap.Error(err))
		return nil, err
	}

	results := make([]*Result, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		eg.SetLimit(opts.Jobs)
	}
	for i := range names {
		eg.Go(func() error {
			out := filepath.Join(outDir, OutputName(names[i]))
			res, err := emit(egCtx, values, names[i], fns[i], cfg.Output.PaddingWidth, out, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			res.RunID = runID
			res.InputPath = cfg.Input.Path
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("batch failed", zap.Error(err))
		return nil, err
	}

	elapsed := time.Since(start)
	for _, res := range results {
		res.Duration = elapsed
	}
	log.Info("batch finished", zap.Int("keys", len(results)), zap.Int("rows", len(values)), zap.Duration("took", elapsed))
	return results, nil
}
