package answerkey

import (
	"context"
	"fmt"
	"time"

	"answerkey/internal/config"
	"answerkey/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result summarizes one written answer key.
type Result struct {
	RunID      string
	Function   string
	InputPath  string
	OutputPath string
	Rows       int
	Digest     string
	Duration   time.Duration
}

// Pipeline runs Load -> Decode -> Evaluate -> Write for one configuration.
// Each stage consumes the full output of the previous one.
type Pipeline struct {
	cfg     *config.Config
	fn      Activation
	decoder Decoder
	logger  *zap.Logger
}

// NewPipeline validates cfg and resolves its activation function.
// A nil registry means the built-in functions only.
func NewPipeline(cfg *config.Config, registry *Registry, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline requires a config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		registry = NewRegistry()
	}
	fn, err := registry.Lookup(cfg.Function)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		cfg:     cfg,
		fn:      fn,
		decoder: Decoder{BitWidth: cfg.Decode.BitWidth},
		logger:  logger,
	}, nil
}

// Run executes the pipeline once.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.For(p.logger, logging.CategoryPipeline).With(
		zap.String("run_id", runID),
		zap.String("function", p.cfg.Function),
	)
	log.Info("run started", zap.String("input", p.cfg.Input.Path), zap.String("output", p.cfg.Output.Path))

	values, err := loadValues(ctx, p.cfg, p.decoder, p.logger)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return nil, err
	}

	res, err := emit(ctx, values, p.cfg.Function, p.fn, p.cfg.Output.PaddingWidth, p.cfg.Output.Path, p.logger)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return nil, err
	}

	res.RunID = runID
	res.InputPath = p.cfg.Input.Path
	res.Duration = time.Since(start)
	log.Info("run finished", zap.Int("rows", res.Rows), zap.Duration("took", res.Duration))
	return res, nil
}

// loadValues runs the Load and Decode stages.
func loadValues(ctx context.Context, cfg *config.Config, dec Decoder, logger *zap.Logger) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loadLog := logging.For(logger, logging.CategoryLoader)
	cells, err := LoadColumn(cfg.Input.Path, cfg.Input.Sheet, cfg.Input.Column)
	if err != nil {
		return nil, err
	}
	loadLog.Debug("column loaded", zap.String("column", cfg.Input.Column), zap.Int("rows", len(cells)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values, err := dec.DecodeAll(cells)
	if err != nil {
		return nil, err
	}
	logging.For(logger, logging.CategoryDecoder).Debug("cells decoded",
		zap.Int("rows", len(values)), zap.Int("bit_width", dec.BitWidth))
	return values, nil
}

// emit runs the Evaluate and Write stages for one activation.
func emit(ctx context.Context, values []int64, name string, fn Activation, width int, outPath string, logger *zap.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	answers := Evaluate(values, fn, width)
	logging.For(logger, logging.CategoryEvaluator).Debug("answers formatted",
		zap.String("function", name), zap.Int("rows", len(answers)), zap.Int("width", width))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	digest, err := WriteLines(outPath, answers)
	if err != nil {
		return nil, err
	}
	logging.For(logger, logging.CategoryWriter).Info("answer key written",
		zap.String("path", outPath), zap.Int("rows", len(answers)), zap.String("sha256", digest))

	return &Result{
		Function:   name,
		OutputPath: outPath,
		Rows:       len(answers),
		Digest:     digest,
	}, nil
}
