// Package logging builds the zap loggers used across answerkey.
// Every pipeline stage logs through a child logger named after its Category,
// and categories can be switched off individually from the config file.
package logging

import (
	"fmt"
	"strings"

	"answerkey/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryCLI       Category = "cli"       // Command dispatch, config resolution
	CategoryPipeline  Category = "pipeline"  // Run orchestration
	CategoryLoader    Category = "loader"    // Spreadsheet / CSV reading
	CategoryDecoder   Category = "decoder"   // Hex -> integer conversion
	CategoryEvaluator Category = "evaluator" // Activation + formatting
	CategoryWriter    Category = "writer"    // Answer key output
	CategoryBatch     Category = "batch"     // Multi-function generation
	CategoryLedger    Category = "ledger"    // Run history database
	CategoryWatch     Category = "watch"     // Input file watcher
)

// New builds the root logger from the logging config.
// verbose forces debug level regardless of the configured level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}

	var opts []zap.Option
	if disabled := disabledCategories(cfg); len(disabled) > 0 {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return newCategoryFilter(core, disabled)
		}))
	}

	logger, err := zc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("answerkey"), nil
}

// For returns the child logger for a category. A nil parent yields a no-op logger.
func For(l *zap.Logger, c Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(string(c))
}

func disabledCategories(cfg config.LoggingConfig) map[string]bool {
	disabled := make(map[string]bool)
	for cat := range cfg.Categories {
		if !cfg.IsCategoryEnabled(cat) {
			disabled[cat] = true
		}
	}
	return disabled
}

// categoryFilter drops entries whose logger name ends in a disabled category.
type categoryFilter struct {
	zapcore.Core
	disabled map[string]bool
}

func newCategoryFilter(core zapcore.Core, disabled map[string]bool) zapcore.Core {
	return &categoryFilter{Core: core, disabled: disabled}
}

func (f *categoryFilter) With(fields []zapcore.Field) zapcore.Core {
	return &categoryFilter{Core: f.Core.With(fields), disabled: f.disabled}
}

func (f *categoryFilter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if f.disabled[categoryOf(ent.LoggerName)] {
		return ce
	}
	if f.Enabled(ent.Level) {
		return ce.AddCore(ent, f)
	}
	return ce
}

func categoryOf(loggerName string) string {
	if i := strings.LastIndexByte(loggerName, '.'); i >= 0 {
		return loggerName[i+1:]
	}
	return loggerName
}
