package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all answerkey configuration.
type Config struct {
	// Function is the registered activation function evaluated per row.
	Function string `yaml:"function"`

	Input   InputConfig   `yaml:"input"`
	Decode  DecodeConfig  `yaml:"decode"`
	Output  OutputConfig  `yaml:"output"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the test vectors.
type InputConfig struct {
	Path   string `yaml:"path"`
	Sheet  string `yaml:"sheet"` // empty = first sheet
	Column string `yaml:"column"`
}

// DecodeConfig configures hex decoding of input cells.
type DecodeConfig struct {
	// BitWidth is the two's-complement width of each cell.
	// 0 keeps the parser's native sign handling.
	BitWidth int `yaml:"bit_width"`
}

// OutputConfig configures the answer key file.
type OutputConfig struct {
	Path         string `yaml:"path"`
	PaddingWidth int    `yaml:"padding_width"`
}

// LedgerConfig configures the run ledger database.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// Limits for validated fields.
const (
	MaxBitWidth     = 64
	MaxPaddingWidth = 64
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Function: "bstep",

		Input: InputConfig{
			Path:   "../Input_Dataset.xlsx",
			Column: "Input Data",
		},

		Decode: DecodeConfig{
			BitWidth: 8,
		},

		Output: OutputConfig{
			Path:         "answerkey-bstep.mem",
			PaddingWidth: 8,
		},

		Ledger: LedgerConfig{
			Enabled: false,
			Path:    filepath.Join(".answerkey", "ledger.db"),
		},

		Watch: WatchConfig{
			Debounce: "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("ANSWERKEY_INPUT"); path != "" {
		c.Input.Path = path
	}
	if path := os.Getenv("ANSWERKEY_OUTPUT"); path != "" {
		c.Output.Path = path
	}
	if name := os.Getenv("ANSWERKEY_FUNCTION"); name != "" {
		c.Function = name
	}
	if path := os.Getenv("ANSWERKEY_LEDGER"); path != "" {
		c.Ledger.Path = path
		c.Ledger.Enabled = true
	}
}

// GetDebounce returns the watch debounce window as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path not configured")
	}
	if c.Input.Column == "" {
		return fmt.Errorf("input column not configured")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path not configured")
	}
	if c.Output.PaddingWidth < 1 || c.Output.PaddingWidth > MaxPaddingWidth {
		return fmt.Errorf("invalid padding width: %d (valid: 1-%d)", c.Output.PaddingWidth, MaxPaddingWidth)
	}
	if c.Decode.BitWidth < 0 || c.Decode.BitWidth > MaxBitWidth {
		return fmt.Errorf("invalid bit width: %d (valid: 0-%d)", c.Decode.BitWidth, MaxBitWidth)
	}
	if c.Function == "" {
		return fmt.Errorf("activation function not configured")
	}
	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return fmt.Errorf("ledger enabled but no path configured")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}
