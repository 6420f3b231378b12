package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "CUSTEXPORT"

// Config represents the complete application configuration
type Config struct {
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// ExportConfig controls how customers are split and filtered
type ExportConfig struct {
	BatchSize      int    `yaml:"batch_size" envconfig:"BATCH_SIZE" validate:"gt=0"`
	Deduplicate    bool   `yaml:"deduplicate" envconfig:"DEDUPLICATE"`
	DedupPerBatch  bool   `yaml:"dedup_per_batch" envconfig:"DEDUP_PER_BATCH"`
	DebugBatchSize int    `yaml:"debug_batch_size" envconfig:"DEBUG_BATCH_SIZE" validate:"gte=0"`
	DebugPrefix    string `yaml:"debug_prefix" envconfig:"DEBUG_PREFIX" validate:"required_with=DebugBatchSize"`
	Truncate       bool   `yaml:"truncate" envconfig:"TRUNCATE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=none prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	MetricsFile    string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

var validate = validator.New()

// Load builds the configuration from defaults, an optional YAML file and
// CUSTEXPORT_* environment variables, in increasing order of precedence.
// An empty filePath searches the usual locations; a missing explicit file is an error.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath == "" {
		filePath = getConfigFilePath()
	} else if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its validation tags
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]error, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Errorf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.Join(msgs...)
	}
	return err
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"custexport.yaml",
		"configs/custexport.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			BatchSize:   10,
			Deduplicate: true,
			DebugPrefix: "debug-",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "custexport.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "custexport",
			TraceExporter:  "none",
			MetricExporter: "none",
			SampleRatio:    1.0,
		},
		Paths: PathsConfig{
			OutputDir: "output",
			LogsDir:   "logs",
		},
	}
}
