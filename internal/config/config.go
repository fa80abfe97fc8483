package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig
	Patterns PatternsConfig
	Batch    BatchConfig
	Metrics  MetricsConfig
	Report   ReportConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PatternsConfig selects the pattern library. An empty File uses the built-in rules.
type PatternsConfig struct {
	File string `mapstructure:"file"`
}

// BatchConfig holds settings for extracting a directory of OCR text files.
type BatchConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Glob        string `mapstructure:"glob"`
}

// MetricsConfig holds metrics export settings. Metrics are only written when
// Textfile is set.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// ReportConfig holds report writer settings.
type ReportConfig struct {
	IncludeRawText bool   `mapstructure:"include_raw_text"`
	SheetName      string `mapstructure:"sheet_name"`
}

// Load reads configuration from environment variables with the SECUREXID_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SECUREXID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Pattern library defaults
	v.SetDefault("patterns.file", "")

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.glob", "*.txt")

	// Metrics defaults
	v.SetDefault("metrics.textfile", "")

	// Report defaults
	v.SetDefault("report.include_raw_text", false)
	v.SetDefault("report.sheet_name", "Results")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"log.level":               "SECUREXID_LOG_LEVEL",
		"log.format":              "SECUREXID_LOG_FORMAT",
		"patterns.file":           "SECUREXID_PATTERNS_FILE",
		"batch.concurrency":       "SECUREXID_BATCH_CONCURRENCY",
		"batch.glob":              "SECUREXID_BATCH_GLOB",
		"metrics.textfile":        "SECUREXID_METRICS_TEXTFILE",
		"report.include_raw_text": "SECUREXID_REPORT_INCLUDE_RAW_TEXT",
		"report.sheet_name":       "SECUREXID_REPORT_SHEET_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Patterns = PatternsConfig{
		File: v.GetString("patterns.file"),
	}

	// Batches always run at least one worker.
	concurrency := v.GetInt("batch.concurrency")
	if concurrency < 1 {
		concurrency = 1
	}
	cfg.Batch = BatchConfig{
		Concurrency: concurrency,
		Glob:        v.GetString("batch.glob"),
	}

	cfg.Metrics = MetricsConfig{
		Textfile: v.GetString("metrics.textfile"),
	}
	cfg.Report = ReportConfig{
		IncludeRawText: v.GetBool("report.include_raw_text"),
		SheetName:      v.GetString("report.sheet_name"),
	}

	return cfg, nil
}
