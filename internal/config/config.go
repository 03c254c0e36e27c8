package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Document type constants
	DocTypeBPT  = "bpt"
	DocTypeBCM  = "bcm"
	DocTypeBoth = "both"

	// Default values
	DefaultSourceDir   = "source-pdfs/may-2014-update"
	DefaultDataDir     = "data"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the MITA extraction toolkit
type Config struct {
	// Input/output locations
	SourceDir string // Root of the source PDFs (bpt/ and bcm/ subdirectories)
	DataDir   string // Root of the extracted JSON output tree

	// Extraction scope
	DocType string // "bpt", "bcm" or "both"
	Area    string // Business area filter, empty means all areas

	// Behavior
	Diagrams bool // Export process diagrams alongside JSON
	Strict   bool // Strict structural validation of source PDFs

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SourceDir:   DefaultSourceDir,
		DataDir:     DefaultDataDir,
		DocType:     DocTypeBoth,
		Area:        "",
		Diagrams:    false,
		Strict:      false,
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags(toolName, toolSummary string) (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage(toolName, toolSummary)

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.SourceDir != "" {
		if expandedPath, err := filepath.Abs(cfg.SourceDir); err == nil {
			cfg.SourceDir = expandedPath
		}
	}
	if cfg.DataDir != "" {
		if expandedPath, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MITA")
	viper.AutomaticEnv()

	viper.SetDefault("source", cfg.SourceDir)
	viper.SetDefault("data", cfg.DataDir)
	viper.SetDefault("doctype", cfg.DocType)
	viper.SetDefault("area", cfg.Area)
	viper.SetDefault("diagrams", cfg.Diagrams)
	viper.SetDefault("strict", cfg.Strict)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("source", cfg.SourceDir, "Directory containing source PDFs (bpt/ and bcm/ subdirectories)")
	pflag.String("data", cfg.DataDir, "Directory for extracted JSON output")
	pflag.String("doctype", cfg.DocType, "Document type to process: 'bpt', 'bcm' or 'both'")
	pflag.String("area", cfg.Area, "Business area to process (default: all areas)")
	pflag.Bool("diagrams", cfg.Diagrams, "Export process diagram images alongside JSON")
	pflag.Bool("strict", cfg.Strict, "Strict structural validation of source PDFs")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("source", pflag.Lookup("source"))
	_ = viper.BindPFlag("data", pflag.Lookup("data"))
	_ = viper.BindPFlag("doctype", pflag.Lookup("doctype"))
	_ = viper.BindPFlag("area", pflag.Lookup("area"))
	_ = viper.BindPFlag("diagrams", pflag.Lookup("diagrams"))
	_ = viper.BindPFlag("strict", pflag.Lookup("strict"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage(toolName, toolSummary string) {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n%s - %s\n\n", toolName, toolSummary)
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                      # all areas, both document types\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --doctype=bpt                        # business process templates only\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --area=\"Financial Management\"        # one business area\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MITA_SOURCE       Source PDF directory\n")
		fmt.Fprintf(os.Stderr, "  MITA_DATA         Extracted JSON directory\n")
		fmt.Fprintf(os.Stderr, "  MITA_DOCTYPE      Document type filter\n")
		fmt.Fprintf(os.Stderr, "  MITA_AREA         Business area filter\n")
		fmt.Fprintf(os.Stderr, "  MITA_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  MITA_MAXFILESIZE  Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.SourceDir = viper.GetString("source")
	cfg.DataDir = viper.GetString("data")
	cfg.DocType = viper.GetString("doctype")
	cfg.Area = viper.GetString("area")
	cfg.Diagrams = viper.GetBool("diagrams")
	cfg.Strict = viper.GetBool("strict")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.DocType != DocTypeBPT && c.DocType != DocTypeBCM && c.DocType != DocTypeBoth {
		return errors.New("doctype must be 'bpt', 'bcm' or 'both'")
	}

	if c.SourceDir == "" {
		return errors.New("source directory cannot be empty")
	}
	if c.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	// The output tree is created on demand
	if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create data directory %s: %w", c.DataDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access data directory %s: %w", c.DataDir, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// DocTypes returns the document types selected by the configuration.
func (c *Config) DocTypes() []string {
	if c.DocType == DocTypeBoth {
		return []string{DocTypeBPT, DocTypeBCM}
	}
	return []string{c.DocType}
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{SourceDir: %s, DataDir: %s, DocType: %s, Area: %q, LogLevel: %s, MaxFileSize: %d}",
		c.SourceDir, c.DataDir, c.DocType, c.Area, c.LogLevel, c.MaxFileSize)
}
