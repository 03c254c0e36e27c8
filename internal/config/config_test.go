package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test default values
	if cfg.SourceDir != DefaultSourceDir {
		t.Errorf("Expected default source dir to be '%s', got '%s'", DefaultSourceDir, cfg.SourceDir)
	}

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("Expected default data dir to be '%s', got '%s'", DefaultDataDir, cfg.DataDir)
	}

	if cfg.DocType != DocTypeBoth {
		t.Errorf("Expected default doctype to be 'both', got '%s'", cfg.DocType)
	}

	if cfg.Area != "" {
		t.Errorf("Expected default area filter to be empty, got '%s'", cfg.Area)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.Diagrams {
		t.Error("Expected diagram export to be off by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBoth,
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: false,
		},
		{
			name: "valid config - bpt only",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBPT,
				LogLevel:    "debug",
				MaxFileSize: 1024,
			},
			wantErr: false,
		},
		{
			name: "invalid doctype",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     "invalid",
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "empty source directory",
			config: &Config{
				SourceDir:   "",
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBoth,
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "empty data directory",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     "",
				DocType:     DocTypeBoth,
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "zero max file size",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBoth,
				LogLevel:    "info",
				MaxFileSize: 0,
			},
			wantErr: true,
		},
		{
			name: "negative max file size",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBoth,
				LogLevel:    "info",
				MaxFileSize: -1,
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: &Config{
				SourceDir:   tempDir,
				DataDir:     filepath.Join(tempDir, "data"),
				DocType:     DocTypeBoth,
				LogLevel:    "verbose",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateCreatesDataDir(t *testing.T) {
	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "nested", "data")

	cfg := &Config{
		SourceDir:   tempDir,
		DataDir:     dataDir,
		DocType:     DocTypeBoth,
		LogLevel:    "info",
		MaxFileSize: 1024,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestConfigDocTypes(t *testing.T) {
	tests := []struct {
		docType string
		want    []string
	}{
		{DocTypeBoth, []string{DocTypeBPT, DocTypeBCM}},
		{DocTypeBPT, []string{DocTypeBPT}},
		{DocTypeBCM, []string{DocTypeBCM}},
	}

	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			cfg := &Config{DocType: tt.docType}
			got := cfg.DocTypes()
			if len(got) != len(tt.want) {
				t.Fatalf("DocTypes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("DocTypes()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	if !cfg.IsDebug() {
		t.Error("IsDebug() should be true for debug level")
	}

	cfg.LogLevel = "info"
	if cfg.IsDebug() {
		t.Error("IsDebug() should be false for info level")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()

	for _, want := range []string{"SourceDir", "DataDir", "DocType", "LogLevel"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
