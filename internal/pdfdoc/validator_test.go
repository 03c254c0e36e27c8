package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	tests := []struct {
		name        string
		maxFileSize int64
	}{
		{
			name:        "standard max file size",
			maxFileSize: 100 * 1024 * 1024, // 100MB
		},
		{
			name:        "small max file size",
			maxFileSize: 1024, // 1KB
		},
		{
			name:        "zero max file size",
			maxFileSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.maxFileSize)
			if v == nil {
				t.Error("NewValidator() returned nil")
				return
			}
			if v.maxFileSize != tt.maxFileSize {
				t.Errorf("NewValidator() maxFileSize = %v, want %v", v.maxFileSize, tt.maxFileSize)
			}
		})
	}
}

func TestValidatorValidateFile(t *testing.T) {
	tempDir := t.TempDir()

	txtPath := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("not a pdf"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	emptyPath := filepath.Join(tempDir, "empty.pdf")
	if err := os.WriteFile(emptyPath, nil, 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	largePath := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePath, make([]byte, 2048), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	fakePath := filepath.Join(tempDir, "fake.pdf")
	if err := os.WriteFile(fakePath, []byte("this is not PDF content"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	v := NewValidator(1024)

	tests := []struct {
		name        string
		path        string
		wantValid   bool
		wantMessage string
	}{
		{
			name:        "empty path",
			path:        "",
			wantValid:   false,
			wantMessage: "path cannot be empty",
		},
		{
			name:        "nonexistent file",
			path:        filepath.Join(tempDir, "missing.pdf"),
			wantValid:   false,
			wantMessage: "file does not exist",
		},
		{
			name:        "directory",
			path:        tempDir,
			wantValid:   false,
			wantMessage: "path is a directory",
		},
		{
			name:        "wrong extension",
			path:        txtPath,
			wantValid:   false,
			wantMessage: "not a PDF",
		},
		{
			name:        "empty file",
			path:        emptyPath,
			wantValid:   false,
			wantMessage: "file is empty",
		},
		{
			name:        "file too large",
			path:        largePath,
			wantValid:   false,
			wantMessage: "file too large",
		},
		{
			name:        "not actually a PDF",
			path:        fakePath,
			wantValid:   false,
			wantMessage: "invalid PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateFile(ValidateFileRequest{Path: tt.path})
			if err != nil {
				t.Fatalf("ValidateFile() unexpected error: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}
			if !strings.Contains(result.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want substring %q", result.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidatorIsValidPDF(t *testing.T) {
	tempDir := t.TempDir()

	fakePath := filepath.Join(tempDir, "fake.pdf")
	if err := os.WriteFile(fakePath, []byte("not PDF content"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	v := NewValidator(100 * 1024 * 1024)

	if v.IsValidPDF(fakePath) {
		t.Error("IsValidPDF() = true for non-PDF content")
	}
	if v.IsValidPDF(filepath.Join(tempDir, "missing.pdf")) {
		t.Error("IsValidPDF() = true for missing file")
	}
}

func TestValidatorValidateFileInfo(t *testing.T) {
	tempDir := t.TempDir()

	pdfPath := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 stub"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}

	v := NewValidator(1024)
	if err := v.ValidateFileInfo(pdfPath, info); err != nil {
		t.Errorf("ValidateFileInfo() unexpected error: %v", err)
	}

	dirInfo, err := os.Stat(tempDir)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if err := v.ValidateFileInfo(tempDir, dirInfo); err == nil {
		t.Error("ValidateFileInfo() expected error for directory")
	}
}
