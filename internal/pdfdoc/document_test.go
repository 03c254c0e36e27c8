package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestOpenValidation(t *testing.T) {
	tempDir := t.TempDir()

	txtPath := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("text"), 0o600); err != nil {
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

	tests := []struct {
		name        string
		path        string
		maxFileSize int64
		wantErr     string
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: "path cannot be empty",
		},
		{
			name:    "nonexistent file",
			path:    filepath.Join(tempDir, "missing.pdf"),
			wantErr: "file does not exist",
		},
		{
			name:    "directory",
			path:    tempDir,
			wantErr: "path is a directory",
		},
		{
			name:    "wrong extension",
			path:    txtPath,
			wantErr: "not a PDF",
		},
		{
			name:    "empty file",
			path:    emptyPath,
			wantErr: "file is empty",
		},
		{
			name:        "file too large",
			path:        largePath,
			maxFileSize: 1024,
			wantErr:     "file too large",
		},
		{
			name:    "not PDF content",
			path:    largePath,
			wantErr: "failed to open PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path, tt.maxFileSize)
			if err == nil {
				t.Fatal("Open() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Open() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name  string
		words []pdf.Text
		want  string
	}{
		{
			name:  "empty row",
			words: nil,
			want:  "",
		},
		{
			name: "adjacent fragments join without space",
			words: []pdf.Text{
				{S: "Estab", X: 100, W: 30, FontSize: 10},
				{S: "lish", X: 130.5, W: 20, FontSize: 10},
			},
			want: "Establish",
		},
		{
			name: "word gap inserts space",
			words: []pdf.Text{
				{S: "Establish", X: 100, W: 50, FontSize: 10},
				{S: "Case", X: 158, W: 25, FontSize: 10},
			},
			want: "Establish Case",
		},
		{
			name: "fragment with trailing space",
			words: []pdf.Text{
				{S: "Establish ", X: 100, W: 55, FontSize: 10},
				{S: "Case", X: 160, W: 25, FontSize: 10},
			},
			want: "Establish Case",
		},
		{
			name: "fragment with leading space",
			words: []pdf.Text{
				{S: "Establish", X: 100, W: 50, FontSize: 10},
				{S: " Case", X: 155, W: 28, FontSize: 10},
			},
			want: "Establish Case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinRow(tt.words); got != tt.want {
				t.Errorf("joinRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNeedsSpace(t *testing.T) {
	tests := []struct {
		name    string
		prevEnd float64
		w       pdf.Text
		want    bool
	}{
		{
			name:    "wide gap",
			prevEnd: 100,
			w:       pdf.Text{X: 110, FontSize: 10},
			want:    true,
		},
		{
			name:    "tiny kerning gap",
			prevEnd: 100,
			w:       pdf.Text{X: 100.5, FontSize: 10},
			want:    false,
		},
		{
			name:    "gap just over font threshold",
			prevEnd: 100,
			w:       pdf.Text{X: 102.5, FontSize: 10}, // threshold 2.0
			want:    true,
		},
		{
			name:    "small font uses minimum threshold",
			prevEnd: 100,
			w:       pdf.Text{X: 100.8, FontSize: 2}, // threshold clamps to 1.0
			want:    false,
		},
		{
			name:    "overlapping fragments",
			prevEnd: 100,
			w:       pdf.Text{X: 98, FontSize: 10},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsSpace(tt.prevEnd, tt.w); got != tt.want {
				t.Errorf("needsSpace() = %v, want %v", got, tt.want)
			}
		})
	}
}
