// Package dump writes positioned text dumps of source PDFs. The dumps are
// working files for tuning the column thresholds and header filters of the
// extraction parsers.
package dump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

// Service writes per-area text dumps of the source PDFs.
type Service struct {
	sourceDir   string
	outDir      string
	maxFileSize int64
	codes       mita.AreaCodes
	assets      *pdfdoc.Assets
}

// NewService creates a dump service writing into outDir.
func NewService(sourceDir, outDir string, maxFileSize int64) *Service {
	return &Service{
		sourceDir:   sourceDir,
		outDir:      outDir,
		maxFileSize: maxFileSize,
		codes:       mita.DefaultAreaCodes(),
		assets:      pdfdoc.NewAssets(),
	}
}

// Areas returns the business areas the service knows about.
func (s *Service) Areas() []string {
	return s.codes.Names()
}

// DumpArea writes one area's document as a positioned text dump and returns
// the output path, e.g. "temp_fm_bpt_dump.txt".
func (s *Service) DumpArea(area, docType string) (string, error) {
	code := s.codes.Code(area)
	if code == "XX" {
		return "", fmt.Errorf("unknown business area: %s", area)
	}

	pdfPath, err := pdfdoc.FindAreaPDF(filepath.Join(s.sourceDir, docType, area))
	if err != nil {
		return "", fmt.Errorf("no source PDF for %s/%s: %w", docType, area, err)
	}

	doc, err := pdfdoc.Open(pdfPath, s.maxFileSize)
	if err != nil {
		return "", err
	}
	defer func() { _ = doc.Close() }()

	outPath := filepath.Join(s.outDir, fmt.Sprintf("temp_%s_%s_dump.txt", strings.ToLower(code), docType))
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "Source: %s\n", pdfPath)
	fmt.Fprintf(w, "Pages: %d\n", doc.NumPages())
	fmt.Fprintf(w, "Images: %d\n", len(s.assets.ScanImages(doc)))

	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		fmt.Fprintf(w, "\n=== Page %d ===\n", pageNum)

		spans, err := doc.PageSpans(pageNum)
		if err != nil {
			fmt.Fprintf(w, "(unreadable page: %v)\n", err)
			continue
		}
		for _, span := range spans {
			fmt.Fprintf(w, "[x=%6.1f y=%6.1f] %s\n", span.X, span.Y, span.Text)
		}

		for _, img := range s.assets.ScanPageRange(doc, pageNum, pageNum) {
			fmt.Fprintf(w, "[image %dx%d %s]\n", img.Width, img.Height, img.Format)
		}

		text, err := doc.PlainText(pageNum)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(w, "--- plain text ---\n%s\n", text)
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return outPath, nil
}
