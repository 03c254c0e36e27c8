package extract

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

const (
	outputDirPerm = 0o750

	// Exported images smaller than this on either axis are decorations
	// (logos, rules), not process diagrams.
	minDiagramDimension = 200
)

// ExtractAreaRequest selects one business area and document type to process.
type ExtractAreaRequest struct {
	Area     string `json:"area"`
	DocType  string `json:"doc_type"` // "bpt" or "bcm"
	Diagrams bool   `json:"diagrams"` // export process diagrams (BPT only)
	Strict   bool   `json:"strict"`   // structural validation of the source PDF first
}

// ExtractAreaResult reports what one extraction pass produced.
type ExtractAreaResult struct {
	Area       string   `json:"area"`
	DocType    string   `json:"doc_type"`
	SourceFile string   `json:"source_file"`
	Processes  int      `json:"processes"`
	Files      []string `json:"files"`
	Diagrams   int      `json:"diagrams"`
	Message    string   `json:"message,omitempty"`
}

// Service extracts structured process records from the MITA source PDF tree
// and writes them as JSON files under the data directory.
type Service struct {
	sourceDir   string
	dataDir     string
	maxFileSize int64
	codes       mita.AreaCodes
	assets      *pdfdoc.Assets
	validator   *pdfdoc.Validator
}

// NewService creates an extraction service.
func NewService(sourceDir, dataDir string, maxFileSize int64) *Service {
	return &Service{
		sourceDir:   sourceDir,
		dataDir:     dataDir,
		maxFileSize: maxFileSize,
		codes:       mita.DefaultAreaCodes(),
		assets:      pdfdoc.NewAssets(),
		validator:   pdfdoc.NewValidator(maxFileSize),
	}
}

// Areas returns the business areas the service knows about.
func (s *Service) Areas() []string {
	return s.codes.Names()
}

// ExtractArea processes a single business area's BPT or BCM document.
func (s *Service) ExtractArea(req ExtractAreaRequest) (*ExtractAreaResult, error) {
	if req.DocType != "bpt" && req.DocType != "bcm" {
		return nil, fmt.Errorf("unknown document type: %s", req.DocType)
	}
	if s.codes.Code(req.Area) == "XX" {
		return nil, fmt.Errorf("unknown business area: %s", req.Area)
	}

	areaDir := filepath.Join(s.sourceDir, req.DocType, req.Area)
	pdfPath, err := pdfdoc.FindAreaPDF(areaDir)
	if err != nil {
		return nil, fmt.Errorf("no source PDF for %s/%s: %w", req.DocType, req.Area, err)
	}

	if req.Strict {
		check, err := s.validator.ValidateFile(pdfdoc.ValidateFileRequest{Path: pdfPath, Strict: true})
		if err != nil {
			return nil, err
		}
		if !check.Valid {
			return nil, fmt.Errorf("source PDF failed validation: %s", check.Message)
		}
	}

	doc, err := pdfdoc.Open(pdfPath, s.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pdfPath, err)
	}
	defer func() { _ = doc.Close() }()

	lines, err := doc.Lines()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", pdfPath, err)
	}

	extractedDate := time.Now().Format("2006-01-02")
	var records []*mita.ProcessRecord
	if req.DocType == "bpt" {
		records = ParseBPT(lines, req.Area, s.codes, extractedDate)
	} else {
		records = ParseBCM(doc, lines, req.Area, s.codes, extractedDate)
	}

	result := &ExtractAreaResult{
		Area:       req.Area,
		DocType:    req.DocType,
		SourceFile: filepath.Base(pdfPath),
		Processes:  len(records),
	}
	if len(records) == 0 {
		result.Message = "no processes found"
		return result, nil
	}

	outDir := filepath.Join(s.dataDir, req.DocType, mita.AreaDirName(req.Area))
	if err := os.MkdirAll(outDir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	for _, rec := range records {
		rec.Metadata.SourceFile = filepath.Base(pdfPath)

		if req.Diagrams && rec.ProcessDetails != nil {
			n, err := s.exportDiagrams(pdfPath, outDir, rec)
			if err == nil {
				result.Diagrams += n
			}
		}

		outPath := filepath.Join(outDir, mita.RecordFileName(rec))
		if err := writeRecord(outPath, rec); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, outPath)
	}

	return result, nil
}

// ExtractAll processes every known business area for the given document
// types. Areas whose source PDF is missing or unreadable are reported in
// the result message rather than aborting the run.
func (s *Service) ExtractAll(docTypes []string, diagrams, strict bool) []*ExtractAreaResult {
	var results []*ExtractAreaResult
	for _, docType := range docTypes {
		for _, area := range s.codes.Names() {
			res, err := s.ExtractArea(ExtractAreaRequest{
				Area:     area,
				DocType:  docType,
				Diagrams: diagrams,
				Strict:   strict,
			})
			if err != nil {
				res = &ExtractAreaResult{
					Area:    area,
					DocType: docType,
					Message: err.Error(),
				}
			}
			results = append(results, res)
		}
	}
	return results
}

// writeRecord serializes one process record as indented JSON. HTML escaping
// is off so section text keeps literal ampersands and angle brackets.
func writeRecord(path string, rec *mita.ProcessRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// exportedPageRe pulls the page number out of pdfcpu's image file names
// ("<base>_<page>_<resource>.<ext>").
var exportedPageRe = regexp.MustCompile(`_(\d+)_[^_.]+\.[A-Za-z]+$`)

// exportDiagrams extracts the images on a process's page range, keeps the
// diagram-sized ones, renames them after the process and records them on
// the record.
func (s *Service) exportDiagrams(pdfPath, outDir string, rec *mita.ProcessRecord) (int, error) {
	startPage, endPage := parsePageRange(rec.Metadata.SourcePageRange)
	if startPage == 0 {
		return 0, nil
	}

	tempDir, err := os.MkdirTemp("", "mita-diagrams-")
	if err != nil {
		return 0, err
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	exported, err := s.assets.ExportImages(pdfPath, tempDir, startPage, endPage)
	if err != nil {
		return 0, err
	}

	count := 0
	nameBase := strings.NewReplacer(" ", "_", "/", "_").Replace(rec.ProcessName)
	for _, src := range exported {
		if !isDiagramSized(src) {
			continue
		}

		count++
		ext := filepath.Ext(src)
		dstName := fmt.Sprintf("%s_%s_diagram_%d%s", rec.ProcessCode, nameBase, count, ext)
		dst := filepath.Join(outDir, dstName)
		if err := copyFile(src, dst); err != nil {
			count--
			continue
		}

		page := startPage
		if m := exportedPageRe.FindStringSubmatch(filepath.Base(src)); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				page = n
			}
		}
		rec.ProcessDetails.Diagrams = append(rec.ProcessDetails.Diagrams, mita.Diagram{
			Filename:      dstName,
			Description:   fmt.Sprintf("%s process diagram", rec.ProcessName),
			PageReference: page,
		})
	}

	return count, nil
}

// isDiagramSized reports whether an exported image is large enough to be a
// process diagram. Undecodable images are kept.
func isDiagramSized(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return true
	}
	return cfg.Width >= minDiagramDimension && cfg.Height >= minDiagramDimension
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o640)
}

// parsePageRange splits a "start-end" page range; a bare number is a single
// page.
func parsePageRange(pageRange string) (int, int) {
	parts := strings.SplitN(pageRange, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0
	}
	end := start
	if len(parts) == 2 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			end = n
		}
	}
	return start, end
}
