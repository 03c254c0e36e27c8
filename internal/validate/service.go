package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

// RunRequest selects which part of the output tree to validate.
type RunRequest struct {
	DocTypes   []string `json:"doc_types"` // "bpt", "bcm" or both
	Area       string   `json:"area"`      // business area filter, empty means all
	CrossCheck bool     `json:"cross_check"`
}

// AreaStats aggregates extraction metrics for one business area and
// document type.
type AreaStats struct {
	Area           string `json:"area"`
	DocType        string `json:"doc_type"`
	Processes      int    `json:"processes"`
	TotalSteps     int    `json:"total_steps,omitempty"`
	TotalTriggers  int    `json:"total_triggers,omitempty"`
	TotalQuestions int    `json:"total_questions,omitempty"`
	LevelsFilled   int    `json:"levels_filled,omitempty"`
}

// Report is the outcome of validating a data tree.
type Report struct {
	Files  []*FileReport `json:"files"`
	Stats  []*AreaStats  `json:"stats"`
	Passed int           `json:"passed"`
	Warned int           `json:"warned"`
	Failed int           `json:"failed"`
}

// ExitCode maps the report onto a process exit status: 0 when every file
// passed, 1 when any file has structural issues.
func (r *Report) ExitCode() int {
	if r.Failed > 0 {
		return 1
	}
	return 0
}

// Service validates the extracted JSON tree, optionally cross-checking
// page ranges against the source PDFs.
type Service struct {
	dataDir   string
	sourceDir string
	checker   *Checker
	validator *pdfdoc.Validator
	codes     mita.AreaCodes
}

// NewService creates a validation service. sourceDir may be empty when no
// cross-checking against source PDFs is wanted.
func NewService(dataDir, sourceDir string, maxFileSize int64) *Service {
	return &Service{
		dataDir:   dataDir,
		sourceDir: sourceDir,
		checker:   NewChecker(),
		validator: pdfdoc.NewValidator(maxFileSize),
		codes:     mita.DefaultAreaCodes(),
	}
}

// Run validates every extracted JSON file in scope and aggregates
// per-area statistics.
func (s *Service) Run(req RunRequest) (*Report, error) {
	report := &Report{}
	statsByKey := map[string]*AreaStats{}

	for _, docType := range req.DocTypes {
		root := filepath.Join(s.dataDir, docType)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		paths, err := jsonFiles(root)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}

		maxPageByDir := map[string]int{}
		for _, path := range paths {
			fileReport, rec := s.checker.CheckFile(path)
			// Unparseable records carry no area; fall back to the directory
			// name so the area filter still applies.
			area := fileReport.Area
			if area == "" {
				area = areaFromDir(filepath.Base(filepath.Dir(path)), s.codes)
			}
			if req.Area != "" && area != req.Area {
				continue
			}
			report.Files = append(report.Files, fileReport)

			if rec != nil {
				s.accumulate(statsByKey, docType, rec)
				if _, end := pageRangeOf(rec); end > maxPageByDir[filepath.Dir(path)] {
					maxPageByDir[filepath.Dir(path)] = end
				}
			}
		}

		if req.CrossCheck && s.sourceDir != "" {
			s.crossCheck(report, docType, maxPageByDir)
		}
	}

	for _, fr := range report.Files {
		switch {
		case len(fr.Issues) > 0:
			report.Failed++
		case len(fr.Warnings) > 0:
			report.Warned++
		default:
			report.Passed++
		}
	}

	for _, st := range statsByKey {
		report.Stats = append(report.Stats, st)
	}
	sort.Slice(report.Stats, func(i, j int) bool {
		if report.Stats[i].DocType != report.Stats[j].DocType {
			return report.Stats[i].DocType < report.Stats[j].DocType
		}
		return report.Stats[i].Area < report.Stats[j].Area
	})

	return report, nil
}

func (s *Service) accumulate(statsByKey map[string]*AreaStats, docType string, rec *mita.ProcessRecord) {
	key := docType + "/" + rec.BusinessArea
	st := statsByKey[key]
	if st == nil {
		st = &AreaStats{Area: rec.BusinessArea, DocType: docType}
		statsByKey[key] = st
	}
	st.Processes++

	if rec.ProcessDetails != nil {
		st.TotalSteps += len(rec.ProcessDetails.ProcessSteps)
		st.TotalTriggers += len(rec.ProcessDetails.TriggerEvents.EnvironmentBased) +
			len(rec.ProcessDetails.TriggerEvents.InteractionBased)
	}
	if rec.MaturityModel != nil {
		for _, q := range rec.MaturityModel.CapabilityQuestions {
			st.TotalQuestions++
			st.LevelsFilled += q.Levels.FilledCount()
		}
	}
}

// crossCheck verifies that no record's page range points past the end of
// its area's source PDF.
func (s *Service) crossCheck(report *Report, docType string, maxPageByDir map[string]int) {
	for dir, maxPage := range maxPageByDir {
		area := areaFromDir(filepath.Base(dir), s.codes)
		if area == "" {
			continue
		}

		pdfPath, err := pdfdoc.FindAreaPDF(filepath.Join(s.sourceDir, docType, area))
		if err != nil {
			report.Files = append(report.Files, &FileReport{
				Path:     dir,
				Area:     area,
				Warnings: []string{fmt.Sprintf("source PDF not found for cross-check: %v", err)},
			})
			continue
		}

		pages, err := s.validator.PageCount(pdfPath)
		if err != nil {
			report.Files = append(report.Files, &FileReport{
				Path:     dir,
				Area:     area,
				Warnings: []string{fmt.Sprintf("cannot read source PDF page count: %v", err)},
			})
			continue
		}

		if maxPage > pages {
			report.Files = append(report.Files, &FileReport{
				Path: dir,
				Area: area,
				Issues: []string{fmt.Sprintf("page range reaches %d but %s has only %d pages",
					maxPage, filepath.Base(pdfPath), pages)},
			})
		}
	}
}

// RenderText writes a human-readable validation report.
func (r *Report) RenderText(w io.Writer) {
	fmt.Fprintf(w, "Validation Report\n")
	fmt.Fprintf(w, "=================\n\n")

	for _, fr := range r.Files {
		if len(fr.Issues) == 0 && len(fr.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", fr.Path)
		for _, issue := range fr.Issues {
			fmt.Fprintf(w, "  ISSUE: %s\n", issue)
		}
		for _, warning := range fr.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
	}

	if len(r.Stats) > 0 {
		fmt.Fprintf(w, "\nStatistics\n")
		fmt.Fprintf(w, "----------\n")
		for _, st := range r.Stats {
			line := fmt.Sprintf("%s %-40s processes=%d", strings.ToUpper(st.DocType), st.Area, st.Processes)
			if st.TotalSteps > 0 || st.TotalTriggers > 0 {
				line += " steps=" + strconv.Itoa(st.TotalSteps) + " triggers=" + strconv.Itoa(st.TotalTriggers)
			}
			if st.TotalQuestions > 0 {
				line += " questions=" + strconv.Itoa(st.TotalQuestions) + " levels_filled=" + strconv.Itoa(st.LevelsFilled)
			}
			fmt.Fprintf(w, "%s\n", line)
		}
	}

	fmt.Fprintf(w, "\nSummary: %d passed, %d with warnings, %d failed (%d files)\n",
		r.Passed, r.Warned, r.Failed, len(r.Files))
}

// jsonFiles returns every .json file under root, sorted for deterministic
// reports.
func jsonFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// areaFromDir maps a directory name like "care_management" back to its
// business area name.
func areaFromDir(dir string, codes mita.AreaCodes) string {
	for _, name := range codes.Names() {
		if mita.AreaDirName(name) == dir {
			return name
		}
	}
	return ""
}

func pageRangeOf(rec *mita.ProcessRecord) (int, int) {
	parts := strings.SplitN(rec.Metadata.SourcePageRange, "-", 2)
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
