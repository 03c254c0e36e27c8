// Package validate checks extracted process records for structural
// completeness and leftover extraction artifacts, and aggregates
// per-area statistics over the output tree.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
)

// requiredFields must be present in every record regardless of type.
var requiredFields = []string{
	"document_type",
	"version",
	"version_date",
	"business_area",
	"sub_category",
	"process_name",
	"process_code",
	"metadata",
}

// FileReport is the outcome of checking one extracted JSON file. Issues
// mark structural failures; warnings mark content that needs review but
// does not invalidate the file.
type FileReport struct {
	Path     string   `json:"path"`
	Area     string   `json:"area"`
	DocType  string   `json:"doc_type"`
	Process  string   `json:"process"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether the file passed without structural issues.
func (r *FileReport) Valid() bool {
	return len(r.Issues) == 0
}

func (r *FileReport) issue(format string, args ...interface{}) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *FileReport) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Checker validates extracted process records.
type Checker struct{}

// NewChecker creates a record checker.
func NewChecker() *Checker {
	return &Checker{}
}

// CheckFile reads one extracted JSON file and validates it. The returned
// record is nil when the file cannot be parsed.
func (c *Checker) CheckFile(path string) (*FileReport, *mita.ProcessRecord) {
	report := &FileReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		report.issue("cannot read file: %v", err)
		return report, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		report.issue("invalid JSON: %v", err)
		return report, nil
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			report.issue("missing required field: %s", field)
		}
	}

	var rec mita.ProcessRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		report.issue("malformed record: %v", err)
		return report, nil
	}
	report.Area = rec.BusinessArea
	report.DocType = rec.DocumentType
	report.Process = rec.ProcessName

	if rec.Version != mita.Version {
		report.warn("unexpected version: %q", rec.Version)
	}
	if rec.Metadata.SourceFile == "" {
		report.warn("metadata.source_file is empty")
	}
	if rec.Metadata.SourcePageRange == "" {
		report.warn("metadata.source_page_range is empty")
	}
	if rec.Metadata.ExtractedDate == "" {
		report.warn("metadata.extracted_date is empty")
	}

	switch rec.DocumentType {
	case mita.DocTypeBPT:
		if _, ok := raw["process_details"]; !ok {
			report.issue("missing required field: process_details")
		} else {
			c.checkBPT(report, &rec)
		}
	case mita.DocTypeBCM:
		if _, ok := raw["maturity_model"]; !ok {
			report.issue("missing required field: maturity_model")
		} else {
			c.checkBCM(report, &rec)
		}
	default:
		report.issue("unknown document type: %q", rec.DocumentType)
	}

	c.checkQuality(report, &rec)

	return report, &rec
}

// checkBPT validates the sectioned content of a business process template.
func (c *Checker) checkBPT(report *FileReport, rec *mita.ProcessRecord) {
	d := rec.ProcessDetails
	if d == nil {
		report.issue("process_details is null")
		return
	}

	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		report.issue("description is empty")
	} else if len(desc) < 100 {
		report.warn("description is very short (%d chars)", len(desc))
	}

	if len(d.ProcessSteps) == 0 {
		report.issue("no process steps")
	} else if len(d.ProcessSteps) < 3 {
		report.warn("only %d process steps", len(d.ProcessSteps))
	}

	if len(d.TriggerEvents.EnvironmentBased) == 0 && len(d.TriggerEvents.InteractionBased) == 0 {
		report.warn("no trigger events")
	}
	if len(d.Results) == 0 {
		report.warn("no results")
	}
}

// checkBCM validates the capability questions of a business capability
// matrix.
func (c *Checker) checkBCM(report *FileReport, rec *mita.ProcessRecord) {
	m := rec.MaturityModel
	if m == nil {
		report.issue("maturity_model is null")
		return
	}

	questions := m.CapabilityQuestions
	if len(questions) == 0 {
		report.issue("no capability questions")
		return
	}
	if len(questions) < 5 {
		report.warn("only %d capability questions", len(questions))
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			report.issue("question %d has empty text", i+1)
		}
		if empty := 5 - q.Levels.FilledCount(); empty >= 3 {
			report.warn("question %d has %d empty maturity levels", i+1, empty)
		}
	}
}
