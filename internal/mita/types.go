// Package mita defines the record schema for MITA 3.0 business process
// templates (BPT) and business capability matrices (BCM) extracted from
// the May 2014 framework PDFs.
package mita

import (
	"fmt"
	"strings"
)

// Document types recognized by the toolkit.
const (
	DocTypeBPT = "BPT"
	DocTypeBCM = "BCM"

	// Framework version stamped on every record.
	Version     = "3.0"
	VersionDate = "May 2014"
)

// ProcessRecord is one extracted business process. BPT records carry
// ProcessDetails, BCM records carry MaturityModel; the other pointer is nil
// and omitted from JSON.
type ProcessRecord struct {
	DocumentType   string          `json:"document_type"`
	Version        string          `json:"version"`
	VersionDate    string          `json:"version_date"`
	BusinessArea   string          `json:"business_area"`
	SubCategory    string          `json:"sub_category"`
	ProcessName    string          `json:"process_name"`
	ProcessCode    string          `json:"process_code"`
	ProcessDetails *ProcessDetails `json:"process_details,omitempty"`
	MaturityModel  *MaturityModel  `json:"maturity_model,omitempty"`
	Metadata       Metadata        `json:"metadata"`
}

// ProcessDetails holds the sectioned content of a BPT entry.
type ProcessDetails struct {
	Description          string        `json:"description"`
	TriggerEvents        TriggerEvents `json:"trigger_events"`
	Results              []string      `json:"results"`
	ProcessSteps         []string      `json:"process_steps"`
	Diagrams             []Diagram     `json:"diagrams"`
	SharedData           []string      `json:"shared_data"`
	PredecessorProcesses []string      `json:"predecessor_processes"`
	SuccessorProcesses   []string      `json:"successor_processes"`
	Constraints          string        `json:"constraints"`
	Failures             []string      `json:"failures"`
	PerformanceMeasures  []string      `json:"performance_measures"`
}

// TriggerEvents splits BPT trigger events by their category row in the table.
type TriggerEvents struct {
	EnvironmentBased []string `json:"environment_based"`
	InteractionBased []string `json:"interaction_based"`
}

// Diagram references an exported process diagram image.
type Diagram struct {
	Filename      string `json:"filename"`
	Description   string `json:"description"`
	PageReference int    `json:"page_reference"`
}

// MaturityModel holds the capability questions of a BCM entry.
type MaturityModel struct {
	CapabilityQuestions []CapabilityQuestion `json:"capability_questions"`
}

// CapabilityQuestion is one row group of the BCM maturity table: the
// question plus its five maturity-level descriptions.
type CapabilityQuestion struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Levels   Levels `json:"levels"`
	Note     string `json:"note,omitempty"`
}

// Levels carries the five maturity-level cells of a capability question.
type Levels struct {
	Level1 string `json:"level_1"`
	Level2 string `json:"level_2"`
	Level3 string `json:"level_3"`
	Level4 string `json:"level_4"`
	Level5 string `json:"level_5"`
}

// ByIndex returns the level text for 1..5.
func (l Levels) ByIndex(i int) string {
	switch i {
	case 1:
		return l.Level1
	case 2:
		return l.Level2
	case 3:
		return l.Level3
	case 4:
		return l.Level4
	case 5:
		return l.Level5
	}
	return ""
}

// SetByIndex assigns the level text for 1..5.
func (l *Levels) SetByIndex(i int, text string) {
	switch i {
	case 1:
		l.Level1 = text
	case 2:
		l.Level2 = text
	case 3:
		l.Level3 = text
	case 4:
		l.Level4 = text
	case 5:
		l.Level5 = text
	}
}

// FilledCount reports how many of the five levels are non-empty.
func (l Levels) FilledCount() int {
	n := 0
	for i := 1; i <= 5; i++ {
		if l.ByIndex(i) != "" {
			n++
		}
	}
	return n
}

// Metadata records provenance for a single extracted file.
type Metadata struct {
	SourceFile      string `json:"source_file"`
	SourcePageRange string `json:"source_page_range"`
	ExtractedDate   string `json:"extracted_date"`
}

// NewBPTRecord returns a BPT record with every section initialized so the
// JSON output carries empty arrays and strings rather than nulls.
func NewBPTRecord(area, subCategory, name, code string) *ProcessRecord {
	return &ProcessRecord{
		DocumentType: DocTypeBPT,
		Version:      Version,
		VersionDate:  VersionDate,
		BusinessArea: area,
		SubCategory:  subCategory,
		ProcessName:  name,
		ProcessCode:  code,
		ProcessDetails: &ProcessDetails{
			TriggerEvents: TriggerEvents{
				EnvironmentBased: []string{},
				InteractionBased: []string{},
			},
			Results:              []string{},
			ProcessSteps:         []string{},
			Diagrams:             []Diagram{},
			SharedData:           []string{},
			PredecessorProcesses: []string{},
			SuccessorProcesses:   []string{},
			Failures:             []string{},
			PerformanceMeasures:  []string{},
		},
	}
}

// NewBCMRecord returns a BCM record with an empty maturity model.
func NewBCMRecord(area, subCategory, name, code string) *ProcessRecord {
	return &ProcessRecord{
		DocumentType: DocTypeBCM,
		Version:      Version,
		VersionDate:  VersionDate,
		BusinessArea: area,
		SubCategory:  subCategory,
		ProcessName:  name,
		ProcessCode:  code,
		MaturityModel: &MaturityModel{
			CapabilityQuestions: []CapabilityQuestion{},
		},
	}
}

// RecordFileName returns the canonical output name for a record,
// e.g. "CM_Establish_Case_BPT_v3.0.json".
func RecordFileName(rec *ProcessRecord) string {
	name := strings.NewReplacer(" ", "_", "/", "_").Replace(rec.ProcessName)
	return fmt.Sprintf("%s_%s_%s_v%s.json", rec.ProcessCode, name, rec.DocumentType, rec.Version)
}

// AreaDirName normalizes a business area name for use as a directory,
// e.g. "Care Management" -> "care_management".
func AreaDirName(area string) string {
	return strings.ReplaceAll(strings.ToLower(area), " ", "_")
}
