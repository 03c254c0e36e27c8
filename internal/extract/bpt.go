package extract

import (
	"fmt"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

// processStart marks where a process begins in the document line stream.
type processStart struct {
	name        string
	subCategory string
	startLine   int
	startPage   int
}

// nextSectionMarkers are the lines that terminate the current BPT section.
// "Business" and "Performance" appear alone when the header wraps.
var nextSectionMarkers = []string{
	"Trigger Event", "Result", "Business Process Steps", "Business",
	"Shared Data", "Predecessor", "Successor", "Constraints",
	"Failures", "Performance Measures", "Performance",
}

// ParseBPT extracts every business process from a BPT document's line
// stream. Process boundaries are found by anchoring on the "Description"
// row header and looking back for the process name and sub-category banner.
func ParseBPT(lines []pdfdoc.Line, area string, codes mita.AreaCodes, extractedDate string) []*mita.ProcessRecord {
	code := codes.Code(area)
	starts := findBPTStarts(lines, code)

	var processes []*mita.ProcessRecord
	for idx, start := range starts {
		endLine := len(lines)
		if idx+1 < len(starts) {
			// Back off a few lines so the next process's banner stays out
			// of this process's tail section.
			endLine = starts[idx+1].startLine - 5
		}
		if endLine <= start.startLine {
			continue
		}

		endPage := start.startPage
		if endLine-1 < len(lines) && endLine-1 >= 0 {
			endPage = lines[endLine-1].Page
		}

		rec := parseBPTProcess(
			lineTexts(lines[start.startLine:endLine]),
			start, area, code, endPage, extractedDate,
		)
		if rec != nil {
			processes = append(processes, rec)
		}
	}

	return processes
}

// findBPTStarts anchors on "Description" rows and walks backwards for the
// process name and the "CM Case Management" style sub-category banner.
func findBPTStarts(lines []pdfdoc.Line, code string) []processStart {
	var starts []processStart

	for i, line := range lines {
		if strings.TrimSpace(line.Text) != "Description" {
			continue
		}

		var name, subCategory string
		lowest := i - 10
		if lowest < 0 {
			lowest = 0
		}

		for j := i - 1; j >= lowest; j-- {
			candidate := strings.TrimSpace(lines[j].Text)

			if candidate == "" || len(candidate) < 3 {
				continue
			}
			if strings.Contains(candidate, "Part I") || strings.Contains(candidate, "Page") ||
				strings.Contains(candidate, "Version") || strings.Contains(candidate, "May 2014") {
				continue
			}
			switch candidate {
			case "Item", "Details", "Item Details":
				continue
			}

			// Sub-category banners repeat the process code with a space:
			// "CM Case Management", "CM Authorization Determination".
			if strings.Contains(candidate, code) && strings.Contains(candidate, " ") {
				if name == "" || candidate != name {
					subCategory = candidate
				}
				continue
			}

			if name == "" && isUpperStart(candidate) {
				name = candidate
				// Keep looking upward for the sub-category banner.
			}
		}

		if name != "" {
			starts = append(starts, processStart{
				name:        name,
				subCategory: subCategory,
				startLine:   i,
				startPage:   line.Page,
			})
		}
	}

	return starts
}

// parseBPTProcess slices the process's lines into sections and assembles
// the record.
func parseBPTProcess(lines []string, start processStart, area, code string, endPage int, extractedDate string) *mita.ProcessRecord {
	subCategory := cleanBPTSubCategory(start.subCategory)
	if subCategory == "" {
		subCategory = area
	}

	rec := mita.NewBPTRecord(area, subCategory, start.name, code)
	rec.Metadata = mita.Metadata{
		SourcePageRange: fmt.Sprintf("%d-%d", start.startPage, endPage),
		ExtractedDate:   extractedDate,
	}
	pd := rec.ProcessDetails

	if body, ok := sectionLines(lines, "Description", 1); ok {
		pd.Description = ExtractDescription(body)
	}

	if body, ok := sectionLines(lines, "Trigger Event", 1); ok {
		pd.TriggerEvents.EnvironmentBased, pd.TriggerEvents.InteractionBased = ExtractTriggerEvents(body)
	}

	if body, ok := sectionLines(lines, "Result", 1); ok {
		pd.Results = appendAll(pd.Results, ExtractBulletedList(body, nil))
	}

	if body, ok := stepsSectionLines(lines); ok {
		pd.ProcessSteps = appendAll(pd.ProcessSteps, ExtractNumberedList(body, nil))
	}

	if body, ok := sectionLines(lines, "Shared Data", 1); ok {
		pd.SharedData = appendAll(pd.SharedData, ExtractSimpleList(body, code, start.name))
	}

	if body, ok := sectionLines(lines, "Predecessor", 1); ok {
		pd.PredecessorProcesses = appendAll(pd.PredecessorProcesses, ExtractSimpleList(body, code, start.name))
	}

	if body, ok := sectionLines(lines, "Successor", 1); ok {
		pd.SuccessorProcesses = appendAll(pd.SuccessorProcesses, ExtractSimpleList(body, code, start.name))
	}

	if body, ok := sectionLines(lines, "Constraints", 1); ok {
		pd.Constraints = ExtractDescription(body)
	}

	if body, ok := sectionLines(lines, "Failures", 1); ok {
		pd.Failures = appendAll(pd.Failures, ExtractBulletedList(body, nil))
	}

	if body, ok := performanceSectionLines(lines); ok {
		pd.PerformanceMeasures = appendAll(pd.PerformanceMeasures, ExtractBulletedList(body, nil))
	}

	return rec
}

// appendAll keeps the destination non-nil so empty sections serialize as
// empty arrays.
func appendAll(dst, src []string) []string {
	return append(dst, src...)
}

// cleanBPTSubCategory strips the leading process code from a banner such as
// "CM Case Management".
func cleanBPTSubCategory(banner string) string {
	if banner == "" {
		return ""
	}
	parts := strings.Fields(strings.ReplaceAll(banner, "–", " "))
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

// sectionLines returns the body lines of a named section: everything after
// the header (skipping headerLines) up to the next section marker.
func sectionLines(lines []string, section string, headerLines int) ([]string, bool) {
	start := findSectionStart(lines, section, 0)
	if start < 0 {
		return nil, false
	}
	end := findNextSection(lines, start+headerLines)
	if end < start+headerLines {
		end = start + headerLines
	}
	return lines[start+headerLines : end], true
}

// stepsSectionLines locates "Business Process Steps", whose header wraps
// onto up to three lines in the source tables.
func stepsSectionLines(lines []string) ([]string, bool) {
	start := findSectionStart(lines, "Business Process Steps", 0)
	skip := 1

	if start < 0 {
		start = findSectionStart(lines, "Business", 0)
		if start < 0 {
			return nil, false
		}
		found := false
		if start+1 < len(lines) {
			next := strings.TrimSpace(lines[start+1])
			switch {
			case next == "Process Steps" || strings.Contains(next, "Process Steps"):
				found = true
			case next == "Process" && start+2 < len(lines) && strings.TrimSpace(lines[start+2]) == "Steps":
				found = true
			}
		}
		if !found {
			return nil, false
		}
	}

	if start+1 < len(lines) && strings.TrimSpace(lines[start+1]) == "Process Steps" {
		skip = 2
	} else if start+2 < len(lines) && strings.TrimSpace(lines[start+1]) == "Process" &&
		strings.TrimSpace(lines[start+2]) == "Steps" {
		skip = 3
	}

	end := findNextSection(lines, start+skip)
	if end < start+skip {
		end = start + skip
	}
	return lines[start+skip : end], true
}

// performanceSectionLines locates "Performance Measures", accepting the
// header split across two lines. Measures close each process, so the body
// is capped rather than delimited.
func performanceSectionLines(lines []string) ([]string, bool) {
	start := findSectionStart(lines, "Performance Measures", 0)
	if start < 0 {
		start = findSectionStart(lines, "Performance", 0)
		if start >= 0 && start+1 < len(lines) && !strings.Contains(lines[start+1], "Measures") {
			start = -1
		}
	}
	if start < 0 {
		return nil, false
	}

	end := start + 50
	if end > len(lines) {
		end = len(lines)
	}
	if start+2 >= end {
		return nil, false
	}
	return lines[start+2 : end], true
}

// findSectionStart finds the index of a section header, matching either the
// full name on one line or the name split across consecutive lines.
func findSectionStart(lines []string, section string, startIdx int) int {
	parts := strings.Fields(section)

	for i := startIdx; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == section {
			return i
		}

		if len(parts) > 1 && line == parts[0] {
			remaining := strings.Join(parts[1:], " ")
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if next == remaining || strings.HasPrefix(next, remaining) {
					return i
				}
			}
		}
	}

	return -1
}

// findNextSection finds the line index where the next section (or the next
// process) begins, skipping page headers and banner repeats.
func findNextSection(lines []string, startIdx int) int {
	for i := startIdx; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if IsPageHeader(line) {
			continue
		}
		switch line {
		case "Item", "Details", "Item Details":
			continue
		}
		if processHeaderRe.MatchString(line) {
			continue
		}

		for _, marker := range nextSectionMarkers {
			if line == marker {
				return i
			}
		}

		if line == "Business" && i+1 < len(lines) &&
			strings.Contains(strings.TrimSpace(lines[i+1]), "Process Steps") {
			return i
		}

		// A later "Description" opens the next process when preceded by the
		// Item/Details table header.
		if line == "Description" && i > startIdx+5 {
			low := i - 5
			if low < startIdx {
				low = startIdx
			}
			for j := i - 1; j > low; j-- {
				switch strings.TrimSpace(lines[j]) {
				case "Item", "Details":
					return j - 2
				}
			}
		}
	}

	return len(lines)
}

// lineTexts projects a line slice onto its text content.
func lineTexts(lines []pdfdoc.Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}
