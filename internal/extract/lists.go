package extract

import (
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
)

// JoinWrappedLines rejoins lines that were wrapped inside a table cell.
// Empty lines terminate the current item; stop patterns end the scan.
func JoinWrappedLines(lines []string, stopPatterns []string) []string {
	var result []string
	var current string

	flush := func() {
		if current != "" {
			result = append(result, CleanText(current))
			current = ""
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		stopped := false
		for _, pat := range stopPatterns {
			if strings.Contains(line, pat) {
				stopped = true
				break
			}
		}
		if stopped {
			flush()
			break
		}

		if line == "" {
			flush()
			continue
		}

		if current != "" {
			current += " " + line
		} else {
			current = line
		}
	}

	flush()
	return result
}

// ExtractBulletedList parses a bulleted cell. Bullet glyphs frequently land
// on their own line with the item text on following lines; both forms are
// handled. Bullet characters never reach the output.
func ExtractBulletedList(lines, stopPatterns []string) []string {
	if stopPatterns == nil {
		stopPatterns = mita.BPTSections
	}

	var items []string
	var current string
	inBullet := false

	flush := func() {
		if current != "" {
			if cleaned := CleanExtractedText(current); cleaned != "" {
				items = append(items, cleaned)
			}
			current = ""
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if IsPageHeader(line) {
			continue
		}
		if isSectionHeader(line, stopPatterns) {
			break
		}
		// Numbered items signal the process-steps section bleeding in.
		if numberedItemRe.MatchString(line) {
			break
		}

		if bulletChars[line] || line == "" {
			flush()
			inBullet = true
			continue
		}

		switch {
		case strings.HasPrefix(line, "• "):
			flush()
			current = line[len("• "):]
			inBullet = true
			continue
		case strings.HasPrefix(line, "- "):
			flush()
			current = line[len("- "):]
			inBullet = true
			continue
		}

		if inBullet || current != "" {
			if current != "" {
				current += " " + line
			} else {
				current = line
			}
		}
	}

	flush()
	return items
}

// ExtractNumberedList parses the process-steps cell: main steps "1.", "2.",
// sub-steps "a.", "b." indented beneath their parent, and NOTE lines kept
// with the current step.
func ExtractNumberedList(lines, stopPatterns []string) []string {
	if stopPatterns == nil {
		stopPatterns = mita.BPTSections
	}

	var items []string
	var currentLines []string
	skipUntilNumber := false

	flush := func() {
		if len(currentLines) > 0 {
			items = append(items, formatStepWithSubsteps(currentLines))
			currentLines = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if IsPageHeader(line) {
			skipUntilNumber = true
			continue
		}
		// Page breaks repeat the process banner and table header.
		if processHeaderRe.MatchString(line) {
			skipUntilNumber = true
			continue
		}
		switch line {
		case "Item", "Details", "Item Details":
			skipUntilNumber = true
			continue
		}
		if isSectionHeader(line, stopPatterns) {
			break
		}

		if m := numberedItemRe.FindStringSubmatch(line); m != nil {
			skipUntilNumber = false
			flush()
			currentLines = []string{m[1] + ". " + m[2]}
			continue
		}

		if line == "" {
			continue
		}
		if skipUntilNumber {
			continue
		}

		if m := subStepRe.FindStringSubmatch(line); m != nil && len(currentLines) > 0 {
			currentLines = append(currentLines, "  "+m[1]+". "+m[2])
			continue
		}

		if strings.HasPrefix(line, "NOTE:") || strings.HasPrefix(line, "Note:") {
			if len(currentLines) > 0 {
				currentLines = append(currentLines, "  "+line)
			}
			continue
		}

		// Wrapped continuation of the most recent line.
		if len(currentLines) > 0 {
			currentLines[len(currentLines)-1] += " " + line
		}
	}

	flush()
	return items
}

// formatStepWithSubsteps joins a step and its sub-lines, dropping lines that
// clean down to nothing.
func formatStepWithSubsteps(lines []string) string {
	var out []string
	for _, line := range lines {
		indent := ""
		if strings.HasPrefix(line, "  ") {
			indent = "  "
		}
		if cleaned := CleanExtractedText(line); cleaned != "" {
			out = append(out, indent+cleaned)
		}
	}
	return strings.Join(out, "\n")
}

// ExtractSimpleList parses cells with one item per line and no bullets
// (Shared Data, Predecessor, Successor). A capitalized line starts a new
// item unless the previous line ended mid-clause.
func ExtractSimpleList(lines []string, processCode, processName string) []string {
	var items []string
	var current string

	flush := func() {
		if current != "" {
			items = append(items, CleanText(current))
			current = ""
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			flush()
			continue
		}
		if IsPageHeader(line) {
			continue
		}
		if isHeaderArtifact(line, processCode, processName) {
			continue
		}
		if isSectionHeader(line, mita.BPTSections) {
			break
		}

		switch {
		case current != "" && isUpperStart(line) && !strings.HasSuffix(current, ","):
			flush()
			current = line
		case current != "":
			current += " " + line
		default:
			current = line
		}
	}

	flush()
	return items
}

func isUpperStart(line string) bool {
	if line == "" {
		return false
	}
	r := rune(line[0])
	return r >= 'A' && r <= 'Z'
}

// ExtractDescription parses the free-text Description and Constraints cells,
// preserving paragraph breaks and emitting bullets as "• ", sub-bullets as
// "  - " and nested bullets as "    · " prefixed lines.
func ExtractDescription(lines []string) string {
	var resultLines []string
	var current string
	pending := "" // "", "main", "sub", "nested"

	flush := func() {
		if current != "" {
			resultLines = append(resultLines, current)
			current = ""
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if IsPageHeader(line) {
			continue
		}
		if isExactSection(line) {
			break
		}

		if line == "" {
			flush()
			pending = ""
			continue
		}

		if bulletChars[line] {
			flush()
			pending = "main"
			continue
		}
		if subBulletChars[line] {
			flush()
			pending = "sub"
			continue
		}
		if nestedBulletChars[line] {
			flush()
			pending = "nested"
			continue
		}

		if strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "- ") || strings.HasPrefix(line, " ") {
			flush()
			current = "• " + line[strings.IndexByte(line, ' ')+1:]
			pending = ""
			continue
		}
		if strings.HasPrefix(line, "o ") || strings.HasPrefix(line, "○ ") {
			flush()
			current = "  - " + line[strings.IndexByte(line, ' ')+1:]
			pending = ""
			continue
		}
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, " ") {
			flush()
			current = "    · " + line[strings.IndexByte(line, ' ')+1:]
			pending = ""
			continue
		}

		if pending != "" {
			flush()
			switch pending {
			case "main":
				current = "• " + line
			case "sub":
				current = "  - " + line
			default:
				current = "    · " + line
			}
			pending = ""
			continue
		}

		if strings.HasPrefix(line, "NOTE:") || strings.HasPrefix(line, "Note:") {
			flush()
			current = line
			continue
		}

		if current != "" {
			current += " " + line
		} else {
			current = line
		}
	}

	flush()
	return CleanExtractedText(strings.Join(resultLines, "\n"))
}

func isExactSection(line string) bool {
	for _, s := range mita.BPTSections {
		if line == s {
			return true
		}
	}
	return false
}

// ExtractTriggerEvents splits trigger events into environment-based and
// interaction-based lists. Items with no category header default to
// interaction-based.
func ExtractTriggerEvents(lines []string) (environment, interaction []string) {
	environment = []string{}
	interaction = []string{}
	category := ""
	var current string

	flush := func() {
		if current == "" || category == "" {
			current = ""
			return
		}
		if category == "environment" {
			environment = append(environment, CleanText(current))
		} else {
			interaction = append(interaction, CleanText(current))
		}
		current = ""
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if IsPageHeader(line) {
			continue
		}

		if strings.Contains(line, "Environment-based") || strings.Contains(line, "Environment based") {
			flush()
			category = "environment"
			continue
		}
		if strings.Contains(line, "Interaction-based") || strings.Contains(line, "Interaction based") {
			flush()
			category = "interaction"
			continue
		}

		if line == "" {
			continue
		}
		if bulletChars[line] {
			flush()
			continue
		}
		if isExactSection(line) {
			break
		}

		// An inline bullet starts a new item under a known category. With no
		// category yet the text keeps accumulating so nothing is lost before
		// the trailing default applies.
		switch {
		case strings.HasPrefix(line, "• "):
			if category != "" {
				flush()
			}
			line = line[len("• "):]
		case strings.HasPrefix(line, "- "):
			if category != "" {
				flush()
			}
			line = line[len("- "):]
		}

		if current != "" {
			current += " " + line
		} else {
			current = line
		}
	}

	// Uncategorized trailing text defaults to interaction-based.
	if current != "" && category == "" {
		interaction = append(interaction, CleanText(current))
	} else {
		flush()
	}

	return environment, interaction
}
