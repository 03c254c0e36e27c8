// Package extract implements the layout heuristics that turn the May 2014
// MITA BPT and BCM PDFs into structured process records. The parsers are
// tuned to the fixed item/details and maturity-matrix table layouts of those
// documents and are not a general PDF text model.
package extract

import (
	"regexp"
	"strings"
)

// Bullet glyphs used in the source PDFs.  and  are Symbol/Wingdings
// code points that survive text extraction as private-use runes.
var bulletChars = map[string]bool{
	"": true,
	"": true,
	"•":      true,
}

// Sub-bullet and nested-bullet glyphs (Wingdings circles and squares).
var (
	subBulletChars    = map[string]bool{"o": true, "O": true, "○": true, "◦": true}
	nestedBulletChars = map[string]bool{"": true, "▪": true, "■": true, "□": true}
)

var (
	multiSpaceRe   = regexp.MustCompile(` +`)
	spaceTabRe     = regexp.MustCompile(`[ \t]+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	pageNumberRe   = regexp.MustCompile(`page\s*\d+`)

	// Page header fragments that leak into extracted text when a section
	// spans a page break.
	headerArtifactRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Part I\s*-?\s*Business Architecture.*?Details`),
		regexp.MustCompile(`(?i)Part I,?\s*Appendix [CD]\s*-?\s*Page\s*\d+`),
		regexp.MustCompile(`(?i)May 2014\s*Version 3\.0`),
		regexp.MustCompile(`[A-Z]{2}\s+[A-Za-z\s]+\s+Item\s+Details`),
	}

	processHeaderRe   = regexp.MustCompile(`^[A-Z]{2}\s+[A-Z]`)
	headerArtifactRe  = regexp.MustCompile(`^[A-Z]{2}\s+[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`)
	numberedItemRe    = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
	subStepRe         = regexp.MustCompile(`^([a-z])\.\s*(.*)$`)
	notePrefixRe      = regexp.MustCompile(`(?i)^NOTE:\s*`)
	noteNewlineRe     = regexp.MustCompile(`(?i)\s+(NOTE:)`)
	embeddedQuestionRe = regexp.MustCompile(`(?is)(.*?)(NOTE:.*?)(\s*(?:Is the|How |What |Does |Are ).*\?.*)`)
)

// dashReplacer normalizes hyphen/en/em dash variants, nbspReplacer drops
// non-breaking spaces.
var (
	dashReplacer = strings.NewReplacer("‐", "-", "–", "-", "—", "-")
	nbspReplacer = strings.NewReplacer(" ", " ")
)

// CleanText normalizes whitespace and dash variants and trims the result.
func CleanText(text string) string {
	text = nbspReplacer.Replace(text)
	text = dashReplacer.Replace(text)
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanExtractedText removes page-header artifacts from multi-line section
// text while preserving paragraph structure.
func CleanExtractedText(text string) string {
	text = dashReplacer.Replace(text)
	text = spaceTabRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	for _, re := range headerArtifactRes {
		text = re.ReplaceAllString(text, "")
	}
	return CleanText(text)
}

// IsPageHeader reports whether a line is a running page header or footer
// that must not reach the extracted output.
func IsPageHeader(line string) bool {
	clean := strings.ToLower(dashReplacer.Replace(nbspReplacer.Replace(line)))

	if pageNumberRe.MatchString(clean) {
		return true
	}
	if strings.Contains(clean, "business architecture") && strings.Contains(clean, "appendix") {
		return true
	}

	for _, pat := range []string{
		"part i", "part 1", "appendix c", "appendix d",
		"may 2014", "version 3.0", "matrix details", "model details",
	} {
		if strings.Contains(clean, pat) {
			return true
		}
	}
	return false
}

// isHeaderArtifact reports whether a line is a repeated table header or
// process banner ("Item", "Details", "CM Case Management") that interleaves
// with list content at page breaks.
func isHeaderArtifact(line, processCode, processName string) bool {
	line = strings.TrimSpace(line)

	switch line {
	case "Item", "Details", "Item Details":
		return true
	}
	if processName != "" && line == processName {
		return true
	}
	if processCode != "" && strings.HasPrefix(line, processCode+" ") {
		return true
	}
	return headerArtifactRe.MatchString(line)
}

// isSectionHeader reports whether a line opens one of the BPT sections,
// either exactly or with trailing content on the same line.
func isSectionHeader(line string, sections []string) bool {
	for _, s := range sections {
		if line == s || strings.HasPrefix(line, s+" ") {
			return true
		}
	}
	return false
}
