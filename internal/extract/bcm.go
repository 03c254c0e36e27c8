package extract

import (
	"fmt"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
	"github.com/naretakis/mita-open-blueprint/internal/pdfdoc"
)

// Column x-coordinate bands of the BCM maturity table. Header positions sit
// near Question ~100, L1 ~209, L2 ~313, L3 ~429, L4 ~545, L5 ~649; the band
// edges are the midpoints between neighbouring headers.
var bcmColumnBands = []struct {
	low, high float64
	col       int // 0 = question, 1..5 = maturity level
}{
	{0, 155, 0},
	{155, 261, 1},
	{261, 371, 2},
	{371, 487, 3},
	{487, 597, 4},
	{597, 800, 5},
}

// rowTolerance is the vertical distance, in points, within which spans
// belong to the same table row.
const rowTolerance = 15.0

var questionStarters = []string{"Is ", "How ", "What ", "Does ", "Are ", "Can ", "Will "}

func bcmColumn(x float64) (int, bool) {
	for _, band := range bcmColumnBands {
		if x >= band.low && x < band.high {
			return band.col, true
		}
	}
	return 0, false
}

func startsQuestion(text string) bool {
	for _, w := range questionStarters {
		if strings.HasPrefix(text, w) {
			return true
		}
	}
	return false
}

// ParseBCM extracts every business process from a BCM document. Process
// starts come from the reconstructed line stream; the capability questions
// of each process come from a position-based parse of its page range, with
// a line-based fallback when the positioned parse finds nothing.
func ParseBCM(doc *pdfdoc.Document, lines []pdfdoc.Line, area string, codes mita.AreaCodes, extractedDate string) []*mita.ProcessRecord {
	code := codes.Code(area)
	starts := findBCMStarts(lines, code)

	var processes []*mita.ProcessRecord
	for idx, start := range starts {
		endLine := len(lines)
		if idx+1 < len(starts) {
			endLine = starts[idx+1].startLine
		}
		endPage := start.startPage
		if endLine-1 >= 0 && endLine-1 < len(lines) {
			endPage = lines[endLine-1].Page
		}

		rec := mita.NewBCMRecord(area, cleanBCMSubCategory(start.subCategory, area), start.name, code)
		rec.Metadata = mita.Metadata{
			SourcePageRange: fmt.Sprintf("%d-%d", start.startPage, endPage),
			ExtractedDate:   extractedDate,
		}

		questions := parseBCMTable(doc, start.name, start.startPage, endPage)
		if len(questions) == 0 {
			questions = parseCapabilityQuestionsFromLines(lineTexts(lines[start.startLine:endLine]))
		}
		rec.MaturityModel.CapabilityQuestions = questions

		processes = append(processes, rec)
	}

	return processes
}

func cleanBCMSubCategory(banner, area string) string {
	if banner == "" {
		return area
	}
	// Banner format: "CM – Case Management".
	if parts := strings.SplitN(banner, "–", 2); len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	if parts := strings.Fields(banner); len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return area
}

// findBCMStarts locates process names in the line stream. A process name is
// a title-case line followed within a few lines by its category banner
// ("FM – Accounts Payable Management") or a Capability header.
func findBCMStarts(lines []pdfdoc.Line, code string) []processStart {
	var starts []processStart
	seen := map[string]bool{}

	for i, l := range lines {
		line := strings.TrimSpace(l.Text)

		if line == "" || len(line) < 3 {
			continue
		}
		if strings.Contains(line, "Part I") || strings.Contains(line, "Page") ||
			strings.Contains(line, "Version") || strings.Contains(line, "May 2014") {
			continue
		}
		switch line {
		case "Details", "Item", "Item Details", "Capability", "Question", "Capability Question":
			continue
		}
		if strings.HasPrefix(line, "Level ") {
			continue
		}
		if strings.Contains(line, "Business Capability") || strings.Contains(line, "Appendix") {
			continue
		}
		if mita.BCMCategoryHeaders[line] {
			continue
		}
		// Category banners carry an en dash, questions a question mark.
		if strings.Contains(line, "–") || strings.Contains(line, "?") {
			continue
		}

		isName, subCategory := bcmLookAhead(lines, i, code)
		if !isName || seen[line] {
			continue
		}
		if !looksLikeProcessName(line) {
			continue
		}

		seen[line] = true
		starts = append(starts, processStart{
			name:        line,
			subCategory: subCategory,
			startLine:   i,
			startPage:   l.Page,
		})
	}

	return starts
}

// bcmLookAhead inspects the lines after a candidate name for the category
// banner or Capability header that confirms it.
func bcmLookAhead(lines []pdfdoc.Line, i int, code string) (bool, string) {
	limit := i + 5
	if limit > len(lines) {
		limit = len(lines)
	}
	for j := i + 1; j < limit; j++ {
		next := strings.TrimSpace(lines[j].Text)
		if next == "" {
			continue
		}
		if strings.Contains(next, "–") && strings.Contains(next, code) {
			return true, next
		}
		if next == "Capability" || strings.HasPrefix(next, "Capability Question") {
			return true, ""
		}
		if isUpperStart(next) && !strings.Contains(next, "?") {
			if strings.Contains(next, "–") {
				return true, next
			}
		}
	}
	return false, ""
}

// looksLikeProcessName accepts multi-word title-case lines, allowing common
// lowercase connectives.
func looksLikeProcessName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 {
		return false
	}
	allowed := map[string]bool{
		"the": true, "and": true, "or": true, "of": true,
		"to": true, "for": true, "in": true, "a": true, "an": true,
	}
	for _, w := range words {
		if w == "" {
			continue
		}
		if !isUpperStart(w) && !allowed[w] {
			return false
		}
	}
	return true
}

// bcmRow is one vertical slice of the maturity table: the question-column
// text plus the level-column fragments collected on the same baseline.
type bcmRow struct {
	question string
	levels   [6][]string
}

func (r bcmRow) hasLevelContent() bool {
	for i := 1; i <= 5; i++ {
		if len(r.levels[i]) > 0 {
			return true
		}
	}
	return false
}

// parseBCMTable runs the position-based parse over a process's page range.
func parseBCMTable(doc *pdfdoc.Document, processName string, startPage, endPage int) []mita.CapabilityQuestion {
	rows := collectBCMRows(doc, processName, startPage, endPage)

	p := newBCMTableParser(processName)
	for _, row := range rows {
		if p.consume(row) {
			break
		}
	}
	p.finish()
	return p.questions
}

// collectBCMRows gathers the positioned spans of the page range, filters
// header noise, buckets spans into columns and groups them into rows.
func collectBCMRows(doc *pdfdoc.Document, processName string, startPage, endPage int) []bcmRow {
	processNameLower := strings.ToLower(processName)
	foundProcess := false

	if endPage > doc.NumPages() {
		endPage = doc.NumPages()
	}

	var rows []bcmRow
	for pageNum := startPage; pageNum <= endPage; pageNum++ {
		spans, err := doc.PageSpans(pageNum)
		if err != nil {
			continue
		}

		var row bcmRow
		rowY := -1000.0
		flush := func() {
			if row.question != "" || row.hasLevelContent() {
				rows = append(rows, row)
			}
			row = bcmRow{}
		}

		for _, span := range spans {
			text := span.Text

			if !foundProcess && strings.Contains(strings.ToLower(text), processNameLower) {
				foundProcess = true
			}

			if IsPageHeader(text) {
				continue
			}
			switch text {
			case "Level 1", "Level 2", "Level 3", "Level 4", "Level 5":
				continue
			case "Capability", "Question", "Capability Question", "Details", "Item", "Item Details":
				continue
			}

			// The first page may begin with the tail of the previous
			// process; drop everything before our name appears.
			if pageNum == startPage && !foundProcess {
				continue
			}

			col, ok := bcmColumn(span.X)
			if !ok {
				continue
			}

			if absFloat(span.Y-rowY) >= rowTolerance {
				flush()
				rowY = span.Y
			}
			if col == 0 {
				if row.question != "" {
					row.question += " "
				}
				row.question += text
			} else {
				row.levels[col] = append(row.levels[col], text)
			}
		}
		flush()
	}

	return rows
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// bcmTableParser is the row state machine that assembles capability
// questions from table rows. Level text seen before a question's "?" is
// buffered in pending and merged when the question completes.
type bcmTableParser struct {
	processNameLower string
	category         string
	questions        []mita.CapabilityQuestion

	questionParts []string
	noteParts     []string
	current       [6][]string
	pending       [6][]string
	inQuestion    bool
	seenFirst     bool
}

func newBCMTableParser(processName string) *bcmTableParser {
	return &bcmTableParser{
		processNameLower: strings.ToLower(processName),
		category:         "Business Capability Descriptions",
	}
}

// consume processes one table row; a true return means the next process's
// table has begun and parsing must stop.
func (p *bcmTableParser) consume(row bcmRow) bool {
	question := row.question
	hasLevels := row.hasLevelContent()

	// Category banners and table headers repeat on every page.
	if question != "" && strings.Contains(question, "–") {
		return false
	}
	switch question {
	case "Capability", "Question", "Capability Question":
		return false
	}
	if strings.HasPrefix(question, "Capability Question Level") {
		return false
	}
	if strings.Contains(question, "Level 1") && strings.Contains(question, "Level 2") {
		return false
	}

	if p.isNextProcess(question, hasLevels) {
		return true
	}

	if strings.Contains(question, "Business Capability") {
		p.flushQuestion()
		p.updateCategory(question)
		return false
	}

	if strings.HasPrefix(question, "Capability Question") {
		remainder := strings.TrimSpace(strings.TrimPrefix(question, "Capability Question"))
		if remainder == "" {
			return false
		}
		question = remainder
	}

	if strings.HasPrefix(question, "NOTE:") || strings.HasPrefix(question, "Note:") {
		p.noteParts = append(p.noteParts, notePrefixRe.ReplaceAllString(question, ""))
		return false
	}

	// Continuation of a NOTE that precedes its question.
	if len(p.noteParts) > 0 && len(p.questionParts) == 0 && !hasLevels {
		if !startsQuestion(question) && !strings.Contains(question, "?") {
			p.noteParts = append(p.noteParts, question)
			return false
		}
	}

	if IsPageHeader(question) {
		return false
	}

	// A question cell can carry an embedded NOTE before the real question;
	// keep only the question part.
	if strings.Contains(question, "NOTE:") && strings.Contains(question, "?") {
		if m := embeddedQuestionRe.FindStringSubmatch(question); m != nil {
			question = strings.TrimSpace(m[3])
		}
	}

	switch {
	case strings.Contains(question, "?"):
		if p.inQuestion && startsQuestion(question) {
			p.flushQuestion()
		}
		p.questionParts = append(p.questionParts, question)
		p.inQuestion = true
		for i := 1; i <= 5; i++ {
			p.current[i] = append(p.current[i], p.pending[i]...)
			p.pending[i] = nil
			p.current[i] = append(p.current[i], row.levels[i]...)
		}

	case p.inQuestion && question != "" && !hasLevels:
		p.flushQuestion()
		p.questionParts = []string{question}

	case p.inQuestion && question != "" && hasLevels:
		if startsQuestion(question) {
			p.flushQuestion()
			p.questionParts = []string{question}
			for i := 1; i <= 5; i++ {
				p.pending[i] = append(p.pending[i], row.levels[i]...)
			}
		} else {
			for i := 1; i <= 5; i++ {
				p.current[i] = append(p.current[i], row.levels[i]...)
			}
		}

	case p.inQuestion && hasLevels:
		for i := 1; i <= 5; i++ {
			p.current[i] = append(p.current[i], row.levels[i]...)
		}

	case question != "":
		// Building up question text before the "?" arrives.
		if len(p.questionParts) > 0 || startsQuestion(question) || strings.Contains(question, "?") {
			p.questionParts = append(p.questionParts, question)
			for i := 1; i <= 5; i++ {
				p.pending[i] = append(p.pending[i], row.levels[i]...)
			}
		}
	}

	return false
}

// isNextProcess detects the following process's banner in the question
// column once at least one question has been captured.
func (p *bcmTableParser) isNextProcess(question string, hasLevels bool) bool {
	if !p.seenFirst || question == "" || hasLevels {
		return false
	}
	if strings.Contains(question, "Business Capability") {
		return false
	}
	if strings.Contains(question, "?") || strings.HasPrefix(question, "NOTE") {
		return false
	}
	if startsQuestion(question) {
		return false
	}
	return !strings.Contains(strings.ToLower(question), p.processNameLower)
}

// flushQuestion saves the accumulated question when it is complete and
// resets the row state.
func (p *bcmTableParser) flushQuestion() {
	defer func() {
		p.questionParts = nil
		p.noteParts = nil
		p.current = [6][]string{}
		p.pending = [6][]string{}
		p.inQuestion = false
	}()

	if len(p.questionParts) == 0 || !p.inQuestion {
		return
	}
	qText := strings.Join(p.questionParts, " ")
	if !strings.Contains(qText, "?") {
		return
	}

	q := mita.CapabilityQuestion{
		Category: p.category,
		Question: CleanText(qText),
	}
	for i := 1; i <= 5; i++ {
		q.Levels.SetByIndex(i, formatBCMLevelText(p.current[i]))
	}
	if len(p.noteParts) > 0 {
		q.Note = CleanText(strings.Join(p.noteParts, " "))
	}

	p.questions = append(p.questions, q)
	p.seenFirst = true
}

// finish flushes the trailing question at end of input.
func (p *bcmTableParser) finish() {
	p.flushQuestion()
}

// updateCategory maps a "Business Capability …" banner onto the canonical
// category names.
func (p *bcmTableParser) updateCategory(banner string) {
	switch {
	case strings.Contains(banner, "Descriptions"):
		p.category = "Business Capability Descriptions"
	case strings.Contains(banner, "Timeliness"):
		p.category = "Business Capability Quality: Timeliness of Process"
	case strings.Contains(banner, "Data Access") || strings.Contains(banner, "Accuracy"):
		p.category = "Business Capability Quality: Data Access and Accuracy"
	case strings.Contains(banner, "Cost"):
		p.category = "Business Capability Quality: Cost Effectiveness"
	case strings.Contains(banner, "Effort") || strings.Contains(banner, "Efficiency"):
		p.category = "Business Capability Quality: Effort to Perform; Efficiency"
	case strings.Contains(banner, "Utility") || strings.Contains(banner, "Value"):
		p.category = "Business Capability Quality: Utility or Value to Stakeholders"
	}
}

// formatBCMLevelText joins the fragments of one level cell and keeps NOTE:
// blocks on their own line.
func formatBCMLevelText(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	text := strings.Join(parts, " ")
	text = noteNewlineRe.ReplaceAllString(text, "\n$1")
	return CleanText(text)
}

// parseCapabilityQuestionsFromLines is the line-based fallback used when the
// positioned parse yields nothing. Level attribution without coordinates is
// unreliable; the gathered level text lands in level_1 for manual review.
func parseCapabilityQuestionsFromLines(lines []string) []mita.CapabilityQuestion {
	questions := []mita.CapabilityQuestion{}
	category := "Business Capability Descriptions"

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if strings.Contains(line, "Business Capability") {
			switch {
			case strings.Contains(line, "Descriptions"):
				category = "Business Capability Descriptions"
			case strings.Contains(line, "Timeliness"):
				category = "Business Capability Quality: Timeliness of Process"
			case strings.Contains(line, "Data Access") || strings.Contains(line, "Accuracy"):
				category = "Business Capability Quality: Data Access and Accuracy"
			case strings.Contains(line, "Cost"):
				category = "Business Capability Quality: Cost Effectiveness"
			case strings.Contains(line, "Effort") || strings.Contains(line, "Efficiency"):
				category = "Business Capability Quality: Effort to Perform; Efficiency"
			}
			i++
			continue
		}

		nextEndsQuestion := i+1 < len(lines) && strings.HasSuffix(strings.TrimSpace(lines[i+1]), "?")
		if !strings.HasSuffix(line, "?") && !nextEndsQuestion {
			i++
			continue
		}

		questionText := line
		j := i + 1
		if !strings.HasSuffix(line, "?") {
			for j < len(lines) && !strings.HasSuffix(strings.TrimSpace(lines[j]), "?") {
				next := strings.TrimSpace(lines[j])
				if next == "" || strings.Contains(next, "Level") {
					break
				}
				questionText += " " + next
				j++
			}
			if j < len(lines) && strings.HasSuffix(strings.TrimSpace(lines[j]), "?") {
				questionText += " " + strings.TrimSpace(lines[j])
				j++
			}
		}

		levels := gatherFallbackLevels(lines[j:])
		if questionText != "" {
			questions = append(questions, mita.CapabilityQuestion{
				Category: category,
				Question: CleanText(questionText),
				Levels:   levels,
			})
		}

		i = j + 20
	}

	return questions
}

// gatherFallbackLevels collects level text following a question in the
// fallback parse.
func gatherFallbackLevels(lines []string) mita.Levels {
	var content []string
	limit := 50
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, raw := range lines[:limit] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if IsPageHeader(line) {
			continue
		}
		if strings.Contains(line, "Business Capability") || strings.HasSuffix(line, "?") {
			break
		}
		content = append(content, line)
	}

	var levels mita.Levels
	full := strings.Join(content, " ")
	if full != "" {
		if len(full) > 500 {
			full = full[:500]
		}
		levels.Level1 = CleanText(full)
	}
	return levels
}
