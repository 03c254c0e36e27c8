package pdfdoc

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document provides line- and span-oriented access to an open PDF.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open opens a PDF for extraction. The file must carry a .pdf extension,
// be non-empty and stay under maxFileSize (0 disables the size check).
func Open(path string, maxFileSize int64) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &Document{path: path, file: f, reader: reader}, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// PageLines reconstructs the text lines of a page in reading order.
// Fragments within a row are joined with a space when the horizontal gap
// between them is wide enough to separate words.
func (d *Document) PageLines(pageNum int) ([]string, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)",
			pageNum, d.reader.NumPage())
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text rows from page %d: %w", pageNum, err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return lines, nil
}

// joinRow concatenates the fragments of one text row, inserting spaces at
// word boundaries. Content streams frequently emit words in several spans
// with no explicit whitespace.
func joinRow(words []pdf.Text) string {
	var b strings.Builder
	var prevEnd float64
	endedWithSpace := false

	for i, w := range words {
		if i > 0 && needsSpace(prevEnd, w) && !endedWithSpace && !strings.HasPrefix(w.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(w.S)
		endedWithSpace = strings.HasSuffix(w.S, " ")
		prevEnd = w.X + w.W
	}
	return b.String()
}

// needsSpace reports whether the gap before a fragment spans a word break.
func needsSpace(prevEnd float64, w pdf.Text) bool {
	gap := w.X - prevEnd
	threshold := w.FontSize * 0.2
	if threshold < 1.0 {
		threshold = 1.0
	}
	return gap > threshold
}

// PageSpans returns the positioned text fragments of a page ordered
// top-to-bottom, left-to-right. Empty fragments are dropped.
func (d *Document) PageSpans(pageNum int) ([]TextSpan, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)",
			pageNum, d.reader.NumPage())
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	spans := make([]TextSpan, 0, len(content.Text))
	for _, t := range content.Text {
		text := strings.TrimSpace(t.S)
		if text == "" {
			continue
		}
		spans = append(spans, TextSpan{
			Text:     text,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
			Page:     pageNum,
		})
	}

	// Y grows upward, so descending Y is top-to-bottom reading order.
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y > spans[j].Y
		}
		return spans[i].X < spans[j].X
	})

	return spans, nil
}

// Lines reconstructs the text lines of the whole document, tagging each
// line with its source page.
func (d *Document) Lines() ([]Line, error) {
	var all []Line
	for pageNum := 1; pageNum <= d.reader.NumPage(); pageNum++ {
		pageLines, err := d.PageLines(pageNum)
		if err != nil {
			// Keep going: a damaged page should not lose the rest of the
			// document, extraction is verified downstream anyway.
			continue
		}
		for _, text := range pageLines {
			all = append(all, Line{Text: text, Page: pageNum})
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no text content could be extracted from %s", d.path)
	}
	return all, nil
}

// PlainText returns the plain text of a page, used by the dump tool.
func (d *Document) PlainText(pageNum int) (string, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return "", fmt.Errorf("invalid page number %d", pageNum)
	}
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
