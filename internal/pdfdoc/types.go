// Package pdfdoc wraps PDF file access for the MITA extraction toolkit:
// line-oriented and position-oriented text retrieval, file validation,
// image inventory and export, and source-directory discovery.
package pdfdoc

// Line is one reconstructed text line together with the 1-based page it
// came from. The extraction heuristics operate on document-wide line slices.
type Line struct {
	Text string
	Page int
}

// TextSpan is a positioned text fragment. Coordinates are PDF user-space
// points: X grows rightward, Y grows upward from the page bottom.
type TextSpan struct {
	Text     string
	X        float64
	Y        float64
	W        float64
	FontSize float64
	Page     int
}

// ValidateFileRequest asks for validation of a single source PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
	// Strict additionally runs full pdfcpu document validation rather than
	// just open/readability checks.
	Strict bool `json:"strict,omitempty"`
}

// ValidateFileResult reports the outcome of a source PDF validation.
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Pages   int    `json:"pages,omitempty"`
	Message string `json:"message,omitempty"`
}

// ImageInfo describes an image XObject found on a page.
type ImageInfo struct {
	PageNumber int    `json:"page_number"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
}
