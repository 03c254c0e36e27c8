package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Assets inspects and exports the images embedded in source PDFs. The BPT
// documents carry one process-flow diagram per process alongside small
// logos and rules that must be filtered out.
type Assets struct{}

// NewAssets creates an asset inspector.
func NewAssets() *Assets {
	return &Assets{}
}

// ScanImages inventories the image XObjects of every page, returning their
// dimensions and encoding without decoding the image data.
func (a *Assets) ScanImages(d *Document) []ImageInfo {
	var images []ImageInfo
	for pageNum := 1; pageNum <= d.NumPages(); pageNum++ {
		images = append(images, a.scanPage(d.reader, pageNum)...)
	}
	return images
}

// ScanPageRange inventories images on pages start..end inclusive (1-based).
func (a *Assets) ScanPageRange(d *Document, start, end int) []ImageInfo {
	var images []ImageInfo
	if start < 1 {
		start = 1
	}
	if end > d.NumPages() {
		end = d.NumPages()
	}
	for pageNum := start; pageNum <= end; pageNum++ {
		images = append(images, a.scanPage(d.reader, pageNum)...)
	}
	return images
}

// scanPage extracts image info from a single page's XObject dictionary.
func (a *Assets) scanPage(r *pdf.Reader, pageNum int) []ImageInfo {
	var images []ImageInfo

	defer func() {
		// Malformed resource dictionaries panic inside the library; a bad
		// page must not abort the scan.
		_ = recover()
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return images
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return images
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return images
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}
		if info := a.imageInfo(obj, pageNum); info != nil {
			images = append(images, *info)
		}
	}

	return images
}

// imageInfo reads dimensions and encoding from an image XObject.
func (a *Assets) imageInfo(obj pdf.Value, pageNum int) *ImageInfo {
	defer func() {
		_ = recover()
	}()

	info := &ImageInfo{PageNumber: pageNum, Format: "unknown"}

	if width := obj.Key("Width"); !width.IsNull() {
		info.Width = int(width.Int64())
	}
	if height := obj.Key("Height"); !height.IsNull() {
		info.Height = int(height.Int64())
	}
	if filter := obj.Key("Filter"); !filter.IsNull() {
		info.Format = normalizeImageFormat(filter.Name())
	}

	if info.Width > 0 && info.Height > 0 {
		return info
	}
	return nil
}

// normalizeImageFormat converts PDF filter names to readable format names.
func normalizeImageFormat(filterName string) string {
	switch filterName {
	case "DCTDecode":
		return "JPEG"
	case "JPXDecode":
		return "JPEG2000"
	case "CCITTFaxDecode":
		return "TIFF/Fax"
	case "JBIG2Decode":
		return "JBIG2"
	case "FlateDecode":
		return "PNG/Deflate"
	case "LZWDecode":
		return "LZW"
	case "RunLengthDecode":
		return "RLE"
	default:
		if filterName != "" {
			return filterName
		}
		return "unknown"
	}
}

// ExportImages writes the images of the given page range to outDir and
// returns the created file paths sorted by name. outDir must exist and be
// empty or contain only previously exported images.
func (a *Assets) ExportImages(filePath, outDir string, startPage, endPage int) ([]string, error) {
	if startPage < 1 || endPage < startPage {
		return nil, fmt.Errorf("invalid page range %d-%d", startPage, endPage)
	}

	before, err := dirEntries(outDir)
	if err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages := []string{strconv.Itoa(startPage) + "-" + strconv.Itoa(endPage)}
	if err := api.ExtractImagesFile(filePath, outDir, pages, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	after, err := dirEntries(outDir)
	if err != nil {
		return nil, err
	}

	var created []string
	for name := range after {
		if !before[name] {
			created = append(created, filepath.Join(outDir, name))
		}
	}
	sort.Strings(created)
	return created, nil
}

func dirEntries(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}
	return names, nil
}
