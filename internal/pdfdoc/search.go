package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindAreaPDF locates the source PDF inside a business-area directory.
// Each area directory of the May 2014 distribution holds exactly one PDF;
// when several are present the lexicographically first is used so batch
// runs stay deterministic.
func FindAreaPDF(dir string) (string, error) {
	files, err := FindPDFsInDirectory(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no PDF files found in %s", dir)
	}
	return files[0], nil
}

// FindPDFsInDirectory returns the paths of all PDF files directly inside a
// directory, sorted by name.
func FindPDFsInDirectory(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
