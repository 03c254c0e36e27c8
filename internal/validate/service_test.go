package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
)

func buildDataTree(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()

	bptDir := filepath.Join(dataDir, "bpt", "care_management")
	require.NoError(t, os.MkdirAll(bptDir, 0o750))
	writeRecordFile(t, bptDir, goodBPTRecord())

	broken := goodBPTRecord()
	broken.ProcessName = "Manage Case Information"
	broken.ProcessDetails.Description = ""
	broken.ProcessDetails.ProcessSteps = nil
	writeRecordFile(t, bptDir, broken)

	bcmDir := filepath.Join(dataDir, "bcm", "care_management")
	require.NoError(t, os.MkdirAll(bcmDir, 0o750))
	writeRecordFile(t, bcmDir, goodBCMRecord())

	return dataDir
}

func TestServiceRun(t *testing.T) {
	dataDir := buildDataTree(t)
	service := NewService(dataDir, "", 100*1024*1024)

	report, err := service.Run(RunRequest{DocTypes: []string{"bpt", "bcm"}})
	require.NoError(t, err)

	assert.Len(t, report.Files, 3)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 0, report.Warned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.ExitCode())

	require.Len(t, report.Stats, 2)
	bcmStats, bptStats := report.Stats[0], report.Stats[1]
	assert.Equal(t, "bcm", bcmStats.DocType)
	assert.Equal(t, 1, bcmStats.Processes)
	assert.Equal(t, 5, bcmStats.TotalQuestions)
	assert.Equal(t, 25, bcmStats.LevelsFilled)

	assert.Equal(t, "bpt", bptStats.DocType)
	assert.Equal(t, 2, bptStats.Processes)
	assert.Equal(t, 3, bptStats.TotalSteps)
	assert.Equal(t, 2, bptStats.TotalTriggers)
}

func TestServiceRunAreaFilter(t *testing.T) {
	dataDir := buildDataTree(t)

	// Second area alongside care_management.
	otherDir := filepath.Join(dataDir, "bpt", "financial_management")
	require.NoError(t, os.MkdirAll(otherDir, 0o750))
	other := goodBPTRecord()
	other.BusinessArea = "Financial Management"
	other.ProcessCode = "FM"
	writeRecordFile(t, otherDir, other)

	service := NewService(dataDir, "", 100*1024*1024)

	report, err := service.Run(RunRequest{
		DocTypes: []string{"bpt"},
		Area:     "Financial Management",
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "Financial Management", report.Files[0].Area)
}

func TestServiceRunAreaFilterSkipsBrokenOutOfScopeFiles(t *testing.T) {
	dataDir := buildDataTree(t)

	otherDir := filepath.Join(dataDir, "bpt", "financial_management")
	require.NoError(t, os.MkdirAll(otherDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(otherDir, "bad.json"), []byte("not json"), 0o600))

	service := NewService(dataDir, "", 100*1024*1024)

	report, err := service.Run(RunRequest{
		DocTypes: []string{"bpt"},
		Area:     "Care Management",
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	for _, fr := range report.Files {
		assert.Equal(t, "Care Management", fr.Area)
	}

	// Without the filter the broken file still fails the run.
	report, err = service.Run(RunRequest{DocTypes: []string{"bpt"}})
	require.NoError(t, err)
	assert.Len(t, report.Files, 3)
	assert.Equal(t, 2, report.Failed)
}

func TestServiceRunMissingTree(t *testing.T) {
	service := NewService(t.TempDir(), "", 100*1024*1024)

	report, err := service.Run(RunRequest{DocTypes: []string{"bpt", "bcm"}})
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Equal(t, 0, report.ExitCode())
}

func TestReportRenderText(t *testing.T) {
	dataDir := buildDataTree(t)
	service := NewService(dataDir, "", 100*1024*1024)

	report, err := service.Run(RunRequest{DocTypes: []string{"bpt", "bcm"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	report.RenderText(&buf)
	out := buf.String()

	assert.Contains(t, out, "Validation Report")
	assert.Contains(t, out, "ISSUE: description is empty")
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "Summary: 2 passed, 0 with warnings, 1 failed (3 files)")
}

func TestAreaFromDir(t *testing.T) {
	codes := mita.DefaultAreaCodes()

	assert.Equal(t, "Care Management", areaFromDir("care_management", codes))
	assert.Equal(t, "Eligibility and Enrollment Management",
		areaFromDir("eligibility_and_enrollment_management", codes))
	assert.Equal(t, "", areaFromDir("unknown_area", codes))
}

func TestPageRangeOf(t *testing.T) {
	rec := goodBPTRecord()

	start, end := pageRangeOf(rec)
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	rec.Metadata.SourcePageRange = "7"
	start, end = pageRangeOf(rec)
	assert.Equal(t, 7, start)
	assert.Equal(t, 7, end)

	rec.Metadata.SourcePageRange = ""
	start, end = pageRangeOf(rec)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
