package validate

import (
	"strconv"
	"strings"

	"github.com/naretakis/mita-open-blueprint/internal/mita"
)

// artifactMarkers are page furniture strings that leak into extracted text
// when a page header or footer is missed during extraction.
var artifactMarkers = []string{
	"Part I",
	"Appendix C",
	"Appendix D",
	"Page ",
	"May 2014",
	"Version 3.0",
	"Model Details",
	"Matrix Details",
}

// checkQuality scans record text for leftover extraction artifacts.
func (c *Checker) checkQuality(report *FileReport, rec *mita.ProcessRecord) {
	if rec.ProcessDetails != nil {
		d := rec.ProcessDetails
		c.scanArtifacts(report, "description", d.Description)
		for i, step := range d.ProcessSteps {
			c.scanArtifacts(report, stepLabel(i), step)
			if strings.Contains(step, "Item") || strings.Contains(step, "Details") {
				report.warn("%s may contain table header remnants", stepLabel(i))
			}
		}
		for _, t := range d.TriggerEvents.EnvironmentBased {
			c.scanArtifacts(report, "trigger event", t)
		}
		for _, t := range d.TriggerEvents.InteractionBased {
			c.scanArtifacts(report, "trigger event", t)
		}
	}

	if rec.MaturityModel != nil {
		for i, q := range rec.MaturityModel.CapabilityQuestions {
			if strings.HasPrefix(q.Question, "Capability Question") {
				report.warn("question %d still carries table header text", i+1)
			}
			c.scanArtifacts(report, questionLabel(i), q.Question)
			for lvl := 1; lvl <= 5; lvl++ {
				c.scanArtifacts(report, levelLabel(i, lvl), q.Levels.ByIndex(lvl))
			}
		}
	}
}

func (c *Checker) scanArtifacts(report *FileReport, where, text string) {
	for _, marker := range artifactMarkers {
		if strings.Contains(text, marker) {
			report.warn("%s contains page artifact %q", where, marker)
		}
	}
}

func stepLabel(i int) string {
	return "step " + strconv.Itoa(i+1)
}

func questionLabel(i int) string {
	return "question " + strconv.Itoa(i+1)
}

func levelLabel(i, lvl int) string {
	return "question " + strconv.Itoa(i+1) + " level " + strconv.Itoa(lvl)
}
