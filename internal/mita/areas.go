package mita

import "sort"

// AreaCodes maps every MITA business area to its two-letter process code.
type AreaCodes map[string]string

// DefaultAreaCodes returns the business areas covered by the May 2014 PDFs.
func DefaultAreaCodes() AreaCodes {
	return AreaCodes{
		"Business Relationship Management":      "BR",
		"Care Management":                       "CM",
		"Contractor Management":                 "CO",
		"Eligibility and Enrollment Management": "EE",
		"Financial Management":                  "FM",
		"Operations Management":                 "OM",
		"Performance Management":                "PE",
		"Plan Management":                       "PL",
		"Provider Management":                   "PM",
	}
}

// Code returns the process code for an area, or "XX" when unknown.
func (a AreaCodes) Code(area string) string {
	if code, ok := a[area]; ok {
		return code
	}
	return "XX"
}

// Names returns the area names in sorted order for deterministic batch runs.
func (a AreaCodes) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BPTSections are the row headers of the BPT item/details table, in document
// order. Section content runs from one header to the next.
var BPTSections = []string{
	"Description",
	"Trigger Event",
	"Result",
	"Business Process Steps",
	"Shared Data",
	"Predecessor",
	"Successor",
	"Constraints",
	"Failures",
	"Performance Measures",
}

// BCMCategoryHeaders are section headers that group related BCM processes.
// They repeat in the question column and must never be taken for process
// names.
var BCMCategoryHeaders = map[string]bool{
	"Accounts Receivable Management":        true,
	"Accounts Payable Management":           true,
	"Fiscal Management":                     true,
	"Provider Information Management":       true,
	"Provider Support":                      true,
	"Health Plan Administration":            true,
	"Health Benefits Administration":        true,
	"Plan Administration":                   true,
	"Contract Management":                   true,
	"Contractor Information Management":     true,
	"Contractor Support":                    true,
	"Claims Adjudication":                   true,
	"Payment and Reporting":                 true,
	"Compliance Management":                 true,
	"Authorization Determination":           true,
	"Case Management":                       true,
	"Provider Enrollment":                   true,
	"Standards Management":                  true,
	"Member Management":                     true,
	"Provider Management":                   true,
	"Care Management":                       true,
	"Plan Management":                       true,
	"Operations Management":                 true,
	"Performance Management":                true,
	"Contractor Management":                 true,
	"Business Relationship Management":      true,
	"Eligibility and Enrollment Management": true,
	"Financial Management":                  true,
}
