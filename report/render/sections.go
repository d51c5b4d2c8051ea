package render

import (
	"fmt"
	"strings"

	"resume-check/report/model"
)

// Group is one list of content strings. A non-empty Prefix flattens the
// whole list into a single "<prefix><a, b, c>" line.
type Group struct {
	Prefix string
	Items  []string
}

// Section is a heading followed by its content groups.
type Section struct {
	Heading string
	Groups  []Group
}

// Lines returns the content strings of the section before word wrapping.
func (s Section) Lines() []string {
	var out []string
	for _, g := range s.Groups {
		if g.Prefix == "" {
			out = append(out, g.Items...)
			continue
		}
		if len(g.Items) == 0 {
			continue
		}
		out = append(out, g.Prefix+strings.Join(g.Items, ", "))
	}
	return out
}

func list(items []string) []Group {
	return []Group{{Items: items}}
}

func scored(title string, score int) string {
	return fmt.Sprintf("%s (%d/100)", title, score)
}

// Sections returns the report sections in their fixed print order.
func Sections(report model.AnalysisReport) []Section {
	d := report.DetailedAnalysis
	return []Section{
		{Heading: scored("Readability Analysis", d.Readability.Score), Groups: list(d.Readability.Feedback)},
		{Heading: scored("Keyword Analysis", d.Keywords.Score), Groups: []Group{
			{Prefix: "Found: ", Items: d.Keywords.Found},
			{Prefix: "Missing: ", Items: d.Keywords.Missing},
		}},
		{Heading: scored("Experience Analysis", d.Experience.Score), Groups: list(d.Experience.Feedback)},
		{Heading: scored("Education Analysis", d.Education.Score), Groups: list(d.Education.Feedback)},
		{Heading: "Impact Verbs", Groups: list(report.SemanticAnalysis.ImpactVerbs)},
		{Heading: "Industry Keywords", Groups: list(report.SemanticAnalysis.IndustryKeywords)},
		{Heading: "Critical Suggestions", Groups: list(report.Suggestions.Critical)},
		{Heading: "Recommended Suggestions", Groups: list(report.Suggestions.Recommended)},
		{Heading: "Optional Suggestions", Groups: list(report.Suggestions.Optional)},
		{Heading: "Hard Skills", Groups: list(report.HardSkills)},
		{Heading: "Soft Skills", Groups: list(report.SoftSkills)},
	}
}
