package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// AnalysisReport is the ATS compatibility result produced once per upload.
type AnalysisReport struct {
	Score            int              `json:"score" validate:"gte=0,lte=100"`
	FileName         string           `json:"fileName" validate:"required"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`
	SoftSkills       []string         `json:"softSkills"`
	HardSkills       []string         `json:"hardSkills"`
	Suggestions      Suggestions      `json:"suggestions"`
	SemanticAnalysis SemanticAnalysis `json:"semanticAnalysis"`
}

// DetailedAnalysis groups the four scored sub-sections.
type DetailedAnalysis struct {
	Readability FeedbackSection `json:"readability"`
	Keywords    KeywordSection  `json:"keywords"`
	Experience  FeedbackSection `json:"experience"`
	Education   FeedbackSection `json:"education"`
}

// FeedbackSection is a scored sub-section carrying free-text feedback.
type FeedbackSection struct {
	Score    int      `json:"score" validate:"gte=0,lte=100"`
	Feedback []string `json:"feedback"`
}

// KeywordSection is the scored keyword match with found and missing terms.
type KeywordSection struct {
	Score   int      `json:"score" validate:"gte=0,lte=100"`
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// Suggestions are improvement hints tiered by severity.
type Suggestions struct {
	Critical    []string `json:"critical"`
	Recommended []string `json:"recommended"`
	Optional    []string `json:"optional"`
}

// SemanticAnalysis holds the wording-level signals of the resume.
type SemanticAnalysis struct {
	MeasurableAchievements int      `json:"measurableAchievements" validate:"gte=0"`
	SkillsEfficiencyRatio  float64  `json:"skillsEfficiencyRatio" validate:"gte=0"`
	ImpactVerbs            []string `json:"impactVerbs"`
	IndustryKeywords       []string `json:"industryKeywords"`
}

// FieldError describes one invalid report field.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// InvalidReportError is returned by Validate when a report breaks its invariants.
type InvalidReportError struct {
	Fields []FieldError
}

func (e *InvalidReportError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Issue)
	}
	return "invalid report: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func reportValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate enforces score ranges, non-negative semantic counters and a file name.
func (r AnalysisReport) Validate() error {
	err := reportValidator().Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &InvalidReportError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Issue: issueFor(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		return namespace[idx+1:]
	}
	return namespace
}

func issueFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}

// Normalized returns a deep copy of the report with nil lists replaced by
// empty ones. The receiver is left untouched.
func (r AnalysisReport) Normalized() AnalysisReport {
	out := r
	out.DetailedAnalysis.Readability.Feedback = cloneList(r.DetailedAnalysis.Readability.Feedback)
	out.DetailedAnalysis.Keywords.Found = cloneList(r.DetailedAnalysis.Keywords.Found)
	out.DetailedAnalysis.Keywords.Missing = cloneList(r.DetailedAnalysis.Keywords.Missing)
	out.DetailedAnalysis.Experience.Feedback = cloneList(r.DetailedAnalysis.Experience.Feedback)
	out.DetailedAnalysis.Education.Feedback = cloneList(r.DetailedAnalysis.Education.Feedback)
	out.SoftSkills = cloneList(r.SoftSkills)
	out.HardSkills = cloneList(r.HardSkills)
	out.Suggestions.Critical = cloneList(r.Suggestions.Critical)
	out.Suggestions.Recommended = cloneList(r.Suggestions.Recommended)
	out.Suggestions.Optional = cloneList(r.Suggestions.Optional)
	out.SemanticAnalysis.ImpactVerbs = cloneList(r.SemanticAnalysis.ImpactVerbs)
	out.SemanticAnalysis.IndustryKeywords = cloneList(r.SemanticAnalysis.IndustryKeywords)
	return out
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
