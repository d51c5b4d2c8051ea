package model

import (
	"errors"
	"testing"
)

func TestSampleIsValid(t *testing.T) {
	report := Sample("resume.pdf")
	if err := report.Validate(); err != nil {
		t.Fatalf("expected sample to validate, got %v", err)
	}
	if report.FileName != "resume.pdf" {
		t.Fatalf("expected fileName resume.pdf, got %q", report.FileName)
	}
	if report.Score != 85 {
		t.Fatalf("expected score 85, got %d", report.Score)
	}
}

func TestValidateReportsOutOfRangeScores(t *testing.T) {
	report := Sample("resume.pdf")
	report.Score = 101
	report.DetailedAnalysis.Keywords.Score = -1
	report.SemanticAnalysis.MeasurableAchievements = -2

	err := report.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invalid *InvalidReportError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidReportError, got %T", err)
	}

	got := map[string]string{}
	for _, f := range invalid.Fields {
		got[f.Field] = f.Issue
	}
	want := map[string]string{
		"score":                                   "must be <= 100",
		"detailedAnalysis.keywords.score":         "must be >= 0",
		"semanticAnalysis.measurableAchievements": "must be >= 0",
	}
	for field, issue := range want {
		if got[field] != issue {
			t.Fatalf("field %s: expected %q, got %q (all: %v)", field, issue, got[field], got)
		}
	}
	if len(invalid.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %v", len(want), invalid.Fields)
	}
}

func TestValidateRequiresFileName(t *testing.T) {
	report := Sample("")
	err := report.Validate()
	var invalid *InvalidReportError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidReportError, got %v", err)
	}
	if invalid.Fields[0].Field != "fileName" || invalid.Fields[0].Issue != "is required" {
		t.Fatalf("unexpected field error: %+v", invalid.Fields[0])
	}
}

func TestNormalizedFillsNilListsWithoutMutating(t *testing.T) {
	report := AnalysisReport{Score: 10, FileName: "cv.txt", HardSkills: []string{"Go"}}

	out := report.Normalized()
	if out.SoftSkills == nil || out.Suggestions.Critical == nil || out.DetailedAnalysis.Keywords.Missing == nil {
		t.Fatal("expected nil lists to be replaced with empty slices")
	}
	if report.SoftSkills != nil {
		t.Fatal("expected input report to stay untouched")
	}

	out.HardSkills[0] = "Rust"
	if report.HardSkills[0] != "Go" {
		t.Fatal("expected normalized lists to be copies")
	}
}
