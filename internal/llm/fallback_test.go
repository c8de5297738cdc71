package llm

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pavelanni/sahayak/internal/model"
)

func TestFallbackAssessmentDeterministic(t *testing.T) {
	rec := model.StudentRecord{
		Name:     "Arjun",
		Grade:    "Class 4",
		Subject:  "Mathematics",
		Remark:   "struggles with word problems",
		ExamDate: "2024-12-15",
	}

	a, err := json.Marshal(FallbackAssessment(rec))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(FallbackAssessment(rec))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("fallback assessment is not byte-identical for identical input")
	}
}

func TestFallbackAssessmentDependsOnNameAndGradeOnly(t *testing.T) {
	base := model.StudentRecord{
		Name:     "Priya",
		Grade:    "Class 5",
		Subject:  "English",
		Remark:   "strong vocabulary",
		ExamDate: "2024-12-14",
	}
	variant := base
	variant.Subject = "Science"
	variant.Remark = "completely different observation"
	variant.ExamDate = "2099-01-01"

	a, _ := json.Marshal(FallbackAssessment(base))
	b, _ := json.Marshal(FallbackAssessment(variant))
	if !bytes.Equal(a, b) {
		t.Error("fallback varies with subject, remark, or exam date")
	}

	renamed := base
	renamed.Name = "Kavya"
	c, _ := json.Marshal(FallbackAssessment(renamed))
	if bytes.Equal(a, c) {
		t.Error("fallback does not vary with student name")
	}
}

func TestFallbackAssessmentIsValid(t *testing.T) {
	a := FallbackAssessment(model.StudentRecord{Name: "Rohan", Grade: "Class 3"})

	if err := a.Validate(); err != nil {
		t.Fatalf("fallback failed shape validation: %v", err)
	}
	if a.StudentProfile == nil || a.AcademicPerformance == nil ||
		a.MultiGradeConsiderations == nil || a.PersonalizedSummary == nil {
		t.Error("fallback is missing sections")
	}
	if len(a.DetailedStrengths) == 0 || len(a.DetailedChallenges) == 0 || len(a.Interventions) == 0 {
		t.Error("fallback is missing list sections")
	}
	for _, s := range a.AcademicPerformance.Scores() {
		if s != 6 {
			t.Errorf("fallback metric = %d, want neutral 6", s)
		}
	}
	if a.StudentProfile.CurrentGradeLevel != "Class 3" {
		t.Errorf("CurrentGradeLevel = %q, want record's grade", a.StudentProfile.CurrentGradeLevel)
	}
}
