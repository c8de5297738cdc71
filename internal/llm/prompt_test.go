package llm

import (
	"strings"
	"testing"

	"github.com/pavelanni/sahayak/internal/model"
)

func TestBuildAssessmentPrompt(t *testing.T) {
	rec := model.StudentRecord{
		Name:     "Kavya",
		Grade:    "Class 5",
		Subject:  "Mathematics",
		Remark:   "rushes through problems and makes careless errors",
		ExamDate: "2024-12-12",
	}

	prompt := BuildAssessmentPrompt(rec)

	wantFragments := []string{
		"Student: Kavya (Grade: Class 5)",
		"Subject: Mathematics",
		`"rushes through problems and makes careless errors"`,
		"CRITICAL: Every recommendation must include EXACTLY what to do, WHEN to do it, HOW LONG it takes, and WHAT materials are needed.",
		`"sahayak_interventions"`,
		"Respond ONLY with the JSON object.",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(prompt, frag) {
			t.Errorf("prompt missing %q", frag)
		}
	}

	if !strings.Contains(prompt, `"current_grade_level": "Class 5"`) {
		t.Error("grade placeholder not substituted into schema template")
	}
	if strings.Contains(prompt, "{{GRADE}}") {
		t.Error("prompt still contains the raw grade placeholder")
	}
}
