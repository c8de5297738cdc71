package llm

import (
	"github.com/pavelanni/sahayak/internal/model"
)

// FallbackAssessment builds the deterministic default assessment used when
// the reasoning service is unavailable or its output is unusable. It is a
// pure function of the record's name and grade: identical input yields
// identical output, and the result always passes shape validation.
func FallbackAssessment(rec model.StudentRecord) model.Assessment {
	return model.Assessment{
		StudentProfile: &model.StudentProfile{
			CurrentGradeLevel: rec.Grade,
			FunctionalLevel:   "Grade level assessment needed",
			LearningPace:      "Average",
			AttentionSpan:     "Medium",
			PeerInteraction:   "Neutral",
			IndependenceLevel: "Medium",
		},
		AcademicPerformance: &model.AcademicPerformance{
			SubjectMastery:     6,
			ComprehensionLevel: 6,
			ApplicationSkills:  6,
			ProblemSolving:     6,
			RetentionRate:      6,
		},
		MultiGradeConsiderations: &model.MultiGradeConsiderations{
			CanHelpYoungerStudents:          false,
			NeedsAdvancedChallenges:         false,
			RequiresIndividualizedAttention: true,
			WorksWellInMixedGroups:          true,
		},
		DetailedStrengths: []model.Strength{{
			Strength:             "Shows potential",
			Evidence:             "Teacher observation",
			ClassroomApplication: "Can participate in group activities",
			TeachingStrategy:     "Provide encouragement and support",
		}},
		DetailedChallenges: []model.Challenge{{
			Challenge:             "Needs assessment",
			RootCause:             "Requires detailed evaluation",
			Severity:              model.SeverityMedium,
			ImpactOnMultiGrade:    "May need individualized attention",
			ImmediateIntervention: "Closer observation needed",
		}},
		Interventions: []model.Intervention{{
			Intervention:           "Individual assessment",
			SpecificImplementation: "One-on-one evaluation with specific activities",
			DailySchedule:          "During individual work time",
			MaterialsNeeded:        "Basic classroom materials",
			ZeroCostAdaptation:     "Use existing materials",
			ExpectedOutcome:        "Better understanding of needs",
		}},
		PersonalizedSummary: &model.PersonalizedSummary{
			ImmediateActionsForTomorrow: []string{
				"Observe " + rec.Name + " more closely during lessons",
				"Note specific areas of strength and challenge",
				"Plan targeted interventions based on observations",
			},
			ThisWeekImplementation: []string{
				"Monday: Detailed observation",
				"Tuesday: Try different teaching approaches",
				"Wednesday: Note what works best",
				"Thursday: Implement successful strategies",
				"Friday: Assess progress",
			},
			SuccessTimeline: "Week 2: Better understanding of student needs. Week 4: Targeted interventions showing results. Week 6: Consistent improvement visible",
		},
	}
}
