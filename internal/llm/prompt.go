package llm

import (
	"fmt"
	"strings"

	"github.com/pavelanni/sahayak/internal/model"
)

// assessmentSchema is the structural template embedded in every brief. It is
// an example document, not a formal JSON schema: the service is told to fill
// the same shape for the student at hand. {{GRADE}} is replaced with the
// record's grade label.
const assessmentSchema = `{
    "student_profile": {
        "current_grade_level": "{{GRADE}}",
        "functional_level": "Grade X equivalent",
        "learning_pace": "Fast/Average/Slow",
        "attention_span": "Short/Medium/Long",
        "peer_interaction": "Helpful/Neutral/Needs_Support",
        "independence_level": "High/Medium/Low"
    },
    "academic_performance": {
        "subject_mastery": 7,
        "comprehension_level": 6,
        "application_skills": 5,
        "problem_solving": 6,
        "retention_rate": 7
    },
    "multi_grade_considerations": {
        "can_help_younger_students": true,
        "needs_advanced_challenges": false,
        "requires_individualized_attention": true,
        "works_well_in_mixed_groups": false
    },
    "detailed_strengths": [
        {
            "strength": "Strong arithmetic foundation",
            "evidence": "excels in basic arithmetic",
            "classroom_application": "Can be peer tutor for younger students",
            "teaching_strategy": "Use as math helper during multi-grade activities"
        }
    ],
    "detailed_challenges": [
        {
            "challenge": "Word problem comprehension",
            "root_cause": "Reading comprehension difficulties affecting math",
            "severity": "Medium",
            "impact_on_multi_grade": "May struggle when class does combined reading-math activities",
            "immediate_intervention": "Provide visual word problem templates"
        }
    ],
    "sahayak_interventions": [
        {
            "intervention": "Create visual math problem templates using classroom objects",
            "specific_implementation": "EXACTLY: Use 5 stones, 3 sticks, and 2 books to create word problems while physically moving objects",
            "daily_schedule": "WHEN: Every day at 10:15 AM, right after morning prayers, for exactly 8 minutes",
            "classroom_positioning": "WHERE: Seat in front row, second seat from left, facing the demonstration table",
            "materials_needed": "5 small stones, 3 wooden sticks, 2 old textbooks, 1 small cloth to place objects",
            "step_by_step_process": [
                "Step 1: Place objects on cloth (30 seconds)",
                "Step 2: Read problem aloud while pointing to objects (1 minute)",
                "Step 3: Have student physically move objects to solve (2 minutes)",
                "Step 4: Ask them to explain what they did (1 minute)",
                "Step 5: Write the number sentence on blackboard together (30 seconds)"
            ],
            "zero_cost_adaptation": "Use broken chalk pieces, torn paper strips, and small stones from playground",
            "expected_outcome": "After 2 weeks: Can solve 3 object-based word problems independently",
            "how_to_measure_success": "Count how many word problems they attempt vs avoid. Success = attempts 80% of word problems given"
        }
    ],
    "personalized_summary": {
        "immediate_actions_for_tomorrow": [
            "TOMORROW 10:15 AM: Introduce object-based word problems using specific materials",
            "TOMORROW: Move student's seat to optimal position for learning",
            "TOMORROW: Collect necessary materials and place on student's desk corner"
        ],
        "this_week_implementation": [
            "MONDAY: Start daily sessions",
            "TUESDAY: Begin buddy system if applicable",
            "WEDNESDAY: Send parent communication note home",
            "THURSDAY: Implement progress tracking",
            "FRIDAY: Assess week 1 progress"
        ],
        "success_timeline_with_numbers": "Week 2: 50% improvement. Week 4: 70% improvement. Week 6: 80% improvement + can explain to peer. Week 8: Independent with visual supports"
    }
}`

// BuildAssessmentPrompt formats one record into the natural-language brief
// sent to the reasoning service. The brief states the assistant's persona,
// embeds the record fields verbatim, pins the exact output shape, and demands
// materially concrete, time-boxed recommendations.
func BuildAssessmentPrompt(rec model.StudentRecord) string {
	var sb strings.Builder
	sb.WriteString("You are SAHAYAK, an AI teaching assistant for teachers in multi-grade, under-resourced Indian classrooms.\n")
	sb.WriteString("Analyze this student and provide EXTREMELY SPECIFIC, ACTIONABLE insights that a teacher can implement TODAY.\n\n")

	fmt.Fprintf(&sb, "Student: %s (Grade: %s)\n", rec.Name, rec.Grade)
	fmt.Fprintf(&sb, "Subject: %s\n", rec.Subject)
	fmt.Fprintf(&sb, "Teacher Observation: %q\n\n", rec.Remark)

	sb.WriteString("CRITICAL: Every recommendation must include EXACTLY what to do, WHEN to do it, HOW LONG it takes, and WHAT materials are needed.\n")
	sb.WriteString("Be specific about classroom positioning, peer interactions, daily schedules, and concrete activities.\n\n")

	sb.WriteString("Provide detailed analysis in JSON format with HYPER-SPECIFIC teaching strategies:\n\n")
	sb.WriteString(strings.ReplaceAll(assessmentSchema, "{{GRADE}}", rec.Grade))
	sb.WriteString("\n\nFocus on practical, low-resource solutions suitable for teachers managing multiple grades with limited materials.\n")
	sb.WriteString("Respond ONLY with the JSON object.\n")

	return sb.String()
}
