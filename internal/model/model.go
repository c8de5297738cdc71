package model

import "time"

// StudentRecord is one teacher observation about one student. Records are
// created at ingestion and never modified afterwards. Names are display keys,
// not identities: two records with the same name are two students.
type StudentRecord struct {
	Name     string `json:"name"`
	Grade    string `json:"grade"`
	Subject  string `json:"subject"`
	Remark   string `json:"remark"`
	ExamDate string `json:"exam_date"`
}

// Severity classifies how much a challenge impacts the student.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Valid reports whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// StudentProfile holds the qualitative profile fields of an assessment.
// Values are free-form strings; the fallback generator emits a small fixed
// vocabulary ("Fast"/"Average"/"Slow" and similar).
type StudentProfile struct {
	CurrentGradeLevel string `json:"current_grade_level"`
	FunctionalLevel   string `json:"functional_level"`
	LearningPace      string `json:"learning_pace"`
	AttentionSpan     string `json:"attention_span"`
	PeerInteraction   string `json:"peer_interaction"`
	IndependenceLevel string `json:"independence_level"`
}

// AcademicPerformance holds the five named metric scores, each in [1,10].
type AcademicPerformance struct {
	SubjectMastery     int `json:"subject_mastery"`
	ComprehensionLevel int `json:"comprehension_level"`
	ApplicationSkills  int `json:"application_skills"`
	ProblemSolving     int `json:"problem_solving"`
	RetentionRate      int `json:"retention_rate"`
}

// Scores returns the five metric values in declaration order.
func (p AcademicPerformance) Scores() []int {
	return []int{p.SubjectMastery, p.ComprehensionLevel, p.ApplicationSkills, p.ProblemSolving, p.RetentionRate}
}

// MetricNames returns the display names matching Scores order.
func MetricNames() []string {
	return []string{"Subject Mastery", "Comprehension Level", "Application Skills", "Problem Solving", "Retention Rate"}
}

// Mean returns the mean of the five metric scores.
func (p AcademicPerformance) Mean() float64 {
	sum := 0
	for _, s := range p.Scores() {
		sum += s
	}
	return float64(sum) / 5.0
}

// MultiGradeConsiderations holds the four classroom-fit flags.
type MultiGradeConsiderations struct {
	CanHelpYoungerStudents          bool `json:"can_help_younger_students"`
	NeedsAdvancedChallenges         bool `json:"needs_advanced_challenges"`
	RequiresIndividualizedAttention bool `json:"requires_individualized_attention"`
	WorksWellInMixedGroups          bool `json:"works_well_in_mixed_groups"`
}

// Strength is one observed strength with its classroom use.
type Strength struct {
	Strength             string `json:"strength"`
	Evidence             string `json:"evidence"`
	ClassroomApplication string `json:"classroom_application"`
	TeachingStrategy     string `json:"teaching_strategy"`
}

// Challenge is one observed difficulty with its intervention.
type Challenge struct {
	Challenge             string   `json:"challenge"`
	RootCause             string   `json:"root_cause"`
	Severity              Severity `json:"severity"`
	ImpactOnMultiGrade    string   `json:"impact_on_multi_grade"`
	ImmediateIntervention string   `json:"immediate_intervention"`
}

// Intervention is one concrete, time-boxed action plan.
type Intervention struct {
	Intervention           string   `json:"intervention"`
	SpecificImplementation string   `json:"specific_implementation"`
	DailySchedule          string   `json:"daily_schedule"`
	ClassroomPositioning   string   `json:"classroom_positioning,omitempty"`
	MaterialsNeeded        string   `json:"materials_needed"`
	StepByStepProcess      []string `json:"step_by_step_process,omitempty"`
	ZeroCostAdaptation     string   `json:"zero_cost_adaptation"`
	ExpectedOutcome        string   `json:"expected_outcome"`
	HowToMeasureSuccess    string   `json:"how_to_measure_success,omitempty"`
}

// PersonalizedSummary holds the next-step action plan for one student.
type PersonalizedSummary struct {
	ImmediateActionsForTomorrow []string `json:"immediate_actions_for_tomorrow"`
	ThisWeekImplementation      []string `json:"this_week_implementation"`
	SuccessTimeline             string   `json:"success_timeline_with_numbers"`
}

// Assessment is the structured pedagogical analysis for one student. Each
// section is independently optional in presence, but an assessment that fails
// shape validation is replaced wholesale by the fallback, never patched
// field-by-field.
type Assessment struct {
	StudentProfile           *StudentProfile           `json:"student_profile,omitempty"`
	AcademicPerformance      *AcademicPerformance      `json:"academic_performance,omitempty"`
	MultiGradeConsiderations *MultiGradeConsiderations `json:"multi_grade_considerations,omitempty"`
	DetailedStrengths        []Strength                `json:"detailed_strengths,omitempty"`
	DetailedChallenges       []Challenge               `json:"detailed_challenges,omitempty"`
	Interventions            []Intervention            `json:"sahayak_interventions,omitempty"`
	PersonalizedSummary      *PersonalizedSummary      `json:"personalized_summary,omitempty"`
}

// Validate checks the shape invariants of any sections that are present:
// metric scores must sit in [1,10] and challenge severities must be one of
// the known levels. Absent sections pass.
func (a Assessment) Validate() error {
	if p := a.AcademicPerformance; p != nil {
		for i, s := range p.Scores() {
			if s < 1 || s > 10 {
				return &ShapeError{Section: "academic_performance", Detail: MetricNames()[i] + " out of range"}
			}
		}
	}
	for _, c := range a.DetailedChallenges {
		if !c.Severity.Valid() {
			return &ShapeError{Section: "detailed_challenges", Detail: "unknown severity " + string(c.Severity)}
		}
	}
	return nil
}

// ShapeError reports which assessment section failed validation.
type ShapeError struct {
	Section string
	Detail  string
}

func (e *ShapeError) Error() string {
	return "assessment shape: " + e.Section + ": " + e.Detail
}

// StudentReport pairs one record with its resolved assessment. StudentID is
// the 1-based position of the record within the run. Immutable once created.
type StudentReport struct {
	StudentID      int        `json:"student_id"`
	StudentName    string     `json:"student_name"`
	Grade          string     `json:"grade"`
	Subject        string     `json:"subject"`
	ExamDate       string     `json:"exam_date"`
	OriginalRemark string     `json:"original_remark"`
	AnalysisDate   time.Time  `json:"analysis_date"`
	Assessment     Assessment `json:"analysis"`
}

// NewStudentReport builds the report for the i-th record of a run (0-based in,
// 1-based StudentID out).
func NewStudentReport(i int, rec StudentRecord, a Assessment, at time.Time) StudentReport {
	return StudentReport{
		StudentID:      i + 1,
		StudentName:    rec.Name,
		Grade:          rec.Grade,
		Subject:        rec.Subject,
		ExamDate:       rec.ExamDate,
		OriginalRemark: rec.Remark,
		AnalysisDate:   at,
		Assessment:     a,
	}
}

// Band is the performance classification derived from the metric mean.
type Band string

const (
	BandHigh   Band = "high"
	BandMid    Band = "mid"
	BandUrgent Band = "urgent"
)

// BandFor classifies a five-metric mean. Mean exactly 7.5 is high; mean
// exactly 5.5 is mid, not urgent.
func BandFor(mean float64) Band {
	switch {
	case mean >= 7.5:
		return BandHigh
	case mean < 5.5:
		return BandUrgent
	default:
		return BandMid
	}
}
