// Package insights derives class-wide statistics from a run's student reports
// and synthesizes classroom-management directives from them. All computation
// is a single pass over the immutable report sequence; ties keep input order.
package insights

import (
	"github.com/pavelanni/sahayak/internal/model"
)

// SubjectIssue is one challenge surfaced for class-wide subject callouts.
type SubjectIssue struct {
	Student   string
	Challenge string
	Severity  model.Severity
}

// ClassInsights aggregates every bucket the synthesis and dashboards consume.
// Slices preserve report input order; the *Order fields preserve first-seen
// order for their maps.
type ClassInsights struct {
	TotalStudents int

	GradeOrder  []string
	GradeGroups map[string][]string

	HighPerformers    []string
	NeedUrgentSupport []string

	PeerHelpers         []string
	IndividualAttention []string
	MixedGroupWorkers   []string

	AttentionOrder []string
	AttentionSpans map[string][]string

	PaceCounts map[string]int

	SubjectOrder  []string
	SubjectIssues map[string][]SubjectIssue
}

// Compute buckets every report by grade, performance band, multi-grade role,
// attention span, and (subject, severity) in one pass. Deterministic for
// identical input order.
func Compute(reports []model.StudentReport) ClassInsights {
	ins := ClassInsights{
		TotalStudents:  len(reports),
		GradeGroups:    make(map[string][]string),
		AttentionSpans: make(map[string][]string),
		PaceCounts:     make(map[string]int),
		SubjectIssues:  make(map[string][]SubjectIssue),
	}

	for _, rep := range reports {
		name := rep.StudentName

		if _, seen := ins.GradeGroups[rep.Grade]; !seen {
			ins.GradeOrder = append(ins.GradeOrder, rep.Grade)
		}
		ins.GradeGroups[rep.Grade] = append(ins.GradeGroups[rep.Grade], name)

		a := rep.Assessment

		if perf := a.AcademicPerformance; perf != nil {
			switch model.BandFor(perf.Mean()) {
			case model.BandHigh:
				ins.HighPerformers = append(ins.HighPerformers, name)
			case model.BandUrgent:
				ins.NeedUrgentSupport = append(ins.NeedUrgentSupport, name)
			}
		}

		if mg := a.MultiGradeConsiderations; mg != nil {
			if mg.CanHelpYoungerStudents {
				ins.PeerHelpers = append(ins.PeerHelpers, name)
			}
			if mg.RequiresIndividualizedAttention {
				ins.IndividualAttention = append(ins.IndividualAttention, name)
			}
			if mg.WorksWellInMixedGroups {
				ins.MixedGroupWorkers = append(ins.MixedGroupWorkers, name)
			}
		}

		if prof := a.StudentProfile; prof != nil {
			if prof.AttentionSpan != "" {
				if _, seen := ins.AttentionSpans[prof.AttentionSpan]; !seen {
					ins.AttentionOrder = append(ins.AttentionOrder, prof.AttentionSpan)
				}
				ins.AttentionSpans[prof.AttentionSpan] = append(ins.AttentionSpans[prof.AttentionSpan], name)
			}
			if prof.LearningPace != "" {
				ins.PaceCounts[prof.LearningPace]++
			}
		}

		for _, ch := range a.DetailedChallenges {
			if _, seen := ins.SubjectIssues[rep.Subject]; !seen {
				ins.SubjectOrder = append(ins.SubjectOrder, rep.Subject)
			}
			ins.SubjectIssues[rep.Subject] = append(ins.SubjectIssues[rep.Subject], SubjectIssue{
				Student:   name,
				Challenge: ch.Challenge,
				Severity:  ch.Severity,
			})
		}
	}

	return ins
}

// PeerPairs pairs the i-th peer helper with the i-th urgent-support student,
// truncating at the shorter list. The pairing is positional, not
// similarity-based; leftover students are not paired.
func (ins ClassInsights) PeerPairs() [][2]string {
	n := len(ins.PeerHelpers)
	if len(ins.NeedUrgentSupport) < n {
		n = len(ins.NeedUrgentSupport)
	}
	pairs := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]string{ins.PeerHelpers[i], ins.NeedUrgentSupport[i]})
	}
	return pairs
}

// HighSeverityStudents returns, per subject in first-seen order, the students
// whose challenges in that subject are High severity. Medium and Low never
// surface in class-wide callouts.
func (ins ClassInsights) HighSeverityStudents(subject string) []string {
	var out []string
	for _, issue := range ins.SubjectIssues[subject] {
		if issue.Severity == model.SeverityHigh {
			out = append(out, issue.Student)
		}
	}
	return out
}
