// Package chart renders the per-student and class-wide dashboard images.
// Every chart is a fixed multi-panel raster; a missing assessment section or
// a failing panel skips that panel only, never the whole chart.
package chart

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/pavelanni/sahayak/internal/insights"
	"github.com/pavelanni/sahayak/internal/model"
)

const (
	panelWidth  = 600
	panelHeight = 400
	gridCols    = 3
)

// Renderer writes chart PNGs into the run's working directory, suffixing
// every file with the run timestamp.
type Renderer struct {
	dir       string
	timestamp string
}

// NewRenderer creates a renderer for one run.
func NewRenderer(dir, timestamp string) *Renderer {
	return &Renderer{dir: dir, timestamp: timestamp}
}

// StudentChart renders the six-panel image for one report and returns the
// file path: performance radar, profile fields, multi-grade fit, section
// counts, weekly plan, success timeline.
func (r *Renderer) StudentChart(rep model.StudentReport) (string, error) {
	a := rep.Assessment
	panels := make([][]byte, 6)

	if a.AcademicPerformance != nil {
		panels[0] = r.panel(rep.StudentName, "performance radar", func() ([]byte, error) {
			return renderPerformanceRadar(*a.AcademicPerformance)
		})
	}
	if a.StudentProfile != nil {
		panels[1] = r.panel(rep.StudentName, "profile", func() ([]byte, error) {
			return renderProfileTable(*a.StudentProfile)
		})
	}
	if a.MultiGradeConsiderations != nil {
		panels[2] = r.panel(rep.StudentName, "multi-grade fit", func() ([]byte, error) {
			return renderMultiGradeFit(*a.MultiGradeConsiderations)
		})
	}
	panels[3] = r.panel(rep.StudentName, "overview counts", func() ([]byte, error) {
		return renderOverviewCounts(a)
	})
	if s := a.PersonalizedSummary; s != nil {
		if len(s.ThisWeekImplementation) > 0 {
			panels[4] = r.panel(rep.StudentName, "weekly plan", func() ([]byte, error) {
				return renderTextPanel("This Week Implementation", s.ThisWeekImplementation, 4)
			})
		}
		if s.SuccessTimeline != "" {
			panels[5] = r.panel(rep.StudentName, "timeline", func() ([]byte, error) {
				return renderTextPanel("Success Timeline", []string{s.SuccessTimeline}, 1)
			})
		}
	}

	img, err := composeGrid(panels, gridCols)
	if err != nil {
		return "", fmt.Errorf("compose student chart: %w", err)
	}

	name := fmt.Sprintf("sahayak_student_%d_%s_%s.png",
		rep.StudentID, strings.ReplaceAll(rep.StudentName, " ", "_"), r.timestamp)
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write student chart: %w", err)
	}
	return path, nil
}

// ClassDashboard renders the six-panel class analytics image: grade
// distribution, per-grade mean performance, multi-grade dynamics, per-subject
// performance, learning pace, and attention spans.
func (r *Renderer) ClassDashboard(reports []model.StudentReport) (string, error) {
	ins := insights.Compute(reports)
	panels := make([][]byte, 6)

	if len(ins.GradeOrder) > 0 {
		panels[0] = r.panel("class", "grade distribution", func() ([]byte, error) {
			return renderGradePie(ins)
		})
	}
	if grades, means := gradeMeans(reports); len(grades) > 0 {
		panels[1] = r.panel("class", "grade performance", func() ([]byte, error) {
			return renderMeanBars("Academic Performance by Grade", grades, means)
		})
	}
	panels[2] = r.panel("class", "multi-grade dynamics", func() ([]byte, error) {
		return renderDynamicsBar(ins)
	})
	if subjects, means := subjectMeans(reports); len(subjects) > 0 {
		panels[3] = r.panel("class", "subject performance", func() ([]byte, error) {
			return renderMeanBars("Subject Performance", subjects, means)
		})
	}
	if len(ins.PaceCounts) > 0 {
		panels[4] = r.panel("class", "learning pace", func() ([]byte, error) {
			return renderPacePie(ins)
		})
	}
	if len(ins.AttentionSpans) > 0 {
		panels[5] = r.panel("class", "attention span", func() ([]byte, error) {
			return renderAttentionBar(ins)
		})
	}

	img, err := composeGrid(panels, gridCols)
	if err != nil {
		return "", fmt.Errorf("compose class dashboard: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("sahayak_class_analytics_%s.png", r.timestamp))
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return "", fmt.Errorf("write class dashboard: %w", err)
	}
	return path, nil
}

// panel runs one render and drops its output on failure, so one bad section
// never takes down the whole chart.
func (r *Renderer) panel(subject, name string, render func() ([]byte, error)) []byte {
	buf, err := render()
	if err != nil {
		slog.Warn("skipping chart panel", "subject", subject, "panel", name, "error", err)
		return nil
	}
	return buf
}

func renderPerformanceRadar(perf model.AcademicPerformance) ([]byte, error) {
	values := make([]float64, 0, 5)
	for _, s := range perf.Scores() {
		v := float64(s)
		if v < 0 {
			v = 0
		}
		if v > 10 {
			v = 10
		}
		values = append(values, v)
	}
	maxes := []float64{10, 10, 10, 10, 10}

	p, err := charts.RadarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Academic Performance Profile"),
		charts.RadarIndicatorOptionFunc(model.MetricNames(), maxes),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderProfileTable(prof model.StudentProfile) ([]byte, error) {
	data := [][]string{
		{"Current Grade Level", prof.CurrentGradeLevel},
		{"Functional Level", prof.FunctionalLevel},
		{"Learning Pace", prof.LearningPace},
		{"Attention Span", prof.AttentionSpan},
		{"Peer Interaction", prof.PeerInteraction},
		{"Independence Level", prof.IndependenceLevel},
	}
	p, err := charts.TableRender([]string{"Student Profile", ""}, data)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderMultiGradeFit(mg model.MultiGradeConsiderations) ([]byte, error) {
	labels := []string{
		"Works Well In Mixed Groups",
		"Requires Individualized Attention",
		"Needs Advanced Challenges",
		"Can Help Younger Students",
	}
	values := []float64{
		boolToFloat(mg.WorksWellInMixedGroups),
		boolToFloat(mg.RequiresIndividualizedAttention),
		boolToFloat(mg.NeedsAdvancedChallenges),
		boolToFloat(mg.CanHelpYoungerStudents),
	}

	p, err := charts.HorizontalBarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Multi-Grade Classroom Fit"),
		charts.YAxisDataOptionFunc(labels),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderOverviewCounts(a model.Assessment) ([]byte, error) {
	values := []float64{
		float64(len(a.DetailedStrengths)),
		float64(len(a.DetailedChallenges)),
		float64(len(a.Interventions)),
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Learning Profile Overview"),
		charts.XAxisDataOptionFunc([]string{"Strengths", "Challenges", "Interventions"}),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

// renderTextPanel shows up to limit lines as a one-column table.
func renderTextPanel(title string, lines []string, limit int) ([]byte, error) {
	if len(lines) > limit {
		lines = lines[:limit]
	}
	data := make([][]string, 0, len(lines))
	for _, line := range lines {
		data = append(data, []string{line})
	}
	p, err := charts.TableRender([]string{title}, data)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderGradePie(ins insights.ClassInsights) ([]byte, error) {
	values := make([]float64, 0, len(ins.GradeOrder))
	for _, g := range ins.GradeOrder {
		values = append(values, float64(len(ins.GradeGroups[g])))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: "Grade Distribution", Left: charts.PositionCenter}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data:   ins.GradeOrder,
			Orient: charts.OrientVertical,
			Left:   charts.PositionLeft,
		}),
		charts.PieSeriesShowLabel(),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

// renderMeanBars draws value-labelled mean score bars, axis fixed to [0,10].
func renderMeanBars(title string, labels []string, means []float64) ([]byte, error) {
	p, err := charts.BarRender(
		[][]float64{means},
		charts.TitleTextOptionFunc(title),
		charts.XAxisDataOptionFunc(labels),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
		func(opt *charts.ChartOption) {
			for i := range opt.SeriesList {
				opt.SeriesList[i].Label.Show = true
			}
			opt.YAxisOptions = []charts.YAxisOption{{Min: floatPtr(0), Max: floatPtr(10)}}
		},
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

func renderDynamicsBar(ins insights.ClassInsights) ([]byte, error) {
	values := []float64{
		float64(len(ins.PeerHelpers)),
		float64(len(ins.IndividualAttention)),
		float64(len(ins.MixedGroupWorkers)),
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Multi-Grade Classroom Dynamics"),
		charts.XAxisDataOptionFunc([]string{"Peer Helpers", "Need Individual Attention", "Good in Mixed Groups"}),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

var paceOrder = []string{"Fast", "Average", "Slow"}

func renderPacePie(ins insights.ClassInsights) ([]byte, error) {
	values := make([]float64, 0, len(paceOrder))
	for _, pace := range paceOrder {
		values = append(values, float64(ins.PaceCounts[pace]))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: "Learning Pace Distribution", Left: charts.PositionCenter}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data:   paceOrder,
			Orient: charts.OrientVertical,
			Left:   charts.PositionLeft,
		}),
		charts.PieSeriesShowLabel(),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

var attentionOrder = []string{"Short", "Medium", "Long"}

func renderAttentionBar(ins insights.ClassInsights) ([]byte, error) {
	values := make([]float64, 0, len(attentionOrder))
	for _, span := range attentionOrder {
		values = append(values, float64(len(ins.AttentionSpans[span])))
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Attention Span Distribution"),
		charts.XAxisDataOptionFunc(attentionOrder),
		charts.WidthOptionFunc(panelWidth),
		charts.HeightOptionFunc(panelHeight),
	)
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

// gradeMeans returns per-grade mean scores in first-seen order, skipping
// reports without an academic performance section.
func gradeMeans(reports []model.StudentReport) ([]string, []float64) {
	return groupMeans(reports, func(rep model.StudentReport) string { return rep.Grade })
}

// subjectMeans returns per-subject mean scores in first-seen order.
func subjectMeans(reports []model.StudentReport) ([]string, []float64) {
	return groupMeans(reports, func(rep model.StudentReport) string { return rep.Subject })
}

func groupMeans(reports []model.StudentReport, keyOf func(model.StudentReport) string) ([]string, []float64) {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, rep := range reports {
		perf := rep.Assessment.AcademicPerformance
		if perf == nil {
			continue
		}
		key := keyOf(rep)
		if counts[key] == 0 {
			order = append(order, key)
		}
		sums[key] += perf.Mean()
		counts[key]++
	}

	means := make([]float64, 0, len(order))
	for _, key := range order {
		means = append(means, sums[key]/float64(counts[key]))
	}
	return order, means
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func floatPtr(v float64) *float64 { return &v }
