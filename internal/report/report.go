// Package report assembles the run's deliverables: the complete PDF document
// and the machine-readable JSON archive.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pavelanni/sahayak/internal/i18n"
	"github.com/pavelanni/sahayak/internal/model"
)

const (
	pageMargin = 15
	lineHeight = 5
)

// Assembler writes the complete report PDF into the run directory.
type Assembler struct {
	dir       string
	timestamp string
}

// NewAssembler creates an assembler for one run.
func NewAssembler(dir, timestamp string) *Assembler {
	return &Assembler{dir: dir, timestamp: timestamp}
}

// Assemble builds the PDF: title and context page, student summary table,
// class dashboard with strategic directives, one section per student in input
// order, and the closing recommendations. Missing charts or assessment
// sections degrade to skipped blocks; only a write failure is fatal.
func (a *Assembler) Assemble(ctx context.Context, reports []model.StudentReport,
	classChart string, studentCharts map[int]string, directives, recommendations []string) (string, error) {

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	d := &doc{pdf: pdf, tr: tr}
	d.titlePage(ctx, reports)
	d.summaryTable(ctx, reports)
	d.classPage(ctx, classChart, directives)
	if len(reports) > 0 {
		d.dividerPage(i18n.T(ctx, "StudentReports"))
	}
	for _, rep := range reports {
		d.studentSection(ctx, rep, studentCharts[rep.StudentID])
	}
	d.closingPage(ctx, recommendations)

	path := filepath.Join(a.dir, fmt.Sprintf("SAHAYAK_Complete_Report_%s.pdf", a.timestamp))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report pdf: %w", err)
	}
	return path, nil
}

// doc wraps the pdf with the core-font translator. Core fonts cover Latin-1
// only, so non-Latin heading translations degrade to replacement glyphs.
type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *doc) titlePage(ctx context.Context, reports []model.StudentReport) {
	d.pdf.AddPage()

	d.pdf.SetFont("Helvetica", "B", 28)
	d.pdf.CellFormat(0, 14, d.tr(i18n.T(ctx, "AppTitle")), "", 1, "C", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 12)
	d.pdf.CellFormat(0, 8, d.tr(i18n.T(ctx, "ReportSubtitle")), "", 1, "C", false, 0, "")
	d.pdf.Ln(6)

	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, lineHeight, d.tr(i18n.T(ctx, "ContextText")), "", "L", false)
	d.pdf.Ln(6)

	d.metaLine(ctx, "ReportGenerated", time.Now().Format("January 2, 2006 at 3:04 PM"))
	d.metaLine(ctx, "TotalStudents", fmt.Sprintf("%d", len(reports)))
	d.metaLine(ctx, "GradesRepresented", strings.Join(gradesOf(reports), ", "))
	d.metaLine(ctx, "AnalysisType", i18n.T(ctx, "AnalysisTypeValue"))
}

func (d *doc) metaLine(ctx context.Context, labelID, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(55, 6, d.tr(i18n.T(ctx, labelID)), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, 6, d.tr(value), "", 1, "L", false, 0, "")
}

func (d *doc) summaryTable(ctx context.Context, reports []model.StudentReport) {
	if len(reports) == 0 {
		return
	}
	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{12, 50, 28, 45, 45}
	headers := []string{"#", "Student", "Grade", "Subject", "Performance"}
	for i, h := range headers {
		d.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 10)
	for _, rep := range reports {
		perf := "pending review"
		if p := rep.Assessment.AcademicPerformance; p != nil {
			perf = fmt.Sprintf("%.1f/10 (%s)", p.Mean(), model.BandFor(p.Mean()))
		}
		cells := []string{
			fmt.Sprintf("%d", rep.StudentID),
			rep.StudentName,
			rep.Grade,
			rep.Subject,
			perf,
		}
		for i, c := range cells {
			d.pdf.CellFormat(widths[i], 7, d.tr(c), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *doc) classPage(ctx context.Context, classChart string, directives []string) {
	d.pdf.AddPage()
	d.heading(i18n.T(ctx, "ClassDashboard"))
	d.image(classChart)

	d.pdf.Ln(4)
	d.heading(i18n.T(ctx, "ClassInsightsHeading"))
	d.pdf.SetFont("Helvetica", "", 9)
	for _, line := range directives {
		if strings.TrimSpace(line) == "" {
			d.pdf.Ln(2)
			continue
		}
		d.pdf.MultiCell(0, lineHeight, d.tr(line), "", "L", false)
	}
}

func (d *doc) studentSection(ctx context.Context, rep model.StudentReport, chartPath string) {
	d.pdf.AddPage()
	d.heading(i18n.Td(ctx, "StudentReportN", map[string]any{
		"Name":  rep.StudentName,
		"Grade": rep.Grade,
	}))
	d.pdf.SetFont("Helvetica", "I", 10)
	d.pdf.CellFormat(0, 6, d.tr(i18n.Td(ctx, "SubjectFocus", map[string]any{"Subject": rep.Subject})), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)

	d.image(chartPath)
	d.pdf.Ln(4)

	d.subheading(i18n.T(ctx, "TeacherObservation"))
	d.pdf.SetFont("Helvetica", "I", 10)
	d.pdf.MultiCell(0, lineHeight, d.tr(fmt.Sprintf("%q", rep.OriginalRemark)), "", "L", false)
	d.pdf.Ln(2)

	a := rep.Assessment
	if s := a.PersonalizedSummary; s != nil && len(s.ImmediateActionsForTomorrow) > 0 {
		d.subheading(i18n.T(ctx, "ImmediateActions"))
		d.bullets(s.ImmediateActionsForTomorrow)
	}
	if len(a.DetailedStrengths) > 0 {
		d.subheading(i18n.T(ctx, "KeyStrengths"))
		for _, s := range a.DetailedStrengths {
			d.bullet(s.Strength + " - " + s.TeachingStrategy)
		}
		d.pdf.Ln(2)
	}
	if len(a.Interventions) > 0 {
		d.subheading(i18n.T(ctx, "ActionItems"))
		top := a.Interventions
		if len(top) > 3 {
			top = top[:3]
		}
		for _, iv := range top {
			line := iv.Intervention
			if iv.DailySchedule != "" {
				line += " (" + iv.DailySchedule + ")"
			}
			d.bullet(line)
		}
		d.pdf.Ln(2)
	}
	if s := a.PersonalizedSummary; s != nil && len(s.ThisWeekImplementation) > 0 {
		d.subheading(i18n.T(ctx, "WeekImplementation"))
		d.bullets(s.ThisWeekImplementation)
	}
}

func (d *doc) closingPage(ctx context.Context, recommendations []string) {
	if len(recommendations) == 0 {
		return
	}
	d.pdf.AddPage()
	d.heading(i18n.T(ctx, "Recommendations"))
	d.pdf.SetFont("Helvetica", "", 9)
	for _, line := range recommendations {
		if strings.TrimSpace(line) == "" {
			d.pdf.Ln(2)
			continue
		}
		d.pdf.MultiCell(0, lineHeight, d.tr(line), "", "L", false)
	}
}

// dividerPage opens a new part of the document with a single large heading.
func (d *doc) dividerPage(text string) {
	d.pdf.AddPage()
	d.pdf.SetY(100)
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.CellFormat(0, 12, d.tr(text), "", 1, "C", false, 0, "")
}

func (d *doc) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *doc) subheading(text string) {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(0, 7, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *doc) bullets(lines []string) {
	for _, line := range lines {
		d.bullet(line)
	}
	d.pdf.Ln(2)
}

func (d *doc) bullet(line string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(6, lineHeight, "-", "", 0, "L", false, 0, "")
	d.pdf.MultiCell(0, lineHeight, d.tr(line), "", "L", false)
}

// image embeds a chart PNG scaled to the content width. A missing or
// unreadable chart leaves a gap instead of failing the document.
func (d *doc) image(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		slog.Warn("skipping report image", "path", path, "error", err)
		return
	}
	w, _ := d.pdf.GetPageSize()
	d.pdf.ImageOptions(path, pageMargin, d.pdf.GetY(), w-2*pageMargin, 0, true,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func gradesOf(reports []model.StudentReport) []string {
	var order []string
	seen := make(map[string]bool)
	for _, rep := range reports {
		if !seen[rep.Grade] {
			seen[rep.Grade] = true
			order = append(order, rep.Grade)
		}
	}
	return order
}
