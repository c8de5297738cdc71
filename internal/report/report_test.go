package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pavelanni/sahayak/internal/i18n"
	"github.com/pavelanni/sahayak/internal/insights"
	"github.com/pavelanni/sahayak/internal/llm"
	"github.com/pavelanni/sahayak/internal/model"
	"github.com/pavelanni/sahayak/internal/store"
)

func TestMain(m *testing.M) {
	if err := i18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func demoReports() []model.StudentReport {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	var reports []model.StudentReport
	for i, rec := range store.DemoRecords() {
		reports = append(reports, model.NewStudentReport(i, rec, llm.FallbackAssessment(rec), at))
	}
	return reports
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestAssemble(t *testing.T) {
	reports := demoReports()
	ins := insights.Compute(reports)

	a := NewAssembler(t.TempDir(), "20250310_093000")
	path, err := a.Assemble(context.Background(), reports, "", nil,
		insights.Synthesize(ins), insights.Recommendations(ins))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if filepath.Base(path) != "SAHAYAK_Complete_Report_20250310_093000.pdf" {
		t.Errorf("report file name = %q", filepath.Base(path))
	}
	assertPDF(t, path)
}

func TestAssembleToleratesSparseAssessments(t *testing.T) {
	reports := demoReports()
	for i := range reports {
		reports[i].Assessment = model.Assessment{}
	}

	a := NewAssembler(t.TempDir(), "ts")
	path, err := a.Assemble(context.Background(), reports, "", nil, nil, nil)
	if err != nil {
		t.Fatalf("Assemble() with empty assessments error = %v", err)
	}
	assertPDF(t, path)
}

func TestAssembleSkipsMissingChartFiles(t *testing.T) {
	reports := demoReports()[:1]

	a := NewAssembler(t.TempDir(), "ts")
	path, err := a.Assemble(context.Background(), reports,
		"/nonexistent/class.png", map[int]string{1: "/nonexistent/student.png"}, nil, nil)
	if err != nil {
		t.Fatalf("Assemble() with missing charts error = %v", err)
	}
	assertPDF(t, path)
}
