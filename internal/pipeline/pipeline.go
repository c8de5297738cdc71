// Package pipeline orchestrates one analytics run: assess every record in
// order, render charts, synthesize class insights, and assemble the report
// bundle.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/sahayak/internal/chart"
	"github.com/pavelanni/sahayak/internal/insights"
	"github.com/pavelanni/sahayak/internal/llm"
	"github.com/pavelanni/sahayak/internal/model"
	"github.com/pavelanni/sahayak/internal/report"
)

// Pipeline runs the full analytics flow for a batch of records.
type Pipeline struct {
	requester *llm.Requester
	dir       string
	now       func() time.Time
}

// New creates a pipeline writing artifacts into dir.
func New(requester *llm.Requester, dir string) *Pipeline {
	return &Pipeline{requester: requester, dir: dir, now: time.Now}
}

// Bundle lists everything one run produced. All artifact names carry the
// run's timestamp suffix.
type Bundle struct {
	RunID         string
	Dir           string
	Timestamp     string
	Document      string
	ClassChart    string
	StudentCharts map[int]string
	Archive       string
	Reports       []model.StudentReport
}

// Files returns the bundle's artifact paths: document, archive, class chart,
// then student charts in student order.
func (b Bundle) Files() []string {
	files := make([]string, 0, 3+len(b.StudentCharts))
	if b.Document != "" {
		files = append(files, b.Document)
	}
	if b.Archive != "" {
		files = append(files, b.Archive)
	}
	if b.ClassChart != "" {
		files = append(files, b.ClassChart)
	}
	for _, rep := range b.Reports {
		if p, ok := b.StudentCharts[rep.StudentID]; ok {
			files = append(files, p)
		}
	}
	return files
}

// Run processes the records sequentially in input order. Chart failures are
// logged and leave gaps in the bundle; a document or archive failure aborts
// the run. An empty batch yields an empty bundle without touching the
// reasoning engine.
func (p *Pipeline) Run(ctx context.Context, records []model.StudentRecord) (Bundle, error) {
	started := p.now().UTC()
	bundle := Bundle{
		RunID:         uuid.NewString(),
		Dir:           p.dir,
		Timestamp:     started.Format("20060102_150405"),
		StudentCharts: make(map[int]string),
	}
	if len(records) == 0 {
		return bundle, nil
	}

	log := slog.With("run_id", bundle.RunID, "students", len(records))
	log.Info("starting analytics run")

	for i, rec := range records {
		a := p.requester.Assess(ctx, rec)
		bundle.Reports = append(bundle.Reports, model.NewStudentReport(i, rec, a, p.now().UTC()))
	}

	renderer := chart.NewRenderer(p.dir, bundle.Timestamp)
	for _, rep := range bundle.Reports {
		path, err := renderer.StudentChart(rep)
		if err != nil {
			log.Warn("skipping student chart", "student", rep.StudentName, "error", err)
			continue
		}
		bundle.StudentCharts[rep.StudentID] = path
	}

	classChart, err := renderer.ClassDashboard(bundle.Reports)
	if err != nil {
		log.Warn("skipping class dashboard", "error", err)
	} else {
		bundle.ClassChart = classChart
	}

	ins := insights.Compute(bundle.Reports)
	directives := insights.Synthesize(ins)
	recommendations := insights.Recommendations(ins)

	assembler := report.NewAssembler(p.dir, bundle.Timestamp)
	doc, err := assembler.Assemble(ctx, bundle.Reports, bundle.ClassChart, bundle.StudentCharts, directives, recommendations)
	if err != nil {
		return Bundle{}, fmt.Errorf("assemble report: %w", err)
	}
	bundle.Document = doc

	archive, err := report.WriteArchive(p.dir, bundle.Timestamp, bundle.Reports, started)
	if err != nil {
		return Bundle{}, fmt.Errorf("write archive: %w", err)
	}
	bundle.Archive = archive

	log.Info("analytics run complete", "document", bundle.Document, "archive", bundle.Archive)
	return bundle, nil
}
