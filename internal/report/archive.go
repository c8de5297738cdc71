package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pavelanni/sahayak/internal/model"
)

const (
	archiveSystem      = "SAHAYAK - AI Teaching Assistant"
	archiveVersion     = "1.0"
	archiveDesignedFor = "Multi-grade classrooms in low-resource environments"
)

// WriteArchive writes the machine-readable JSON archive for one run and
// returns its path. The archive mirrors the PDF's content as structured data.
func WriteArchive(dir, timestamp string, reports []model.StudentReport, at time.Time) (string, error) {
	arc := model.Archive{
		Metadata: model.ArchiveMetadata{
			System:        archiveSystem,
			Version:       archiveVersion,
			TotalStudents: len(reports),
			AnalysisDate:  at,
			DesignedFor:   archiveDesignedFor,
		},
		Students: reports,
	}

	data, err := json.MarshalIndent(arc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal archive: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("sahayak_analysis_data_%s.json", timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}
	return path, nil
}

// ReadArchive loads an archive file written by WriteArchive.
func ReadArchive(path string) (model.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Archive{}, fmt.Errorf("read archive: %w", err)
	}
	var arc model.Archive
	if err := json.Unmarshal(data, &arc); err != nil {
		return model.Archive{}, fmt.Errorf("parse archive: %w", err)
	}
	return arc, nil
}
