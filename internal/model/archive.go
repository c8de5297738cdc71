package model

import "time"

// ArchiveMetadata describes one analytics run in the archival data file.
type ArchiveMetadata struct {
	System        string    `json:"system"`
	Version       string    `json:"version"`
	TotalStudents int       `json:"total_students"`
	AnalysisDate  time.Time `json:"analysis_date"`
	DesignedFor   string    `json:"designed_for"`
}

// Archive is the top-level JSON structure of the machine-readable data file
// bundled with every report.
type Archive struct {
	Metadata ArchiveMetadata `json:"metadata"`
	Students []StudentReport `json:"students"`
}
