package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pavelanni/sahayak/internal/model"
)

// Store holds the validated input corpus for one run. Records are ordered and
// immutable; duplicate names are distinct students told apart by position.
type Store struct {
	records []model.StudentRecord
}

// NewDemo creates a store backed by the built-in demo corpus.
func NewDemo() *Store {
	return &Store{records: DemoRecords()}
}

// NewFromFile creates a store from a user-supplied JSON file. A structurally
// invalid file rejects the whole batch; no partial admission.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read student data: %w", err)
	}
	return NewFromJSON(data)
}

// NewFromJSON creates a store from raw JSON student data.
func NewFromJSON(data []byte) (*Store, error) {
	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return &Store{records: records}, nil
}

// Records returns the ordered record sequence. The returned slice is a copy;
// callers cannot mutate the corpus.
func (s *Store) Records() []model.StudentRecord {
	out := make([]model.StudentRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the corpus.
func (s *Store) Len() int { return len(s.records) }

// rawRecord uses pointer fields to tell a missing key from an empty value.
type rawRecord struct {
	Name     *string `json:"name"`
	Grade    *string `json:"grade"`
	Subject  *string `json:"subject"`
	Remark   *string `json:"remark"`
	ExamDate *string `json:"exam_date"`
}

// BatchError reports which record of a batch failed validation and why.
// The whole batch is rejected; the pipeline never sees a partial corpus.
type BatchError struct {
	Index int
	Field string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("invalid student data: record %d: missing or empty field %q", e.Index, e.Field)
}

// ParseRecords deserializes and validates a student data batch. The input
// must be a JSON array of objects each carrying the five required fields;
// name and remark must be non-empty. Exam dates are advisory and checked for
// presence only.
func ParseRecords(data []byte) ([]model.StudentRecord, error) {
	var raw []rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid student data: expected a JSON array of records: %w", err)
	}

	records := make([]model.StudentRecord, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Name == nil || *r.Name == "":
			return nil, &BatchError{Index: i, Field: "name"}
		case r.Grade == nil:
			return nil, &BatchError{Index: i, Field: "grade"}
		case r.Subject == nil:
			return nil, &BatchError{Index: i, Field: "subject"}
		case r.Remark == nil || *r.Remark == "":
			return nil, &BatchError{Index: i, Field: "remark"}
		case r.ExamDate == nil:
			return nil, &BatchError{Index: i, Field: "exam_date"}
		}
		records = append(records, model.StudentRecord{
			Name:     *r.Name,
			Grade:    *r.Grade,
			Subject:  *r.Subject,
			Remark:   *r.Remark,
			ExamDate: *r.ExamDate,
		})
	}
	return records, nil
}

// DemoRecords returns the fixed five-student demo corpus.
func DemoRecords() []model.StudentRecord {
	return []model.StudentRecord{
		{
			Name:     "Arjun",
			Grade:    "Class 4",
			Subject:  "Mathematics",
			Remark:   "Arjun excels in basic arithmetic but struggles with word problems. Shows excellent focus during individual work but gets distracted in group settings. Needs support in reading comprehension for math problems.",
			ExamDate: "2024-12-15",
		},
		{
			Name:     "Priya",
			Grade:    "Class 5",
			Subject:  "English",
			Remark:   "Priya has strong vocabulary but struggles with sentence construction. She helps younger students during reading time, showing leadership qualities. Needs structured grammar practice and confidence building for writing.",
			ExamDate: "2024-12-14",
		},
		{
			Name:     "Rohan",
			Grade:    "Class 3",
			Subject:  "Science",
			Remark:   "Rohan asks insightful questions about nature and experiments but has difficulty following multi-step instructions. Very curious but needs help organizing his thoughts and answers. Great potential for hands-on learning.",
			ExamDate: "2024-12-13",
		},
		{
			Name:     "Kavya",
			Grade:    "Class 5",
			Subject:  "Mathematics",
			Remark:   "Kavya is advanced in calculations and often helps classmates. However, she rushes through problems and makes careless errors. Shows impatience when others are slower to understand concepts.",
			ExamDate: "2024-12-12",
		},
		{
			Name:     "Aman",
			Grade:    "Class 4",
			Subject:  "Hindi",
			Remark:   "Aman has difficulty with reading fluency but loves storytelling in his local dialect. Struggles with formal Hindi writing but shows creativity in oral expression. Needs bridge between his native language and formal Hindi.",
			ExamDate: "2024-12-11",
		},
	}
}
