package store

import (
	"errors"
	"testing"
)

func TestDemoRecords(t *testing.T) {
	records := DemoRecords()
	if len(records) != 5 {
		t.Fatalf("len(DemoRecords()) = %d, want 5", len(records))
	}

	wantNames := []string{"Arjun", "Priya", "Rohan", "Kavya", "Aman"}
	for i, want := range wantNames {
		if records[i].Name != want {
			t.Errorf("record %d: Name = %q, want %q", i, records[i].Name, want)
		}
	}
	for i, rec := range records {
		if rec.Grade == "" || rec.Subject == "" || rec.Remark == "" || rec.ExamDate == "" {
			t.Errorf("record %d has empty fields: %+v", i, rec)
		}
	}
}

func TestParseRecordsValid(t *testing.T) {
	data := []byte(`[
		{"name": "Arjun", "grade": "Class 4", "subject": "Mathematics", "remark": "good", "exam_date": "2024-12-15"},
		{"name": "Priya", "grade": "Class 5", "subject": "English", "remark": "improving", "exam_date": "2024-12-14"}
	]`)

	records, err := ParseRecords(data)
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Name != "Arjun" || records[1].Name != "Priya" {
		t.Errorf("records out of input order: %v, %v", records[0].Name, records[1].Name)
	}
}

func TestParseRecordsRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantIndex int
		wantField string
	}{
		{
			"missing subject on second record",
			`[
				{"name": "A", "grade": "Class 4", "subject": "Math", "remark": "ok", "exam_date": "2024-12-15"},
				{"name": "B", "grade": "Class 5", "remark": "ok", "exam_date": "2024-12-14"}
			]`,
			1, "subject",
		},
		{
			"empty name",
			`[{"name": "", "grade": "Class 4", "subject": "Math", "remark": "ok", "exam_date": "2024-12-15"}]`,
			0, "name",
		},
		{
			"empty remark",
			`[{"name": "A", "grade": "Class 4", "subject": "Math", "remark": "", "exam_date": "2024-12-15"}]`,
			0, "remark",
		},
		{
			"missing exam date",
			`[{"name": "A", "grade": "Class 4", "subject": "Math", "remark": "ok"}]`,
			0, "exam_date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseRecords([]byte(tt.data))
			if records != nil {
				t.Errorf("records = %v, want nil on invalid batch", records)
			}
			var batchErr *BatchError
			if !errors.As(err, &batchErr) {
				t.Fatalf("error = %v, want *BatchError", err)
			}
			if batchErr.Index != tt.wantIndex || batchErr.Field != tt.wantField {
				t.Errorf("BatchError = {Index: %d, Field: %q}, want {Index: %d, Field: %q}",
					batchErr.Index, batchErr.Field, tt.wantIndex, tt.wantField)
			}
		})
	}
}

func TestParseRecordsNotAnArray(t *testing.T) {
	if _, err := ParseRecords([]byte(`{"name": "A"}`)); err == nil {
		t.Error("ParseRecords() accepted a non-array payload")
	}
}

func TestParseRecordsDuplicateNames(t *testing.T) {
	data := []byte(`[
		{"name": "Arjun", "grade": "Class 4", "subject": "Math", "remark": "ok", "exam_date": "2024-12-15"},
		{"name": "Arjun", "grade": "Class 5", "subject": "English", "remark": "fine", "exam_date": "2024-12-14"}
	]`)

	records, err := ParseRecords(data)
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("duplicate names must stay distinct records, got %d", len(records))
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := NewDemo()
	records := s.Records()
	records[0].Name = "mutated"

	if got := s.Records()[0].Name; got != "Arjun" {
		t.Errorf("store corpus mutated through Records() copy: %q", got)
	}
}
