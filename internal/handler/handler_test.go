package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/sahayak/internal/i18n"
	"github.com/pavelanni/sahayak/internal/llm"
)

type downEngine struct{}

func (downEngine) Name() string { return "down" }

func (downEngine) GenerateAssessment(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("service unavailable")
}

func TestMain(m *testing.M) {
	if err := i18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testRouter() http.Handler {
	requester := llm.NewRequester(downEngine{},
		llm.WithBackoff(time.Millisecond, time.Millisecond, 10*time.Millisecond))
	h := New(requester, "test")
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestIndexPage(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SAHAYAK") {
		t.Error("index page missing application name")
	}
}

func multipartUpload(t *testing.T, payload string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("student_data", "students.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, payload); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCustomReportRejectsInvalidBatch(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not an array", `{"name": "A"}`},
		{"missing field", `[{"name": "A", "grade": "Class 4", "remark": "ok", "exam_date": "2024-12-15"}]`},
		{"empty name", `[{"name": "", "grade": "Class 4", "subject": "Math", "remark": "ok", "exam_date": "2024-12-15"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.payload)
			req := httptest.NewRequest(http.MethodPost, "/generate-custom-report", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			testRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCustomReportMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("unrelated", "value")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/generate-custom-report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCustomReportDeliversZip(t *testing.T) {
	payload := `[{"name": "Arjun", "grade": "Class 4", "subject": "Mathematics", "remark": "struggles with word problems", "exam_date": "2024-12-15"}]`
	body, contentType := multipartUpload(t, payload)
	req := httptest.NewRequest(http.MethodPost, "/generate-custom-report", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", got)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "SAHAYAK_Report_") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	var hasPDF, hasArchive, hasChart bool
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "SAHAYAK_Complete_Report_"):
			hasPDF = true
		case strings.HasPrefix(f.Name, "sahayak_analysis_data_"):
			hasArchive = true
		case strings.HasSuffix(f.Name, ".png"):
			hasChart = true
		}
	}
	if !hasPDF || !hasArchive || !hasChart {
		t.Errorf("zip missing artifacts: pdf=%v archive=%v chart=%v", hasPDF, hasArchive, hasChart)
	}
}
