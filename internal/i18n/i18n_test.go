package i18n

import (
	"context"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if err := Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestInitRejectsBadLanguage(t *testing.T) {
	if err := Init("not a language tag"); err == nil {
		t.Error("Init() accepted an invalid language tag")
	}
	// Restore a working bundle for the other tests.
	if err := Init("en"); err != nil {
		t.Fatal(err)
	}
}

func TestT(t *testing.T) {
	ctx := WithLocalizer(context.Background(), NewLocalizer("en"))

	if got := T(ctx, "AppTitle"); got != "SAHAYAK" {
		t.Errorf("T(AppTitle) = %q, want SAHAYAK", got)
	}
	if got := T(ctx, "StudentReports"); got != "Individual Student Reports" {
		t.Errorf("T(StudentReports) = %q, want the section divider heading", got)
	}
	if got := T(ctx, "NoSuchMessage"); got != "NoSuchMessage" {
		t.Errorf("T on unknown ID = %q, want the ID back", got)
	}
}

func TestTd(t *testing.T) {
	ctx := WithLocalizer(context.Background(), NewLocalizer("en"))

	got := Td(ctx, "StudentReportN", map[string]any{"Name": "Arjun", "Grade": "Class 4"})
	if got != "Student Report: Arjun (Class 4)" {
		t.Errorf("Td(StudentReportN) = %q", got)
	}
}

func TestHindiLocale(t *testing.T) {
	ctx := WithLocalizer(context.Background(), NewLocalizer("hi"))

	if got := T(ctx, "AppTitle"); got != "सहायक" {
		t.Errorf("T(AppTitle) in hi = %q", got)
	}
}

func TestDefaultLocalizerWithoutContext(t *testing.T) {
	if got := T(context.Background(), "AppTitle"); got != "SAHAYAK" {
		t.Errorf("T without localizer in context = %q, want English default", got)
	}
}
