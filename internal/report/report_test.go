package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/mindora/wellness/internal/analytics"
	"github.com/mindora/wellness/internal/models"
)

var now = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func testUser() *models.User {
	return &models.User{
		ID:    "3f2a9c1e-0000-4000-8000-00000000ab12",
		Name:  "Jane Doe",
		Email: "jane.doe@example.com",
		Profile: models.Profile{
			Phone:          "+1-555-0100",
			DateOfBirth:    "1990-05-20",
			Address:        "12 Elm Street",
			MedicalHistory: "Seasonal allergies",
		},
	}
}

func testMoods() []models.MoodEntry {
	return []models.MoodEntry{
		{ID: "m1", Date: now.Add(-2 * time.Hour), Mood: 5, Note: "Great run"},
		{ID: "m2", Date: now.AddDate(0, 0, -1), Mood: 4, Triggers: []string{"work", "sleep"}},
		{ID: "m3", Date: now.AddDate(0, 0, -3), Mood: 2},
		{ID: "m4", Date: now.AddDate(0, 0, -30), Mood: 1},
	}
}

func testJournals() []models.JournalEntry {
	mood := 4
	return []models.JournalEntry{
		{ID: "j1", Date: now.AddDate(0, 0, -1), Title: "Tuesday", Content: strings.Repeat("calm ", 40), Mood: &mood},
	}
}

func model(includePersonal bool, moods []models.MoodEntry, journals []models.JournalEntry) *Model {
	return NewModel(testUser(), moods, journals, Options{
		Range:           analytics.RangeWeek,
		IncludePersonal: includePersonal,
		Now:             now,
	})
}

func assertNoPersonalData(t *testing.T, body string) {
	t.Helper()
	for _, secret := range []string{"jane.doe@example.com", "+1-555-0100", "Jane Doe", "12 Elm Street", "Seasonal allergies", "1990"} {
		if strings.Contains(body, secret) {
			t.Errorf("output contains personal data %q", secret)
		}
	}
}

func TestPseudonym(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"", "MH-USER-XXXX"},
		{"a1", "MH-USER-a1"},
		{"507f1f77bcf86cd7994390Ab", "MH-USER-90Ab"},
	}
	for _, tt := range tests {
		m := &Model{Subject: Subject{ID: tt.id}}
		if got := m.Pseudonym(); got != tt.want {
			t.Errorf("Pseudonym(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNewModel(t *testing.T) {
	m := model(true, testMoods(), testJournals())

	if len(m.Moods) != 3 {
		t.Fatalf("windowed moods = %d, want 3", len(m.Moods))
	}
	if m.AverageMood != "3.7" {
		t.Errorf("AverageMood = %q, want %q", m.AverageMood, "3.7")
	}
	if m.Min != 2 || m.Max != 5 {
		t.Errorf("Min/Max = %d/%d, want 2/5", m.Min, m.Max)
	}
	if got := m.Pseudonym(); got != "MH-USER-ab12" {
		t.Errorf("Pseudonym = %q, want %q", got, "MH-USER-ab12")
	}
	if got := m.ReportID(); !strings.HasPrefix(got, "WR-3F2A9C1E-") {
		t.Errorf("ReportID = %q", got)
	}

	redacted := model(false, testMoods(), testJournals())
	if redacted.Subject.Email != "" || redacted.Subject.Name != "" || redacted.Subject.Profile != (models.Profile{}) {
		t.Errorf("redacted model kept personal data: %+v", redacted.Subject)
	}
}

func TestRenderCSV(t *testing.T) {
	doc, err := RenderCSV(model(true, testMoods(), testJournals()))
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	if doc.Filename != "MH-USER-ab12_Weekly_Summary.csv" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if doc.ContentType != ContentTypeCSV {
		t.Errorf("ContentType = %q", doc.ContentType)
	}

	r := csv.NewReader(bytes.NewReader(doc.Body))
	r.FieldsPerRecord = -1
	if _, err := r.ReadAll(); err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	body := string(doc.Body)
	for _, want := range []string{
		"Personal Wellness Summary - Weekly",
		"Full Name,Jane Doe",
		"Therapist Name,Not assigned",
		"Average Mood,3.7",
		"Excellent (5),1,33.3%",
		"Low (2),1,33.3%",
		"JOURNAL ENTRIES",
		"IMPORTANT DISCLAIMER",
		"Great run",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("csv missing %q", want)
		}
	}
}

func TestRenderCSVWithoutPersonalData(t *testing.T) {
	doc, err := RenderCSV(model(false, testMoods(), testJournals()))
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	body := string(doc.Body)
	assertNoPersonalData(t, body)
	if !strings.Contains(body, "PRIVACY PROTECTED") {
		t.Error("csv missing privacy notice")
	}
}

func TestRenderCSVEmpty(t *testing.T) {
	doc, err := RenderCSV(model(false, nil, nil))
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	body := string(doc.Body)
	if !strings.Contains(body, noEntries) {
		t.Error("empty csv missing no-entries marker")
	}
	if !strings.Contains(body, "Average Mood,N/A") {
		t.Error("empty csv should report N/A average")
	}
	if strings.Contains(body, "JOURNAL ENTRIES") {
		t.Error("journal section should be omitted without journals")
	}
	if !strings.Contains(body, "Excellent (5),0,0.0%") {
		t.Error("empty distribution should be zero")
	}
}

func TestRenderHTML(t *testing.T) {
	moods := testMoods()
	moods[0].Note = "<script>alert(1)</script>"
	doc, err := RenderHTML(model(true, moods, testJournals()))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if doc.Filename != "MH-USER-ab12_Weekly_Summary.html" {
		t.Errorf("Filename = %q", doc.Filename)
	}

	body := string(doc.Body)
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("note was not escaped")
	}
	for _, want := range []string{
		"User Profile Summary",
		"Jane Doe",
		"mood-badge mood-5",
		"Mood Rating Breakdown (Weekly)",
		"Journal Entries",
		"...",
		"Important Disclaimer",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderHTMLWithoutPersonalData(t *testing.T) {
	doc, err := RenderHTML(model(false, nil, nil))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	body := string(doc.Body)
	assertNoPersonalData(t, body)
	for _, want := range []string{"Privacy Protected", noEntries, "MH-USER-ab12"} {
		if !strings.Contains(body, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(body, "Content Preview") {
		t.Error("journal table should be omitted without journals")
	}
}

func TestPreview(t *testing.T) {
	if got := preview(""); got != "No content" {
		t.Errorf("preview(\"\") = %q", got)
	}
	long := strings.Repeat("é", 150)
	got := preview(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != previewRunes+3 {
		t.Errorf("preview truncated to %d runes", len([]rune(got)))
	}
}
