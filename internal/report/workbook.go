package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Patient Summary"
	sheetMoodLog  = "Mood Log (Tabular)"
	sheetChart    = "Chart Data"
	sheetJournals = "Journal Entries"
	sheetInsights = "Clinical Insights"
)

var whitespace = regexp.MustCompile(`\s+`)

// sheetWriter appends rows to one worksheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	name string
	row  int
	err  error
}

func (w *sheetWriter) line(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.row++
	if len(values) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.name, cell, &values)
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.name, col, col, width)
	}
}

// RenderWorkbook builds the clinical workbook: a patient summary, the
// tabular mood log, chart data with daily averages, journal entries when
// present and a clinical insights narrative.
func RenderWorkbook(m *Model) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	names := []string{sheetMoodLog, sheetChart}
	if len(m.Journals) > 0 {
		names = append(names, sheetJournals)
	}
	names = append(names, sheetInsights)
	for _, name := range names {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	writers := []func(*excelize.File, *Model) error{writeSummarySheet, writeMoodLogSheet, writeChartSheet}
	if len(m.Journals) > 0 {
		writers = append(writers, writeJournalSheet)
	}
	writers = append(writers, writeInsightsSheet)
	for _, write := range writers {
		if err := write(f, m); err != nil {
			return nil, fmt.Errorf("failed to write workbook: %w", err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return &Document{
		Filename:    workbookFilename(m),
		ContentType: ContentTypeXLSX,
		Body:        buf.Bytes(),
	}, nil
}

func workbookFilename(m *Model) string {
	subject := "Patient"
	switch {
	case !m.IncludePersonal:
		subject = m.Pseudonym()
	case strings.TrimSpace(m.Subject.Name) != "":
		subject = whitespace.ReplaceAllString(strings.TrimSpace(m.Subject.Name), "_")
	}
	return fmt.Sprintf("Wellness_Report_%s_%s_%s.xlsx", subject, m.Range, m.local(m.GeneratedAt).Format("2006-01-02"))
}

const notApplicable = "N/A"

func scoreOrNA(ok bool, format string, v interface{}) string {
	if !ok {
		return notApplicable
	}
	return fmt.Sprintf(format, v)
}

func writeSummarySheet(f *excelize.File, m *Model) error {
	w := &sheetWriter{f: f, name: sheetSummary}
	section := func(title string) {
		w.line(rule)
		w.line(title)
		w.line(rule)
	}

	w.line("MENTAL WELLNESS REPORT - CONFIDENTIAL")
	w.line("FOR CLINICAL USE ONLY")
	w.line()

	section("PATIENT INFORMATION")
	if m.IncludePersonal {
		p := m.Subject.Profile
		age := notApplicable
		if years, ok := p.AgeAt(m.GeneratedAt); ok {
			age = fmt.Sprintf("%d years", years)
		}
		w.line("Full Name:", orDefault(m.Subject.Name, notApplicable))
		w.line("Email Address:", orDefault(m.Subject.Email, notApplicable))
		w.line("Phone Number:", orDefault(p.Phone, notApplicable))
		w.line("Date of Birth:", orDefault(p.DateOfBirth, notApplicable))
		w.line("Age:", age)
		w.line("Gender:", orDefault(p.Gender, notApplicable))
		w.line("Address:", orDefault(p.Address, notApplicable))
		w.line()
		w.line("Emergency Contact:", orDefault(p.EmergencyContact, notApplicable))
		w.line()
		w.line("Medical History:", orDefault(p.MedicalHistory, notApplicable))
		w.line()
		w.line("Current Therapist:", orDefault(p.TherapistName, notApplicable))
		w.line("Therapist Contact:", orDefault(p.TherapistContact, notApplicable))
	} else {
		w.line("PRIVACY PROTECTED")
		w.line("Personal identifying information excluded from this report")
		w.line("Patient Identifier:", m.Pseudonym())
	}
	w.line()

	section("REPORT DETAILS")
	w.line("Time Period Analyzed:", strings.ToUpper(string(m.Range)))
	w.line("Report Generated:", m.dateLabel(m.GeneratedAt)+" at "+m.timeLabel(m.GeneratedAt))
	w.line("Total Days in Period:", m.Range.Days())
	w.line()

	n := len(m.Moods)
	section("MOOD STATISTICS SUMMARY")
	w.line("Total Mood Check-ins:", n)
	w.line("Average Mood Score:", m.AverageMood+" / 5.0")
	w.line("Highest Mood Recorded:", scoreOrNA(m.HasScores, "%d / 5.0", m.Max))
	w.line("Lowest Mood Recorded:", scoreOrNA(m.HasScores, "%d / 5.0", m.Min))
	w.line("Mood Score Variance:", scoreOrNA(m.HasScores, "%.2f", m.Variance))
	w.line("Tracking Consistency:", scoreOrNA(m.HasScores, "%.1f%%", float64(n)/float64(m.Range.Days())*100))
	w.line()

	section("MOOD DISTRIBUTION ANALYSIS")
	for _, b := range m.ExactBuckets() {
		w.line(b.Label+":", fmt.Sprintf("%d entries (%.1f%%)", b.Count, m.percent(b.Count, n)))
	}
	w.line()

	days := len(m.Daily)
	section("ADDITIONAL WELLNESS METRICS")
	w.line("Total Journal Entries:", len(m.Journals))
	w.line("Days with Recorded Activity:", days)
	w.line("Average Check-ins per Day:", scoreOrNA(days > 0, "%.1f", float64(n)/float64(max(days, 1))))
	w.line()

	section("CLINICAL NOTES")
	w.line("• This report is intended for sharing with qualified healthcare providers")
	w.line("• All data is self-reported by the patient through the wellness application")
	w.line("• Mood scores are on a 1-5 scale: 1=Very Poor, 2=Poor, 3=Okay, 4=Good, 5=Excellent")
	w.line("• This report should be used as supplementary information in clinical assessment")
	w.line("• Not intended as a diagnostic tool - professional evaluation required")
	w.line()
	w.line("Report ID:", m.ReportID())

	w.widths(34, 60)
	return w.err
}

func writeMoodLogSheet(f *excelize.File, m *Model) error {
	w := &sheetWriter{f: f, name: sheetMoodLog}
	w.line("Date", "Time", "Mood Score", "Score (out of 5)", "Mood Category", "Patient Notes", "Triggers")
	if len(m.Moods) == 0 {
		w.line(noEntries)
	}
	for _, e := range m.Moods {
		triggers := "None recorded"
		if len(e.Triggers) > 0 {
			triggers = strings.Join(e.Triggers, ", ")
		}
		w.line(
			m.dateLabel(e.Date),
			m.timeLabel(e.Date),
			e.Mood,
			fmt.Sprintf("%d / 5", e.Mood),
			moodCategory(e.Mood),
			orDefault(e.Note, "(No note provided)"),
			triggers,
		)
	}
	w.widths(12, 12, 11, 15, 14, 50, 30)
	return w.err
}

func writeChartSheet(f *excelize.File, m *Model) error {
	w := &sheetWriter{f: f, name: sheetChart}
	n := len(m.Moods)
	w.line("MOOD DISTRIBUTION CHART DATA")
	w.line()
	w.line("Mood Category", "Count", "Percentage")
	d := m.Exact
	for _, row := range []struct {
		label string
		count int
	}{
		{"Excellent (5)", d.Excellent},
		{"Good (4)", d.Good},
		{"Okay (3)", d.Okay},
		{"Poor (2)", d.Poor},
		{"Very Poor (1)", d.VeryPoor},
	} {
		w.line(row.label, row.count, fmt.Sprintf("%.1f%%", m.percent(row.count, n)))
	}
	w.line()
	w.line(rule)
	w.line("TREND ANALYSIS DATA (Daily Averages)")
	w.line(rule)
	w.line("Date", "Average Mood", "Check-ins")
	if len(m.Daily) == 0 {
		w.line(noEntries)
	}
	for _, day := range m.Daily {
		w.line(day.Date.Format("1/2/2006"), fmt.Sprintf("%.2f", day.Average), day.CheckIns)
	}
	w.widths(20, 14, 12)
	return w.err
}

func writeJournalSheet(f *excelize.File, m *Model) error {
	w := &sheetWriter{f: f, name: sheetJournals}
	w.line("Date", "Time", "Associated Mood", "Entry Content")
	for _, j := range m.Journals {
		associated := notApplicable
		if j.Mood != nil {
			associated = moodCategory(*j.Mood)
		}
		w.line(m.dateLabel(j.Date), m.timeLabel(j.Date), associated, orDefault(j.Content, "(No content)"))
	}
	w.widths(12, 12, 16, 80)
	return w.err
}

func writeInsightsSheet(f *excelize.File, m *Model) error {
	w := &sheetWriter{f: f, name: sheetInsights}
	generatedFor := m.Pseudonym()
	if m.IncludePersonal {
		generatedFor = orDefault(m.Subject.Name, "Patient")
	}
	w.line("PROFESSIONAL WELLNESS INSIGHTS & CLINICAL RECOMMENDATIONS")
	w.line()
	w.line("Generated for: " + generatedFor)
	w.line("Period: " + strings.ToUpper(string(m.Range)))
	w.line()
	for _, text := range clinicalNarrative(m) {
		if text == "" {
			w.line()
			continue
		}
		w.line(text)
	}
	w.widths(90)
	return w.err
}
