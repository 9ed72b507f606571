package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// RenderCSV writes the personal wellness summary as a sectioned CSV file.
func RenderCSV(m *Model) (*Document, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	period := m.Range.PeriodLabel()
	rows := [][]string{
		{"Personal Wellness Summary - " + period},
		{"Generated on: " + m.dateLabel(m.GeneratedAt)},
		{"User ID: " + m.Pseudonym()},
		{"For Personal/Trained Professional Review"},
		{"SELF-REPORTED WELLNESS DATA"},
		nil,
	}

	if m.IncludePersonal {
		rows = append(rows, []string{"USER PROFILE SUMMARY"})
		for _, f := range profileFields(m) {
			rows = append(rows, []string{f.Label, f.Value})
		}
	} else {
		rows = append(rows,
			[]string{"PRIVACY PROTECTED"},
			[]string{"Personal identifying information excluded from this report"},
			[]string{"User ID: " + m.Pseudonym()},
		)
	}
	rows = append(rows, nil,
		[]string{"SUMMARY STATISTICS"},
		[]string{"Metric", "Value"},
		[]string{"Average Mood", m.AverageMood},
		[]string{"Total Mood Entries", fmt.Sprint(len(m.Moods))},
		[]string{"Total Journal Entries", fmt.Sprint(len(m.Journals))},
		nil,
		[]string{"PATTERN SUMMARY - MOOD DISTRIBUTION"},
		[]string{"Mood Rating", "Count", "Percentage"},
	)
	for _, b := range m.ThresholdBuckets() {
		rows = append(rows, []string{b.Label, fmt.Sprint(b.Count), fmt.Sprintf("%.1f%%", m.percent(b.Count, len(m.Moods)))})
	}

	rows = append(rows, nil,
		[]string{"DETAILED MOOD LOG"},
		[]string{"Date", "Time", "Mood Rating", "Notes"},
	)
	if len(m.Moods) == 0 {
		rows = append(rows, []string{noEntries})
	}
	for _, e := range m.Moods {
		rows = append(rows, []string{
			m.dateLabel(e.Date),
			m.timeLabel(e.Date),
			fmt.Sprintf("%.1f", float64(e.Mood)),
			orDefault(e.Note, "No notes"),
		})
	}
	rows = append(rows, nil)

	if len(m.Journals) > 0 {
		rows = append(rows, []string{"JOURNAL ENTRIES"}, []string{"Date", "Title", "Content"})
		for _, j := range m.Journals {
			rows = append(rows, []string{
				m.dateLabel(j.Date),
				orDefault(j.Title, "Untitled"),
				orDefault(j.Content, "No content"),
			})
		}
		rows = append(rows, nil)
	}

	rows = append(rows,
		[]string{"IMPORTANT DISCLAIMER"},
		[]string{disclaimer},
		nil,
		[]string{"Generated by " + platformName},
		[]string{"Report Period: " + period},
		[]string{"Generated: " + m.local(m.GeneratedAt).Format("1/2/2006, 3:04:05 PM")},
		[]string{shortDisclaimer},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv report: %w", err)
	}

	return &Document{
		Filename:    fmt.Sprintf("%s_%s_Summary.csv", m.Pseudonym(), period),
		ContentType: ContentTypeCSV,
		Body:        buf.Bytes(),
	}, nil
}

type field struct {
	Label string
	Value string
}

// profileFields lists the identifying fields shown when personal details are
// included. Callers must check IncludePersonal first.
func profileFields(m *Model) []field {
	p := m.Subject.Profile
	dob := notProvided
	if t, ok := p.Birthdate(); ok {
		dob = t.Format("1/2/2006")
	}
	return []field{
		{"Full Name", orDefault(m.Subject.Name, notProvided)},
		{"Email", orDefault(m.Subject.Email, notProvided)},
		{"Phone", orDefault(p.Phone, notProvided)},
		{"Date of Birth", dob},
		{"Gender", orDefault(p.Gender, notProvided)},
		{"Address", orDefault(p.Address, notProvided)},
		{"Emergency Contact", orDefault(p.EmergencyContact, notProvided)},
		{"Therapist Name", orDefault(p.TherapistName, "Not assigned")},
		{"Therapist Contact", orDefault(p.TherapistContact, notProvided)},
		{"Medical History", orDefault(p.MedicalHistory, notProvided)},
	}
}
