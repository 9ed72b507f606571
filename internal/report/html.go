package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"unicode/utf8"
)

//go:embed templates/summary.html
var templateFS embed.FS

var summaryTemplate = template.Must(template.ParseFS(templateFS, "templates/summary.html"))

const previewRunes = 100

type htmlBar struct {
	Label   string
	Count   int
	Width   string
	Percent string
}

type htmlMood struct {
	Date, Time string
	Score      int
	Rating     string
	Note       string
}

type htmlJournal struct {
	Date, Title, Preview string
}

type htmlView struct {
	Period        string
	Pseudonym     string
	GeneratedLong string
	GeneratedAt   string
	Profile       []field
	AverageMood   string
	MoodCount     int
	JournalCount  int
	Bars          []htmlBar
	Moods         []htmlMood
	Journals      []htmlJournal
	EmptyMarker   string
	Disclaimer    string
	Platform      string
}

// RenderHTML produces a self-contained print-ready page. Browsers save it to
// PDF; no server-side PDF engine is involved.
func RenderHTML(m *Model) (*Document, error) {
	period := m.Range.PeriodLabel()
	view := htmlView{
		Period:        period,
		Pseudonym:     m.Pseudonym(),
		GeneratedLong: m.local(m.GeneratedAt).Format("January 2, 2006"),
		GeneratedAt:   m.local(m.GeneratedAt).Format("1/2/2006, 3:04:05 PM"),
		AverageMood:   m.AverageMood,
		MoodCount:     len(m.Moods),
		JournalCount:  len(m.Journals),
		EmptyMarker:   noEntries,
		Disclaimer:    disclaimer,
		Platform:      platformName,
	}
	if m.IncludePersonal {
		view.Profile = profileFields(m)
	}

	for _, b := range m.ThresholdBuckets() {
		pct := m.percent(b.Count, len(m.Moods))
		view.Bars = append(view.Bars, htmlBar{
			Label:   b.Label,
			Count:   b.Count,
			Width:   fmt.Sprintf("%.1f", pct),
			Percent: fmt.Sprintf("%.0f", pct),
		})
	}
	for _, e := range m.Moods {
		view.Moods = append(view.Moods, htmlMood{
			Date:   m.dateLabel(e.Date),
			Time:   m.timeLabel(e.Date),
			Score:  e.Mood,
			Rating: fmt.Sprintf("%.1f", float64(e.Mood)),
			Note:   orDefault(e.Note, "No notes"),
		})
	}
	for _, j := range m.Journals {
		view.Journals = append(view.Journals, htmlJournal{
			Date:    m.dateLabel(j.Date),
			Title:   orDefault(j.Title, "Untitled"),
			Preview: preview(j.Content),
		})
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render html report: %w", err)
	}

	return &Document{
		Filename:    fmt.Sprintf("%s_%s_Summary.html", m.Pseudonym(), period),
		ContentType: ContentTypeHTML,
		Body:        buf.Bytes(),
	}, nil
}

func preview(content string) string {
	if content == "" {
		return "No content"
	}
	if utf8.RuneCountInString(content) <= previewRunes {
		return content
	}
	return string([]rune(content)[:previewRunes]) + "..."
}
