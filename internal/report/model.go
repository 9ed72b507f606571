// Package report renders a user's wellness history as downloadable
// documents: a CSV summary, a print-ready HTML summary and a multi-sheet
// clinical workbook. A separate workbook exports platform data for admins.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/mindora/wellness/internal/analytics"
	"github.com/mindora/wellness/internal/models"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	notProvided = "Not provided"
	noEntries   = "No mood entries recorded for this period"
)

// Document is a rendered report ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Subject identifies whom the report is about. Name, Email and Profile are
// empty unless personal details were requested.
type Subject struct {
	ID      string
	Name    string
	Email   string
	Profile models.Profile
}

// Options control windowing and redaction.
type Options struct {
	Range           analytics.Range
	IncludePersonal bool
	Now             time.Time
}

// Model holds everything a renderer needs. It is built once per request and
// not modified afterwards.
type Model struct {
	Subject         Subject
	Range           analytics.Range
	GeneratedAt     time.Time
	IncludePersonal bool

	Moods    []models.MoodEntry
	Journals []models.JournalEntry

	Scores      []int
	AverageMood string
	Mean        float64
	HasScores   bool
	Min, Max    int
	Variance    float64
	Threshold   analytics.ThresholdDistribution
	Exact       analytics.ExactDistribution
	Daily       []analytics.DailyAverage
}

// NewModel windows moods and journals to the current period of opts.Range and
// precomputes the statistics shared by every renderer. Personal fields of user
// are dropped unless opts.IncludePersonal is set.
func NewModel(user *models.User, moods []models.MoodEntry, journals []models.JournalEntry, opts Options) *Model {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	m := &Model{
		Range:           opts.Range,
		GeneratedAt:     now,
		IncludePersonal: opts.IncludePersonal,
		Moods:           analytics.FilterByRange(moods, opts.Range, now, false),
		Journals:        analytics.FilterByRange(journals, opts.Range, now, false),
	}
	if user != nil {
		m.Subject.ID = user.ID
		if opts.IncludePersonal {
			m.Subject.Name = user.Name
			m.Subject.Email = user.Email
			m.Subject.Profile = user.Profile
		}
	}

	m.Scores = analytics.Scores(m.Moods)
	m.AverageMood = analytics.FormatAverage(m.Scores)
	m.Mean, m.HasScores = analytics.Mean(m.Scores)
	m.Min, m.Max, _ = analytics.MinMax(m.Scores)
	m.Variance = analytics.Variance(m.Scores)
	m.Threshold = analytics.NewThresholdDistribution(m.Scores)
	m.Exact = analytics.NewExactDistribution(m.Scores)
	m.Daily = analytics.DailyAverages(m.Moods, now.Location())
	return m
}

// Pseudonym is the stable non-identifying label used in place of a name.
func (m *Model) Pseudonym() string {
	id := m.Subject.ID
	if id == "" {
		return "MH-USER-XXXX"
	}
	if len(id) > 4 {
		id = id[len(id)-4:]
	}
	return "MH-USER-" + id
}

// DisplayName is the subject's name when personal data is included.
func (m *Model) DisplayName() string {
	if m.IncludePersonal && m.Subject.Name != "" {
		return m.Subject.Name
	}
	return m.Pseudonym()
}

// ReportID is unique per generation.
func (m *Model) ReportID() string {
	id := m.Subject.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "WR-" + strings.ToUpper(id) + "-" + strconv.FormatInt(m.GeneratedAt.UnixMilli(), 10)
}

func (m *Model) local(t time.Time) time.Time {
	return t.In(m.GeneratedAt.Location())
}

func (m *Model) dateLabel(t time.Time) string {
	return m.local(t).Format("1/2/2006")
}

func (m *Model) timeLabel(t time.Time) string {
	return m.local(t).Format("3:04:05 PM")
}

func (m *Model) percent(n, total int) float64 {
	if total == 0 {
		total = 1
	}
	return float64(n) / float64(total) * 100
}

// Bucket is one row of a distribution table.
type Bucket struct {
	Label string
	Count int
}

// ThresholdBuckets lists the threshold scheme from best to worst.
func (m *Model) ThresholdBuckets() []Bucket {
	d := m.Threshold
	return []Bucket{
		{"Excellent (5)", d.Excellent},
		{"Good (4)", d.Good},
		{"Neutral (3)", d.Neutral},
		{"Low (2)", d.Low},
		{"Poor (1)", d.Poor},
	}
}

// ExactBuckets lists the exact-score scheme from best to worst.
func (m *Model) ExactBuckets() []Bucket {
	d := m.Exact
	return []Bucket{
		{"Score 5 (Excellent)", d.Excellent},
		{"Score 4 (Good)", d.Good},
		{"Score 3 (Okay)", d.Okay},
		{"Score 2 (Poor)", d.Poor},
		{"Score 1 (Very Poor)", d.VeryPoor},
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
