package analytics

import (
	"time"

	"github.com/mindora/wellness/internal/models"
)

// ChartPoint is one mood entry plotted on the dashboard.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// Summary is the analytics payload for a single window.
type Summary struct {
	Range              Range        `json:"range"`
	AvgMood            string       `json:"avgMood"`
	TotalEntries       int          `json:"totalEntries"`
	Journals           int          `json:"journals"`
	Chart              []ChartPoint `json:"chart"`
	MoodComparison     string       `json:"moodComparison"`
	MoodTrend          string       `json:"moodTrend"`
	EntriesComparison  string       `json:"entriesComparison"`
	EntriesTrend       string       `json:"entriesTrend"`
	JournalsComparison string       `json:"journalsComparison"`
	JournalsTrend      string       `json:"journalsTrend"`
	Insights           []Insight    `json:"insights"`
}

// Summarize windows moods around now and derives every field of the
// dashboard payload. journals counts in full on the current side; only the
// previous side is windowed.
func Summarize(moods []models.MoodEntry, journals []models.JournalEntry, r Range, now time.Time) Summary {
	current := FilterByRange(moods, r, now, false)
	previous := FilterByRange(moods, r, now, true)
	previousJournals := FilterByRange(journals, r, now, true)

	scores := Scores(current)
	prevScores := Scores(previous)

	s := Summary{
		Range:        r,
		AvgMood:      FormatAverage(scores),
		TotalEntries: len(current),
		Journals:     len(journals),
		Chart:        make([]ChartPoint, 0, len(current)),
		Insights:     GenerateInsights(scores, prevScores, len(journals), r),
	}
	for _, e := range current {
		s.Chart = append(s.Chart, ChartPoint{Date: e.Date, Value: e.Mood})
	}

	var curAvg, prevAvg *float64
	if v, ok := RoundedMean(scores); ok {
		curAvg = ptr(v)
	}
	if v, ok := RoundedMean(prevScores); ok {
		prevAvg = ptr(v)
	}
	s.MoodComparison = Comparison(curAvg, prevAvg, r, MetricMood)
	s.MoodTrend = TrendStable
	if curAvg != nil {
		s.MoodTrend = Trend(*curAvg, prevAvg)
	}

	entries, prevEntries := float64(len(current)), float64(len(previous))
	s.EntriesComparison = Comparison(nonEmpty(len(current)), &prevEntries, r, MetricEntries)
	s.EntriesTrend = Trend(entries, &prevEntries)

	j, prevJ := float64(len(journals)), float64(len(previousJournals))
	s.JournalsComparison = Comparison(nonEmpty(len(journals)), &prevJ, r, MetricJournals)
	s.JournalsTrend = Trend(j, &prevJ)

	return s
}

// nonEmpty is nil for an empty window so that no comparison is phrased.
func nonEmpty(n int) *float64 {
	if n == 0 {
		return nil
	}
	return ptr(float64(n))
}
